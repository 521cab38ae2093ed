package transport

import (
	"errors"
	"net/http"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string      `json:"name" validate:"max=100"`
	Email    string      `json:"email" validate:"max=254"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=ADMIN STORE BUYER"`
	ShopID   string      `json:"shopId" validate:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse carries the new account and where the front end should
// land
type RegisterResponse struct {
	User     UserProfile `json:"user"`
	Redirect string      `json:"redirect"`
}

// SessionResponse describes the current session
type SessionResponse struct {
	IsLoggedIn  bool         `json:"isLoggedIn"`
	Role        domain.Role  `json:"role,omitempty"`
	CurrentUser *UserProfile `json:"currentUser"`
}

// AuthHandler handles registration and the single session
type AuthHandler struct {
	identity *state.IdentityStore
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identity *state.IdentityStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})
}

// Register creates an account and logs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	user, err := h.identity.Register(state.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ShopID:   req.ShopID,
	})
	if err != nil {
		respondWithIdentityError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, RegisterResponse{
		User:     profileOf(user),
		Redirect: state.HomePath(user.Role),
	})
}

// Login opens the session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	user, err := h.identity.Login(req.Email, req.Password)
	if err != nil {
		respondWithIdentityError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profileOf(user))
}

// Logout closes the session, if any
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.identity.Logout()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{}
	if user, ok := h.identity.CurrentUser(); ok {
		profile := profileOf(user)
		resp.IsLoggedIn = true
		resp.Role = user.Role
		resp.CurrentUser = &profile
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

func respondWithIdentityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, state.ErrInvalidEmail):
		middleware.RespondWithError(w, http.StatusBadRequest, "email is required")
	case errors.Is(err, state.ErrDuplicateEmail):
		middleware.RespondWithError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, state.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
	default:
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
