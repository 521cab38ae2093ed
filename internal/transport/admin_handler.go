package transport

import (
	"net/http"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"
	"e-shopping/internal/service"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateUserRequest is an admin-created account
type CreateUserRequest struct {
	Name     string      `json:"name" validate:"max=100"`
	Email    string      `json:"email" validate:"required,normemail"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role" validate:"required,oneof=ADMIN STORE BUYER"`
	ShopID   string      `json:"shopId" validate:"max=100"`
}

// CreateShopRequest is a new shop with an optional store account
type CreateShopRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	OwnerEmail         string `json:"ownerEmail" validate:"required,normemail"`
	Description        string `json:"description" validate:"required,max=1000"`
	LogoURL            string `json:"logoUrl" validate:"omitempty,url"`
	CreateStoreAccount bool   `json:"createStoreAccount"`
	Password           string `json:"password" validate:"omitempty,min=4"`
}

// CreateShopResponse reports the shop and, when requested, its account.
// AccountError is set when the shop exists but the account does not.
type CreateShopResponse struct {
	Shop         domain.Shop  `json:"shop"`
	Account      *UserProfile `json:"account,omitempty"`
	AccountError string       `json:"accountError,omitempty"`
}

// AdminHandler serves account and shop management for admins
type AdminHandler struct {
	shops    service.ShopService
	identity *state.IdentityStore
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(shops service.ShopService, identity *state.IdentityStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		shops:    shops,
		identity: identity,
		logger:   logger,
	}
}

// RegisterRoutes registers the admin routes behind the given gates
func (h *AdminHandler) RegisterRoutes(r chi.Router, gates ...func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(gates...)

		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)
		r.Get("/shops", h.ListShops)
		r.Post("/shops", h.CreateShop)
		r.Delete("/shops/{id}", h.RemoveShop)
	})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, profilesOf(h.identity.Users()))
}

// CreateUser adds an account without touching the admin session
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	user, err := h.identity.AdminCreateUser(state.RegisterInput{
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

	middleware.RespondWithJSON(w, http.StatusCreated, profileOf(user))
}

func (h *AdminHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.shops.ListShops())
}

// CreateShop answers 201 even when only the shop could be created
func (h *AdminHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req CreateShopRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	result := h.shops.CreateShop(service.CreateShopInput{
		Name:               req.Name,
		OwnerEmail:         req.OwnerEmail,
		Description:        req.Description,
		LogoURL:            req.LogoURL,
		CreateStoreAccount: req.CreateStoreAccount,
		Password:           req.Password,
	})

	resp := CreateShopResponse{Shop: result.Shop}
	if result.Account != nil {
		profile := profileOf(*result.Account)
		resp.Account = &profile
	}
	if result.AccountErr != nil {
		resp.AccountError = result.AccountErr.Error()
	}

	middleware.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) RemoveShop(w http.ResponseWriter, r *http.Request) {
	h.shops.RemoveShop(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
