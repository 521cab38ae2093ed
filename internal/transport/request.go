package transport

import (
	"net/http"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"

	"go.uber.org/zap"
)

// UserProfile is the public view of an account. Passwords never leave the
// store.
type UserProfile struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	ShopID string      `json:"shopId,omitempty"`
}

func profileOf(u domain.User) UserProfile {
	return UserProfile{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		ShopID: u.ShopID,
	}
}

func profilesOf(users []domain.User) []UserProfile {
	out := make([]UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, profileOf(u))
	}
	return out
}

// decodeRequest decodes and validates the body into v, answering 400 on
// failure. It reports whether the handler should go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any, logger *zap.Logger) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
