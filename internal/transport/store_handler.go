package transport

import (
	"errors"
	"net/http"

	"e-shopping/internal/middleware"
	"e-shopping/internal/service"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest is a new product of the caller's shop
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Price       int64  `json:"price" validate:"gte=0"`
	InStock     int    `json:"inStock" validate:"gte=0"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

// StoreHandler serves a store account's own shop and products
type StoreHandler struct {
	articles service.StoreArticleService
	identity *state.IdentityStore
	logger   *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(articles service.StoreArticleService, identity *state.IdentityStore, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		articles: articles,
		identity: identity,
		logger:   logger,
	}
}

// RegisterRoutes registers the store routes behind the given gates
func (h *StoreHandler) RegisterRoutes(r chi.Router, gates ...func(http.Handler) http.Handler) {
	r.Route("/api/store", func(r chi.Router) {
		r.Use(gates...)

		r.Get("/shop", h.GetShop)
		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Delete("/products/{id}", h.RemoveProduct)
	})
}

func (h *StoreHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	user, ok := h.identity.CurrentUser()
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}

	shop, err := h.articles.Shop(user)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shop)
}

func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.identity.CurrentUser()
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.articles.MyProducts(user))
}

func (h *StoreHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.identity.CurrentUser()
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}

	var req CreateProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, err := h.articles.Create(user, state.StoreProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		InStock:     req.InStock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *StoreHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.identity.CurrentUser()
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}

	if err := h.articles.Remove(user, chi.URLParam(r, "id")); err != nil {
		h.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandler) respondWithError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoShop):
		middleware.RespondWithError(w, http.StatusConflict, "no shop is linked to this account")
	case errors.Is(err, service.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrProductNotOwned):
		middleware.RespondWithError(w, http.StatusForbidden, "product belongs to another shop")
	default:
		h.logger.Error("Store request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
