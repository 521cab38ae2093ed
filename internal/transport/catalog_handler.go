package transport

import (
	"net/http"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FiltersRequest updates the catalog filters. Absent fields are kept.
type FiltersRequest struct {
	Category *string `json:"category" validate:"omitempty,max=100"`
	Search   *string `json:"search" validate:"omitempty,max=200"`
}

// ProductListResponse is the filtered catalog with the filters that produced it
type ProductListResponse struct {
	Category string           `json:"category"`
	Search   string           `json:"search"`
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

// CategoriesResponse lists the catalog categories and the selected one
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// CatalogHandler serves the storefront catalog and its filters
type CatalogHandler struct {
	store  *state.CommerceStore
	logger *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(store *state.CommerceStore, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/id/{id}", h.GetProduct)
		r.Get("/{category}", h.ListCategory)
	})
	r.Get("/api/categories", h.ListCategories)
	r.Put("/api/filters", h.SetFilters)
}

// ListProducts returns the filtered catalog. The category and search query
// parameters, when present, replace the filters first.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("category") {
		h.store.SetCategory(q.Get("category"))
	}
	if q.Has("search") {
		h.store.SetSearch(q.Get("search"))
	}
	h.respondWithProducts(w)
}

// ListCategory selects a category then returns the filtered catalog
func (h *CatalogHandler) ListCategory(w http.ResponseWriter, r *http.Request) {
	h.store.SetCategory(chi.URLParam(r, "category"))
	h.respondWithProducts(w)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.store.ProductByID(chi.URLParam(r, "id"))
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, CategoriesResponse{
		Categories: h.store.Categories(),
		Selected:   h.store.Category(),
	})
}

// SetFilters replaces the category and/or search filters
func (h *CatalogHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	if req.Category != nil {
		h.store.SetCategory(*req.Category)
	}
	if req.Search != nil {
		h.store.SetSearch(*req.Search)
	}
	h.respondWithProducts(w)
}

func (h *CatalogHandler) respondWithProducts(w http.ResponseWriter) {
	category, search, products := h.store.Listing()
	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Category: category,
		Search:   search,
		Count:    len(products),
		Products: products,
	})
}
