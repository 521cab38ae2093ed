package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToCartRequest names the catalog product to add
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,max=100"`
}

// SetQtyRequest carries a quantity as a JSON number or string. Anything
// unparsable becomes 1.
type SetQtyRequest struct {
	Qty json.RawMessage `json:"qty" validate:"required"`
}

// WishlistResponse lists the wishlist
type WishlistResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// ToggleResponse reports wishlist membership after a toggle
type ToggleResponse struct {
	InWishlist bool `json:"inWishlist"`
	Count      int  `json:"count"`
}

// CartHandler serves the cart and the wishlist
type CartHandler struct {
	store  *state.CommerceStore
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *state.CommerceStore, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all cart and wishlist routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Get("/", h.GetWishlist)
		r.Post("/{productId}", h.AddToWishlist)
		r.Delete("/{productId}", h.RemoveFromWishlist)
		r.Post("/{productId}/toggle", h.ToggleWishlist)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/checkout", h.Checkout)
		r.Post("/items", h.AddToCart)
		r.Put("/items/{productId}", h.SetQty)
		r.Delete("/items/{productId}", h.RemoveFromCart)
		r.Post("/items/{productId}/increment", h.Increment)
		r.Post("/items/{productId}/decrement", h.Decrement)
	})
}

func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.respondWithWishlist(w, http.StatusOK)
}

func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	product, ok := h.catalogProduct(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	h.store.AddToWishlist(product)
	h.respondWithWishlist(w, http.StatusOK)
}

func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFromWishlist(chi.URLParam(r, "productId"))
	h.respondWithWishlist(w, http.StatusOK)
}

func (h *CartHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	product, ok := h.catalogProduct(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	in := h.store.ToggleWishlist(product)
	middleware.RespondWithJSON(w, http.StatusOK, ToggleResponse{
		InWishlist: in,
		Count:      h.store.WishlistCount(),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, ok := h.catalogProduct(w, req.ProductID)
	if !ok {
		return
	}
	h.store.AddToCart(product)
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

// SetQty sets the quantity of a cart line. Unknown lines are left alone.
func (h *CartHandler) SetQty(w http.ResponseWriter, r *http.Request) {
	var req SetQtyRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	h.store.SetCartQty(chi.URLParam(r, "productId"), parseRawQty(req.Qty))
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.store.IncrementQty(chi.URLParam(r, "productId"))
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.store.DecrementQty(chi.URLParam(r, "productId"))
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFromCart(chi.URLParam(r, "productId"))
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart()
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Cart())
}

// Checkout empties the cart and returns what it held
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.Checkout()
	if errors.Is(err, state.ErrEmptyCart) {
		middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) catalogProduct(w http.ResponseWriter, id string) (domain.Product, bool) {
	product, ok := h.store.ProductByID(id)
	if !ok {
		h.logger.Debug("Unknown product", zap.String("product_id", id))
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	}
	return product, ok
}

func (h *CartHandler) respondWithWishlist(w http.ResponseWriter, status int) {
	items := h.store.WishlistItems()
	middleware.RespondWithJSON(w, status, WishlistResponse{
		Items: items,
		Count: len(items),
	})
}

// parseRawQty accepts 3, 2.5, "3" or "abc"
func parseRawQty(raw json.RawMessage) int {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return state.ParseQty(s)
	}
	return state.ParseQty(strings.TrimSpace(string(raw)))
}
