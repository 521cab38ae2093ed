package state

import (
	"errors"
	"slices"

	"e-shopping/internal/domain"

	"go.uber.org/zap"
)

// CommerceState is the catalog, filter, wishlist and cart record
type CommerceState struct {
	Products      []domain.Product  `json:"products"`
	Category      string            `json:"category"`
	Search        string            `json:"search"`
	WishlistItems []domain.Product  `json:"wishlistItems"`
	CartItems     []domain.CartItem `json:"cartItems"`
}

// commerceSlot is the persisted part of CommerceState. The catalog itself is
// always taken from the constructor.
type commerceSlot struct {
	Category      string            `json:"category"`
	Search        string            `json:"search"`
	WishlistItems []domain.Product  `json:"wishlistItems"`
	CartItems     []domain.CartItem `json:"cartItems"`
}

// CartSummary is a cart snapshot with its derived totals
type CartSummary struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
}

// CommerceStore is the single source of truth for the storefront catalog,
// filters, wishlist and cart
type CommerceStore struct {
	c        *container[CommerceState]
	logger   *zap.Logger
	notifier Notifier

	filtered      *derivation[CommerceState, []domain.Product]
	categories    *derivation[CommerceState, []string]
	wishlistCount *derivation[CommerceState, int]
	cartCount     *derivation[CommerceState, int]
	cartTotal     *derivation[CommerceState, int64]
}

// NewCommerceStore creates a store over products with the "all" category, an
// empty search, and an empty wishlist and cart. With WithSlots, filters,
// wishlist and cart are restored from and saved to SlotCommerce.
func NewCommerceStore(products []domain.Product, opts ...Option) *CommerceStore {
	o := buildOptions(opts)
	sl := newSlot[commerceSlot](SlotCommerce, o)

	initial := CommerceState{
		Products:      slices.Clone(products),
		Category:      CategoryAll,
		WishlistItems: []domain.Product{},
		CartItems:     []domain.CartItem{},
	}
	if saved, ok := sl.load(); ok {
		if fixed, repaired := repairCommerce(saved); repaired {
			sl.repaired()
			saved = fixed
		}
		initial.Category = saved.Category
		initial.Search = saved.Search
		initial.WishlistItems = nonNil(saved.WishlistItems)
		initial.CartItems = nonNil(saved.CartItems)
	}

	var persist func(CommerceState)
	if sl != nil {
		persist = func(s CommerceState) {
			sl.save(commerceSlot{
				Category:      s.Category,
				Search:        s.Search,
				WishlistItems: s.WishlistItems,
				CartItems:     s.CartItems,
			})
		}
	}

	return &CommerceStore{
		c:        newContainer("commerce", initial, persist, o.metrics),
		logger:   o.logger,
		notifier: o.notifier,

		filtered: derive(func(s CommerceState) []domain.Product {
			return FilterProducts(s.Products, s.Category, s.Search)
		}),
		categories: derive(func(s CommerceState) []string {
			return Categories(s.Products)
		}),
		wishlistCount: derive(func(s CommerceState) int {
			return len(s.WishlistItems)
		}),
		cartCount: derive(func(s CommerceState) int {
			return CartCount(s.CartItems)
		}),
		cartTotal: derive(func(s CommerceState) int64 {
			return CartTotal(s.CartItems)
		}),
	}
}

// State returns a copy of the current record
func (s *CommerceStore) State() CommerceState {
	st := s.c.load().state
	return CommerceState{
		Products:      slices.Clone(st.Products),
		Category:      st.Category,
		Search:        st.Search,
		WishlistItems: slices.Clone(st.WishlistItems),
		CartItems:     slices.Clone(st.CartItems),
	}
}

func (s *CommerceStore) Products() []domain.Product {
	return slices.Clone(s.c.load().state.Products)
}

// ProductByID looks a product up in the catalog
func (s *CommerceStore) ProductByID(id string) (domain.Product, bool) {
	for _, p := range s.c.load().state.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *CommerceStore) Category() string {
	return s.c.load().state.Category
}

func (s *CommerceStore) Search() string {
	return s.c.load().state.Search
}

func (s *CommerceStore) WishlistItems() []domain.Product {
	return slices.Clone(s.c.load().state.WishlistItems)
}

// InWishlist reports whether productID is in the wishlist
func (s *CommerceStore) InWishlist(productID string) bool {
	return indexProduct(s.c.load().state.WishlistItems, productID) >= 0
}

func (s *CommerceStore) CartItems() []domain.CartItem {
	return slices.Clone(s.c.load().state.CartItems)
}

// FilteredProducts is the catalog narrowed by the category and search filters
func (s *CommerceStore) FilteredProducts() []domain.Product {
	return slices.Clone(s.filtered.get(s.c.load()))
}

// Listing returns the filters and the products they select, read from one
// record version
func (s *CommerceStore) Listing() (category, search string, products []domain.Product) {
	v := s.c.load()
	return v.state.Category, v.state.Search, slices.Clone(s.filtered.get(v))
}

// Categories lists "all" and the catalog categories
func (s *CommerceStore) Categories() []string {
	return slices.Clone(s.categories.get(s.c.load()))
}

func (s *CommerceStore) WishlistCount() int {
	return s.wishlistCount.get(s.c.load())
}

func (s *CommerceStore) CartCount() int {
	return s.cartCount.get(s.c.load())
}

func (s *CommerceStore) CartTotal() int64 {
	return s.cartTotal.get(s.c.load())
}

// Cart returns items, count and total read from one record version
func (s *CommerceStore) Cart() CartSummary {
	v := s.c.load()
	return CartSummary{
		Items: slices.Clone(v.state.CartItems),
		Count: s.cartCount.get(v),
		Total: s.cartTotal.get(v),
	}
}

// SetCategory replaces the category filter
func (s *CommerceStore) SetCategory(category string) {
	s.c.update("set_category", func(st CommerceState) (CommerceState, error) {
		if st.Category == category {
			return st, errUnchanged
		}
		st.Category = category
		return st, nil
	})
}

// SetSearch replaces the search filter
func (s *CommerceStore) SetSearch(query string) {
	s.c.update("set_search", func(st CommerceState) (CommerceState, error) {
		if st.Search == query {
			return st, errUnchanged
		}
		st.Search = query
		return st, nil
	})
}

// AddToWishlist adds product unless a product with the same id is present
func (s *CommerceStore) AddToWishlist(product domain.Product) {
	s.c.update("add_to_wishlist", func(st CommerceState) (CommerceState, error) {
		if indexProduct(st.WishlistItems, product.ID) >= 0 {
			return st, errUnchanged
		}
		st.WishlistItems = append(slices.Clone(st.WishlistItems), product)
		return st, nil
	})
	s.notifier.Success("Added to wishlist")
}

// RemoveFromWishlist removes productID from the wishlist if present
func (s *CommerceStore) RemoveFromWishlist(productID string) {
	s.c.update("remove_from_wishlist", func(st CommerceState) (CommerceState, error) {
		i := indexProduct(st.WishlistItems, productID)
		if i < 0 {
			return st, errUnchanged
		}
		st.WishlistItems = slices.Delete(slices.Clone(st.WishlistItems), i, i+1)
		return st, nil
	})
	s.notifier.Success("Removed from wishlist")
}

// ToggleWishlist removes product if present, else adds it, in one mutation.
// It reports whether the product is in the wishlist afterwards.
func (s *CommerceStore) ToggleWishlist(product domain.Product) bool {
	var added bool
	s.c.update("toggle_wishlist", func(st CommerceState) (CommerceState, error) {
		if i := indexProduct(st.WishlistItems, product.ID); i >= 0 {
			st.WishlistItems = slices.Delete(slices.Clone(st.WishlistItems), i, i+1)
			added = false
		} else {
			st.WishlistItems = append(slices.Clone(st.WishlistItems), product)
			added = true
		}
		return st, nil
	})

	if added {
		s.notifier.Success("Added to wishlist")
	} else {
		s.notifier.Success("Removed from wishlist")
	}
	return added
}

// AddToCart increments the line of product, or inserts a new line with
// qty 1 at the front of the cart
func (s *CommerceStore) AddToCart(product domain.Product) {
	s.c.update("add_to_cart", func(st CommerceState) (CommerceState, error) {
		items := slices.Clone(st.CartItems)
		if i := indexCartItem(items, product.ID); i >= 0 {
			items[i].Qty = ClampQty(items[i].Qty + 1)
		} else {
			items = slices.Insert(items, 0, domain.CartItem{Product: product, Qty: 1})
		}
		st.CartItems = items
		return st, nil
	})
	s.notifier.Success("Added to cart")
}

// RemoveFromCart removes the line of productID if present
func (s *CommerceStore) RemoveFromCart(productID string) {
	s.c.update("remove_from_cart", func(st CommerceState) (CommerceState, error) {
		i := indexCartItem(st.CartItems, productID)
		if i < 0 {
			return st, errUnchanged
		}
		st.CartItems = slices.Delete(slices.Clone(st.CartItems), i, i+1)
		return st, nil
	})
	s.notifier.Success("Removed from cart")
}

// SetCartQty sets the quantity of an existing line, clamped to at least 1.
// Unknown product ids are ignored.
func (s *CommerceStore) SetCartQty(productID string, qty int) {
	s.setQty("set_cart_qty", productID, func(int) int { return qty })
}

// IncrementQty raises the quantity of an existing line by one
func (s *CommerceStore) IncrementQty(productID string) {
	s.setQty("increment_qty", productID, func(cur int) int { return cur + 1 })
}

// DecrementQty lowers the quantity of an existing line by one, never below 1
func (s *CommerceStore) DecrementQty(productID string) {
	s.setQty("decrement_qty", productID, func(cur int) int { return cur - 1 })
}

func (s *CommerceStore) setQty(op, productID string, next func(int) int) {
	s.c.update(op, func(st CommerceState) (CommerceState, error) {
		i := indexCartItem(st.CartItems, productID)
		if i < 0 {
			return st, errUnchanged
		}
		items := slices.Clone(st.CartItems)
		items[i].Qty = ClampQty(next(items[i].Qty))
		st.CartItems = items
		return st, nil
	})
}

// ClearCart empties the cart
func (s *CommerceStore) ClearCart() {
	s.c.update("clear_cart", func(st CommerceState) (CommerceState, error) {
		st.CartItems = []domain.CartItem{}
		return st, nil
	})
	s.notifier.Success("Cart cleared")
}

// ErrEmptyCart rejects a checkout with nothing in the cart
var ErrEmptyCart = errors.New("cart is empty")

// Checkout returns the cart as it was and empties it. Nothing is charged or
// shipped.
func (s *CommerceStore) Checkout() (CartSummary, error) {
	var summary CartSummary
	_, err := s.c.update("checkout", func(st CommerceState) (CommerceState, error) {
		if len(st.CartItems) == 0 {
			return st, ErrEmptyCart
		}
		summary = CartSummary{
			Items: slices.Clone(st.CartItems),
			Count: CartCount(st.CartItems),
			Total: CartTotal(st.CartItems),
		}
		st.CartItems = []domain.CartItem{}
		return st, nil
	})
	if err != nil {
		return CartSummary{}, err
	}

	s.logger.Info("Checkout completed",
		zap.Int("items", len(summary.Items)),
		zap.Int("count", summary.Count),
		zap.Int64("total", summary.Total),
	)
	s.notifier.Success("Order placed")
	return summary, nil
}

func indexProduct(products []domain.Product, id string) int {
	return slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
}

func indexCartItem(items []domain.CartItem, productID string) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool { return it.Product.ID == productID })
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
