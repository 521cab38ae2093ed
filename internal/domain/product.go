package domain

// Product represents a product in the storefront catalog
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	InStock     int     `json:"inStock"`
	Category    string  `json:"category"`
}

// StoreProduct is a product owned by a shop. Store products live in their own
// catalog and are never merged into the storefront catalog.
type StoreProduct struct {
	Product
	ShopID string `json:"shopId"`
}

// CartItem is one cart line, keyed by product id
type CartItem struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}
