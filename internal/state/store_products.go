package state

import (
	"slices"
	"strings"

	"e-shopping/internal/domain"

	"go.uber.org/zap"
)

// StoreProductInput carries the editable fields of a shop product
type StoreProductInput struct {
	Name        string
	Category    string
	Description string
	Price       int64
	InStock     int
	ImageURL    string
}

// StoreProductStore is the catalog of shop-owned products, newest first. It
// is kept apart from the storefront catalog.
type StoreProductStore struct {
	c        *container[[]domain.StoreProduct]
	logger   *zap.Logger
	notifier Notifier
	newID    IDGenerator

	byShop *derivation[[]domain.StoreProduct, map[string][]domain.StoreProduct]
}

// NewStoreProductStore restores products from SlotStoreProducts, or starts
// empty
func NewStoreProductStore(opts ...Option) *StoreProductStore {
	o := buildOptions(opts)
	sl := newSlot[[]domain.StoreProduct](SlotStoreProducts, o)

	initial, _ := sl.load()

	var persist func([]domain.StoreProduct)
	if sl != nil {
		persist = sl.save
	}

	return &StoreProductStore{
		c:        newContainer("store_products", nonNil(initial), persist, o.metrics),
		logger:   o.logger,
		notifier: o.notifier,
		newID:    o.newID,

		byShop: derive(func(products []domain.StoreProduct) map[string][]domain.StoreProduct {
			index := make(map[string][]domain.StoreProduct)
			for _, p := range products {
				index[p.ShopID] = append(index[p.ShopID], p)
			}
			return index
		}),
	}
}

// List returns every store product, newest first
func (s *StoreProductStore) List() []domain.StoreProduct {
	return slices.Clone(s.c.load().state)
}

// Get returns the store product with id
func (s *StoreProductStore) Get(id string) (domain.StoreProduct, bool) {
	for _, p := range s.c.load().state {
		if p.ID == id {
			return p, true
		}
	}
	return domain.StoreProduct{}, false
}

// ByShop returns the products of shopID, newest first. A blank shopID has
// no products.
func (s *StoreProductStore) ByShop(shopID string) []domain.StoreProduct {
	if shopID == "" {
		return []domain.StoreProduct{}
	}
	return nonNil(slices.Clone(s.byShop.get(s.c.load())[shopID]))
}

// Create adds a product owned by shopID in front of the list. Ratings start
// at zero.
func (s *StoreProductStore) Create(shopID string, in StoreProductInput) domain.StoreProduct {
	product := domain.StoreProduct{
		Product: domain.Product{
			ID:          s.newID("p_"),
			Name:        strings.TrimSpace(in.Name),
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			ImageURL:    strings.TrimSpace(in.ImageURL),
			InStock:     in.InStock,
			Category:    strings.TrimSpace(in.Category),
		},
		ShopID: shopID,
	}

	s.c.update("create", func(products []domain.StoreProduct) ([]domain.StoreProduct, error) {
		return slices.Insert(slices.Clone(products), 0, product), nil
	})

	s.logger.Info("Store product created", zap.String("product_id", product.ID), zap.String("shop_id", shopID))
	s.notifier.Success("Product added")
	return product
}

// Remove deletes the product with id if present
func (s *StoreProductStore) Remove(id string) {
	s.c.update("remove", func(products []domain.StoreProduct) ([]domain.StoreProduct, error) {
		i := slices.IndexFunc(products, func(p domain.StoreProduct) bool { return p.ID == id })
		if i < 0 {
			return products, errUnchanged
		}
		return slices.Delete(slices.Clone(products), i, i+1), nil
	})
	s.notifier.Success("Product removed")
}
