package service

import (
	"errors"
	"fmt"

	"e-shopping/internal/domain"
	"e-shopping/internal/state"

	"go.uber.org/zap"
)

var (
	ErrNoShop          = errors.New("no shop is linked to this account")
	ErrProductNotFound = errors.New("product not found")
	ErrProductNotOwned = errors.New("product belongs to another shop")
)

// ProductCatalog is the part of the store product catalog used by workflows
type ProductCatalog interface {
	Get(id string) (domain.StoreProduct, bool)
	ByShop(shopID string) []domain.StoreProduct
	Create(shopID string, in state.StoreProductInput) domain.StoreProduct
	Remove(id string)
}

// StoreArticleService defines the workflows of a store account over its
// own products
type StoreArticleService interface {
	ResolveShopID(user domain.User) string
	Shop(user domain.User) (domain.Shop, error)
	MyProducts(user domain.User) []domain.StoreProduct
	Create(user domain.User, in state.StoreProductInput) (domain.StoreProduct, error)
	Remove(user domain.User, productID string) error
}

type storeArticleService struct {
	shops    ShopDirectory
	products ProductCatalog
	logger   *zap.Logger
}

// NewStoreArticleService creates a new instance of StoreArticleService
func NewStoreArticleService(shops ShopDirectory, products ProductCatalog, logger *zap.Logger) StoreArticleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &storeArticleService{
		shops:    shops,
		products: products,
		logger:   logger,
	}
}

// ResolveShopID returns the shop of user: its ShopID when set, else the shop
// whose owner email matches, else ""
func (s *storeArticleService) ResolveShopID(user domain.User) string {
	if user.ShopID != "" {
		return user.ShopID
	}
	if shop, ok := s.shops.FindByOwnerEmail(user.Email); ok {
		return shop.ID
	}
	return ""
}

// Shop returns the resolved shop. A shop id pointing at a removed shop
// yields ErrNoShop.
func (s *storeArticleService) Shop(user domain.User) (domain.Shop, error) {
	id := s.ResolveShopID(user)
	if id == "" {
		return domain.Shop{}, ErrNoShop
	}
	shop, ok := s.shops.Get(id)
	if !ok {
		return domain.Shop{}, ErrNoShop
	}
	return shop, nil
}

func (s *storeArticleService) MyProducts(user domain.User) []domain.StoreProduct {
	return s.products.ByShop(s.ResolveShopID(user))
}

func (s *storeArticleService) Create(user domain.User, in state.StoreProductInput) (domain.StoreProduct, error) {
	shopID := s.ResolveShopID(user)
	if shopID == "" {
		s.logger.Debug("Store product rejected, no shop", zap.String("user_id", user.ID))
		return domain.StoreProduct{}, ErrNoShop
	}
	return s.products.Create(shopID, in), nil
}

// Remove deletes productID if it belongs to the shop of user
func (s *storeArticleService) Remove(user domain.User, productID string) error {
	product, ok := s.products.Get(productID)
	if !ok {
		return ErrProductNotFound
	}

	shopID := s.ResolveShopID(user)
	if shopID == "" || product.ShopID != shopID {
		s.logger.Warn("Attempt to remove a product of another shop",
			zap.String("user_id", user.ID),
			zap.String("product_id", productID),
		)
		return fmt.Errorf("remove %s: %w", productID, ErrProductNotOwned)
	}

	s.products.Remove(productID)
	return nil
}
