package state

import (
	"slices"
	"strings"

	"e-shopping/internal/domain"

	"go.uber.org/zap"
)

// ShopInput carries the fields of a new shop
type ShopInput struct {
	Name        string
	OwnerEmail  string
	Description string
	LogoURL     string
}

// ShopStore is the admin-managed shop list, newest first. Nothing checks
// that users or store products referencing a removed shop are cleaned up.
type ShopStore struct {
	c        *container[[]domain.Shop]
	logger   *zap.Logger
	notifier Notifier
	newID    IDGenerator
}

// NewShopStore restores shops from SlotShops, or starts empty
func NewShopStore(opts ...Option) *ShopStore {
	o := buildOptions(opts)
	sl := newSlot[[]domain.Shop](SlotShops, o)

	initial, _ := sl.load()

	var persist func([]domain.Shop)
	if sl != nil {
		persist = sl.save
	}

	return &ShopStore{
		c:        newContainer("shops", nonNil(initial), persist, o.metrics),
		logger:   o.logger,
		notifier: o.notifier,
		newID:    o.newID,
	}
}

// List returns every shop, newest first
func (s *ShopStore) List() []domain.Shop {
	return slices.Clone(s.c.load().state)
}

// Get returns the shop with id
func (s *ShopStore) Get(id string) (domain.Shop, bool) {
	for _, shop := range s.c.load().state {
		if shop.ID == id {
			return shop, true
		}
	}
	return domain.Shop{}, false
}

// FindByOwnerEmail returns the first shop owned by email (normalized)
func (s *ShopStore) FindByOwnerEmail(email string) (domain.Shop, bool) {
	e := domain.NormalizeEmail(email)
	if e == "" {
		return domain.Shop{}, false
	}
	for _, shop := range s.c.load().state {
		if shop.OwnerEmail == e {
			return shop, true
		}
	}
	return domain.Shop{}, false
}

// Create adds a shop with a generated id in front of the list
func (s *ShopStore) Create(in ShopInput) domain.Shop {
	shop := domain.Shop{
		ID:          s.newID("shop_"),
		Name:        strings.TrimSpace(in.Name),
		OwnerEmail:  domain.NormalizeEmail(in.OwnerEmail),
		Description: strings.TrimSpace(in.Description),
		LogoURL:     strings.TrimSpace(in.LogoURL),
	}

	s.c.update("create", func(shops []domain.Shop) ([]domain.Shop, error) {
		return slices.Insert(slices.Clone(shops), 0, shop), nil
	})

	s.logger.Info("Shop created", zap.String("shop_id", shop.ID), zap.String("owner_email", shop.OwnerEmail))
	return shop
}

// Remove deletes the shop with id if present
func (s *ShopStore) Remove(id string) {
	s.c.update("remove", func(shops []domain.Shop) ([]domain.Shop, error) {
		i := slices.IndexFunc(shops, func(shop domain.Shop) bool { return shop.ID == id })
		if i < 0 {
			return shops, errUnchanged
		}
		return slices.Delete(slices.Clone(shops), i, i+1), nil
	})
	s.notifier.Success("Shop removed")
}
