package service

import (
	"fmt"
	"strings"

	"e-shopping/internal/domain"
	"e-shopping/internal/state"

	"go.uber.org/zap"
)

// DefaultStorePassword is used for store accounts created without a password
const DefaultStorePassword = "store123"

// ShopDirectory is the part of the shop store used by workflows
type ShopDirectory interface {
	List() []domain.Shop
	Get(id string) (domain.Shop, bool)
	FindByOwnerEmail(email string) (domain.Shop, bool)
	Create(in state.ShopInput) domain.Shop
	Remove(id string)
}

// AccountCreator creates accounts without touching the session
type AccountCreator interface {
	AdminCreateUser(in state.RegisterInput) (domain.User, error)
}

// CreateShopInput describes a new shop and, optionally, its store account
type CreateShopInput struct {
	Name               string
	OwnerEmail         string
	Description        string
	LogoURL            string
	CreateStoreAccount bool
	Password           string
}

// CreateShopResult reports both halves of CreateShop. The shop always
// exists; Account is nil when no account was requested or its creation
// failed, in which case AccountErr says why.
type CreateShopResult struct {
	Shop       domain.Shop
	Account    *domain.User
	AccountErr error
}

// ShopService defines the admin shop workflows
type ShopService interface {
	CreateShop(in CreateShopInput) CreateShopResult
	RemoveShop(id string)
	ListShops() []domain.Shop
}

type shopService struct {
	shops    ShopDirectory
	accounts AccountCreator
	logger   *zap.Logger
}

// NewShopService creates a new instance of ShopService
func NewShopService(shops ShopDirectory, accounts AccountCreator, logger *zap.Logger) ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &shopService{
		shops:    shops,
		accounts: accounts,
		logger:   logger,
	}
}

// CreateShop creates the shop, then its store account when requested.
// A failed account is reported, the shop is kept.
func (s *shopService) CreateShop(in CreateShopInput) CreateShopResult {
	shop := s.shops.Create(state.ShopInput{
		Name:        in.Name,
		OwnerEmail:  in.OwnerEmail,
		Description: in.Description,
		LogoURL:     in.LogoURL,
	})
	result := CreateShopResult{Shop: shop}

	if !in.CreateStoreAccount {
		return result
	}

	password := in.Password
	if strings.TrimSpace(password) == "" {
		password = DefaultStorePassword
	}

	account, err := s.accounts.AdminCreateUser(state.RegisterInput{
		Name:     shop.Name,
		Email:    shop.OwnerEmail,
		Password: password,
		Role:     domain.RoleStore,
		ShopID:   shop.ID,
	})
	if err != nil {
		s.logger.Warn("Shop created without store account",
			zap.String("shop_id", shop.ID),
			zap.Error(err),
		)
		result.AccountErr = fmt.Errorf("failed to create store account: %w", err)
		return result
	}

	result.Account = &account
	return result
}

func (s *shopService) RemoveShop(id string) {
	s.shops.Remove(id)
}

func (s *shopService) ListShops() []domain.Shop {
	return s.shops.List()
}
