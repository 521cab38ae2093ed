package service

import (
	"testing"

	"e-shopping/internal/domain"
	"e-shopping/internal/state"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShopFixture() (ShopService, *state.ShopStore, *state.IdentityStore) {
	shops := state.NewShopStore()
	identity := state.NewIdentityStore()
	return NewShopService(shops, identity, nil), shops, identity
}

func TestCreateShopWithStoreAccount(t *testing.T) {
	svc, _, identity := newShopFixture()

	result := svc.CreateShop(CreateShopInput{
		Name:               "Baobab",
		OwnerEmail:         "Owner@Baobab.mg",
		CreateStoreAccount: true,
	})

	require.NoError(t, result.AccountErr)
	require.NotNil(t, result.Account)
	assert.Equal(t, "owner@baobab.mg", result.Shop.OwnerEmail)
	assert.Equal(t, domain.RoleStore, result.Account.Role)
	assert.Equal(t, result.Shop.ID, result.Account.ShopID)
	assert.Equal(t, "Baobab", result.Account.Name)

	// the default password logs the account in
	user, err := identity.Login("owner@baobab.mg", DefaultStorePassword)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, user.ID)
}

func TestCreateShopKeepsShopWhenAccountFails(t *testing.T) {
	svc, shops, _ := newShopFixture()

	result := svc.CreateShop(CreateShopInput{
		Name:               "Admin shop",
		OwnerEmail:         "admin@baobab.mg",
		CreateStoreAccount: true,
		Password:           "pw",
	})

	assert.ErrorIs(t, result.AccountErr, state.ErrDuplicateEmail)
	assert.Nil(t, result.Account)
	_, ok := shops.Get(result.Shop.ID)
	assert.True(t, ok)
}

func TestCreateShopWithoutAccount(t *testing.T) {
	svc, _, identity := newShopFixture()

	result := svc.CreateShop(CreateShopInput{Name: "Baobab", OwnerEmail: "o@b.mg"})

	assert.NoError(t, result.AccountErr)
	assert.Nil(t, result.Account)
	assert.Len(t, identity.Users(), 1)
}

func TestRemoveShop(t *testing.T) {
	svc, _, _ := newShopFixture()
	a := svc.CreateShop(CreateShopInput{Name: "A", OwnerEmail: "a@b.mg"}).Shop
	b := svc.CreateShop(CreateShopInput{Name: "B", OwnerEmail: "b@b.mg"}).Shop

	svc.RemoveShop(a.ID)

	assert.Equal(t, []domain.Shop{b}, svc.ListShops())
}

// Property 8: every created shop is listed first with a normalized owner email
func TestProperty_CreatedShopIsListedFirst(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("new shops are prepended", prop.ForAll(
		func(names []string) bool {
			svc, _, _ := newShopFixture()
			for _, name := range names {
				shop := svc.CreateShop(CreateShopInput{Name: name, OwnerEmail: " X@Y.MG "}).Shop
				list := svc.ListShops()
				if list[0].ID != shop.ID || shop.OwnerEmail != "x@y.mg" {
					return false
				}
			}
			return len(svc.ListShops()) == len(names)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
