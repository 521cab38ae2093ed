package state

import (
	"sync"
	"testing"

	"e-shopping/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func genProduct() gopter.Gen {
	return gen.IntRange(1, 5).Map(func(i int) domain.Product {
		return SeedCatalog()[i-1]
	})
}

func TestCommerceStoreInitialState(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())

	assert.Equal(t, CategoryAll, s.Category())
	assert.Empty(t, s.Search())
	assert.NotNil(t, s.WishlistItems())
	assert.Empty(t, s.WishlistItems())
	assert.NotNil(t, s.CartItems())
	assert.Empty(t, s.CartItems())
	assert.Len(t, s.FilteredProducts(), 5)
	assert.Zero(t, s.CartTotal())
	assert.Zero(t, s.WishlistCount())
}

// Property 5: adding the same product twice makes one line with qty 2
func TestProperty_AddToCartTwiceMergesLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("second add increments instead of appending", prop.ForAll(
		func(others []domain.Product, p domain.Product) bool {
			s := NewCommerceStore(SeedCatalog())
			for _, o := range others {
				if o.ID != p.ID {
					s.AddToCart(o)
				}
			}

			s.AddToCart(p)
			before := len(s.CartItems())
			s.AddToCart(p)
			items := s.CartItems()

			if len(items) != before {
				t.Logf("FAIL: cart grew from %d to %d", before, len(items))
				return false
			}
			matches := 0
			for _, it := range items {
				if it.Product.ID == p.ID {
					matches++
					if it.Qty != 2 {
						return false
					}
				}
			}
			return matches == 1
		},
		gen.SliceOf(genProduct()),
		genProduct(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property 6: toggling twice restores wishlist membership
func TestProperty_ToggleWishlistIsSelfInverse(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggle twice leaves membership unchanged", prop.ForAll(
		func(initial []domain.Product, p domain.Product) bool {
			s := NewCommerceStore(SeedCatalog())
			for _, o := range initial {
				s.AddToWishlist(o)
			}

			was := s.InWishlist(p.ID)
			count := s.WishlistCount()

			first := s.ToggleWishlist(p)
			second := s.ToggleWishlist(p)

			return first == !was &&
				second == was &&
				s.InWishlist(p.ID) == was &&
				s.WishlistCount() == count
		},
		gen.SliceOf(genProduct()),
		genProduct(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAddToCartInsertsAtFront(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	catalog := SeedCatalog()

	s.AddToCart(catalog[0])
	s.AddToCart(catalog[1])

	items := s.CartItems()
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].Product.ID)
	assert.Equal(t, "1", items[1].Product.ID)
	assert.Equal(t, 1, items[0].Qty)
}

func TestAddToWishlistIsIdempotent(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	p := SeedCatalog()[0]

	s.AddToWishlist(p)
	s.AddToWishlist(p)

	assert.Equal(t, 1, s.WishlistCount())
	assert.True(t, s.InWishlist(p.ID))

	s.RemoveFromWishlist(p.ID)
	s.RemoveFromWishlist(p.ID)
	assert.Zero(t, s.WishlistCount())
}

func TestSetCartQtyNormalizes(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	p := SeedCatalog()[0]
	s.AddToCart(p)

	for _, qty := range []int{0, -5, ParseQty("abc")} {
		s.SetCartQty(p.ID, 4)
		s.SetCartQty(p.ID, qty)
		assert.Equal(t, 1, s.CartItems()[0].Qty)
	}

	s.SetCartQty("missing", 9)
	items := s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].Product.ID)
}

func TestIncrementDecrementQty(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	p := SeedCatalog()[2]
	s.AddToCart(p)

	s.IncrementQty(p.ID)
	s.IncrementQty(p.ID)
	assert.Equal(t, 3, s.CartCount())

	s.DecrementQty(p.ID)
	s.DecrementQty(p.ID)
	s.DecrementQty(p.ID)
	assert.Equal(t, 1, s.CartCount())

	s.IncrementQty("missing")
	assert.Len(t, s.CartItems(), 1)
}

func TestCartScenario(t *testing.T) {
	p := domain.Product{ID: "1", Category: "Electronics", Price: 1000}
	s := NewCommerceStore([]domain.Product{p})

	s.AddToCart(domain.Product{ID: "1", Price: 1000})
	s.SetCartQty("1", 3)

	assert.Equal(t, 3, s.CartCount())
	assert.Equal(t, int64(3000), s.CartTotal())

	cart := s.Cart()
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, int64(3000), cart.Total)
}

func TestRemoveFromCartAndClear(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	catalog := SeedCatalog()
	s.AddToCart(catalog[0])
	s.AddToCart(catalog[1])

	s.RemoveFromCart(catalog[0].ID)
	s.RemoveFromCart("missing")
	require.Len(t, s.CartItems(), 1)

	s.ClearCart()
	assert.Empty(t, s.CartItems())
	assert.Zero(t, s.CartTotal())
}

func TestCheckoutEmptiesCart(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	catalog := SeedCatalog()
	s.AddToCart(catalog[0])
	s.AddToCart(catalog[0])
	s.AddToCart(catalog[1])

	summary, err := s.Checkout()
	require.NoError(t, err)

	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 2*catalog[0].Price+catalog[1].Price, summary.Total)
	assert.Empty(t, s.CartItems())

	_, err = s.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFiltersDriveFilteredProducts(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())

	s.SetCategory("ELECTRONICS")
	assert.Len(t, s.FilteredProducts(), 3)

	s.SetSearch("casque")
	got := s.FilteredProducts()
	require.Len(t, got, 1)
	assert.Equal(t, "5", got[0].ID)

	s.SetCategory(CategoryAll)
	s.SetSearch("")
	assert.Len(t, s.FilteredProducts(), 5)
}

func TestDerivationsRecomputeOnlyOnChange(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())

	s.FilteredProducts()
	s.FilteredProducts()
	assert.Equal(t, 1, s.filtered.runs)

	// setting the same value publishes nothing
	s.SetCategory(CategoryAll)
	s.FilteredProducts()
	assert.Equal(t, 1, s.filtered.runs)

	s.SetSearch("nike")
	s.FilteredProducts()
	s.FilteredProducts()
	assert.Equal(t, 2, s.filtered.runs)

	// derivations are lazy
	assert.Zero(t, s.categories.runs)
}

func TestReadersReturnCopies(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	s.AddToCart(SeedCatalog()[0])

	items := s.CartItems()
	items[0].Qty = 99
	products := s.Products()
	products[0].Name = "changed"

	assert.Equal(t, 1, s.CartItems()[0].Qty)
	p, ok := s.ProductByID("1")
	require.True(t, ok)
	assert.NotEqual(t, "changed", p.Name)

	_, ok = s.ProductByID("missing")
	assert.False(t, ok)
}

func TestCommerceNotifications(t *testing.T) {
	n := &recordingNotifier{}
	s := NewCommerceStore(SeedCatalog(), WithNotifier(n))
	p := SeedCatalog()[0]

	s.AddToCart(p)
	s.ToggleWishlist(p)
	s.ToggleWishlist(p)
	s.ClearCart()

	assert.Equal(t, []string{
		"Added to cart",
		"Added to wishlist",
		"Removed from wishlist",
		"Cart cleared",
	}, n.all())
}

func TestConcurrentAddToCart(t *testing.T) {
	s := NewCommerceStore(SeedCatalog())
	p := SeedCatalog()[0]

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddToCart(p)
			_ = s.Cart()
		}()
	}
	wg.Wait()

	items := s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Qty)
	assert.Equal(t, int64(workers)*p.Price, s.CartTotal())
}
