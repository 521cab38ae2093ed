package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesAreGated(t *testing.T) {
	app := newTestApp()

	w := app.do(t, http.MethodGet, "/api/admin/shops", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.LoginPath, errorRedirect(t, w))

	app.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{Email: "b@b.mg", Password: "x"})
	w = app.do(t, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, middleware.HomePath, errorRedirect(t, w))
}

func TestAdminCreateShopWithAccount(t *testing.T) {
	app := newTestApp()
	app.loginAs(t, "admin@baobab.mg", "admin123")

	w := app.do(t, http.MethodPost, "/api/admin/shops", CreateShopRequest{
		Name:               "Baobab Crafts",
		OwnerEmail:         "owner@baobab.mg",
		Description:        "Raffia and wood",
		CreateStoreAccount: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeBody[CreateShopResponse](t, w)
	require.NotNil(t, resp.Account)
	assert.Equal(t, resp.Shop.ID, resp.Account.ShopID)
	assert.Empty(t, resp.AccountError)

	// the admin session is untouched
	me := decodeBody[SessionResponse](t, app.do(t, http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, domain.RoleAdmin, me.Role)

	shops := decodeBody[[]domain.Shop](t, app.do(t, http.MethodGet, "/api/admin/shops", nil))
	require.Len(t, shops, 1)

	users := decodeBody[[]UserProfile](t, app.do(t, http.MethodGet, "/api/admin/users", nil))
	require.Len(t, users, 2)
	assert.Equal(t, "owner@baobab.mg", users[0].Email)

	w = app.do(t, http.MethodDelete, "/api/admin/shops/"+resp.Shop.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, app.shops.List())
}

func TestAdminCreateShopAccountConflict(t *testing.T) {
	app := newTestApp()
	app.loginAs(t, "admin@baobab.mg", "admin123")

	w := app.do(t, http.MethodPost, "/api/admin/shops", CreateShopRequest{
		Name:               "Admin shop",
		OwnerEmail:         "admin@baobab.mg",
		Description:        "Run by the admin",
		CreateStoreAccount: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[CreateShopResponse](t, w)
	assert.Nil(t, resp.Account)
	assert.Contains(t, resp.AccountError, "email already in use")
	assert.Len(t, app.shops.List(), 1)
}

func TestAdminCreateUser(t *testing.T) {
	app := newTestApp()
	app.loginAs(t, "admin@baobab.mg", "admin123")

	w := app.do(t, http.MethodPost, "/api/admin/users", CreateUserRequest{
		Name: "Buyer", Email: "buyer@x.mg", Password: "x", Role: domain.RoleBuyer,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/admin/users", CreateUserRequest{
		Email: "BUYER@x.mg", Password: "x", Role: domain.RoleBuyer,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/admin/users", map[string]string{"email": "nope", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminCreateUserNormalizesEmail(t *testing.T) {
	app := newTestApp()
	app.loginAs(t, "admin@baobab.mg", "admin123")

	w := app.do(t, http.MethodPost, "/api/admin/users", CreateUserRequest{
		Email: " Shop@X.mg ", Password: "x", Role: domain.RoleStore,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "shop@x.mg", decodeBody[UserProfile](t, w).Email)
}

func TestAdminCreateShopFormRules(t *testing.T) {
	app := newTestApp()
	app.loginAs(t, "admin@baobab.mg", "admin123")

	tests := []struct {
		name  string
		req   CreateShopRequest
		field string
	}{
		{"missing description", CreateShopRequest{Name: "A", OwnerEmail: "a@b.mg"}, "description"},
		{"short password", CreateShopRequest{Name: "A", OwnerEmail: "a@b.mg", Description: "d", Password: "abc"}, "password"},
		{"bad owner email", CreateShopRequest{Name: "A", OwnerEmail: "a@", Description: "d"}, "ownerEmail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/admin/shops", tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code)

			fields := validationFields(t, w)
			assert.Equal(t, []string{tt.field}, fields)
		})
	}
	assert.Empty(t, app.shops.List())

	w := app.do(t, http.MethodPost, "/api/admin/shops", CreateShopRequest{
		Name: "A", OwnerEmail: " A@B.mg", Description: "d", Password: "abcd", CreateStoreAccount: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "a@b.mg", decodeBody[CreateShopResponse](t, w).Shop.OwnerEmail)
}

type validationBody struct {
	Error struct {
		Details struct {
			ValidationErrors []middleware.ValidationError `json:"validation_errors"`
		} `json:"details"`
	} `json:"error"`
}

func validationFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	body := decodeBody[validationBody](t, w)

	fields := make([]string, 0, len(body.Error.Details.ValidationErrors))
	for _, e := range body.Error.Details.ValidationErrors {
		fields = append(fields, e.Field)
	}
	return fields
}
