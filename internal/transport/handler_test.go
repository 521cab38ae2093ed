package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"e-shopping/internal/domain"
	"e-shopping/internal/middleware"
	"e-shopping/internal/service"
	"e-shopping/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router   chi.Router
	commerce *state.CommerceStore
	identity *state.IdentityStore
	shops    *state.ShopStore
	products *state.StoreProductStore
}

func newTestApp() *testApp {
	logger := zap.NewNop()
	app := &testApp{
		router:   chi.NewRouter(),
		commerce: state.NewCommerceStore(state.SeedCatalog()),
		identity: state.NewIdentityStore(),
		shops:    state.NewShopStore(),
		products: state.NewStoreProductStore(),
	}

	login := middleware.RequireLogin(app.identity, logger)

	NewCatalogHandler(app.commerce, logger).RegisterRoutes(app.router)
	NewCartHandler(app.commerce, logger).RegisterRoutes(app.router)
	NewAuthHandler(app.identity, logger).RegisterRoutes(app.router)
	NewAdminHandler(service.NewShopService(app.shops, app.identity, logger), app.identity, logger).
		RegisterRoutes(app.router, login, middleware.RequireRole(app.identity, logger, domain.RoleAdmin))
	NewStoreHandler(service.NewStoreArticleService(app.shops, app.products, logger), app.identity, logger).
		RegisterRoutes(app.router, login, middleware.RequireRole(app.identity, logger, domain.RoleStore))

	return app
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) loginAs(t *testing.T, email, password string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorRedirect(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeBody[middleware.ErrorResponse](t, w)
	redirect, _ := resp.Error.Details["redirect"].(string)
	return redirect
}
