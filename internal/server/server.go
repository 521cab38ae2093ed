package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"e-shopping/internal/config"
	"e-shopping/internal/domain"
	applog "e-shopping/internal/logger"
	custommiddleware "e-shopping/internal/middleware"
	"e-shopping/internal/repository"
	"e-shopping/internal/service"
	"e-shopping/internal/state"
	"e-shopping/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores are the process-wide state containers
type Stores struct {
	Commerce      *state.CommerceStore
	Identity      *state.IdentityStore
	Shops         *state.ShopStore
	StoreProducts *state.StoreProductStore
}

type Server struct {
	*http.Server
	Stores  Stores
	logger  *zap.Logger
	storage *storage
	limiter *redis.Client
}

// NewServer opens the configured storage, restores the stores from it and
// assembles the HTTP server
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	st, err := openStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stores := NewStores(cfg, logger, st.repo, state.NewMetrics(registry))

	// the rate limiter needs redis whatever stores the slots
	var limiter *redis.Client
	if cfg.RateLimit.Requests > 0 {
		if limiter = st.redis; limiter == nil {
			if limiter, err = openRedis(cfg.Redis); err != nil {
				logger.Warn("Rate limiting disabled", zap.Error(err))
			}
		}
	}

	router := NewRouter(RouterConfig{
		Config:      cfg,
		Logger:      logger,
		Stores:      stores,
		Registry:    registry,
		RateLimiter: limiter,
		Health:      st.health,
	})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Stores:  stores,
		logger:  logger,
		storage: st,
		limiter: limiter,
	}, nil
}

// NewStores restores every store from the storage slots. The commerce slot is
// only used when STATE_PERSIST_COMMERCE is set.
func NewStores(cfg *config.Config, logger *zap.Logger, repo repository.SlotRepository, metrics *state.Metrics) Stores {
	opts := func(component string, persist bool) []state.Option {
		l := applog.Component(logger, component)
		o := []state.Option{
			state.WithLogger(l),
			state.WithNotifier(state.LogNotifier{Logger: l}),
			state.WithMetrics(metrics),
			state.WithSlotTimeout(cfg.Storage.Timeout),
		}
		if persist {
			o = append(o, state.WithSlots(repo))
		}
		return o
	}

	return Stores{
		Commerce:      state.NewCommerceStore(state.SeedCatalog(), opts("commerce", cfg.Storage.PersistCommerce)...),
		Identity:      state.NewIdentityStore(opts("identity", true)...),
		Shops:         state.NewShopStore(opts("shops", true)...),
		StoreProducts: state.NewStoreProductStore(opts("store_products", true)...),
	}
}

// RouterConfig carries what NewRouter wires together
type RouterConfig struct {
	Config      *config.Config
	Logger      *zap.Logger
	Stores      Stores
	Registry    *prometheus.Registry
	RateLimiter *redis.Client
	Health      func(ctx context.Context) map[string]string
}

// NewRouter builds the chi router with every route of the API
func NewRouter(rc RouterConfig) chi.Router {
	cfg, logger, stores := rc.Config, rc.Logger, rc.Stores

	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.NewHTTPMetrics(rc.Registry).Handler)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		backend := map[string]string{"status": "up"}
		if rc.Health != nil {
			backend = rc.Health(r.Context())
		}
		if backend["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, map[string]any{
			"status":  backend["status"],
			"storage": backend,
		})
	})
	router.Handle("/metrics", promhttp.HandlerFor(rc.Registry, promhttp.HandlerOpts{}))

	// Initialize services
	shopService := service.NewShopService(stores.Shops, stores.Identity, applog.Component(logger, "shops"))
	articleService := service.NewStoreArticleService(stores.Shops, stores.StoreProducts, applog.Component(logger, "articles"))

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(stores.Commerce, logger)
	cartHandler := transport.NewCartHandler(stores.Commerce, logger)
	authHandler := transport.NewAuthHandler(stores.Identity, logger)
	adminHandler := transport.NewAdminHandler(shopService, stores.Identity, logger)
	storeHandler := transport.NewStoreHandler(articleService, stores.Identity, logger)

	requireLogin := custommiddleware.RequireLogin(stores.Identity, logger)

	router.Group(func(r chi.Router) {
		if rc.RateLimiter != nil && cfg.RateLimit.Requests > 0 {
			r.Use(custommiddleware.RateLimitMiddleware(rc.RateLimiter, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         cfg.Redis.KeyPrefix + ":ratelimit",
			}, logger))
		}

		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r, requireLogin, custommiddleware.RequireRole(stores.Identity, logger, domain.RoleAdmin))
		storeHandler.RegisterRoutes(r, requireLogin, custommiddleware.RequireRole(stores.Identity, logger, domain.RoleStore))
	})

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")
	s.storage.close(s.logger)
	if s.limiter != nil && s.limiter != s.storage.redis {
		if err := s.limiter.Close(); err != nil {
			s.logger.Error("Failed to close rate limiter connection", zap.Error(err))
		}
	}
	s.logger.Sync()
	return nil
}
