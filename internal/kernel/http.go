// Package kernel assembles the services, controllers and HTTP handler of
// the POS from one store.
package kernel

import (
	"net/http"
	"time"

	"github.com/beshgebeya/pos/app/controllers"
	appgraphql "github.com/beshgebeya/pos/app/graphql"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/routes"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/config"
	"github.com/beshgebeya/pos/pkg/graphql"
	"github.com/beshgebeya/pos/pkg/metrics"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/reqid"
	"github.com/beshgebeya/pos/pkg/response"
	"github.com/beshgebeya/pos/pkg/router"
	"github.com/beshgebeya/pos/pkg/storage"
)

// Services is every domain service, built on one store.
type Services struct {
	Auth      *services.AuthService
	Products  *services.ProductService
	Inventory *services.InventoryService
	Sales     *services.SaleService
	Alerts    *services.AlertService
	Dashboard *services.DashboardService
	Reports   *services.ReportService
}

// NewServices wires the services. disk may be nil when exports are unused.
func NewServices(store repositories.Store, disk storage.Disk) *Services {
	return &Services{
		Auth:      services.NewAuthService(store, config.DefaultBranchID()),
		Products:  services.NewProductService(store),
		Inventory: services.NewInventoryService(store, config.DefaultThresholdMin()),
		Sales:     services.NewSaleService(store),
		Alerts:    services.NewAlertService(store, config.ExpiryWindowDays()),
		Dashboard: services.NewDashboardService(store),
		Reports:   services.NewReportService(store, disk),
	}
}

// Probe reports whether the store is reachable.
type Probe func() error

// NewRouter mounts the global middleware, the operational endpoints and
// the API routes.
//
// Middleware order, outermost first: metrics, request id, recovery,
// access log, CORS, rate limit.
func NewRouter(svc *Services, probe Probe) (*router.Router, error) {
	schema, err := appgraphql.Schema(appgraphql.Resolvers{
		Products:      svc.Products,
		Inventory:     svc.Inventory,
		Alerts:        svc.Alerts,
		DefaultBranch: config.DefaultBranchID(),
	})
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))

	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(probe))

	branch := config.DefaultBranchID()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(svc.Auth),
		Products:  controllers.NewProductController(svc.Products, branch),
		Inventory: controllers.NewInventoryController(svc.Inventory, branch),
		Sales:     controllers.NewSaleController(svc.Sales, branch),
		Alerts:    controllers.NewAlertController(svc.Alerts),
		Dashboard: controllers.NewDashboardController(svc.Dashboard),
		GraphQL:   graphql.Handler(schema),
	})

	return r, nil
}

func healthz(probe Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if probe != nil {
			if err := probe(); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
