package routes

import (
	"net/http"

	"github.com/beshgebeya/pos/app/controllers"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/rbac"
	"github.com/beshgebeya/pos/pkg/router"
)

// Controllers are the handlers mounted under /api.
type Controllers struct {
	Auth      *controllers.AuthController
	Products  *controllers.ProductController
	Inventory *controllers.InventoryController
	Sales     *controllers.SaleController
	Alerts    *controllers.AlertController
	Dashboard *controllers.DashboardController
	GraphQL   http.Handler
}

func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	guest := api.Group("", middleware.OptionalAuth, rbac.Guest)
	guest.Post("/signup", "auth.signup", c.Auth.Signup)
	guest.Post("/login", "auth.login", c.Auth.Login)

	protected := api.Group("", middleware.AuthMiddleware)
	protected.Get("/profile", "auth.profile", c.Auth.Profile)

	protected.Get("/products", "products.index", c.Products.Index)
	protected.Post("/products", "products.store", c.Products.Store)
	protected.Post("/products/search", "products.search", c.Products.Search)

	protected.Get("/inventory", "inventory.index", c.Inventory.Index)
	protected.Post("/inventory", "inventory.store", c.Inventory.Store)

	protected.Get("/sales", "sales.index", c.Sales.Index)
	protected.Post("/sales", "sales.store", c.Sales.Store)
	protected.Get("/sales/{id}", "sales.show", c.Sales.Show)

	protected.Get("/alerts", "alerts.index", c.Alerts.Index)
	protected.Post("/alerts/generate", "alerts.generate", c.Alerts.Generate)
	protected.Post("/alerts/{id}/read", "alerts.read", c.Alerts.MarkRead)

	protected.Get("/dashboard", "dashboard", c.Dashboard.Summary)
	protected.Get("/admin", "admin.overview", c.Dashboard.Admin, rbac.Admin)

	if c.GraphQL != nil {
		protected.Handle(http.MethodPost, "/graphql", "graphql", c.GraphQL)
	}
}
