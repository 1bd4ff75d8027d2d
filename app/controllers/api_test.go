package controllers_test

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/config"
	"github.com/beshgebeya/pos/internal/kernel"
	"github.com/beshgebeya/pos/pkg/database"
	"github.com/beshgebeya/pos/pkg/testkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// apiFixture is a router over a fresh in-memory database holding one
// branch, an admin, a cashier and two stocked products.
func apiFixture(t *testing.T) (http.Handler, map[string]string) {
	t.Helper()
	config.Set("RATE_LIMIT_PER_MINUTE", "100000")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, repositories.AutoMigrate(db))

	branch := models.Branch{Name: "Main Branch", Location: "Addis Ababa", Phone: "+251911234567"}
	require.NoError(t, db.Create(&branch).Error)
	config.Set("DEFAULT_BRANCH_ID", fmt.Sprint(branch.ID))

	svc := kernel.NewServices(repositories.New(db), nil)
	ctx := t.Context()

	_, err = svc.Auth.Signup(ctx, services.SignupInput{Username: "admin", Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Auth.Signup(ctx, services.SignupInput{Username: "cashier", Email: "cashier@example.com", Password: "secret1"})
	require.NoError(t, err)
	adminToken, _, err := svc.Auth.Login(ctx, "admin", "secret1")
	require.NoError(t, err)
	cashierToken, _, err := svc.Auth.Login(ctx, "cashier", "secret1")
	require.NoError(t, err)

	teff, err := svc.Products.CreateProduct(ctx, services.ProductInput{
		Name: "Teff Flour 1kg", SKU: "TEF-1KG", LocalCode: "T01", Category: "Grocery",
		UnitPrice: decimal.RequireFromString("12.50"), CostPrice: decimal.RequireFromString("9.00"),
	})
	require.NoError(t, err)
	oil, err := svc.Products.CreateProduct(ctx, services.ProductInput{
		Name: "Sunflower Oil 1L", SKU: "OIL-1L", Barcode: "6001234567890", Category: "Grocery",
		UnitPrice: decimal.RequireFromString("3.00"), CostPrice: decimal.RequireFromString("2.10"),
	})
	require.NoError(t, err)

	teffMin, oilMin := 2, 5
	_, err = svc.Inventory.UpsertStock(ctx, services.StockInput{ProductID: teff.ID, BranchID: branch.ID, Quantity: 10, ThresholdMin: &teffMin})
	require.NoError(t, err)
	_, err = svc.Inventory.UpsertStock(ctx, services.StockInput{ProductID: oil.ID, BranchID: branch.ID, Quantity: 2, ThresholdMin: &oilMin})
	require.NoError(t, err)

	r, err := kernel.NewRouter(svc, func() error { return nil })
	require.NoError(t, err)

	return r.Handler(), map[string]string{
		"adminToken":   adminToken,
		"cashierToken": cashierToken,
		"teff":         fmt.Sprint(teff.ID),
		"oil":          fmt.Sprint(oil.ID),
	}
}

// TestAPIScenarios runs each scenario in testdata against its own database
// so that sales in one do not drain the stock seen by the next.
func TestAPIScenarios(t *testing.T) {
	for _, path := range testkit.ScenarioFiles(t, "testdata") {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".json"), func(t *testing.T) {
			handler, vars := apiFixture(t)
			testkit.Run(t, handler, path, vars)
		})
	}
}
