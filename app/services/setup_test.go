package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	store  repositories.Store
	branch models.Branch
}

func setup(t *testing.T) *fixture {
	t.Helper()

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

	return &fixture{db: db, store: repositories.New(db), branch: branch}
}

func (f *fixture) product(t *testing.T, sku, name, price string) models.Product {
	t.Helper()
	p := models.Product{
		Name:      name,
		SKU:       sku,
		Category:  "Grocery",
		UnitPrice: decimal.RequireFromString(price),
		CostPrice: decimal.RequireFromString(price),
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) stock(t *testing.T, productID uint, qty, threshold int, expiry *time.Time) models.StockRecord {
	t.Helper()
	rec := models.StockRecord{
		ProductID:      productID,
		BranchID:       f.branch.ID,
		QuantityOnHand: qty,
		ThresholdMin:   threshold,
		ExpiryDate:     expiry,
		EntryDate:      testNow,
		Status:         models.StockAvailable,
	}
	require.NoError(t, f.db.Create(&rec).Error)
	return rec
}

func (f *fixture) onHand(t *testing.T, productID uint) int {
	t.Helper()
	rec, err := f.store.Stock().FindByProductBranch(t.Context(), productID, f.branch.ID)
	require.NoError(t, err)
	return rec.QuantityOnHand
}

func (f *fixture) saleCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Sale{}).Count(&n).Error)
	return n
}

func at(d time.Duration) *time.Time {
	v := testNow.Add(d)
	return &v
}
