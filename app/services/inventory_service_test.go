package services_test

import (
	"testing"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(f *fixture) *services.InventoryService {
	svc := services.NewInventoryService(f.store, 10)
	svc.Clock = func() time.Time { return testNow }
	return svc
}

func TestUpsertStockCreatesWithDefaults(t *testing.T) {
	f := setup(t)
	p := f.product(t, "TEF-1KG", "Teff Flour 1kg", "12.50")

	rec, err := newInventoryService(f).UpsertStock(t.Context(), services.StockInput{
		ProductID: p.ID,
		BranchID:  f.branch.ID,
		Quantity:  25,
	})
	require.NoError(t, err)

	assert.NotZero(t, rec.ID)
	assert.Equal(t, 10, rec.ThresholdMin)
	assert.Equal(t, models.StockAvailable, rec.Status)
	assert.True(t, rec.EntryDate.Equal(testNow))
	assert.Equal(t, 25, f.onHand(t, p.ID))
}

func TestUpsertStockOverwritesExistingRecord(t *testing.T) {
	f := setup(t)
	p := f.product(t, "TEF-1KG", "Teff Flour 1kg", "12.50")
	existing := f.stock(t, p.ID, 3, 10, nil)
	zero := 0

	rec, err := newInventoryService(f).UpsertStock(t.Context(), services.StockInput{
		ProductID:    p.ID,
		BranchID:     f.branch.ID,
		Quantity:     40,
		ThresholdMin: &zero,
		ExpiryDate:   at(30 * 24 * time.Hour),
		BatchNumber:  "B-2026-03",
		Status:       "expired",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, rec.ID)
	assert.Equal(t, 0, rec.ThresholdMin)
	assert.Equal(t, models.StockExpired, rec.Status)

	list, err := newInventoryService(f).ListStock(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 40, list[0].QuantityOnHand)
	assert.Equal(t, "B-2026-03", list[0].BatchNumber)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, "Teff Flour 1kg", list[0].Product.Name)
}

func TestUpsertStockValidation(t *testing.T) {
	f := setup(t)
	p := f.product(t, "TEF-1KG", "Teff Flour 1kg", "12.50")
	svc := newInventoryService(f)

	_, err := svc.UpsertStock(t.Context(), services.StockInput{ProductID: p.ID, BranchID: f.branch.ID, Quantity: -1})
	assert.ErrorIs(t, err, services.ErrInvalidStock)

	_, err = svc.UpsertStock(t.Context(), services.StockInput{ProductID: 999, BranchID: f.branch.ID, Quantity: 1})
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestListStockOrdersByExpiryNullsLast(t *testing.T) {
	f := setup(t)
	a := f.product(t, "A", "A", "1.00")
	b := f.product(t, "B", "B", "1.00")
	c := f.product(t, "C", "C", "1.00")
	f.stock(t, a.ID, 1, 0, nil)
	f.stock(t, b.ID, 1, 0, at(5*24*time.Hour))
	f.stock(t, c.ID, 1, 0, at(24*time.Hour))

	list, err := newInventoryService(f).ListStock(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, []uint{list[0].ProductID, list[1].ProductID, list[2].ProductID})
}

func TestUpsertStockRecountKeepsExpiry(t *testing.T) {
	f := setup(t)
	p := f.product(t, "YOG-500", "Yoghurt", "1.00")
	expiry := at(5 * 24 * time.Hour)
	f.stock(t, p.ID, 12, 10, expiry)

	rec, err := newInventoryService(f).UpsertStock(t.Context(), services.StockInput{
		ProductID: p.ID,
		BranchID:  f.branch.ID,
		Quantity:  9,
	})
	require.NoError(t, err)
	require.NotNil(t, rec.ExpiryDate)
	assert.True(t, rec.ExpiryDate.Equal(*expiry))

	var stored models.StockRecord
	require.NoError(t, f.db.First(&stored, rec.ID).Error)
	assert.Equal(t, 9, stored.QuantityOnHand)
	require.NotNil(t, stored.ExpiryDate)
	assert.True(t, stored.ExpiryDate.Equal(*expiry))
}

func TestUpsertStockAcceptsOperatorStatus(t *testing.T) {
	f := setup(t)
	p := f.product(t, "RICE-5KG", "Rice 5kg", "8.00")

	rec, err := newInventoryService(f).UpsertStock(t.Context(), services.StockInput{
		ProductID: p.ID,
		BranchID:  f.branch.ID,
		Quantity:  2,
		Status:    "on_hold",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockStatus("ON_HOLD"), rec.Status)
}
