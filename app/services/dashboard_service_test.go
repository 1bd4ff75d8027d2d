package services_test

import (
	"testing"
	"time"

	"github.com/beshgebeya/pos/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sellAt(t *testing.T, f *fixture, when time.Time, lines ...services.LineRequest) {
	t.Helper()
	svc := services.NewSaleService(f.store)
	svc.Clock = func() time.Time { return when }
	_, err := svc.RecordSale(t.Context(), 1, f.branch.ID, "CASH", lines)
	require.NoError(t, err)
}

func TestSummaryCoversTrailingWeek(t *testing.T) {
	f := setup(t)
	teff := f.product(t, "TEF-1KG", "Teff Flour 1kg", "10.00")
	oil := f.product(t, "OIL-1L", "Sunflower Oil 1L", "3.00")
	salt := f.product(t, "SALT", "Salt", "1.00")
	f.stock(t, teff.ID, 100, 10, nil)
	f.stock(t, oil.ID, 100, 10, at(3*24*time.Hour))
	f.stock(t, salt.ID, 0, 10, at(2*24*time.Hour))

	sellAt(t, f, testNow.Add(-10*24*time.Hour), services.LineRequest{ProductID: teff.ID, Quantity: 50})
	sellAt(t, f, testNow.Add(-2*24*time.Hour),
		services.LineRequest{ProductID: teff.ID, Quantity: 1},
		services.LineRequest{ProductID: oil.ID, Quantity: 4})
	sellAt(t, f, testNow.Add(-time.Hour), services.LineRequest{ProductID: oil.ID, Quantity: 2})

	_, err := newAlertService(f).Evaluate(t.Context())
	require.NoError(t, err)

	sum, err := services.NewDashboardService(f.store).Summary(t.Context(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.SalesCount)
	assert.True(t, decimal.RequireFromString("28.00").Equal(sum.Revenue), sum.Revenue.String())

	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, oil.ID, sum.TopProducts[0].ProductID)
	assert.Equal(t, 6, sum.TopProducts[0].Quantity)
	assert.True(t, decimal.RequireFromString("18.00").Equal(sum.TopProducts[0].Revenue))
	assert.Equal(t, "Teff Flour 1kg", sum.TopProducts[1].Name)

	require.Len(t, sum.Expiring, 1, "empty records are not listed")
	assert.Equal(t, oil.ID, sum.Expiring[0].ProductID)

	assert.NotEmpty(t, sum.Alerts)
	assert.LessOrEqual(t, len(sum.Alerts), 10)
}

func TestAdminOverview(t *testing.T) {
	f := setup(t)
	teff := f.product(t, "TEF-1KG", "Teff Flour 1kg", "10.00")
	f.product(t, "OIL-1L", "Sunflower Oil 1L", "3.00")
	f.stock(t, teff.ID, 12, 20, nil)
	_, err := services.NewAuthService(f.store, f.branch.ID).Signup(t.Context(), signup("abebe", "abebe@example.com"))
	require.NoError(t, err)

	sellAt(t, f, testNow, services.LineRequest{ProductID: teff.ID, Quantity: 2})
	_, err = newAlertService(f).Evaluate(t.Context())
	require.NoError(t, err)

	o, err := services.NewDashboardService(f.store).AdminOverview(t.Context())
	require.NoError(t, err)

	assert.Len(t, o.Users, 1)
	assert.EqualValues(t, 2, o.ProductCount)
	assert.EqualValues(t, 10, o.UnitsOnHand)
	assert.True(t, decimal.RequireFromString("20.00").Equal(o.Revenue))
	require.Len(t, o.Alerts, 1)
}

func TestAdminOverviewEmptyStore(t *testing.T) {
	f := setup(t)

	o, err := services.NewDashboardService(f.store).AdminOverview(t.Context())
	require.NoError(t, err)

	assert.True(t, o.Revenue.IsZero())
	assert.Zero(t, o.UnitsOnHand)
}
