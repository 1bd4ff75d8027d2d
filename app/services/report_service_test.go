package services_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSalesWritesCSV(t *testing.T) {
	f := setup(t)
	teff := f.product(t, "TEF-1KG", "Teff Flour 1kg", "12.50")
	oil := f.product(t, "OIL-1L", "Sunflower Oil 1L", "3.00")
	f.stock(t, teff.ID, 10, 0, nil)
	f.stock(t, oil.ID, 10, 0, nil)

	sellAt(t, f, testNow.Add(-time.Hour),
		services.LineRequest{ProductID: teff.ID, Quantity: 2},
		services.LineRequest{ProductID: oil.ID, Quantity: 1})
	sellAt(t, f, testNow.Add(-48*time.Hour), services.LineRequest{ProductID: oil.ID, Quantity: 1})

	disk := storage.NewLocalDisk(t.TempDir(), "http://pos.test/storage")
	svc := services.NewReportService(f.store, disk)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	exp, err := svc.ExportSales(t.Context(), from, from.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "exports/sales_20260310_20260311.csv", exp.Path)
	assert.Equal(t, "http://pos.test/storage/exports/sales_20260310_20260311.csv", exp.URL)
	assert.Equal(t, 1, exp.Sales)
	assert.Equal(t, 2, exp.Lines)

	raw, err := disk.Get(t.Context(), exp.Path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "sale_id", rows[0][0])
	assert.Equal(t, "TEF-1KG", rows[1][7])
	assert.Equal(t, "25.00", rows[1][11])
	assert.Equal(t, "28.00", rows[1][12])
}

func TestExportSalesRejectsEmptyRange(t *testing.T) {
	f := setup(t)
	svc := services.NewReportService(f.store, storage.NewLocalDisk(t.TempDir(), ""))

	_, err := svc.ExportSales(t.Context(), testNow, testNow)
	assert.Error(t, err)
}
