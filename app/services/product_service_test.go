package services_test

import (
	"testing"

	"github.com/beshgebeya/pos/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teffInput() services.ProductInput {
	return services.ProductInput{
		Name:      "Teff Flour 1kg",
		LocalName: "ጤፍ",
		SKU:       "TEF-1KG",
		Barcode:   "6291041500213",
		LocalCode: "T01",
		Category:  "Grocery",
		UnitPrice: decimal.RequireFromString("12.499"),
		CostPrice: decimal.RequireFromString("9"),
	}
}

func TestCreateProductRoundsPrices(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)

	p, err := svc.CreateProduct(t.Context(), teffInput())
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "12.50", p.UnitPrice.StringFixed(2))
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "6291041500213", *p.Barcode)
}

func TestCreateProductDuplicateCode(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)

	_, err := svc.CreateProduct(t.Context(), teffInput())
	require.NoError(t, err)

	dup := teffInput()
	dup.SKU = "TEF-2KG"
	_, err = svc.CreateProduct(t.Context(), dup)
	assert.ErrorIs(t, err, services.ErrDuplicateCode)
}

func TestCreateProductWithoutOptionalCodes(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)

	for _, sku := range []string{"A-1", "A-2"} {
		in := teffInput()
		in.SKU, in.Barcode, in.LocalCode = sku, "", ""
		p, err := svc.CreateProduct(t.Context(), in)
		require.NoError(t, err, "empty codes must not collide")
		assert.Nil(t, p.Barcode)
	}

	list, err := svc.ListProducts(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFindByCodeMatchesBarcodeOrLocalCode(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)
	p, err := svc.CreateProduct(t.Context(), teffInput())
	require.NoError(t, err)
	f.stock(t, p.ID, 8, 2, nil)

	for _, code := range []string{"6291041500213", "T01", " T01 "} {
		res, err := svc.FindByCode(t.Context(), code, f.branch.ID)
		require.NoError(t, err, code)
		assert.Equal(t, p.ID, res.Product.ID)
		assert.Equal(t, 8, res.Stock)
	}
}

func TestFindByCodeWithoutStockReportsZero(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)
	_, err := svc.CreateProduct(t.Context(), teffInput())
	require.NoError(t, err)

	res, err := svc.FindByCode(t.Context(), "T01", f.branch.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Stock)
}

func TestFindByCodeUnknown(t *testing.T) {
	f := setup(t)
	svc := services.NewProductService(f.store)

	_, err := svc.FindByCode(t.Context(), "nope", f.branch.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = svc.FindByCode(t.Context(), "  ", f.branch.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}
