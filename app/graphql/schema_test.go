package graphql_test

import (
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgraphql "github.com/beshgebeya/pos/app/graphql"
	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/database"
)

func schema(t *testing.T) graphql.Schema {
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

	store := repositories.New(db)
	products := services.NewProductService(store)
	inventory := services.NewInventoryService(store, 10)

	p, err := products.CreateProduct(t.Context(), services.ProductInput{
		Name: "Sunflower Oil 1L", SKU: "OIL-1L", Barcode: "6001234567890", Category: "Grocery",
		UnitPrice: decimal.RequireFromString("3"), CostPrice: decimal.RequireFromString("2.1"),
	})
	require.NoError(t, err)
	_, err = inventory.UpsertStock(t.Context(), services.StockInput{ProductID: p.ID, BranchID: branch.ID, Quantity: 4})
	require.NoError(t, err)

	s, err := appgraphql.Schema(appgraphql.Resolvers{
		Products:      products,
		Inventory:     inventory,
		Alerts:        services.NewAlertService(store, 7),
		DefaultBranch: branch.ID,
	})
	require.NoError(t, err)
	return s
}

func query(t *testing.T, s graphql.Schema, q string) map[string]interface{} {
	t.Helper()
	res := graphql.Do(graphql.Params{Schema: s, RequestString: q, Context: t.Context()})
	require.Empty(t, res.Errors)
	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestScanResolvesBarcodeWithStock(t *testing.T) {
	data := query(t, schema(t), `{ scan(code: "6001234567890") { stock product { sku unitPrice localCode } } }`)

	scan := data["scan"].(map[string]interface{})
	assert.Equal(t, 4, scan["stock"])
	product := scan["product"].(map[string]interface{})
	assert.Equal(t, "OIL-1L", product["sku"])
	assert.Equal(t, "3.00", product["unitPrice"])
	assert.Nil(t, product["localCode"])
}

func TestStockListsProductAndStatus(t *testing.T) {
	data := query(t, schema(t), `{ stock { quantityOnHand thresholdMin status expiryDate product { name } } }`)

	rows := data["stock"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, 4, row["quantityOnHand"])
	assert.Equal(t, 10, row["thresholdMin"])
	assert.Equal(t, "AVAILABLE", row["status"])
	assert.Nil(t, row["expiryDate"])
	assert.Equal(t, "Sunflower Oil 1L", row["product"].(map[string]interface{})["name"])
}

func TestAlertsEmptyBeforeEvaluation(t *testing.T) {
	data := query(t, schema(t), `{ alerts(unread: true) { id type } }`)
	assert.Empty(t, data["alerts"])
}

func TestUnknownCodeIsAnError(t *testing.T) {
	res := graphql.Do(graphql.Params{Schema: schema(t), RequestString: `{ scan(code: "nope") { stock } }`, Context: t.Context()})
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "product not found")
}
