// Package graphql exposes a read-only query API over the catalogue, stock
// and alerts.
package graphql

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/middleware"
	gql "github.com/beshgebeya/pos/pkg/graphql"
)

// Resolvers are the services the schema reads from.
type Resolvers struct {
	Products      *services.ProductService
	Inventory     *services.InventoryService
	Alerts        *services.AlertService
	DefaultBranch uint
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: productField(func(p models.Product) interface{} { return int(p.ID) })},
		"name":      &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.Name })},
		"localName": &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.LocalName })},
		"sku":       &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.SKU })},
		"barcode":   &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return deref(p.Barcode) })},
		"localCode": &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return deref(p.LocalCode) })},
		"category":  &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.Category })},
		"brand":     &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.Brand })},
		"unitPrice": &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.UnitPrice.StringFixed(2) })},
	},
})

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func productField(fn func(models.Product) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if v, ok := p.Source.(models.Product); ok {
			return fn(v), nil
		}
		return nil, nil
	}
}

var stockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stock",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: stockField(func(s models.StockRecord) interface{} { return int(s.ID) })},
		"productId":      &graphql.Field{Type: graphql.Int, Resolve: stockField(func(s models.StockRecord) interface{} { return int(s.ProductID) })},
		"branchId":       &graphql.Field{Type: graphql.Int, Resolve: stockField(func(s models.StockRecord) interface{} { return int(s.BranchID) })},
		"quantityOnHand": &graphql.Field{Type: graphql.Int, Resolve: stockField(func(s models.StockRecord) interface{} { return s.QuantityOnHand })},
		"thresholdMin":   &graphql.Field{Type: graphql.Int, Resolve: stockField(func(s models.StockRecord) interface{} { return s.ThresholdMin })},
		"status":         &graphql.Field{Type: graphql.String, Resolve: stockField(func(s models.StockRecord) interface{} { return string(s.Status) })},
		"batchNumber":    &graphql.Field{Type: graphql.String, Resolve: stockField(func(s models.StockRecord) interface{} { return s.BatchNumber })},
		"expiryDate": &graphql.Field{Type: graphql.String, Resolve: stockField(func(s models.StockRecord) interface{} {
			if s.ExpiryDate == nil {
				return nil
			}
			return s.ExpiryDate.Format(time.RFC3339)
		})},
		"product": &graphql.Field{Type: productType, Resolve: stockField(func(s models.StockRecord) interface{} {
			if s.Product == nil {
				return nil
			}
			return *s.Product
		})},
	},
})

func stockField(fn func(models.StockRecord) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if s, ok := p.Source.(models.StockRecord); ok {
			return fn(s), nil
		}
		return nil, nil
	}
}

var alertType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Alert",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: alertField(func(a models.Alert) interface{} { return int(a.ID) })},
		"type":            &graphql.Field{Type: graphql.String, Resolve: alertField(func(a models.Alert) interface{} { return string(a.Kind) })},
		"message":         &graphql.Field{Type: graphql.String, Resolve: alertField(func(a models.Alert) interface{} { return a.Message })},
		"productId":       &graphql.Field{Type: graphql.Int, Resolve: alertField(func(a models.Alert) interface{} { return int(a.ProductID) })},
		"quantity":        &graphql.Field{Type: graphql.Int, Resolve: alertField(func(a models.Alert) interface{} { return a.Quantity })},
		"daysUntilExpiry": &graphql.Field{Type: graphql.Int, Resolve: alertField(func(a models.Alert) interface{} {
			if a.DaysUntilExpiry == nil {
				return nil
			}
			return *a.DaysUntilExpiry
		})},
		"isRead":          &graphql.Field{Type: graphql.Boolean, Resolve: alertField(func(a models.Alert) interface{} { return a.IsRead })},
		"createdAt":       &graphql.Field{Type: graphql.String, Resolve: alertField(func(a models.Alert) interface{} { return a.CreatedAt.Format(time.RFC3339) })},
	},
})

func alertField(fn func(models.Alert) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if a, ok := p.Source.(models.Alert); ok {
			return fn(a), nil
		}
		return nil, nil
	}
}

var scanType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ScanResult",
	Fields: graphql.Fields{
		"product": &graphql.Field{Type: productType, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if r, ok := p.Source.(*services.ScanResult); ok {
				return r.Product, nil
			}
			return nil, nil
		}},
		"stock": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if r, ok := p.Source.(*services.ScanResult); ok {
				return r.Stock, nil
			}
			return nil, nil
		}},
	},
})

// Schema builds the query schema backed by res.
func Schema(res Resolvers) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Products.ListProducts(p.Context)
				},
			},
			"scan": &graphql.Field{
				Type: scanType,
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					code, _ := p.Args["code"].(string)
					branch := res.DefaultBranch
					if c, ok := middleware.ClaimsFromCtx(p.Context); ok && c.BranchID != 0 {
						branch = c.BranchID
					}
					return res.Products.FindByCode(p.Context, code, branch)
				},
			},
			"stock": &graphql.Field{
				Type: graphql.NewList(stockType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Inventory.ListStock(p.Context)
				},
			},
			"alerts": &graphql.Field{
				Type: graphql.NewList(alertType),
				Args: graphql.FieldConfigArgument{
					"unread": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					unread, _ := p.Args["unread"].(bool)
					limit, _ := p.Args["limit"].(int)
					return res.Alerts.ListAlerts(p.Context, unread, limit)
				},
			},
		},
	})
	return gql.NewSchema(query)
}
