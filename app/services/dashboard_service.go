package services

import (
	"context"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/collection"
	"github.com/shopspring/decimal"
)

const (
	dashboardWindow     = 7 * day
	dashboardAlerts     = 10
	dashboardExpiring   = 5
	dashboardTopSellers = 5
)

// ProductSales is one row of the top sellers table.
type ProductSales struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Summary is the operator dashboard over the trailing seven days.
type Summary struct {
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	Revenue     decimal.Decimal      `json:"revenue"`
	SalesCount  int                  `json:"sales_count"`
	Alerts      []models.Alert       `json:"alerts"`
	Expiring    []models.StockRecord `json:"expiring"`
	TopProducts []ProductSales       `json:"top_products"`
}

// Overview is the administrator's store-wide view.
type Overview struct {
	Users        []models.User   `json:"users"`
	ProductCount int64           `json:"product_count"`
	UnitsOnHand  int64           `json:"units_on_hand"`
	Revenue      decimal.Decimal `json:"revenue"`
	Alerts       []models.Alert  `json:"alerts"`
}

// DashboardService aggregates read-only views over sales, stock and alerts.
type DashboardService struct {
	store repositories.Store
}

func NewDashboardService(store repositories.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Summary reports the window (now-7d, now].
func (s *DashboardService) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	from := now.Add(-dashboardWindow)
	sales, err := s.store.Sales().Between(ctx, from, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	alerts, err := s.store.Alerts().List(ctx, true, dashboardAlerts)
	if err != nil {
		return nil, err
	}

	expiring, err := s.store.Stock().ExpiringBetween(ctx, now, now.Add(dashboardWindow), dashboardExpiring)
	if err != nil {
		return nil, err
	}

	revenue := collection.Reduce(sales, decimal.Zero, func(acc decimal.Decimal, sale models.Sale) decimal.Decimal {
		return acc.Add(sale.TotalAmount)
	})

	return &Summary{
		From:        from,
		To:          now,
		Revenue:     revenue,
		SalesCount:  len(sales),
		Alerts:      alerts,
		Expiring:    expiring,
		TopProducts: topSellers(sales, dashboardTopSellers),
	}, nil
}

// topSellers ranks products by units sold, then revenue, then id.
func topSellers(sales []models.Sale, n int) []ProductSales {
	items := collection.FlatMap(sales, func(s models.Sale) []models.SaleLineItem { return s.Items })

	byID := map[uint]*ProductSales{}
	var order []uint
	for _, item := range items {
		row, ok := byID[item.ProductID]
		if !ok {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			row = &ProductSales{ProductID: item.ProductID, Name: name, Revenue: decimal.Zero}
			byID[item.ProductID] = row
			order = append(order, item.ProductID)
		}
		row.Quantity += item.Quantity
		row.Revenue = row.Revenue.Add(item.Price)
	}

	rows := collection.Map(order, func(id uint) ProductSales { return *byID[id] })
	rows = collection.SortBy(rows, func(a, b ProductSales) bool {
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ProductID < b.ProductID
	})
	return collection.Take(rows, n)
}

// AdminOverview reports lifetime totals and every unread alert.
func (s *DashboardService) AdminOverview(ctx context.Context) (*Overview, error) {
	users, err := s.store.Users().All(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.Products().Count(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.store.Stock().TotalOnHand(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.Sales().TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.store.Alerts().List(ctx, true, 0)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Users:        users,
		ProductCount: products,
		UnitsOnHand:  units,
		Revenue:      revenue,
		Alerts:       alerts,
	}, nil
}
