package services

import (
	"context"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/pkg/cache"
	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Event names fired after commit.
const (
	EventSaleRecorded    = "sale.recorded"
	EventStockChanged    = "stock.changed"
	EventAlertsGenerated = "alerts.generated"
)

// SaleRecorded is the payload of EventSaleRecorded.
type SaleRecorded struct {
	SaleID      uint
	BranchID    uint
	PaymentType string
	Total       decimal.Decimal
	Units       int
	ProductIDs  []uint
}

// StockChanged is the payload of EventStockChanged.
type StockChanged struct {
	ProductID uint
	BranchID  uint
	Quantity  int
}

// AlertsGenerated is the payload of EventAlertsGenerated.
type AlertsGenerated struct {
	Counts map[models.AlertKind]int
	Total  int
}

// RegisterListeners wires the metric and cache listeners. Call once at boot.
func RegisterListeners() {
	event.Listen(EventSaleRecorded, func(ctx context.Context, payload interface{}) {
		e, ok := payload.(SaleRecorded)
		if !ok {
			return
		}
		metrics.RecordSale(e.PaymentType, e.Units)
		keys := make([]string, 0, len(e.ProductIDs))
		for _, id := range e.ProductIDs {
			keys = append(keys, stockCacheKey(id, e.BranchID))
		}
		if err := cache.Del(ctx, keys...); err != nil {
			logger.WithCtx(ctx).Warn("cache: invalidate after sale", "sale_id", e.SaleID, "error", err)
		}
	})

	event.Listen(EventStockChanged, func(ctx context.Context, payload interface{}) {
		e, ok := payload.(StockChanged)
		if !ok {
			return
		}
		if err := cache.Del(ctx, stockCacheKey(e.ProductID, e.BranchID)); err != nil {
			logger.WithCtx(ctx).Warn("cache: invalidate stock", "product_id", e.ProductID, "error", err)
		}
	})

	event.Listen(EventAlertsGenerated, func(_ context.Context, payload interface{}) {
		e, ok := payload.(AlertsGenerated)
		if !ok {
			return
		}
		counts := make(map[string]int, 3)
		for _, kind := range []models.AlertKind{models.AlertLowStock, models.AlertNearExpiry, models.AlertExpired} {
			counts[string(kind)] = e.Counts[kind]
		}
		metrics.SetAlerts(counts)
	})
}
