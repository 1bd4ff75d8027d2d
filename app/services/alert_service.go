package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/logger"
)

const day = 24 * time.Hour

// AlertService derives advisories from stock state.
type AlertService struct {
	store       repositories.Store
	Clock       func() time.Time
	ExpiryAhead time.Duration
}

// NewAlertService looks expiryDays ahead for NEAR_EXPIRY advisories.
func NewAlertService(store repositories.Store, expiryDays int) *AlertService {
	if expiryDays <= 0 {
		expiryDays = 7
	}
	return &AlertService{
		store:       store,
		Clock:       time.Now,
		ExpiryAhead: time.Duration(expiryDays) * day,
	}
}

// Evaluate rescans every stock record and replaces the stored alert set
// with the one derived from current state. Records whose expiry has
// passed are moved to EXPIRED in the same transaction. Once no record
// changes status, running it again yields the same set.
func (s *AlertService) Evaluate(ctx context.Context) ([]models.Alert, error) {
	now := s.Clock()
	var alerts []models.Alert

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		records, err := tx.Stock().All(ctx)
		if err != nil {
			return fmt.Errorf("load stock: %w", err)
		}

		for i := range records {
			rec := &records[i]
			derived, expired := s.derive(rec, now)
			if expired {
				rec.Status = models.StockExpired
				if err := tx.Stock().UpdateStatus(ctx, rec.ID, models.StockExpired); err != nil {
					return fmt.Errorf("expire stock %d: %w", rec.ID, err)
				}
			}
			alerts = append(alerts, derived...)
		}

		if err := tx.Alerts().DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear alerts: %w", err)
		}
		return tx.Alerts().CreateBatch(ctx, alerts)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("alert evaluation failed", "error", err)
		return nil, err
	}

	counts := map[models.AlertKind]int{}
	for _, a := range alerts {
		counts[a.Kind]++
	}
	logger.WithCtx(ctx).Info("alerts generated",
		"total", len(alerts),
		"low_stock", counts[models.AlertLowStock],
		"near_expiry", counts[models.AlertNearExpiry],
		"expired", counts[models.AlertExpired],
	)
	event.FireAsync(ctx, EventAlertsGenerated, AlertsGenerated{Counts: counts, Total: len(alerts)})

	return alerts, nil
}

// derive returns the advisories for rec at now and whether rec has to move
// to EXPIRED. LOW_STOCK is judged on the status as loaded, so a record that
// expires in this run can report both.
func (s *AlertService) derive(rec *models.StockRecord, now time.Time) ([]models.Alert, bool) {
	name := productName(rec)
	var out []models.Alert
	expired := false

	if rec.Status == models.StockAvailable && rec.QuantityOnHand <= rec.ThresholdMin {
		out = append(out, s.alert(rec, now, models.AlertLowStock,
			fmt.Sprintf("Low stock: %s. Only %d left.", name, rec.QuantityOnHand), nil))
	}

	if rec.ExpiryDate != nil {
		exp := *rec.ExpiryDate
		switch {
		case exp.After(now) && !exp.After(now.Add(s.ExpiryAhead)):
			days := int(exp.Sub(now) / day)
			out = append(out, s.alert(rec, now, models.AlertNearExpiry,
				fmt.Sprintf("%s expires in %d days (%d units)", name, days, rec.QuantityOnHand), &days))
		case !exp.After(now):
			zero := 0
			expired = rec.Status != models.StockExpired
			out = append(out, s.alert(rec, now, models.AlertExpired,
				fmt.Sprintf("%s has EXPIRED! %d units need removal.", name, rec.QuantityOnHand), &zero))
		}
	}

	return out, expired
}

func (s *AlertService) alert(rec *models.StockRecord, now time.Time, kind models.AlertKind, msg string, days *int) models.Alert {
	return models.Alert{
		Kind:            kind,
		Message:         msg,
		ProductID:       rec.ProductID,
		BranchID:        rec.BranchID,
		Quantity:        rec.QuantityOnHand,
		DaysUntilExpiry: days,
		CreatedAt:       now,
	}
}

func productName(rec *models.StockRecord) string {
	if rec.Product != nil && rec.Product.Name != "" {
		return rec.Product.Name
	}
	return fmt.Sprintf("Product #%d", rec.ProductID)
}

// ListAlerts returns stored alerts newest first.
func (s *AlertService) ListAlerts(ctx context.Context, unreadOnly bool, limit int) ([]models.Alert, error) {
	return s.store.Alerts().List(ctx, unreadOnly, limit)
}

// MarkRead flags one alert as read. The flag lasts until the next evaluation.
func (s *AlertService) MarkRead(ctx context.Context, id uint) error {
	err := s.store.Alerts().MarkRead(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrAlertNotFound
	}
	return err
}
