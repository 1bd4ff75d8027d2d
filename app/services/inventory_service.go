package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/logger"
)

// StockInput replaces the stock record of one product at one branch.
// Nil ThresholdMin and empty Status take the defaults.
type StockInput struct {
	ProductID    uint
	BranchID     uint
	Quantity     int
	ThresholdMin *int
	ExpiryDate   *time.Time
	BatchNumber  string
	Status       models.StockStatus
}

// InventoryService maintains per-branch stock.
type InventoryService struct {
	store            repositories.Store
	defaultThreshold int
	Clock            func() time.Time
}

func NewInventoryService(store repositories.Store, defaultThreshold int) *InventoryService {
	return &InventoryService{store: store, defaultThreshold: defaultThreshold, Clock: time.Now}
}

// UpsertStock creates or overwrites the record for (product, branch) and
// stamps its entry date. An update without an expiry keeps the stored one.
func (s *InventoryService) UpsertStock(ctx context.Context, in StockInput) (*models.StockRecord, error) {
	if in.Quantity < 0 {
		return nil, ErrInvalidStock
	}

	threshold := s.defaultThreshold
	if in.ThresholdMin != nil {
		threshold = *in.ThresholdMin
	}
	status := models.StockStatus(strings.ToUpper(strings.TrimSpace(string(in.Status))))
	if status == "" {
		status = models.StockAvailable
	}

	var rec *models.StockRecord
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Products().FindByID(ctx, in.ProductID); errors.Is(err, repositories.ErrNotFound) {
			return &ProductNotFoundError{ProductID: in.ProductID}
		} else if err != nil {
			return err
		}

		existing, err := tx.Stock().FindByProductBranch(ctx, in.ProductID, in.BranchID)
		switch {
		case err == nil:
			rec = existing
		case errors.Is(err, repositories.ErrNotFound):
			rec = &models.StockRecord{ProductID: in.ProductID, BranchID: in.BranchID}
		default:
			return err
		}

		rec.QuantityOnHand = in.Quantity
		rec.ThresholdMin = threshold
		if in.ExpiryDate != nil {
			rec.ExpiryDate = in.ExpiryDate
		}
		rec.BatchNumber = strings.TrimSpace(in.BatchNumber)
		rec.Status = status
		rec.EntryDate = s.Clock()
		return tx.Stock().Save(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("stock updated",
		"product_id", rec.ProductID, "branch_id", rec.BranchID, "quantity", rec.QuantityOnHand)
	event.FireAsync(ctx, EventStockChanged, StockChanged{
		ProductID: rec.ProductID,
		BranchID:  rec.BranchID,
		Quantity:  rec.QuantityOnHand,
	})
	return rec, nil
}

// ListStock returns every record, soonest expiry first.
func (s *InventoryService) ListStock(ctx context.Context) ([]models.StockRecord, error) {
	return s.store.Stock().Listing(ctx)
}
