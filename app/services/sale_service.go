package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/metrics"
	"github.com/beshgebeya/pos/pkg/orm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaymentType is used when a sale names none.
const DefaultPaymentType = "CASH"

// LineRequest is one basket line.
type LineRequest struct {
	ProductID uint
	Quantity  int
}

// SaleService records sales against branch stock.
type SaleService struct {
	store repositories.Store
	Clock func() time.Time
}

func NewSaleService(store repositories.Store) *SaleService {
	return &SaleService{store: store, Clock: time.Now}
}

// RecordSale checks every line against the stock at branchID, decrements
// it and persists the sale with its items, all in one transaction. A
// missing product yields *ProductNotFoundError and a short line
// *InsufficientStockError; neither leaves any trace in the store.
//
// Stock is read and written back without a row lock or version check, so
// two concurrent sales of the same product can both pass the check.
func (s *SaleService) RecordSale(ctx context.Context, actorID, branchID uint, paymentType string, lines []LineRequest) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, ErrEmptySale
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: %w", l.ProductID, ErrInvalidQuantity)
		}
	}

	paymentType = strings.ToUpper(strings.TrimSpace(paymentType))
	if paymentType == "" {
		paymentType = DefaultPaymentType
	}

	log := logger.WithCtx(ctx)
	sale := &models.Sale{
		Reference:   uuid.NewString(),
		UserID:      actorID,
		BranchID:    branchID,
		PaymentType: paymentType,
		SaleDate:    s.Clock(),
		TotalAmount: decimal.Zero,
	}

	units := 0
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		for _, l := range lines {
			product, err := tx.Products().FindByID(ctx, l.ProductID)
			if errors.Is(err, repositories.ErrNotFound) {
				return &ProductNotFoundError{ProductID: l.ProductID}
			}
			if err != nil {
				return err
			}

			stock, err := tx.Stock().FindByProductBranch(ctx, l.ProductID, branchID)
			available := 0
			switch {
			case err == nil:
				available = stock.QuantityOnHand
			case !errors.Is(err, repositories.ErrNotFound):
				return err
			}

			if l.Quantity > available {
				return &InsufficientStockError{ProductID: l.ProductID, Requested: l.Quantity, Available: available}
			}

			stock.QuantityOnHand -= l.Quantity
			if err := tx.Stock().Save(ctx, stock); err != nil {
				return fmt.Errorf("decrement stock of product %d: %w", l.ProductID, err)
			}

			price := product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
			sale.Items = append(sale.Items, models.SaleLineItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: product.UnitPrice,
				Price:     price,
			})
			sale.TotalAmount = sale.TotalAmount.Add(price)
			units += l.Quantity
		}

		return tx.Sales().Create(ctx, sale)
	})
	if err != nil {
		s.reject(ctx, branchID, err)
		return nil, err
	}

	log.Info("sale recorded",
		"sale_id", sale.ID,
		"reference", sale.Reference,
		"branch_id", branchID,
		"user_id", actorID,
		"total", sale.TotalAmount.StringFixed(2),
		"lines", len(sale.Items),
	)

	productIDs := make([]uint, 0, len(sale.Items))
	for _, item := range sale.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	event.FireAsync(ctx, EventSaleRecorded, SaleRecorded{
		SaleID:      sale.ID,
		BranchID:    branchID,
		PaymentType: paymentType,
		Total:       sale.TotalAmount,
		Units:       units,
		ProductIDs:  productIDs,
	})

	return sale, nil
}

func (s *SaleService) reject(ctx context.Context, branchID uint, err error) {
	log := logger.WithCtx(ctx)

	var notFound *ProductNotFoundError
	var short *InsufficientStockError
	switch {
	case errors.As(err, &notFound):
		metrics.RejectSale("product_not_found")
		log.Warn("sale rejected", "reason", "product_not_found", "product_id", notFound.ProductID, "branch_id", branchID)
	case errors.As(err, &short):
		metrics.RejectSale("insufficient_stock")
		log.Warn("sale rejected", "reason", "insufficient_stock",
			"product_id", short.ProductID, "requested", short.Requested, "available", short.Available, "branch_id", branchID)
	default:
		log.Error("sale failed", "branch_id", branchID, "error", err)
	}
}

// ListSales returns one page of sales, newest first.
func (s *SaleService) ListSales(ctx context.Context, page, limit int) ([]models.Sale, orm.Pagination, error) {
	return s.store.Sales().Page(ctx, page, limit)
}

// FindSale returns one sale with its items.
func (s *SaleService) FindSale(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.store.Sales().FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	return sale, err
}
