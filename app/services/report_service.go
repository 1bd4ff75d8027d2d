package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/storage"
)

var exportHeader = []string{
	"sale_id", "reference", "sale_date", "branch_id", "user_id", "payment_type",
	"product_id", "sku", "product_name", "quantity", "unit_price", "line_price", "sale_total",
}

// Export describes a written sales report.
type Export struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Sales int    `json:"sales"`
	Lines int    `json:"lines"`
}

// ReportService writes sales reports to a storage disk.
type ReportService struct {
	store repositories.Store
	disk  storage.Disk
}

func NewReportService(store repositories.Store, disk storage.Disk) *ReportService {
	return &ReportService{store: store, disk: disk}
}

// ExportSales writes one CSV row per line item for sales in [from, to).
func (s *ReportService) ExportSales(ctx context.Context, from, to time.Time) (*Export, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("export: empty range %s..%s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	sales, err := s.store.Sales().Between(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("export: load sales: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	lines := 0
	for _, sale := range sales {
		for _, item := range sale.Items {
			if err := w.Write(exportRow(sale, item)); err != nil {
				return nil, err
			}
			lines++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: encode: %w", err)
	}

	path := fmt.Sprintf("exports/sales_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	if err := s.disk.Put(ctx, path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("export: write %s: %w", path, err)
	}

	logger.WithCtx(ctx).Info("sales exported", "path", path, "sales", len(sales), "lines", lines)
	return &Export{Path: path, URL: s.disk.URL(path), Sales: len(sales), Lines: lines}, nil
}

func exportRow(sale models.Sale, item models.SaleLineItem) []string {
	sku, name := "", ""
	if item.Product != nil {
		sku, name = item.Product.SKU, item.Product.Name
	}
	return []string{
		strconv.FormatUint(uint64(sale.ID), 10),
		sale.Reference,
		sale.SaleDate.UTC().Format(time.RFC3339),
		strconv.FormatUint(uint64(sale.BranchID), 10),
		strconv.FormatUint(uint64(sale.UserID), 10),
		sale.PaymentType,
		strconv.FormatUint(uint64(item.ProductID), 10),
		sku,
		name,
		strconv.Itoa(item.Quantity),
		item.UnitPrice.StringFixed(2),
		item.Price.StringFixed(2),
		sale.TotalAmount.StringFixed(2),
	}
}
