package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/pkg/cache"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	codeCacheTTL  = 10 * time.Minute
	stockCacheTTL = 30 * time.Second
)

func codeCacheKey(code string) string { return "pos:product:code:" + code }

func stockCacheKey(productID, branchID uint) string {
	return fmt.Sprintf("pos:stock:%d:%d", productID, branchID)
}

// ProductInput carries a new catalogue entry.
type ProductInput struct {
	Name        string
	LocalName   string
	Description string
	SKU         string
	Barcode     string
	LocalCode   string
	Category    string
	Brand       string
	Supplier    string
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
}

// ScanResult is a scan-code lookup: the product and its quantity on hand.
type ScanResult struct {
	Product models.Product `json:"product"`
	Stock   int            `json:"stock"`
}

// ProductService manages the catalogue.
type ProductService struct {
	store repositories.Store
}

func NewProductService(store repositories.Store) *ProductService {
	return &ProductService{store: store}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// CreateProduct adds a product. SKU, barcode and local code are unique.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		LocalName:   strings.TrimSpace(in.LocalName),
		Description: in.Description,
		SKU:         strings.TrimSpace(in.SKU),
		Barcode:     optional(in.Barcode),
		LocalCode:   optional(in.LocalCode),
		Category:    strings.TrimSpace(in.Category),
		Brand:       strings.TrimSpace(in.Brand),
		Supplier:    strings.TrimSpace(in.Supplier),
		UnitPrice:   in.UnitPrice.Round(2),
		CostPrice:   in.CostPrice.Round(2),
	}

	if err := s.store.Products().Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("product created", "product_id", p.ID, "sku", p.SKU)
	return p, nil
}

// ListProducts returns the catalogue ordered by name.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.Products().List(ctx)
}

// FindByCode resolves a scanned barcode or local code and reports the
// quantity on hand at branchID, 0 when the branch has no record.
// Both halves are cached; stock entries are dropped on every stock write.
func (s *ProductService) FindByCode(ctx context.Context, code string, branchID uint) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrProductNotFound
	}

	var product models.Product
	if !cache.Get(ctx, codeCacheKey(code), &product) {
		p, err := s.store.Products().FindByCode(ctx, code)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, err
		}
		product = *p
		s.remember(ctx, codeCacheKey(code), product, codeCacheTTL)
	}

	var qty int
	key := stockCacheKey(product.ID, branchID)
	if !cache.Get(ctx, key, &qty) {
		rec, err := s.store.Stock().FindByProductBranch(ctx, product.ID, branchID)
		switch {
		case err == nil:
			qty = rec.QuantityOnHand
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
		s.remember(ctx, key, qty, stockCacheTTL)
	}

	return &ScanResult{Product: product, Stock: qty}, nil
}

func (s *ProductService) remember(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if err := cache.Set(ctx, key, v, ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set failed", "key", key, "error", err)
	}
}
