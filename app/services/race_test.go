package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/orm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store without isolation. afterStockRead, when
// set, runs after every stock lookup so tests can interleave two sales.
type memStore struct {
	mu             sync.Mutex
	products       map[uint]models.Product
	stock          map[uint]*models.StockRecord
	sales          []models.Sale
	afterStockRead func()
}

func newMemStore() *memStore {
	return &memStore{products: map[uint]models.Product{}, stock: map[uint]*models.StockRecord{}}
}

func (m *memStore) Users() repositories.UserStore       { return nil }
func (m *memStore) Branches() repositories.BranchStore  { return nil }
func (m *memStore) Products() repositories.ProductStore { return memProducts{m} }
func (m *memStore) Stock() repositories.StockStore      { return memStock{m} }
func (m *memStore) Sales() repositories.SaleStore       { return memSales{m} }
func (m *memStore) Alerts() repositories.AlertStore     { return nil }

func (m *memStore) Transaction(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(m)
}

type memProducts struct{ m *memStore }

func (p memProducts) Create(_ context.Context, prod *models.Product) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	prod.ID = uint(len(p.m.products) + 1)
	p.m.products[prod.ID] = *prod
	return nil
}

func (p memProducts) FindByID(_ context.Context, id uint) (*models.Product, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	prod, ok := p.m.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &prod, nil
}

func (memProducts) FindByCode(context.Context, string) (*models.Product, error) {
	return nil, repositories.ErrNotFound
}
func (memProducts) List(context.Context) ([]models.Product, error) { return nil, nil }
func (memProducts) Count(context.Context) (int64, error)         { return 0, nil }

type memStock struct{ m *memStore }

func (s memStock) FindByProductBranch(_ context.Context, productID, branchID uint) (*models.StockRecord, error) {
	s.m.mu.Lock()
	rec, ok := s.m.stock[productID]
	var cp models.StockRecord
	if ok && rec.BranchID == branchID {
		cp = *rec
	}
	hook := s.m.afterStockRead
	s.m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok || cp.BranchID != branchID {
		return nil, repositories.ErrNotFound
	}
	return &cp, nil
}

func (s memStock) Save(_ context.Context, r *models.StockRecord) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *r
	s.m.stock[r.ProductID] = &cp
	return nil
}

func (memStock) UpdateStatus(context.Context, uint, models.StockStatus) error { return nil }
func (memStock) All(context.Context) ([]models.StockRecord, error)           { return nil, nil }
func (memStock) Listing(context.Context) ([]models.StockRecord, error)       { return nil, nil }
func (memStock) ExpiringBetween(context.Context, time.Time, time.Time, int) ([]models.StockRecord, error) {
	return nil, nil
}
func (memStock) TotalOnHand(context.Context) (int64, error) { return 0, nil }

type memSales struct{ m *memStore }

func (s memSales) Create(_ context.Context, sale *models.Sale) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	sale.ID = uint(len(s.m.sales) + 1)
	s.m.sales = append(s.m.sales, *sale)
	return nil
}

func (memSales) FindByID(context.Context, uint) (*models.Sale, error) {
	return nil, repositories.ErrNotFound
}
func (memSales) Page(context.Context, int, int) ([]models.Sale, orm.Pagination, error) {
	return nil, orm.Pagination{}, nil
}
func (memSales) Between(context.Context, time.Time, time.Time) ([]models.Sale, error) {
	return nil, nil
}
func (memSales) TotalRevenue(context.Context) (decimal.Decimal, error) { return decimal.Zero, nil }

// Two sales that both read stock before either writes it back both pass
// the availability check. The second write wins, so more units are sold
// than were on hand. Sales are not serialised per product.
func TestConcurrentSalesCanOversell(t *testing.T) {
	store := newMemStore()
	prod := &models.Product{Name: "Teff Flour 1kg", SKU: "TEF-1KG", UnitPrice: decimal.NewFromInt(10)}
	require.NoError(t, store.Products().Create(t.Context(), prod))
	require.NoError(t, store.Stock().Save(t.Context(), &models.StockRecord{
		ID: 1, ProductID: prod.ID, BranchID: 1, QuantityOnHand: 10, ThresholdMin: 2, Status: models.StockAvailable,
	}))

	var readers sync.WaitGroup
	readers.Add(2)
	store.afterStockRead = func() {
		readers.Done()
		readers.Wait()
	}

	svc := services.NewSaleService(store)
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSale(context.Background(), 1, 1, "CASH", []services.LineRequest{{ProductID: prod.ID, Quantity: 6}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	store.afterStockRead = nil
	rec, err := store.Stock().FindByProductBranch(context.Background(), prod.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.QuantityOnHand)

	sold := 0
	for _, s := range store.sales {
		for _, item := range s.Items {
			sold += item.Quantity
		}
	}
	assert.Equal(t, 12, sold)
}
