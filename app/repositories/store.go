// Package repositories is the relational store behind the POS services.
//
// Services depend on the Store interface. The gorm-backed implementation
// comes from New; Transaction hands fn a Store whose every repository is
// bound to the same database transaction.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotFound is returned by point lookups that match no row.
var ErrNotFound = errors.New("record not found")

// Store groups the repositories of one database handle.
type Store interface {
	Users() UserStore
	Branches() BranchStore
	Products() ProductStore
	Stock() StockStore
	Sales() SaleStore
	Alerts() AlertStore

	// Transaction runs fn against a Store bound to one transaction.
	// A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	All(ctx context.Context) ([]models.User, error)
}

type BranchStore interface {
	FindByID(ctx context.Context, id uint) (*models.Branch, error)
	Create(ctx context.Context, b *models.Branch) error
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	// FindByCode matches barcode or local code.
	FindByCode(ctx context.Context, code string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

type StockStore interface {
	FindByProductBranch(ctx context.Context, productID, branchID uint) (*models.StockRecord, error)
	// Save inserts r when its ID is zero and updates it otherwise.
	Save(ctx context.Context, r *models.StockRecord) error
	// UpdateStatus changes only the status column of record id.
	UpdateStatus(ctx context.Context, id uint, status models.StockStatus) error
	// All returns every record with its product, in id order.
	All(ctx context.Context) ([]models.StockRecord, error)
	// Listing returns every record with product and branch, soonest expiry
	// first and records without expiry last.
	Listing(ctx context.Context) ([]models.StockRecord, error)
	// ExpiringBetween returns in-stock records with expiry in [from, to].
	ExpiringBetween(ctx context.Context, from, to time.Time, limit int) ([]models.StockRecord, error)
	TotalOnHand(ctx context.Context) (int64, error)
}

type SaleStore interface {
	// Create inserts the sale and its items.
	Create(ctx context.Context, s *models.Sale) error
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	// Page lists sales newest first, items and their products preloaded.
	Page(ctx context.Context, page, limit int) ([]models.Sale, orm.Pagination, error)
	// Between lists sales with from <= sale_date < to, items preloaded.
	Between(ctx context.Context, from, to time.Time) ([]models.Sale, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

type AlertStore interface {
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, alerts []models.Alert) error
	// List returns alerts newest first; limit <= 0 means no limit.
	List(ctx context.Context, unreadOnly bool, limit int) ([]models.Alert, error)
	MarkRead(ctx context.Context, id uint) error
}

// gormStore implements Store on a *gorm.DB, transactional or not.
type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by db.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserStore       { return &UserRepository{db: s.db} }
func (s *gormStore) Branches() BranchStore  { return &BranchRepository{db: s.db} }
func (s *gormStore) Products() ProductStore { return &ProductRepository{db: s.db} }
func (s *gormStore) Stock() StockStore      { return &StockRepository{db: s.db} }
func (s *gormStore) Sales() SaleStore       { return &SaleRepository{db: s.db} }
func (s *gormStore) Alerts() AlertStore     { return &AlertRepository{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return orm.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// notFound maps gorm's sentinel onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Product{},
		&models.StockRecord{},
		&models.Sale{},
		&models.SaleLineItem{},
		&models.Alert{},
	)
}
