package repositories

import (
	"context"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultSalesPageSize = 50

// SaleRepository handles database operations for Sale and its line items.
type SaleRepository struct {
	db *gorm.DB
}

// Create inserts the sale row and, through the association, every item.
func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Items.Product").Create(s).Error
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var s models.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").First(&s, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SaleRepository) Page(ctx context.Context, page, limit int) ([]models.Sale, orm.Pagination, error) {
	var sales []models.Sale
	q := r.db.WithContext(ctx).Model(&models.Sale{})
	p, err := orm.Paginate(q, &sales, page, limit, defaultSalesPageSize, "sale_date DESC, id DESC", "Items.Product")
	return sales, p, err
}

func (r *SaleRepository) Between(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("sale_date >= ? AND sale_date < ?", from, to).
		Order("sale_date ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(total_amount)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
