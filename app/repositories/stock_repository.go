package repositories

import (
	"context"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"gorm.io/gorm"
)

// StockRepository handles database operations for StockRecord.
type StockRepository struct {
	db *gorm.DB
}

func (r *StockRepository) FindByProductBranch(ctx context.Context, productID, branchID uint) (*models.StockRecord, error) {
	var rec models.StockRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&rec).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *StockRepository) Save(ctx context.Context, rec *models.StockRecord) error {
	// Omit associations so a preloaded Product is never re-written.
	return r.db.WithContext(ctx).Omit("Product", "Branch").Save(rec).Error
}

func (r *StockRepository) UpdateStatus(ctx context.Context, id uint, status models.StockStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StockRepository) All(ctx context.Context) ([]models.StockRecord, error) {
	var recs []models.StockRecord
	err := r.db.WithContext(ctx).Preload("Product").Order("id").Find(&recs).Error
	return recs, err
}

func (r *StockRepository) Listing(ctx context.Context) ([]models.StockRecord, error) {
	var recs []models.StockRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Branch").
		Order("CASE WHEN expiry_date IS NULL THEN 1 ELSE 0 END, expiry_date ASC, id ASC").
		Find(&recs).Error
	return recs, err
}

func (r *StockRepository) ExpiringBetween(ctx context.Context, from, to time.Time, limit int) ([]models.StockRecord, error) {
	var recs []models.StockRecord
	q := r.db.WithContext(ctx).
		Preload("Product").
		Where("expiry_date BETWEEN ? AND ?", from, to).
		Where("quantity_on_hand > 0").
		Order("expiry_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *StockRepository) TotalOnHand(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Select("COALESCE(SUM(quantity_on_hand), 0)").
		Scan(&total).Error
	return total, err
}
