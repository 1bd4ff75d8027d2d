package repositories

import (
	"context"

	"github.com/beshgebeya/pos/app/models"
	"gorm.io/gorm"
)

// AlertRepository handles database operations for Alert.
type AlertRepository struct {
	db *gorm.DB
}

// DeleteAll removes every stored alert.
func (r *AlertRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Alert{}).Error
}

func (r *AlertRepository) CreateBatch(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(alerts, 100).Error
}

func (r *AlertRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
