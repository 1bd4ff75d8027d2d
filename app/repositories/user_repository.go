package repositories

import (
	"context"

	"github.com/beshgebeya/pos/app/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByID looks up a user by primary key, with its branch.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Preload("Branch").First(&u, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByUsername looks up a user by login name.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// All returns every user ordered by id.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// BranchRepository handles database operations for Branch.
type BranchRepository struct {
	db *gorm.DB
}

func (r *BranchRepository) FindByID(ctx context.Context, id uint) (*models.Branch, error) {
	var b models.Branch
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BranchRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).Count(&n).Error
	return n, err
}
