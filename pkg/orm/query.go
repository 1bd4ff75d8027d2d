// Package orm holds small helpers layered over gorm: instrumented
// transactions and page-based pagination.
package orm

import (
	"context"
	"time"

	"github.com/beshgebeya/pos/pkg/metrics"
	"gorm.io/gorm"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// Transaction runs fn inside a database transaction bound to ctx.
// fn's error rolls the transaction back and is returned unchanged.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	defer metrics.ObserveDBQuery("transaction", time.Now())
	return db.WithContext(ctx).Transaction(fn)
}

// Paginate counts the rows matched by q and loads one page into dest.
// page is 1-based; non-positive values fall back to page 1 and defaultLimit.
// order and preloads apply to the page query only, never to the count.
func Paginate(q *gorm.DB, dest interface{}, page, limit, defaultLimit int, order string, preloads ...string) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	find := q.Session(&gorm.Session{})
	if order != "" {
		find = find.Order(order)
	}
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Offset((page - 1) * limit).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	last := int((total + int64(limit) - 1) / int64(limit))
	if last < 1 {
		last = 1
	}

	return Pagination{Page: page, Limit: limit, Total: total, LastPage: last}, nil
}
