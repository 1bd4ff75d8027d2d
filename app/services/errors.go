package services

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound matches every *ProductNotFoundError.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock matches every *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrEmptySale       = errors.New("sale has no items")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrDuplicateCode      = errors.New("sku, barcode or local code already in use")
)

// ProductNotFoundError reports a basket line naming an unknown product.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InsufficientStockError reports a basket line asking for more than is on
// hand at the branch.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
