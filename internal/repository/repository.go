package repository

import (
	"context"

	"github.com/utafrali/product-catalog/internal/domain"
)

// ProductRepository is the contract to the authoritative product store.
type ProductRepository interface {
	// Create inserts a new product, assigning its identifier and both
	// timestamps. A SKU collision among active rows is surfaced as
	// errors.ErrDuplicateSKU, whether detected here or by the storage
	// constraint.
	Create(ctx context.Context, product *domain.Product) error

	// FindByID retrieves a product regardless of deletion state, so the
	// delete path can distinguish "already deleted" from "not found".
	// Absence is errors.ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// FindBySKU retrieves an active (non-deleted) product by SKU for the
	// pre-insert uniqueness check. Absence is errors.ErrNotFound.
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// Update persists changes to an existing product, refreshing the
	// updated timestamp. Setting DeletedAt marks the row soft-deleted.
	Update(ctx context.Context, product *domain.Product) error
}
