package search

import (
	"context"

	"github.com/utafrali/product-catalog/internal/domain"
)

// Result holds the raw outcome of a successful index query.
type Result struct {
	Documents []domain.Document
	TotalHits int64
}

// Gateway is the contract to the search index. Implementations own query
// construction and hit decoding; any error they return is treated by the
// orchestrator as a degraded (recoverable) outcome, never a fault.
type Gateway interface {
	// Index adds or updates a product document in the index.
	Index(ctx context.Context, doc *domain.Document) error

	// Delete removes a document from the index by product ID. Deleting an
	// absent document is not an error.
	Delete(ctx context.Context, id string) error

	// Search executes a ranked fuzzy multi-field query. pageNumber is
	// zero-based; from = pageNumber * pageSize.
	Search(ctx context.Context, query string, pageNumber, pageSize int) (*Result, error)
}
