package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Price bounds: at most 8 integer digits and 2 fraction digits, exclusive
// lower bound of zero.
const (
	PriceMaxIntegerDigits  = 8
	PriceMaxFractionDigits = 2
)

// Product is the authoritative catalog entity. The Postgres row is the single
// source of truth; the search index holds a derived projection that may be
// transiently stale or absent.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the product has been soft-deleted.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// ValidPrice reports whether the price satisfies the catalog bounds:
// strictly positive, at most 2 fraction digits and 8 integer digits.
func ValidPrice(price decimal.Decimal) bool {
	if !price.IsPositive() {
		return false
	}
	if price.Exponent() < -PriceMaxFractionDigits {
		return false
	}
	integer := price.Truncate(0).String()
	integer = strings.TrimPrefix(integer, "-")
	return len(integer) <= PriceMaxIntegerDigits
}

// Document is the denormalized projection of a Product held in the search
// index. It carries the response shape of a product: the same fields a direct
// fetch returns, minus the deletion marker.
type Document struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DocumentFromProduct projects a product into its indexable document.
func DocumentFromProduct(p *Product) *Document {
	return &Document{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		SKU:         p.SKU,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// OutcomeState tags the result of a search attempt.
type OutcomeState string

const (
	// OutcomeSuccess means the index answered with at least one hit.
	OutcomeSuccess OutcomeState = "success"
	// OutcomeEmpty means the query was empty or matched nothing.
	OutcomeEmpty OutcomeState = "empty"
	// OutcomeDegraded means the index was unreachable or the query failed.
	// Degradation is an expected, recoverable outcome, never a fault.
	OutcomeDegraded OutcomeState = "degraded"
)

// SearchOutcome is the three-way result of a search attempt. The orchestrator
// preserves this contract when building the response envelope: Degraded is
// absorbed into a success-shaped empty response, never an HTTP error.
type SearchOutcome struct {
	State     OutcomeState
	Documents []Document
	TotalHits int64
	Reason    string
}

// PaginationInfo describes one page of a result set. PageNumber is zero-based.
type PaginationInfo struct {
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalPages    int   `json:"total_pages"`
	TotalElements int64 `json:"total_elements"`
}
