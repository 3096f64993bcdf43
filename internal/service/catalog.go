package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/product-catalog/internal/domain"
	"github.com/utafrali/product-catalog/internal/repository"
	"github.com/utafrali/product-catalog/internal/search"
	apperrors "github.com/utafrali/product-catalog/pkg/errors"
)

// Search input bounds. Out-of-range values are silently clamped, not rejected.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const defaultStoreTimeout = 5 * time.Second

// EventPublisher publishes catalog domain events. Publishing is best-effort;
// the orchestrator logs failures and continues.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, id string, deletedAt time.Time) error
}

// CatalogService orchestrates writes across the authoritative store and the
// search index, and defines the response contract returned to callers.
//
// Index synchronization is synchronous: the authoritative write is the point
// of commit, and the index write follows in the same request. An index
// failure is logged and the operation still succeeds, so a product can be
// fetchable by id while temporarily absent from search.
type CatalogService struct {
	repo         repository.ProductRepository
	index        search.Gateway
	events       EventPublisher
	storeTimeout time.Duration
	logger       *slog.Logger
}

// NewCatalogService creates a new catalog service. storeTimeout bounds calls
// to the authoritative store; zero selects the default.
func NewCatalogService(
	repo repository.ProductRepository,
	index search.Gateway,
	events EventPublisher,
	storeTimeout time.Duration,
	logger *slog.Logger,
) *CatalogService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &CatalogService{
		repo:         repo,
		index:        index,
		events:       events,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	SKU         string
}

// CreateProduct creates a new product. Two concurrent creates with the same
// SKU can both pass the pre-check; the storage constraint is the final
// arbiter and its violation surfaces as the same DuplicateSKU outcome.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.SKU == "" {
		return nil, apperrors.InvalidInput("product SKU is required")
	}
	if !domain.ValidPrice(input.Price) {
		return nil, apperrors.InvalidInput("price must be greater than 0 with at most 8 integer and 2 fraction digits")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	existing, err := s.repo.FindBySKU(storeCtx, input.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check sku uniqueness: %w", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateSKU(input.SKU)
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		SKU:         input.SKU,
	}

	if err := s.repo.Create(storeCtx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	// The authoritative write committed; the index write is best-effort.
	if err := s.index.Index(ctx, domain.DocumentFromProduct(product)); err != nil {
		s.logger.WarnContext(ctx, "index write failed, product is fetchable but not yet searchable",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("sku", product.SKU),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID, including soft-deleted rows.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	product, err := s.repo.FindByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(id)
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// SoftDeleteProduct marks a product deleted and removes its index document.
// Soft delete is terminal: a repeated delete yields AlreadyDeleted, distinct
// from NotFound.
func (s *CatalogService) SoftDeleteProduct(ctx context.Context, id string) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	product, err := s.repo.FindByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(id)
		}
		return fmt.Errorf("get product for delete: %w", err)
	}

	if product.IsDeleted() {
		return apperrors.AlreadyDeleted(id)
	}

	now := time.Now().UTC()
	product.DeletedAt = &now

	if err := s.repo.Update(storeCtx, product); err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}

	// Remove the index document in the same synchronization policy as
	// create, or search keeps surfacing the deleted product.
	if err := s.index.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "index delete failed, deleted product may remain searchable",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishProductDeleted(ctx, id, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product soft deleted",
		slog.String("product_id", id),
	)

	return nil
}

// SearchProducts normalizes paging inputs, delegates to the search gateway,
// and wraps the outcome into the response envelope. Search never returns an
// error: index failures degrade into a success-shaped empty response.
//
// pageNumber is floor(offset / limit): offsets that are not multiples of the
// limit are truncated to a page boundary, preserved for compatibility.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, limit, offset int) *SearchResponse {
	if limit < 1 || limit > MaxLimit {
		s.logger.DebugContext(ctx, "invalid limit clamped to default", slog.Int("limit", limit))
		limit = DefaultLimit
	}
	if offset < 0 {
		s.logger.DebugContext(ctx, "invalid offset clamped to zero", slog.Int("offset", offset))
		offset = 0
	}

	if strings.TrimSpace(query) == "" {
		outcome := domain.SearchOutcome{State: domain.OutcomeEmpty, Reason: "query cannot be empty"}
		return AssembleSearchResponse(outcome, 0, limit, 0)
	}

	pageNumber := offset / limit

	start := time.Now()
	result, err := s.index.Search(ctx, query, pageNumber, limit)
	elapsed := time.Since(start)

	var outcome domain.SearchOutcome
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "search degraded",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		outcome = domain.SearchOutcome{
			State:  domain.OutcomeDegraded,
			Reason: "search failed: " + err.Error(),
		}
	case len(result.Documents) == 0:
		outcome = domain.SearchOutcome{State: domain.OutcomeEmpty, Reason: "no products found"}
	default:
		outcome = domain.SearchOutcome{
			State:     domain.OutcomeSuccess,
			Documents: result.Documents,
			TotalHits: result.TotalHits,
		}
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", query),
		slog.String("state", string(outcome.State)),
		slog.Int64("total_hits", outcome.TotalHits),
		slog.Duration("elapsed", elapsed),
	)

	return AssembleSearchResponse(outcome, pageNumber, limit, elapsed)
}
