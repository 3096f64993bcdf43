package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/utafrali/product-catalog/internal/domain"
	"github.com/utafrali/product-catalog/internal/search"
)

// Gateway is an Elasticsearch-backed implementation of search.Gateway.
// It owns query construction and hit decoding for the product index.
type Gateway struct {
	client    *elasticsearch.Client
	indexName string
	timeout   time.Duration
	logger    *slog.Logger
}

// esSearchResponse is the structure used to decode Elasticsearch search responses.
type esSearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source domain.Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// esErrorResponse is used to decode Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// New creates a new Elasticsearch gateway connected to the given URL.
// It ensures the products index exists, creating it if necessary.
// If indexName is empty, DefaultIndexName ("products") is used.
// timeout bounds every index call; a hung index must never hang the service.
func New(esURL, indexName string, timeout time.Duration, logger *slog.Logger) (*Gateway, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	g := &Gateway{
		client:    client,
		indexName: indexName,
		timeout:   timeout,
		logger:    logger,
	}

	if err := g.ensureIndex(); err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to ensure index: %w", err)
	}

	return g, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	res, err := g.client.Ping(g.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ensureIndex checks whether the products index exists and creates it if not.
func (g *Gateway) ensureIndex() error {
	res, err := g.client.Indices.Exists([]string{g.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == 200 {
		g.logger.Info("elasticsearch index already exists", "index", g.indexName)
		return nil
	}

	mapping := buildIndexMapping()
	res, err = g.client.Indices.Create(
		g.indexName,
		g.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("create index: %s", decodeError(res.Body, res.Status()))
	}

	g.logger.Info("elasticsearch index created", "index", g.indexName)
	return nil
}

// Index adds or updates a product document in the index. The write uses
// refresh=true so a created product is immediately searchable.
func (g *Gateway) Index(ctx context.Context, doc *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal document: %w", err)
	}

	res, err := g.client.Index(
		g.indexName,
		bytes.NewReader(data),
		g.client.Index.WithDocumentID(doc.ID),
		g.client.Index.WithRefresh("true"),
		g.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %s", decodeError(res.Body, res.Status()))
	}

	g.logger.Debug("indexed product", "id", doc.ID, "name", doc.Name)
	return nil
}

// Delete removes a document from the index by product ID.
// It does not return an error if the document does not exist (404 is ignored).
func (g *Gateway) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.client.Delete(
		g.indexName,
		id,
		g.client.Delete.WithRefresh("true"),
		g.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete: %s", decodeError(res.Body, res.Status()))
	}

	g.logger.Debug("deleted product from index", "id", id)
	return nil
}

// Search executes a ranked fuzzy multi-field query and decodes the hits.
func (g *Gateway) Search(ctx context.Context, query string, pageNumber, pageSize int) (*search.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	esQuery := buildSearchQuery(query, pageNumber, pageSize)

	data, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := g.client.Search(
		g.client.Search.WithIndex(g.indexName),
		g.client.Search.WithBody(bytes.NewReader(data)),
		g.client.Search.WithContext(ctx),
		g.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", decodeError(res.Body, res.Status()))
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	docs := make([]domain.Document, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return &search.Result{
		Documents: docs,
		TotalHits: esResp.Hits.Total.Value,
	}, nil
}

// buildSearchQuery constructs the Elasticsearch query DSL as a map.
// Field set and boosts are fixed: name^2, description, category. Fuzziness is
// AUTO (edit-distance tolerance grows with term length) and terms combine
// with OR, so matching is recall-first and typo-tolerant.
func buildSearchQuery(query string, pageNumber, pageSize int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
				"operator":  "or",
			},
		},
		"from":             pageNumber * pageSize,
		"size":             pageSize,
		"track_total_hits": true,
	}
}

// decodeError extracts a readable message from an Elasticsearch error body,
// falling back to the HTTP status.
func decodeError(body io.Reader, status string) string {
	var errResp esErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Error.Type != "" {
		return fmt.Sprintf("%s: %s", errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Sprintf("unexpected status %s", status)
}
