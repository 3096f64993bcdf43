package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/utafrali/product-catalog/internal/domain"
	"github.com/utafrali/product-catalog/internal/search"
)

// Gateway is an in-memory implementation of search.Gateway. It provides
// simple substring matching on name, description, and category, with
// name matches ranked first. Thread-safe via sync.RWMutex.
type Gateway struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// New creates a new in-memory search gateway.
func New() *Gateway {
	return &Gateway{
		docs: make(map[string]domain.Document),
	}
}

// Index adds or updates a document in the in-memory index.
func (g *Gateway) Index(_ context.Context, doc *domain.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.docs[doc.ID] = *doc
	return nil
}

// Delete removes a document from the in-memory index by product ID.
func (g *Gateway) Delete(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.docs, id)
	return nil
}

// Search matches the query as a case-insensitive substring of name,
// description, or category. Name matches score higher, mirroring the
// name^2 boost of the real index.
func (g *Gateway) Search(_ context.Context, query string, pageNumber, pageSize int) (*search.Result, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	queryLower := strings.ToLower(query)

	type scored struct {
		doc   domain.Document
		score int
	}

	var matched []scored
	for _, d := range g.docs {
		s := score(d, queryLower)
		if s == 0 {
			continue
		}
		matched = append(matched, scored{doc: d, score: s})
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].doc.ID < matched[j].doc.ID
	})

	total := int64(len(matched))

	if pageNumber < 0 {
		pageNumber = 0
	}
	if pageSize < 1 {
		pageSize = 20
	}

	offset := pageNumber * pageSize
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	docs := make([]domain.Document, 0, end-offset)
	for _, m := range matched[offset:end] {
		docs = append(docs, m.doc)
	}

	return &search.Result{
		Documents: docs,
		TotalHits: total,
	}, nil
}

func score(d domain.Document, queryLower string) int {
	if queryLower == "" {
		return 0
	}
	switch {
	case strings.Contains(strings.ToLower(d.Name), queryLower):
		return 2
	case strings.Contains(strings.ToLower(d.Description), queryLower),
		strings.Contains(strings.ToLower(d.Category), queryLower):
		return 1
	default:
		return 0
	}
}
