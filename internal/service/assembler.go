package service

import (
	"time"

	"github.com/utafrali/product-catalog/internal/domain"
)

// SearchResponse is the externally visible search envelope. It is always
// success-shaped: a degraded search carries its reason in Message with an
// empty result list, never an HTTP error.
type SearchResponse struct {
	Results         []domain.Document     `json:"results"`
	TotalHits       int64                 `json:"total_hits"`
	ExecutionTimeMs int64                 `json:"execution_time_ms"`
	Message         string                `json:"message"`
	Pagination      domain.PaginationInfo `json:"pagination"`
}

// NewPaginationInfo computes paging metadata for one page of results.
// pageNumber is zero-based. A non-positive pageSize yields zero total pages
// rather than a division by zero; callers normalize the size before here.
func NewPaginationInfo(pageNumber, pageSize int, totalHits int64) domain.PaginationInfo {
	info := domain.PaginationInfo{
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: totalHits,
	}
	if pageSize > 0 {
		info.TotalPages = int((totalHits + int64(pageSize) - 1) / int64(pageSize))
	}
	return info
}

// AssembleSearchResponse turns a search outcome and paging inputs into the
// response envelope. Pure computation, no side effects.
func AssembleSearchResponse(outcome domain.SearchOutcome, pageNumber, pageSize int, elapsed time.Duration) *SearchResponse {
	resp := &SearchResponse{
		Results:         outcome.Documents,
		TotalHits:       outcome.TotalHits,
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
	if resp.Results == nil {
		resp.Results = []domain.Document{}
	}

	switch outcome.State {
	case domain.OutcomeSuccess:
		resp.Message = "search successful"
		resp.Pagination = NewPaginationInfo(pageNumber, pageSize, outcome.TotalHits)
	default:
		// Empty and Degraded share the empty envelope shape; the reason
		// is the message.
		resp.Message = outcome.Reason
		resp.Results = []domain.Document{}
		resp.TotalHits = 0
		resp.Pagination = domain.PaginationInfo{
			PageNumber: pageNumber,
			PageSize:   pageSize,
		}
	}

	return resp
}
