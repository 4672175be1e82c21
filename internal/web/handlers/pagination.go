package handlers

import (
	"fmt"
	"strconv"
)

const (
	// DefaultPageSize applies when the pageSize query param is absent.
	DefaultPageSize = 5
	// DefaultPageNumber is 1-based for user-friendliness.
	DefaultPageNumber = 1
)

// PageParams is a validated page request.
type PageParams struct {
	Number int
	Size   int
}

// Limit is the row cap for the page query.
func (p PageParams) Limit() int {
	return p.Size
}

// Offset is the number of rows to skip for the page query.
func (p PageParams) Offset() int {
	return (p.Number - 1) * p.Size
}

// Pagination is the envelope returned alongside paginated collections.
type Pagination struct {
	PageNumber   int `json:"pageNumber"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

// ParsePageParams validates raw pageSize/pageNumber query values. Empty
// values fall back to the defaults; anything non-numeric or non-positive is
// a ValidationError. When maxSize is positive, oversized page requests are
// rejected rather than silently clamped.
func ParsePageParams(sizeRaw, numberRaw string, maxSize int) (PageParams, error) {
	size, err := parsePositive(sizeRaw, "pageSize", DefaultPageSize)
	if err != nil {
		return PageParams{}, err
	}
	number, err := parsePositive(numberRaw, "pageNumber", DefaultPageNumber)
	if err != nil {
		return PageParams{}, err
	}

	if maxSize > 0 && size > maxSize {
		return PageParams{}, ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("must not exceed %d", maxSize),
		}
	}

	return PageParams{Number: number, Size: size}, nil
}

func parsePositive(raw, field string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return v, nil
}
