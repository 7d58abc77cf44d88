// Package pagination maps raw list-query parameters into the normalized
// owner-scoped filter consumed by the record stores, and computes the
// pagination metadata returned with every list response.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"finledger/internal/domain"
)

const (
	minSize = 1
	maxSize = 100
)

type Meta struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	NextPage     *int `json:"next_page"`
	PrevPage     *int `json:"prev_page"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// ResolveFilter normalizes startDate, endDate, page, size (limit and offset
// accepted as aliases) into a RecordFilter. Malformed values are errors;
// out-of-range page and size are clamped. When both page and offset are
// present, page wins.
func ResolveFilter(userID int, query url.Values, defaultSize int) (domain.RecordFilter, error) {
	filter := domain.RecordFilter{UserID: userID}

	size := defaultSize
	if raw := firstOf(query, "size", "limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid size: %q", raw)
		}
		size = parsed
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}
	filter.Size = size

	switch {
	case query.Get("page") != "":
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil {
			return filter, fmt.Errorf("invalid page: %q", query.Get("page"))
		}
		if page < 1 {
			page = 1
		}
		filter.Page = page
		filter.Offset = (page - 1) * size
	case query.Get("offset") != "":
		offset, err := strconv.Atoi(query.Get("offset"))
		if err != nil {
			return filter, fmt.Errorf("invalid offset: %q", query.Get("offset"))
		}
		if offset < 0 {
			offset = 0
		}
		filter.Offset = offset
		filter.Page = offset/size + 1
	default:
		filter.Page = 1
	}

	start, err := parseDate(query.Get("startDate"))
	if err != nil {
		return filter, err
	}
	end, err := parseDate(query.Get("endDate"))
	if err != nil {
		return filter, err
	}
	// A reversed range (start after end) is a legal filter that matches
	// nothing; it is not rejected here.
	filter.StartDate = start
	filter.EndDate = end

	return filter, nil
}

// ResolveLimit parses the limit parameter of the latest-records endpoints.
func ResolveLimit(query url.Values, defaultLimit int) (int, error) {
	raw := query.Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit: %q", raw)
	}
	if limit < minSize {
		limit = minSize
	}
	if limit > maxSize {
		limit = maxSize
	}
	return limit, nil
}

// NewMeta computes the pagination block for a page of a list response.
// total_pages is ceil(total/size); next_page and prev_page are nil exactly
// when has_next and has_prev are false.
func NewMeta(page, size, total int) Meta {
	totalPages := (total + size - 1) / size

	meta := Meta{
		CurrentPage:  page,
		PageSize:     size,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
	if meta.HasNext {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPrev {
		prev := page - 1
		meta.PrevPage = &prev
	}
	return meta
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %q, expected YYYY-MM-DD", raw)
	}
	return &date, nil
}

func firstOf(query url.Values, keys ...string) string {
	for _, key := range keys {
		if v := query.Get(key); v != "" {
			return v
		}
	}
	return ""
}
