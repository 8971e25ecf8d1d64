// internal/repository/options.go
package repository

import (
	"net/url"
	"strconv"
)

// ListOptions are the query parameters shared by every paginated listing.
type ListOptions struct {
	Search   string
	Page     int
	PageSize int
	// Filters holds endpoint-specific query parameters, e.g. status=DRAFT
	// or location=3.
	Filters map[string]string
}

// Encode renders the options as a query string, including the leading "?"
// when any parameter is set.
func (o ListOptions) Encode() string {
	values := url.Values{}
	if o.Search != "" {
		values.Set("search", o.Search)
	}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(o.PageSize))
	}
	for k, v := range o.Filters {
		if v != "" {
			values.Set(k, v)
		}
	}

	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// WithFilter returns a copy of the options with one extra filter set.
func (o ListOptions) WithFilter(key, value string) ListOptions {
	filters := make(map[string]string, len(o.Filters)+1)
	for k, v := range o.Filters {
		filters[k] = v
	}
	filters[key] = value
	o.Filters = filters
	return o
}
