package domain

import "strings"

// DefaultPageSize is used when a query does not set one.
const DefaultPageSize = 10

// ArticleQuery holds list-articles parameters. Zero values mean "unset".
type ArticleQuery struct {
	Page     int
	PageSize int
	Category string
	Query    string
}

// Normalize clamps page and page size to at least 1, applying defaults for
// unset values, and trims the filters. Category slugs are lowercased.
func (q ArticleQuery) Normalize() ArticleQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		if q.PageSize == 0 {
			q.PageSize = DefaultPageSize
		} else {
			q.PageSize = 1
		}
	}
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Query = strings.TrimSpace(q.Query)
	return q
}

// PageMeta describes one page of a list result.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes metadata for a page over total items.
// TotalPages is never below 1, even for an empty set.
func NewPageMeta(page, pageSize, total int) PageMeta {
	pages := 1
	if pageSize > 0 && total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return PageMeta{Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}

// HasNext reports whether a page follows this one.
func (m PageMeta) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (m PageMeta) HasPrev() bool {
	return m.Page > 1
}

// ArticlePage is the list-articles response shape.
type ArticlePage struct {
	Articles []Article `json:"articles"`
	Meta     PageMeta  `json:"meta"`
}
