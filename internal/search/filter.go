// Package search builds the owner-scoped predicate set of a contact search
// and the paging metadata of its result.
package search

import "math"

// Defaults applied when a search omits paging parameters.
const (
	DefaultPage = 0
	DefaultSize = 10
)

// MaxSize is the largest page a search may request.
const MaxSize = 1000

// Filter holds the optional criteria of a contact search. A nil or empty
// criterion is not applied.
type Filter struct {
	Name  *string
	Email *string
	Phone *string
	Page  int // zero-based
	Size  int
}

// Offset is the number of rows skipped before the requested page.
func (f Filter) Offset() int {
	return f.Page * f.Size
}

// Paging is the pagination metadata attached to a page of results.
type Paging struct {
	CurrentPage int `json:"currentPage"`
	TotalPage   int `json:"totalPage"`
	Size        int `json:"size"`
}

// NewPaging computes the metadata for total matching rows under f.
func NewPaging(f Filter, total int64) Paging {
	totalPage := 0
	if f.Size > 0 && total > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(f.Size)))
	}
	return Paging{CurrentPage: f.Page, TotalPage: totalPage, Size: f.Size}
}
