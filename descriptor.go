package drivedash

import "fmt"

// SortKey selects the provider-side ordering of a listing.
type SortKey string

const (
	SortName     SortKey = "name"
	SortModified SortKey = "modifiedTime"
	SortSize     SortKey = "size"
	SortStarred  SortKey = "starred"
)

// FilterKey restricts a listing to one class of entities.
type FilterKey string

const (
	FilterAll       FilterKey = "all"
	FilterDocuments FilterKey = "documents"
	FilterImages    FilterKey = "images"
	FilterFolders   FilterKey = "folders"
)

// QueryDescriptor identifies one listing query variant. It is a pure value:
// two descriptors with equal fields are interchangeable cache hits.
type QueryDescriptor struct {
	SortBy   SortKey
	FilterBy FilterKey
	Search   string
}

// Normalized returns a copy with zero-value fields replaced by the defaults,
// so that the empty descriptor and the explicit default descriptor share a
// cache key.
func (d QueryDescriptor) Normalized() QueryDescriptor {
	if d.SortBy == "" {
		d.SortBy = SortModified
	}
	if d.FilterBy == "" {
		d.FilterBy = FilterAll
	}
	return d
}

// Key serializes the descriptor for use as a cache key parameter.
func (d QueryDescriptor) Key() string {
	n := d.Normalized()
	return fmt.Sprintf("sort=%s&filter=%s&q=%s", n.SortBy, n.FilterBy, n.Search)
}
