package drive

import "golang.org/x/oauth2"

// DefaultPageSize bounds every listing request.
const DefaultPageSize int64 = 100

// DefaultRecentLimit is the recent-listing size when the caller passes none.
const DefaultRecentLimit int64 = 5

// Options holds configuration for the Remote.
type Options struct {
	// PageSize bounds listing pages (default: 100).
	PageSize int64

	// TokenSource supplies credentials when the Drive client is built lazily.
	// Unused when a Client is provided directly.
	TokenSource oauth2.TokenSource
}

// NewOptions creates Options with default values.
func NewOptions() Options {
	return Options{
		PageSize: DefaultPageSize,
	}
}
