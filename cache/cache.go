// Package cache is the read-through query layer between consumers and the
// remote client. It serves entity listings and quota snapshots with bounded
// staleness, goes quiescent when no authenticated session is available, and
// retains stale values alongside the error when a refresh fails.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/options"
)

// Operation names. Together with serialized parameters they form cache keys;
// the mutation layer invalidates by operation name.
const (
	OpFiles     = "driveFiles"
	OpRecent    = "recentFiles"
	OpFavorites = "favoriteFiles"
	OpQuota     = "storageQuota"
)

// Default staleness windows per operation.
const (
	FilesWindow     = 5 * time.Minute
	RecentWindow    = 2 * time.Minute
	FavoritesWindow = 2 * time.Minute
	QuotaWindow     = 10 * time.Minute
)

// Remote is the subset of the remote client the store reads through.
type Remote interface {
	ListEntities(ctx context.Context, d drivedash.QueryDescriptor, pageToken string) (drivedash.Listing, error)
	ListRecent(ctx context.Context, limit int64) ([]drivedash.FileEntity, error)
	ListFavorites(ctx context.Context) ([]drivedash.FileEntity, error)
	GetQuota(ctx context.Context) drivedash.QuotaSnapshot
}

// Result is the outcome of one read. Ready is false only in the quiescent
// no-session state, where nothing was attempted and no error occurred. When a
// refresh fails, Data still carries the last cached value, if any.
type Result[T any] struct {
	Data  T
	Err   error
	Ready bool
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Store owns cached values for the duration of their staleness window. Each
// entry is replaced wholesale by whichever fetch resolves last for its key;
// there is no per-key sequence guard against out-of-order completion. The
// mutex protects the map itself, not read-fetch-write atomicity.
type Store struct {
	remote  Remote
	session drivedash.Session
	windows map[string]time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewStore builds a store over the given remote and session gate.
func NewStore(remote Remote, sess drivedash.Session, opts ...options.Option[Store]) *Store {
	s := &Store{
		remote:  remote,
		session: sess,
		windows: map[string]time.Duration{
			OpFiles:     FilesWindow,
			OpRecent:    RecentWindow,
			OpFavorites: FavoritesWindow,
			OpQuota:     QuotaWindow,
		},
		now:     time.Now,
		entries: make(map[string]entry),
	}
	options.ApplyOptions(s, opts...)
	return s
}

// Files serves the general listing for a descriptor.
func (s *Store) Files(ctx context.Context, d drivedash.QueryDescriptor) Result[[]drivedash.FileEntity] {
	return read(s, OpFiles, d.Key(), func() ([]drivedash.FileEntity, error) {
		listing, err := s.remote.ListEntities(ctx, d, "")
		if err != nil {
			return nil, err
		}
		return listing.Entities, nil
	})
}

// Recent serves the newest-first listing bounded by limit.
func (s *Store) Recent(ctx context.Context, limit int64) Result[[]drivedash.FileEntity] {
	return read(s, OpRecent, fmt.Sprintf("limit=%d", limit), func() ([]drivedash.FileEntity, error) {
		return s.remote.ListRecent(ctx, limit)
	})
}

// Favorites serves the starred listing.
func (s *Store) Favorites(ctx context.Context) Result[[]drivedash.FileEntity] {
	return read(s, OpFavorites, "", func() ([]drivedash.FileEntity, error) {
		return s.remote.ListFavorites(ctx)
	})
}

// Quota serves the storage quota snapshot. The remote soft-fails quota
// internally, so this read never carries an error.
func (s *Store) Quota(ctx context.Context) Result[drivedash.QuotaSnapshot] {
	return read(s, OpQuota, "", func() (drivedash.QuotaSnapshot, error) {
		return s.remote.GetQuota(ctx), nil
	})
}

// Invalidate marks every cached entry under the named operations stale, so
// the next read forces a refresh. Parameter variants of an operation are all
// invalidated together.
func (s *Store) Invalidate(ops ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		prefix := op + "|"
		for k := range s.entries {
			if strings.HasPrefix(k, prefix) {
				delete(s.entries, k)
			}
		}
	}
}

func (s *Store) window(op string) time.Duration {
	if w, ok := s.windows[op]; ok {
		return w
	}
	return FilesWindow
}

func key(op, params string) string {
	return op + "|" + params
}

// read returns the cached value when present and fresh, otherwise fetches and
// blocks until the fetch resolves. With no ready session it is a no-op: no
// network access is attempted and the quiescent zero Result is returned.
func read[T any](s *Store, op, params string, fetch func() (T, error)) Result[T] {
	if s.session == nil || !s.session.Ready() {
		return Result[T]{}
	}

	k := key(op, params)
	s.mu.Lock()
	if e, ok := s.entries[k]; ok && s.now().Sub(e.fetchedAt) < s.window(op) {
		v := e.value.(T)
		s.mu.Unlock()
		return Result[T]{Data: v, Ready: true}
	}
	s.mu.Unlock()

	v, err := fetch()
	if err != nil {
		// A failed refresh does not discard previously cached data.
		s.mu.Lock()
		e, ok := s.entries[k]
		s.mu.Unlock()
		if ok {
			return Result[T]{Data: e.value.(T), Err: err, Ready: true}
		}
		var zero T
		return Result[T]{Data: zero, Err: err, Ready: true}
	}

	s.mu.Lock()
	s.entries[k] = entry{value: v, fetchedAt: s.now()}
	s.mu.Unlock()
	return Result[T]{Data: v, Ready: true}
}
