package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/drivedash/drivedash"
)

// fakeRemote counts fetches and serves canned results.
type fakeRemote struct {
	listCalls      int
	recentCalls    int
	favoritesCalls int
	quotaCalls     int

	listErr  error
	entities []drivedash.FileEntity
	quota    drivedash.QuotaSnapshot
}

func (f *fakeRemote) ListEntities(_ context.Context, _ drivedash.QueryDescriptor, _ string) (drivedash.Listing, error) {
	f.listCalls++
	if f.listErr != nil {
		return drivedash.Listing{}, f.listErr
	}
	return drivedash.Listing{Entities: f.entities}, nil
}

func (f *fakeRemote) ListRecent(_ context.Context, _ int64) ([]drivedash.FileEntity, error) {
	f.recentCalls++
	return f.entities, nil
}

func (f *fakeRemote) ListFavorites(_ context.Context) ([]drivedash.FileEntity, error) {
	f.favoritesCalls++
	return f.entities, nil
}

func (f *fakeRemote) GetQuota(_ context.Context) drivedash.QuotaSnapshot {
	f.quotaCalls++
	return f.quota
}

// gateSession toggles the session gate.
type gateSession struct {
	ready bool
}

func (g *gateSession) Ready() bool                                 { return g.ready }
func (g *gateSession) BearerToken(context.Context) (string, error) { return "tok", nil }

type StoreTestSuite struct {
	suite.Suite
	remote  *fakeRemote
	session *gateSession
	clock   time.Time
	store   *Store
	ctx     context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.remote = &fakeRemote{
		entities: []drivedash.FileEntity{{ID: "1", Name: "a.txt"}},
		quota:    drivedash.QuotaSnapshot{Usage: 10, Limit: 100},
	}
	s.session = &gateSession{ready: true}
	s.clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewStore(s.remote, s.session, WithClock(func() time.Time { return s.clock }))
	s.ctx = context.Background()
}

func (s *StoreTestSuite) advance(d time.Duration) {
	s.clock = s.clock.Add(d)
}

func (s *StoreTestSuite) TestQuiescentWithoutSession() {
	s.session.ready = false

	res := s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.False(res.Ready)
	s.NoError(res.Err, "quiescence is a state, not an error")
	s.Nil(res.Data)

	s.False(s.store.Favorites(s.ctx).Ready)
	s.False(s.store.Recent(s.ctx, 5).Ready)
	s.False(s.store.Quota(s.ctx).Ready)

	// no remote call was even attempted
	s.Zero(s.remote.listCalls)
	s.Zero(s.remote.favoritesCalls)
	s.Zero(s.remote.recentCalls)
	s.Zero(s.remote.quotaCalls)
}

func (s *StoreTestSuite) TestStaleness() {
	tests := []struct {
		name   string
		read   func() bool
		calls  func() int
		window time.Duration
	}{
		{
			name:   "files 5m",
			read:   func() bool { return s.store.Files(s.ctx, drivedash.QueryDescriptor{}).Ready },
			calls:  func() int { return s.remote.listCalls },
			window: FilesWindow,
		},
		{
			name:   "recent 2m",
			read:   func() bool { return s.store.Recent(s.ctx, 5).Ready },
			calls:  func() int { return s.remote.recentCalls },
			window: RecentWindow,
		},
		{
			name:   "favorites 2m",
			read:   func() bool { return s.store.Favorites(s.ctx).Ready },
			calls:  func() int { return s.remote.favoritesCalls },
			window: FavoritesWindow,
		},
		{
			name:   "quota 10m",
			read:   func() bool { return s.store.Quota(s.ctx).Ready },
			calls:  func() int { return s.remote.quotaCalls },
			window: QuotaWindow,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.True(tt.read())
			s.Equal(1, tt.calls())

			// within the window the cached value is served
			s.advance(tt.window - time.Second)
			s.True(tt.read())
			s.Equal(1, tt.calls())

			// past the window exactly one fresh fetch happens
			s.advance(2 * time.Second)
			s.True(tt.read())
			s.Equal(2, tt.calls())
		})
	}
}

func (s *StoreTestSuite) TestDistinctDescriptorsAreDistinctKeys() {
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterImages})
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterFolders})
	s.Equal(2, s.remote.listCalls)

	// equal-field descriptors are interchangeable hits
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterImages})
	s.Equal(2, s.remote.listCalls)
}

func (s *StoreTestSuite) TestInvalidate() {
	s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.store.Favorites(s.ctx)
	s.store.Quota(s.ctx)

	s.store.Invalidate(OpFiles, OpFavorites)

	// invalidated operations refetch
	s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.store.Favorites(s.ctx)
	s.Equal(2, s.remote.listCalls)
	s.Equal(2, s.remote.favoritesCalls)

	// untouched operations keep serving from cache
	s.store.Quota(s.ctx)
	s.Equal(1, s.remote.quotaCalls)
}

func (s *StoreTestSuite) TestInvalidateCoversAllDescriptorVariants() {
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterImages})
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterFolders})
	s.Equal(2, s.remote.listCalls)

	s.store.Invalidate(OpFiles)

	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterImages})
	s.store.Files(s.ctx, drivedash.QueryDescriptor{FilterBy: drivedash.FilterFolders})
	s.Equal(4, s.remote.listCalls)
}

func (s *StoreTestSuite) TestFailedRefreshRetainsStaleValue() {
	res := s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.Require().NoError(res.Err)
	s.Require().Len(res.Data, 1)

	s.advance(FilesWindow + time.Second)
	s.remote.listErr = errors.New("remote exploded")

	res = s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.True(res.Ready)
	s.Error(res.Err)
	s.Len(res.Data, 1, "stale data is not discarded on a failed refresh")
	s.Equal("a.txt", res.Data[0].Name)
}

func (s *StoreTestSuite) TestFailedFirstFetch() {
	s.remote.listErr = errors.New("remote exploded")

	res := s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.True(res.Ready)
	s.Error(res.Err)
	s.Nil(res.Data)

	// errors are not cached; the next read tries again
	res = s.store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.Error(res.Err)
	s.Equal(2, s.remote.listCalls)
}

func (s *StoreTestSuite) TestWindowOverride() {
	store := NewStore(s.remote, s.session,
		WithClock(func() time.Time { return s.clock }),
		WithWindow(OpFiles, time.Second),
	)

	store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.advance(2 * time.Second)
	store.Files(s.ctx, drivedash.QueryDescriptor{})
	s.Equal(2, s.remote.listCalls)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
