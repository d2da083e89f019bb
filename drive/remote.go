package drive

import (
	"context"
	"sync"
	"time"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/options"
)

// Remote is the facade over the provider's API surface: one long-lived
// instance is constructed at process start and handed to the query and
// command layers. It owns request construction, response normalization and
// error normalization, and nothing else.
type Remote struct {
	mu      sync.Mutex // guards lazy construction of client
	client  Client
	session drivedash.Session
	options Options
}

// NewRemote constructs a Remote. A Client may be supplied directly
// (WithClient) or built lazily from the configured token source on first use.
func NewRemote(opts ...options.Option[Remote]) *Remote {
	r := &Remote{options: NewOptions()}
	options.ApplyOptions(r, opts...)
	return r
}

// Client returns the underlying Drive client, creating it from the token
// source if necessary. Safe for concurrent use: simultaneous first calls
// construct the client once.
func (r *Remote) Client(ctx context.Context) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}
	if r.options.TokenSource == nil {
		return nil, drivedash.ErrRemoteUnavailable
	}
	svc, err := drivev3.NewService(ctx, option.WithTokenSource(r.options.TokenSource))
	if err != nil {
		return nil, wrapRequestError("init client", err)
	}
	r.client = NewClient(svc)
	return r.client, nil
}

// Session returns the session gate the remote was configured with.
func (r *Remote) Session() drivedash.Session {
	return r.session
}

// ready returns the client when the session gate is open, or
// ErrRemoteUnavailable when the remote is not yet usable.
func (r *Remote) ready(ctx context.Context) (Client, error) {
	if r == nil || r.session == nil || !r.session.Ready() {
		return nil, drivedash.ErrRemoteUnavailable
	}
	return r.Client(ctx)
}

// ListEntities requests one bounded page of entities matching the descriptor,
// in provider order.
func (r *Remote) ListEntities(ctx context.Context, d drivedash.QueryDescriptor, pageToken string) (drivedash.Listing, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return drivedash.Listing{}, err
	}
	list, err := c.ListFiles(ctx, Query(d), OrderBy(d), pageToken, r.options.PageSize)
	if err != nil {
		return drivedash.Listing{}, wrapRequestError("list entities", err)
	}
	return drivedash.Listing{
		Entities:      toEntities(list.Files),
		NextPageToken: list.NextPageToken,
	}, nil
}

// ListRecent lists the newest entities first, bounded by limit.
func (r *Remote) ListRecent(ctx context.Context, limit int64) ([]drivedash.FileEntity, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	list, err := c.ListFiles(ctx, "trashed=false", "modifiedTime desc", "", limit)
	if err != nil {
		return nil, wrapRequestError("list recent", err)
	}
	return toEntities(list.Files), nil
}

// ListFavorites lists starred entities, newest first.
func (r *Remote) ListFavorites(ctx context.Context) ([]drivedash.FileEntity, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return nil, err
	}
	list, err := c.ListFiles(ctx, "starred=true and trashed=false", "modifiedTime desc", "", r.options.PageSize)
	if err != nil {
		return nil, wrapRequestError("list favorites", err)
	}
	return toEntities(list.Files), nil
}

// GetEntity fetches one entity by id.
func (r *Remote) GetEntity(ctx context.Context, id string) (drivedash.FileEntity, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return drivedash.FileEntity{}, err
	}
	if id == "" {
		return drivedash.FileEntity{}, drivedash.ErrEmptyID
	}
	f, err := c.GetFile(ctx, id)
	if err != nil {
		return drivedash.FileEntity{}, wrapRequestError("get entity", err)
	}
	return ToEntity(f), nil
}

// UpdateEntity applies a partial-field update to an entity. Fields named in
// force are sent even at their zero value.
func (r *Remote) UpdateEntity(ctx context.Context, id string, patch *drivev3.File, force ...string) (drivedash.FileEntity, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return drivedash.FileEntity{}, err
	}
	if id == "" {
		return drivedash.FileEntity{}, drivedash.ErrEmptyID
	}
	f, err := c.UpdateFile(ctx, id, patch, force...)
	if err != nil {
		return drivedash.FileEntity{}, wrapRequestError("update entity", err)
	}
	return ToEntity(f), nil
}

// SetStarred updates the starred flag. Starred is force-sent so that clearing
// the flag survives the SDK's zero-value omission.
func (r *Remote) SetStarred(ctx context.Context, id string, starred bool) (drivedash.FileEntity, error) {
	return r.UpdateEntity(ctx, id, &drivev3.File{Starred: starred}, "Starred")
}

// DeleteEntity soft-deletes an entity per provider semantics: it is moved to
// the provider's trash, with no local recovery path.
func (r *Remote) DeleteEntity(ctx context.Context, id string) error {
	c, err := r.ready(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return drivedash.ErrEmptyID
	}
	if _, err := c.UpdateFile(ctx, id, &drivev3.File{Trashed: true}); err != nil {
		return wrapRequestError("delete entity", err)
	}
	return nil
}

// CreateShareGrant grants "anyone with the link: reader" on the entity, then
// re-fetches it for its view link. The two steps are not atomic: if the grant
// succeeds and the re-fetch fails, the grant persists remotely and the caller
// should retry rather than roll back. Granting an already-present permission
// is a provider-side no-op.
func (r *Remote) CreateShareGrant(ctx context.Context, id string) (string, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", drivedash.ErrEmptyID
	}
	perm := &drivev3.Permission{Role: "reader", Type: "anyone"}
	if err := c.CreatePermission(ctx, id, perm); err != nil {
		return "", wrapRequestError("create share grant", err)
	}
	f, err := c.GetFile(ctx, id)
	if err != nil {
		return "", wrapRequestError("create share grant", err)
	}
	if f.WebViewLink == "" {
		return "", drivedash.ErrNoShareLink
	}
	return f.WebViewLink, nil
}

// CreateContainer creates a folder under parentID, defaulting to the root
// container.
func (r *Remote) CreateContainer(ctx context.Context, name, parentID string) (drivedash.FileEntity, error) {
	c, err := r.ready(ctx)
	if err != nil {
		return drivedash.FileEntity{}, err
	}
	if name == "" {
		return drivedash.FileEntity{}, drivedash.ErrEmptyName
	}
	if parentID == "" {
		parentID = "root"
	}
	meta := &drivev3.File{
		Name:     name,
		MimeType: drivedash.MimeTypeFolder,
		Parents:  []string{parentID},
	}
	f, err := c.CreateFile(ctx, meta)
	if err != nil {
		return drivedash.FileEntity{}, wrapRequestError("create container", err)
	}
	return ToEntity(f), nil
}

// GetQuota fetches the account storage quota. Quota is informational only, so
// any failure soft-defaults to a conservative snapshot instead of
// propagating.
func (r *Remote) GetQuota(ctx context.Context) drivedash.QuotaSnapshot {
	c, err := r.ready(ctx)
	if err != nil {
		return drivedash.DefaultQuota()
	}
	about, err := c.About(ctx)
	if err != nil || about == nil || about.StorageQuota == nil {
		return drivedash.DefaultQuota()
	}
	q := drivedash.QuotaSnapshot{
		Usage: about.StorageQuota.Usage,
		Limit: about.StorageQuota.Limit,
	}
	if q.Limit <= 0 {
		q.Limit = drivedash.DefaultQuotaLimit
	}
	return q
}

// ToEntity normalizes a provider file into the local model. Malformed fields
// are coerced rather than propagated: an unparseable timestamp becomes the
// zero time.
func ToEntity(f *drivev3.File) drivedash.FileEntity {
	if f == nil {
		return drivedash.FileEntity{}
	}
	e := drivedash.FileEntity{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		Starred:        f.Starred,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		ThumbnailLink:  f.ThumbnailLink,
		Parents:        f.Parents,
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			e.ModifiedTime = t
		}
	}
	for _, o := range f.Owners {
		if o == nil {
			continue
		}
		e.Owners = append(e.Owners, drivedash.Owner{
			DisplayName:  o.DisplayName,
			EmailAddress: o.EmailAddress,
		})
	}
	return e
}

func toEntities(files []*drivev3.File) []drivedash.FileEntity {
	entities := make([]drivedash.FileEntity, 0, len(files))
	for _, f := range files {
		entities = append(entities, ToEntity(f))
	}
	return entities
}
