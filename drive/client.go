package drive

import (
	"context"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// entityFields is the fixed field projection requested on every entity
// response, to avoid over-fetching.
const entityFields = "id, name, mimeType, size, modifiedTime, starred, webViewLink, webContentLink, thumbnailLink, parents, owners"

// listFields is the projection for listing responses.
const listFields = "nextPageToken, files(" + entityFields + ")"

// Client defines the subset of Drive v3 operations used by this module.
// This interface limits the API surface and enables efficient mocking in
// tests; serviceClient adapts the SDK service to it.
type Client interface {
	// ListFiles requests one bounded page of files matching q, ordered by
	// orderBy, with the fixed field projection applied.
	ListFiles(ctx context.Context, q, orderBy, pageToken string, pageSize int64) (*drivev3.FileList, error)

	// GetFile fetches one file by id.
	GetFile(ctx context.Context, id string) (*drivev3.File, error)

	// UpdateFile applies a partial-field update to a file. Fields named in
	// force are sent even when they hold their zero value.
	UpdateFile(ctx context.Context, id string, patch *drivev3.File, force ...string) (*drivev3.File, error)

	// CreateFile creates a file or folder from metadata only.
	CreateFile(ctx context.Context, meta *drivev3.File) (*drivev3.File, error)

	// CreatePermission grants a permission on a file. Granting an
	// already-present permission is a provider-side no-op, not an error.
	CreatePermission(ctx context.Context, id string, perm *drivev3.Permission) error

	// About fetches account information limited to the storage quota.
	About(ctx context.Context) (*drivev3.About, error)
}

// serviceClient adapts *drivev3.Service to the Client interface.
type serviceClient struct {
	svc *drivev3.Service
}

// NewClient wraps a Drive SDK service in the Client interface.
func NewClient(svc *drivev3.Service) Client {
	return &serviceClient{svc: svc}
}

func (c *serviceClient) ListFiles(ctx context.Context, q, orderBy, pageToken string, pageSize int64) (*drivev3.FileList, error) {
	call := c.svc.Files.List().
		Context(ctx).
		Q(q).
		PageSize(pageSize).
		Fields(googleapi.Field(listFields))
	if orderBy != "" {
		call = call.OrderBy(orderBy)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}

func (c *serviceClient) GetFile(ctx context.Context, id string) (*drivev3.File, error) {
	return c.svc.Files.Get(id).
		Context(ctx).
		Fields(googleapi.Field(entityFields)).
		Do()
}

func (c *serviceClient) UpdateFile(ctx context.Context, id string, patch *drivev3.File, force ...string) (*drivev3.File, error) {
	if len(force) > 0 {
		patch.ForceSendFields = append(patch.ForceSendFields, force...)
	}
	return c.svc.Files.Update(id, patch).
		Context(ctx).
		Fields(googleapi.Field(entityFields)).
		Do()
}

func (c *serviceClient) CreateFile(ctx context.Context, meta *drivev3.File) (*drivev3.File, error) {
	return c.svc.Files.Create(meta).
		Context(ctx).
		Fields(googleapi.Field(entityFields)).
		Do()
}

func (c *serviceClient) CreatePermission(ctx context.Context, id string, perm *drivev3.Permission) error {
	_, err := c.svc.Permissions.Create(id, perm).
		Context(ctx).
		Do()
	return err
}

func (c *serviceClient) About(ctx context.Context) (*drivev3.About, error) {
	return c.svc.About.Get().
		Context(ctx).
		Fields("storageQuota").
		Do()
}
