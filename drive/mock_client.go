package drive

import (
	"context"

	drivev3 "google.golang.org/api/drive/v3"
)

// MockClient is a mock implementation of drive.Client for tests in this and
// dependent packages.
type MockClient struct {
	ListResult      *drivev3.FileList
	ListError       error
	GetResult       *drivev3.File
	GetError        error
	UpdateResult    *drivev3.File
	UpdateError     error
	CreateResult    *drivev3.File
	CreateError     error
	PermissionError error
	AboutResult     *drivev3.About
	AboutError      error

	// Call records for assertions.
	ListCalls       int
	LastQuery       string
	LastOrderBy     string
	LastPageToken   string
	LastPageSize    int64
	GetCalls        int
	UpdateCalls     int
	LastUpdateID    string
	LastPatch       *drivev3.File
	LastForceFields []string
	CreateCalls     int
	LastCreateMeta  *drivev3.File
	PermissionCalls int
	LastPermission  *drivev3.Permission
	AboutCalls      int
}

// ListFiles records the request and returns ListResult or ListError.
func (m *MockClient) ListFiles(_ context.Context, q, orderBy, pageToken string, pageSize int64) (*drivev3.FileList, error) {
	m.ListCalls++
	m.LastQuery = q
	m.LastOrderBy = orderBy
	m.LastPageToken = pageToken
	m.LastPageSize = pageSize
	if m.ListError != nil {
		return nil, m.ListError
	}
	if m.ListResult != nil {
		return m.ListResult, nil
	}
	return &drivev3.FileList{}, nil
}

// GetFile returns GetResult or GetError.
func (m *MockClient) GetFile(_ context.Context, id string) (*drivev3.File, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	if m.GetResult != nil {
		return m.GetResult, nil
	}
	return &drivev3.File{Id: id}, nil
}

// UpdateFile records the patch and returns UpdateResult or UpdateError.
func (m *MockClient) UpdateFile(_ context.Context, id string, patch *drivev3.File, force ...string) (*drivev3.File, error) {
	m.UpdateCalls++
	m.LastUpdateID = id
	m.LastPatch = patch
	m.LastForceFields = force
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	if m.UpdateResult != nil {
		return m.UpdateResult, nil
	}
	return patch, nil
}

// CreateFile records the metadata and returns CreateResult or CreateError.
func (m *MockClient) CreateFile(_ context.Context, meta *drivev3.File) (*drivev3.File, error) {
	m.CreateCalls++
	m.LastCreateMeta = meta
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if m.CreateResult != nil {
		return m.CreateResult, nil
	}
	return meta, nil
}

// CreatePermission records the permission and returns PermissionError.
func (m *MockClient) CreatePermission(_ context.Context, _ string, perm *drivev3.Permission) error {
	m.PermissionCalls++
	m.LastPermission = perm
	return m.PermissionError
}

// About returns AboutResult or AboutError.
func (m *MockClient) About(_ context.Context) (*drivev3.About, error) {
	m.AboutCalls++
	if m.AboutError != nil {
		return nil, m.AboutError
	}
	return m.AboutResult, nil
}
