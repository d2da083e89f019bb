package drivedash

import (
	"strings"
	"time"
)

// MimeTypeFolder is the provider's reserved type descriptor for folders.
// Folders are ordinary entities carrying this marker.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// FileType is the locally derived kind of an entity, computed from its mime
// type descriptor. It is never stored independently.
type FileType string

const (
	TypeFolder       FileType = "folder"
	TypePDF          FileType = "pdf"
	TypeDocument     FileType = "document"
	TypeSpreadsheet  FileType = "spreadsheet"
	TypePresentation FileType = "presentation"
	TypeImage        FileType = "image"
	TypeOther        FileType = "other"
)

// TypeOf derives a FileType from a provider mime type descriptor by substring
// matching. The match order matters: folder and pdf markers take precedence
// over the generic document match.
func TypeOf(mimeType string) FileType {
	switch {
	case strings.Contains(mimeType, "folder"):
		return TypeFolder
	case strings.Contains(mimeType, "pdf"):
		return TypePDF
	case strings.Contains(mimeType, "word"), strings.Contains(mimeType, "document"):
		return TypeDocument
	case strings.Contains(mimeType, "sheet"), strings.Contains(mimeType, "excel"):
		return TypeSpreadsheet
	case strings.Contains(mimeType, "presentation"), strings.Contains(mimeType, "powerpoint"):
		return TypePresentation
	case strings.Contains(mimeType, "image"):
		return TypeImage
	default:
		return TypeOther
	}
}

// Owner identifies one owner of an entity.
type Owner struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// FileEntity is the immutable local snapshot of one remote file or folder.
// The identifier is assigned by the provider and stable for the entity's
// lifetime; the local process never owns write authority over any field, it
// only requests writes and re-fetches.
type FileEntity struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	MimeType       string    `json:"mimeType"`
	Size           int64     `json:"size,omitempty"` // zero for provider-native document types
	ModifiedTime   time.Time `json:"modifiedTime"`
	Starred        bool      `json:"starred"`
	WebViewLink    string    `json:"webViewLink,omitempty"`
	WebContentLink string    `json:"webContentLink,omitempty"`
	ThumbnailLink  string    `json:"thumbnailLink,omitempty"`
	Parents        []string  `json:"parents,omitempty"` // empty means root
	Owners         []Owner   `json:"owners,omitempty"`
}

// Type returns the derived kind of the entity.
func (e FileEntity) Type() FileType {
	return TypeOf(e.MimeType)
}

// IsFolder reports whether the entity carries the folder type marker.
func (e FileEntity) IsFolder() bool {
	return e.MimeType == MimeTypeFolder
}

// Listing is one page of entities plus the provider's continuation token, if
// more pages exist.
type Listing struct {
	Entities      []FileEntity `json:"entities"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

// QuotaSnapshot reports account storage usage in bytes. It is fetched whole
// and replaced whole, never mutated locally.
type QuotaSnapshot struct {
	Usage int64 `json:"usage"`
	Limit int64 `json:"limit"`
}

// DefaultQuotaLimit is the conservative limit reported when the provider's
// quota endpoint fails. Quota is informational only, so failures soft-default
// rather than propagate.
const DefaultQuotaLimit int64 = 15000000000

// DefaultQuota returns the snapshot used when quota cannot be fetched.
func DefaultQuota() QuotaSnapshot {
	return QuotaSnapshot{Usage: 0, Limit: DefaultQuotaLimit}
}
