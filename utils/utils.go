// Package utils provides display helpers for dashboard surfaces: human
// readable sizes and ages, and preview derivation for entities that support
// it.
package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/drivedash/drivedash"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count for display. Zero means the provider
// reported no size (provider-native document types), rendered as empty.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// FormatRelativeTime renders how long ago t was, relative to now.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	days := int(diff.Hours() / 24)

	switch {
	case days == 0:
		hours := int(diff.Hours())
		if hours == 0 {
			minutes := int(diff.Minutes())
			if minutes <= 1 {
				return "Just now"
			}
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("1/2/2006")
	}
}

// CanPreview reports whether the entity's type has a renderable preview.
func CanPreview(mimeType string) bool {
	switch drivedash.TypeOf(mimeType) {
	case drivedash.TypeImage, drivedash.TypePDF, drivedash.TypeDocument,
		drivedash.TypePresentation, drivedash.TypeSpreadsheet:
		return true
	default:
		return false
	}
}

// PreviewURL derives a preview URL for an entity, or "" when none is
// available. Images use an upsized thumbnail; document types use the
// provider's embedded viewer.
func PreviewURL(e drivedash.FileEntity) string {
	t := e.Type()
	if t == drivedash.TypeImage && e.ThumbnailLink != "" {
		return strings.Replace(e.ThumbnailLink, "=s220", "=s400", 1)
	}
	switch t {
	case drivedash.TypePDF, drivedash.TypeDocument, drivedash.TypePresentation, drivedash.TypeSpreadsheet:
		if e.WebContentLink == "" {
			return ""
		}
		return "https://docs.google.com/gview?url=" + url.QueryEscape(e.WebContentLink) + "&embedded=true"
	}
	return ""
}
