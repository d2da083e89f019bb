package drive

import (
	"strings"

	"github.com/drivedash/drivedash"
)

// mime patterns per filter key. Documents is an OR of the provider's native
// document type, pdf and word patterns.
var documentMimePatterns = []string{
	"application/vnd.google-apps.document",
	"application/pdf",
	"application/msword",
}

// Query translates a descriptor into the provider's filter expression. Every
// listing query excludes trashed entities. A free-text search term takes
// precedence over the filter key and maps to a name-contains predicate.
func Query(d drivedash.QueryDescriptor) string {
	d = d.Normalized()

	if d.Search != "" {
		return "name contains '" + escapeQueryTerm(d.Search) + "' and trashed=false"
	}

	switch d.FilterBy {
	case drivedash.FilterDocuments:
		clauses := make([]string, len(documentMimePatterns))
		for i, p := range documentMimePatterns {
			clauses[i] = "mimeType contains '" + p + "'"
		}
		return "(" + strings.Join(clauses, " or ") + ") and trashed=false"
	case drivedash.FilterImages:
		return "(mimeType contains 'image/') and trashed=false"
	case drivedash.FilterFolders:
		return "(mimeType contains '" + drivedash.MimeTypeFolder + "') and trashed=false"
	default:
		return "trashed=false"
	}
}

// OrderBy translates a sort key into the provider's order-by tokens. The
// provider has no direct "starred" ordering primitive, so starred sorts by a
// compound key. Provider-side ordering is trusted verbatim; results are never
// re-sorted locally.
func OrderBy(d drivedash.QueryDescriptor) string {
	switch d.Normalized().SortBy {
	case drivedash.SortName:
		return "name"
	case drivedash.SortSize:
		return "quotaBytesUsed desc"
	case drivedash.SortStarred:
		return "starred desc,modifiedTime desc"
	default:
		return "modifiedTime desc"
	}
}

// escapeQueryTerm escapes the quote characters that would terminate the
// provider's string literal syntax.
func escapeQueryTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}
