package drivedash

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EntityTestSuite struct {
	suite.Suite
}

func (s *EntityTestSuite) TestTypeOf() {
	tests := []struct {
		name     string
		mimeType string
		expected FileType
	}{
		{
			name:     "folder marker",
			mimeType: "application/vnd.google-apps.folder",
			expected: TypeFolder,
		},
		{
			name:     "pdf",
			mimeType: "application/pdf",
			expected: TypePDF,
		},
		{
			name:     "native document",
			mimeType: "application/vnd.google-apps.document",
			expected: TypeDocument,
		},
		{
			name:     "word document",
			mimeType: "application/msword",
			expected: TypeDocument,
		},
		{
			name:     "native spreadsheet",
			mimeType: "application/vnd.google-apps.spreadsheet",
			expected: TypeSpreadsheet,
		},
		{
			name:     "excel",
			mimeType: "application/vnd.ms-excel",
			expected: TypeSpreadsheet,
		},
		{
			name:     "native presentation",
			mimeType: "application/vnd.google-apps.presentation",
			expected: TypePresentation,
		},
		{
			name:     "powerpoint",
			mimeType: "application/vnd.ms-powerpoint",
			expected: TypePresentation,
		},
		{
			name:     "png image",
			mimeType: "image/png",
			expected: TypeImage,
		},
		{
			name:     "plain text",
			mimeType: "text/plain",
			expected: TypeOther,
		},
		{
			name:     "empty descriptor",
			mimeType: "",
			expected: TypeOther,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, TypeOf(tt.mimeType))
		})
	}
}

func (s *EntityTestSuite) TestIsFolder() {
	s.True(FileEntity{MimeType: MimeTypeFolder}.IsFolder())
	s.False(FileEntity{MimeType: "image/png"}.IsFolder())
	// derived type and the exact marker check agree for real folders
	s.Equal(TypeFolder, FileEntity{MimeType: MimeTypeFolder}.Type())
}

func (s *EntityTestSuite) TestDefaultQuota() {
	q := DefaultQuota()
	s.Zero(q.Usage)
	s.Equal(int64(15000000000), q.Limit)
}

func TestEntityTestSuite(t *testing.T) {
	suite.Run(t, new(EntityTestSuite))
}
