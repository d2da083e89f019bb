package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/session"
)

type PipelineTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *PipelineTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *PipelineTestSuite) newServer(status int, respBody string, capture *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			capture.authorization = r.Header.Get("Authorization")
			capture.contentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			capture.body = string(body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
}

type capturedRequest struct {
	authorization string
	contentType   string
	body          string
}

func (s *PipelineTestSuite) TestUpload() {
	capture := &capturedRequest{}
	srv := s.newServer(http.StatusOK, `{"id":"f1","name":"report.pdf","mimeType":"application/pdf"}`, capture)
	defer srv.Close()

	p := NewPipeline(session.Static("tok"), WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

	content := "hello, drive"
	var progress []float64
	entity, task, err := p.Upload(s.ctx, Source{
		Name:        "report.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}, func(pct float64) {
		progress = append(progress, pct)
	})
	s.Require().NoError(err)

	s.Equal("f1", entity.ID)
	s.Equal("report.pdf", entity.Name)
	s.Equal(drivedash.TypePDF, entity.Type())

	s.Equal("Bearer tok", capture.authorization)
	s.Contains(capture.contentType, `multipart/related; boundary="drivedash-`)

	// metadata part targets root and declares the name; content part carries
	// the payload with its own content type
	s.Contains(capture.body, `Content-Type: application/json; charset=UTF-8`)
	s.Contains(capture.body, `"name":"report.pdf"`)
	s.Contains(capture.body, `"parents":["root"]`)
	s.Contains(capture.body, "Content-Type: application/pdf\r\n\r\nhello, drive")
	s.True(strings.HasSuffix(capture.body, "--"), "envelope carries the closing delimiter")

	// progress is non-decreasing and reaches 100
	s.Require().NotEmpty(progress)
	for i := 1; i < len(progress); i++ {
		s.GreaterOrEqual(progress[i], progress[i-1])
	}
	s.Equal(float64(100), progress[len(progress)-1])

	s.Equal(drivedash.UploadStatusCompleted, task.Status)
	s.Equal(float64(100), task.Progress)
}

func (s *PipelineTestSuite) TestUploadParent() {
	capture := &capturedRequest{}
	srv := s.newServer(http.StatusOK, `{"id":"f2"}`, capture)
	defer srv.Close()

	p := NewPipeline(session.Static("tok"), WithEndpoint(srv.URL))
	_, _, err := p.Upload(s.ctx, Source{
		Name:     "notes.txt",
		Size:     1,
		ParentID: "folder-9",
		Reader:   strings.NewReader("x"),
	}, nil)
	s.Require().NoError(err)
	s.Contains(capture.body, `"parents":["folder-9"]`)
	s.Contains(capture.body, "Content-Type: application/octet-stream")
}

func (s *PipelineTestSuite) TestUploadFailedStatus() {
	srv := s.newServer(http.StatusForbidden, `denied`, nil)
	defer srv.Close()

	p := NewPipeline(session.Static("tok"), WithEndpoint(srv.URL))
	_, task, err := p.Upload(s.ctx, Source{Name: "a.bin", Size: 1, Reader: strings.NewReader("x")}, nil)

	var uerr *Error
	s.Require().ErrorAs(err, &uerr)
	s.Equal(http.StatusForbidden, uerr.StatusCode)
	s.Equal(drivedash.UploadStatusError, task.Status)
}

func (s *PipelineTestSuite) TestUploadNetworkFailure() {
	srv := s.newServer(http.StatusOK, "", nil)
	srv.Close() // refuse connections

	p := NewPipeline(session.Static("tok"), WithEndpoint(srv.URL))
	_, task, err := p.Upload(s.ctx, Source{Name: "a.bin", Size: 1, Reader: strings.NewReader("x")}, nil)

	var uerr *Error
	s.Require().ErrorAs(err, &uerr)
	s.Zero(uerr.StatusCode)
	s.Equal(drivedash.UploadStatusError, task.Status)
}

func (s *PipelineTestSuite) TestUploadNotReady() {
	p := NewPipeline(session.Static(""))
	_, task, err := p.Upload(s.ctx, Source{Name: "a.bin", Size: 1, Reader: strings.NewReader("x")}, nil)
	s.ErrorIs(err, drivedash.ErrRemoteUnavailable)
	s.Equal(drivedash.UploadStatusError, task.Status)
}

func (s *PipelineTestSuite) TestUploadEmptyName() {
	p := NewPipeline(session.Static("tok"))
	_, _, err := p.Upload(s.ctx, Source{Size: 1, Reader: strings.NewReader("x")}, nil)
	s.ErrorIs(err, drivedash.ErrEmptyName)
}

func (s *PipelineTestSuite) TestUnknownSizeEmitsNoProgress() {
	srv := s.newServer(http.StatusOK, `{"id":"f3"}`, nil)
	defer srv.Close()

	p := NewPipeline(session.Static("tok"), WithEndpoint(srv.URL))
	var progress []float64
	_, task, err := p.Upload(s.ctx, Source{
		Name:   "stream.bin",
		Size:   -1,
		Reader: strings.NewReader("some bytes"),
	}, func(pct float64) {
		progress = append(progress, pct)
	})
	s.Require().NoError(err)
	s.Empty(progress, "progress is best-effort, silent when total is unknown")
	// completion still forces the task to 100
	s.Equal(float64(100), task.Progress)
}

func (s *PipelineTestSuite) TestEnvelopeTotal() {
	body, total, err := envelope(Source{Name: "a", Size: 5, Reader: strings.NewReader("12345")}, "b")
	s.Require().NoError(err)

	all, err := io.ReadAll(body)
	s.Require().NoError(err)
	s.Equal(int64(len(all)), total, "declared total matches the framed envelope")

	_, total, err = envelope(Source{Name: "a", Size: -1, Reader: strings.NewReader("x")}, "b")
	s.Require().NoError(err)
	s.Equal(int64(-1), total)
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}
