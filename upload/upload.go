// Package upload transmits one local file to the provider as a
// multipart/related request, reporting byte-level progress. Each upload is an
// independent pipeline run with its own task; there is no coordination,
// sequencing or throttling between concurrent uploads, and no cancellation
// once the request is issued.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	drivev3 "google.golang.org/api/drive/v3"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/drive"
	"github.com/drivedash/drivedash/options"
)

// DefaultEndpoint is the provider's multipart upload endpoint.
const DefaultEndpoint = "https://www.googleapis.com/upload/drive/v3/files?uploadType=multipart"

// ProgressFunc observes fractional upload progress in [0,100]. It is called
// only when the total envelope length is known; reported values are
// non-decreasing but reaching 100 is not guaranteed on failure.
type ProgressFunc func(pct float64)

// Source describes one local file to upload.
type Source struct {
	// Name is the target display name.
	Name string

	// ContentType is the detected content type of the payload; defaults to
	// application/octet-stream.
	ContentType string

	// Size is the payload length in bytes. Pass a negative value when
	// unknown, which disables progress reporting.
	Size int64

	// ParentID is the target container; empty means root.
	ParentID string

	// Reader supplies the payload. It is streamed into the request body, not
	// buffered in memory.
	Reader io.Reader
}

// Error reports a failed upload, either transport-level (StatusCode zero) or
// a non-success response.
type Error struct {
	StatusCode int
	err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upload failed (status %d)", e.StatusCode)
	}
	if e.err != nil {
		return fmt.Sprintf("upload failed: %v", e.err)
	}
	return "upload failed"
}

func (e *Error) Unwrap() error { return e.err }

// Pipeline builds and issues multipart upload requests with the current
// session's bearer credential attached.
type Pipeline struct {
	session  drivedash.Session
	endpoint string
	client   *http.Client
}

// NewPipeline constructs a pipeline over the session gate.
func NewPipeline(sess drivedash.Session, opts ...options.Option[Pipeline]) *Pipeline {
	p := &Pipeline{
		session:  sess,
		endpoint: DefaultEndpoint,
		client:   http.DefaultClient,
	}
	options.ApplyOptions(p, opts...)
	return p
}

// Upload transmits src and returns the created entity along with the task
// that tracked the attempt, in its terminal state. The pipeline resolves on
// the HTTP response; it does not wait on any provider-side processing beyond
// that.
func (p *Pipeline) Upload(ctx context.Context, src Source, onProgress ProgressFunc) (drivedash.FileEntity, *drivedash.UploadTask, error) {
	task := drivedash.NewUploadTask(src.Name)

	entity, err := p.run(ctx, src, func(pct float64) {
		task.SetProgress(pct)
		if onProgress != nil {
			onProgress(pct)
		}
	})
	if err != nil {
		task.Fail()
		return drivedash.FileEntity{}, task, err
	}
	task.Complete()
	return entity, task, nil
}

func (p *Pipeline) run(ctx context.Context, src Source, onProgress ProgressFunc) (drivedash.FileEntity, error) {
	if p.session == nil || !p.session.Ready() {
		return drivedash.FileEntity{}, drivedash.ErrRemoteUnavailable
	}
	if src.Name == "" {
		return drivedash.FileEntity{}, drivedash.ErrEmptyName
	}

	token, err := p.session.BearerToken(ctx)
	if err != nil {
		return drivedash.FileEntity{}, &Error{err: err}
	}

	boundary := "drivedash-" + uuid.NewString()
	body, total, err := envelope(src, boundary)
	if err != nil {
		return drivedash.FileEntity{}, &Error{err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &progressReader{
		r:          body,
		total:      total,
		onProgress: onProgress,
	})
	if err != nil {
		return drivedash.FileEntity{}, &Error{err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", `multipart/related; boundary="`+boundary+`"`)
	req.ContentLength = total

	resp, err := p.client.Do(req)
	if err != nil {
		return drivedash.FileEntity{}, &Error{err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return drivedash.FileEntity{}, &Error{StatusCode: resp.StatusCode}
	}

	created := &drivev3.File{}
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		return drivedash.FileEntity{}, &Error{err: err}
	}
	return drive.ToEntity(created), nil
}

// envelope frames the metadata and content parts between boundary delimiters.
// The content part is streamed, not read into memory; total is -1 when the
// source size is unknown.
func envelope(src Source, boundary string) (io.Reader, int64, error) {
	parent := src.ParentID
	if parent == "" {
		parent = "root"
	}
	contentType := src.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	meta, err := json.Marshal(map[string]any{
		"name":    src.Name,
		"parents": []string{parent},
	})
	if err != nil {
		return nil, 0, err
	}

	delimiter := "\r\n--" + boundary + "\r\n"
	closeDelimiter := "\r\n--" + boundary + "--"

	head := delimiter +
		"Content-Type: application/json; charset=UTF-8\r\n\r\n" +
		string(meta) +
		delimiter +
		"Content-Type: " + contentType + "\r\n\r\n"

	body := io.MultiReader(
		strings.NewReader(head),
		src.Reader,
		strings.NewReader(closeDelimiter),
	)

	total := int64(-1)
	if src.Size >= 0 {
		total = int64(len(head)) + src.Size + int64(len(closeDelimiter))
	}
	return body, total, nil
}

// progressReader reports loaded/total*100 as the request body drains. With an
// unknown total, progress is never emitted.
type progressReader struct {
	r          io.Reader
	total      int64
	loaded     int64
	onProgress ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		if pr.total > 0 && pr.onProgress != nil {
			pr.onProgress(float64(pr.loaded) / float64(pr.total) * 100)
		}
	}
	return n, err
}
