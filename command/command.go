// Package command applies single write intents against the remote provider,
// invalidates exactly the cache entries whose correctness depends on each
// write, and converts every outcome into a uniform user-facing notification.
// Commands are independent and unordered: there is no queue, no deduplication
// and no automatic retry; a failed command requires explicit re-invocation.
package command

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/cache"
	"github.com/drivedash/drivedash/options"
	"github.com/drivedash/drivedash/upload"
)

// Remote is the subset of the remote client the commander writes through.
type Remote interface {
	SetStarred(ctx context.Context, id string, starred bool) (drivedash.FileEntity, error)
	DeleteEntity(ctx context.Context, id string) error
	CreateShareGrant(ctx context.Context, id string) (string, error)
	CreateContainer(ctx context.Context, name, parentID string) (drivedash.FileEntity, error)
}

// Uploader runs one upload pipeline instance per call.
type Uploader interface {
	Upload(ctx context.Context, src upload.Source, onProgress upload.ProgressFunc) (drivedash.FileEntity, *drivedash.UploadTask, error)
}

// Invalidator marks cache operations stale after a successful write.
type Invalidator interface {
	Invalidate(ops ...string)
}

// Notification is the human-readable payload delivered after each command.
// On failure the detail is a short generic retry suggestion; the underlying
// error is carried for logging but need not be shown verbatim.
type Notification struct {
	Ok     bool   `json:"ok"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Err    error  `json:"-"`
}

// Notifier receives the notification for every completed command.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}

// Commander is the mutation layer. A single instance serves all commands;
// Busy reports whether any command is in flight.
type Commander struct {
	remote   Remote
	uploader Uploader
	cache    Invalidator
	notifier Notifier
	inFlight atomic.Int32
}

// NewCommander builds a commander over the remote, uploader and cache store.
func NewCommander(remote Remote, uploader Uploader, inv Invalidator, opts ...options.Option[Commander]) *Commander {
	c := &Commander{
		remote:   remote,
		uploader: uploader,
		cache:    inv,
		notifier: noopNotifier{},
	}
	options.ApplyOptions(c, opts...)
	return c
}

// Busy reports whether any command is currently in flight.
func (c *Commander) Busy() bool {
	return c.inFlight.Load() > 0
}

// ToggleStar sets the starred flag to the requested state. The success
// message is determined by the requested target state, not by re-reading the
// entity. Back-to-back toggles on the same entity both execute; last write
// wins.
func (c *Commander) ToggleStar(ctx context.Context, id string, starred bool) Notification {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	if _, err := c.remote.SetStarred(ctx, id, starred); err != nil {
		return c.fail("Error", "Failed to update file. Please try again.", err)
	}
	c.cache.Invalidate(cache.OpFiles, cache.OpFavorites)
	title := "Removed from favorites"
	if starred {
		title = "Added to favorites"
	}
	return c.succeed(title, "File has been updated successfully.")
}

// Delete moves an entity to the provider's trash.
func (c *Commander) Delete(ctx context.Context, id string) Notification {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	if err := c.remote.DeleteEntity(ctx, id); err != nil {
		return c.fail("Error", "Failed to delete file. Please try again.", err)
	}
	c.cache.Invalidate(cache.OpFiles, cache.OpRecent, cache.OpFavorites)
	return c.succeed("File deleted", "File has been moved to trash.")
}

// CreateShareLink grants link access and returns the shareable URL. Sharing
// is a read-only side effect on the entity's listing membership, so nothing
// is invalidated.
func (c *Commander) CreateShareLink(ctx context.Context, id string) (string, Notification) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	link, err := c.remote.CreateShareGrant(ctx, id)
	if err != nil {
		return "", c.fail("Error", "Failed to create share link. Please try again.", err)
	}
	return link, c.succeed("Share link created", link)
}

// Upload runs one upload pipeline instance and invalidates the general
// listing on success. The returned task is in its terminal state.
func (c *Commander) Upload(ctx context.Context, src upload.Source, onProgress upload.ProgressFunc) (*drivedash.UploadTask, Notification) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	_, task, err := c.uploader.Upload(ctx, src, onProgress)
	if err != nil {
		return task, c.fail("Upload failed", "Failed to upload file. Please try again.", err)
	}
	c.cache.Invalidate(cache.OpFiles)
	return task, c.succeed("Upload complete", "File has been uploaded successfully.")
}

// CreateFolder creates a container under parentID (root when empty).
func (c *Commander) CreateFolder(ctx context.Context, name, parentID string) (drivedash.FileEntity, Notification) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	folder, err := c.remote.CreateContainer(ctx, name, parentID)
	if err != nil {
		return drivedash.FileEntity{}, c.fail("Error", "Failed to create folder. Please try again.", err)
	}
	c.cache.Invalidate(cache.OpFiles)
	return folder, c.succeed("Folder created", "Folder has been created successfully.")
}

func (c *Commander) succeed(title, detail string) Notification {
	n := Notification{Ok: true, Title: title, Detail: detail}
	c.notifier.Notify(n)
	return n
}

// fail builds the failure notification. A not-ready session is not a request
// failure: the command was never attempted, so the notification says so
// instead of suggesting a retry.
func (c *Commander) fail(title, detail string, err error) Notification {
	if errors.Is(err, drivedash.ErrRemoteUnavailable) {
		title, detail = "Not ready", "Session is not ready yet."
	}
	n := Notification{Ok: false, Title: title, Detail: detail, Err: err}
	c.notifier.Notify(n)
	return n
}
