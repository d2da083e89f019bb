package drivedash

import "github.com/google/uuid"

// UploadStatus is the lifecycle state of one upload attempt.
type UploadStatus string

const (
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusCompleted UploadStatus = "completed"
	UploadStatusError     UploadStatus = "error"
)

// UploadTask tracks one upload attempt. It is ephemeral: created when the
// upload starts and discarded with its owning surface, never persisted.
type UploadTask struct {
	LocalID  string       `json:"id"`
	Name     string       `json:"name"`
	Progress float64      `json:"progress"` // 0..100, best effort
	Status   UploadStatus `json:"status"`
}

// NewUploadTask returns a task in the uploading state with a unique local id.
func NewUploadTask(name string) *UploadTask {
	return &UploadTask{
		LocalID: uuid.NewString(),
		Name:    name,
		Status:  UploadStatusUploading,
	}
}

// SetProgress records fractional progress, clamped to [0,100].
func (t *UploadTask) SetProgress(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	t.Progress = pct
}

// Complete marks the task finished, forcing progress to 100.
func (t *UploadTask) Complete() {
	t.Progress = 100
	t.Status = UploadStatusCompleted
}

// Fail marks the task failed. Progress is left at its last reported value.
func (t *UploadTask) Fail() {
	t.Status = UploadStatusError
}
