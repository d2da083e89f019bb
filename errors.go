package drivedash

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrRemoteUnavailable - the remote client or its session is not initialized.
	// Callers should treat this as "not yet usable", not as a request failure.
	ErrRemoteUnavailable = Error("remote client is not available")

	// ErrNoShareLink - a share grant succeeded but the entity exposes no view link.
	// The grant persists remotely; the caller should retry rather than roll back.
	ErrNoShareLink = Error("entity has no view link after share grant")

	// ErrEmptyName - an entity or container name was empty
	ErrEmptyName = Error("name must not be empty")

	// ErrEmptyID - an entity identifier was empty
	ErrEmptyID = Error("entity id must not be empty")
)
