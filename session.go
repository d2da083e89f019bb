package drivedash

import "context"

// Session is the authenticated-session gate every remote operation depends
// on. The dashboard core does not manage authentication itself; it assumes a
// ready-to-use session and goes quiescent when none is available.
type Session interface {
	// Ready reports whether an authenticated session is available. When false,
	// reads return a quiescent "not ready" state and writes must not be
	// attempted.
	Ready() bool

	// BearerToken returns the current bearer credential for manual request
	// construction (the upload pipeline builds its own requests).
	BearerToken(ctx context.Context) (string, error)
}
