package drive

import (
	"golang.org/x/oauth2"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/options"
)

const (
	optionNameClient      = "client"
	optionNameSession     = "session"
	optionNamePageSize    = "pageSize"
	optionNameTokenSource = "tokenSource"
)

// WithClient sets a pre-built Drive client. Useful for testing or when the
// caller has already constructed the SDK service.
func WithClient(client Client) options.Option[Remote] {
	return &clientOpt{client: client}
}

type clientOpt struct {
	client Client
}

func (o *clientOpt) Apply(r *Remote) {
	r.client = o.client
}

func (o *clientOpt) OptionName() string {
	return optionNameClient
}

// WithSession sets the authenticated-session gate. Every operation fails with
// ErrRemoteUnavailable until the session reports ready.
func WithSession(sess drivedash.Session) options.Option[Remote] {
	return &sessionOpt{sess: sess}
}

type sessionOpt struct {
	sess drivedash.Session
}

func (o *sessionOpt) Apply(r *Remote) {
	r.session = o.sess
}

func (o *sessionOpt) OptionName() string {
	return optionNameSession
}

// WithPageSize bounds listing pages. Default is 100.
func WithPageSize(size int64) options.Option[Remote] {
	return &pageSizeOpt{size: size}
}

type pageSizeOpt struct {
	size int64
}

func (o *pageSizeOpt) Apply(r *Remote) {
	if o.size > 0 {
		r.options.PageSize = o.size
	}
}

func (o *pageSizeOpt) OptionName() string {
	return optionNamePageSize
}

// WithTokenSource supplies credentials for lazily building the Drive client.
func WithTokenSource(src oauth2.TokenSource) options.Option[Remote] {
	return &tokenSourceOpt{src: src}
}

type tokenSourceOpt struct {
	src oauth2.TokenSource
}

func (o *tokenSourceOpt) Apply(r *Remote) {
	r.options.TokenSource = o.src
}

func (o *tokenSourceOpt) OptionName() string {
	return optionNameTokenSource
}
