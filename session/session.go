// Package session provides drivedash.Session implementations: an OAuth2
// token-source backed session for real use and a static session for tests and
// pre-issued tokens.
package session

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenSession adapts an oauth2.TokenSource to the session gate.
type TokenSession struct {
	src oauth2.TokenSource
}

// FromTokenSource wraps a token source in a session. A nil source yields a
// session that never reports ready.
func FromTokenSource(src oauth2.TokenSource) *TokenSession {
	return &TokenSession{src: src}
}

// Ready reports whether a token source is configured.
func (s *TokenSession) Ready() bool {
	return s != nil && s.src != nil
}

// BearerToken returns the current access token, refreshing it if the source
// supports refresh.
func (s *TokenSession) BearerToken(_ context.Context) (string, error) {
	if !s.Ready() {
		return "", fmt.Errorf("session: no token source configured")
	}
	tok, err := s.src.Token()
	if err != nil {
		return "", fmt.Errorf("session: token: %w", err)
	}
	return tok.AccessToken, nil
}

// TokenSource exposes the underlying source for SDK client construction.
func (s *TokenSession) TokenSource() oauth2.TokenSource {
	if s == nil {
		return nil
	}
	return s.src
}

// StaticSession is a session backed by a fixed bearer token. It is ready iff
// the token is non-empty.
type StaticSession struct {
	token string
}

// Static returns a session carrying a pre-issued bearer token.
func Static(token string) *StaticSession {
	return &StaticSession{token: token}
}

// Ready reports whether a token is present.
func (s *StaticSession) Ready() bool {
	return s != nil && s.token != ""
}

// BearerToken returns the fixed token.
func (s *StaticSession) BearerToken(context.Context) (string, error) {
	if !s.Ready() {
		return "", fmt.Errorf("session: no token configured")
	}
	return s.token, nil
}
