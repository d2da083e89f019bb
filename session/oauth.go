package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
)

// LoadOAuthConfig reads an OAuth2 client credentials JSON file (as issued by
// the provider's console) scoped to full Drive access.
func LoadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("session: reading credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, drivev3.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("session: parsing credentials: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a previously saved OAuth2 token.
func LoadToken(tokenPath string) (*oauth2.Token, error) {
	f, err := os.Open(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("session: reading token: %w", err)
	}
	defer f.Close() //nolint:errcheck
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("session: parsing token: %w", err)
	}
	return tok, nil
}

// SaveToken writes a token for later sessions. The file is user-readable
// only.
func SaveToken(tokenPath string, tok *oauth2.Token) error {
	f, err := os.OpenFile(tokenPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("session: writing token: %w", err)
	}
	defer f.Close() //nolint:errcheck
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("session: encoding token: %w", err)
	}
	return nil
}

// FromFiles builds a ready session from a credentials file and a cached token
// file. The token refreshes itself through the returned session.
func FromFiles(ctx context.Context, credentialsPath, tokenPath string) (*TokenSession, error) {
	cfg, err := LoadOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}
	return FromTokenSource(cfg.TokenSource(ctx, tok)), nil
}
