package rtdb

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes required for REST access with a Google access token.
var Scopes = []string{
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Authorizer adds credentials to the query string of every request.
type Authorizer interface {
	Authorize(ctx context.Context, q url.Values) error
}

// SecretAuth authenticates with a legacy database secret or an ID token.
type SecretAuth string

func (s SecretAuth) Authorize(_ context.Context, q url.Values) error {
	q.Set("auth", string(s))
	return nil
}

// TokenAuth authenticates with OAuth2 access tokens.
type TokenAuth struct {
	Source oauth2.TokenSource
}

func (a *TokenAuth) Authorize(_ context.Context, q url.Values) error {
	tok, err := a.Source.Token()
	if err != nil {
		return fmt.Errorf("fetching access token: %w", err)
	}
	q.Set("access_token", tok.AccessToken)
	return nil
}

// GoogleAuth loads service account credentials from credentialsFile, or
// Application Default Credentials when credentialsFile is empty.
func GoogleAuth(ctx context.Context, credentialsFile string) (*TokenAuth, error) {
	var (
		creds *google.Credentials
		err   error
	)
	if credentialsFile != "" {
		data, rerr := os.ReadFile(credentialsFile)
		if rerr != nil {
			return nil, fmt.Errorf("reading credentials: %w", rerr)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, Scopes...)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, Scopes...)
	}
	if err != nil {
		return nil, fmt.Errorf("loading google credentials: %w", err)
	}
	return &TokenAuth{Source: creds.TokenSource}, nil
}
