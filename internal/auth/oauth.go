package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// LoginPath is the token endpoint served by this API, relative to the base
// URL.
const LoginPath = "/api/auth/login"

// PasswordGrantClient logs in against a running API with the OAuth 2.0
// resource-owner password grant. The login endpoint speaks that grant's
// form encoding (username, password, grant_type=password), so any standard
// OAuth2 client can obtain a token; this one is used by the CLI.
type PasswordGrantClient struct {
	config *oauth2.Config
}

// NewPasswordGrantClient targets the API at baseURL, e.g.
// "http://localhost:8000".
func NewPasswordGrantClient(baseURL string) *PasswordGrantClient {
	return &PasswordGrantClient{
		config: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  strings.TrimRight(baseURL, "/") + LoginPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Token exchanges an email and password for an access token.
func (c *PasswordGrantClient) Token(ctx context.Context, email, password string) (*oauth2.Token, error) {
	tok, err := c.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("auth: password grant: %w", err)
	}
	return tok, nil
}

// Client returns an *http.Client that sends tok as a bearer token on every
// request.
func (c *PasswordGrantClient) Client(ctx context.Context, tok *oauth2.Token) *http.Client {
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
}
