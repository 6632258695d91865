package oauth

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-duty-report/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NewHTTPClient returns an HTTP client that authenticates against the HRIS API.
// Client credentials take precedence over a static token; with neither set the
// base client is returned unchanged.
func NewHTTPClient(ctx context.Context, cfg config.UpstreamConfig, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}

	// token requests reuse the base client and its timeout
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	var client *http.Client
	switch {
	case cfg.ClientID != "":
		credentials := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		client = credentials.Client(ctx)
	case cfg.Token != "":
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	default:
		return base
	}

	client.Timeout = base.Timeout
	return client
}
