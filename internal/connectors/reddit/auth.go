package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// Scopes requested for the password grant.
var Scopes = []string{"read", "identity"}

// passwordTokenSource obtains tokens with the OAuth2 password grant.
// No request is made until Token is first called.
type passwordTokenSource struct {
	ctx      context.Context
	config   *oauth2.Config
	username string
	password string
}

// NewPasswordTokenSource returns a lazily evaluated, caching token source for
// a Reddit script app.
func NewPasswordTokenSource(ctx context.Context, creds domain.Credentials, tokenURL string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &passwordTokenSource{
		ctx: ctx,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			Scopes: Scopes,
		},
		username: creds.Username,
		password: creds.Password,
	})
}

// Token implements oauth2.TokenSource.
func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	logger.Debug("Requesting access token for %s", s.username)

	tok, err := s.config.PasswordCredentialsToken(s.ctx, s.username, s.password)
	if err != nil {
		// Transport failures mean the token endpoint was unreachable,
		// not that the credentials were rejected.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("%w: request access token: %w", domain.ErrFetch, err)
		}
		return nil, fmt.Errorf("%w: request access token: %w", domain.ErrAuthentication, err)
	}
	return tok, nil
}

// userAgentTransport sets the User-Agent on every request, including token
// requests. Reddit throttles requests with generic agents aggressively.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// noRedirect stops the client from following redirects so that Reddit's
// redirect of unknown communities to search surfaces as a status code.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
