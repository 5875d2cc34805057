// Package oauth implements the Google and GitHub sign-in flows on top of
// golang.org/x/oauth2. A Provider builds the consent URL, exchanges the
// callback code and resolves the provider profile to an OAuthIdentity.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"altrion/internal/config"
	"altrion/internal/models"
	"altrion/internal/services"
)

// StateCookieName holds the anti-forgery state between redirect and callback.
const StateCookieName = "altrion_oauth_state"

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	githubAPIBaseURL  = "https://api.github.com"
)

var (
	ErrMissingCode   = errors.New("oauth callback is missing the code")
	ErrStateMismatch = errors.New("oauth state does not match")
	ErrNoEmail       = errors.New("provider returned no verified email")
)

type profileFetcher func(ctx context.Context, client *http.Client) (services.OAuthIdentity, error)

// Provider is one configured OAuth provider.
type Provider struct {
	name   models.AuthProvider
	config *oauth2.Config
	fetch  profileFetcher
	// httpClient is used for the token exchange and profile calls.
	httpClient *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the client used to reach the provider.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// WithEndpoint overrides the provider's authorization and token URLs.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(p *Provider) { p.config.Endpoint = e }
}

// NewGoogle returns the Google provider.
func NewGoogle(creds config.OAuthProvider, opts ...Option) *Provider {
	return NewGoogleWithUserInfo(creds, googleUserInfoURL, opts...)
}

// NewGoogleWithUserInfo returns the Google provider reading the profile from userInfoURL.
func NewGoogleWithUserInfo(creds config.OAuthProvider, userInfoURL string, opts ...Option) *Provider {
	p := &Provider{
		name: models.AuthProviderGoogle,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.CallbackURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		fetch: googleProfile(userInfoURL),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewGitHub returns the GitHub provider.
func NewGitHub(creds config.OAuthProvider, opts ...Option) *Provider {
	return NewGitHubWithAPI(creds, githubAPIBaseURL, opts...)
}

// NewGitHubWithAPI returns the GitHub provider calling the REST API at apiBase.
func NewGitHubWithAPI(creds config.OAuthProvider, apiBase string, opts ...Option) *Provider {
	p := &Provider{
		name: models.AuthProviderGitHub,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.CallbackURL,
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
		fetch: githubProfile(apiBase),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider's auth provider value.
func (p *Provider) Name() models.AuthProvider {
	return p.name
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *Provider) context(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}

// Exchange trades the callback code for a token and loads the profile.
func (p *Provider) Exchange(ctx context.Context, code string) (services.OAuthIdentity, error) {
	if code == "" {
		return services.OAuthIdentity{}, ErrMissingCode
	}

	ctx = p.context(ctx)
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return services.OAuthIdentity{}, fmt.Errorf("exchange code: %w", err)
	}

	identity, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		return services.OAuthIdentity{}, fmt.Errorf("fetch %s profile: %w", p.name, err)
	}
	identity.Provider = p.name
	return identity, nil
}

// Registry holds the enabled providers.
type Registry map[models.AuthProvider]*Provider

// NewRegistry enables every provider that has credentials in cfg.
func NewRegistry(cfg *config.Config) Registry {
	r := Registry{}
	if cfg.Google.Enabled() {
		r[models.AuthProviderGoogle] = NewGoogle(cfg.Google)
	}
	if cfg.GitHub.Enabled() {
		r[models.AuthProviderGitHub] = NewGitHub(cfg.GitHub)
	}
	return r
}

// Lookup returns the provider if it is enabled.
func (r Registry) Lookup(name models.AuthProvider) (*Provider, bool) {
	p, ok := r[name]
	return p, ok
}

// NewState returns a random URL-safe state value.
func NewState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// getJSON decodes a successful JSON response from url into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
