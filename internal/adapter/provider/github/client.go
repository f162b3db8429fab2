// Package github implements the GitHub OAuth2 authorization-code flow:
// build the authorization URL, exchange the code for a bearer token, fetch
// the user profile, and fall back to the registered-emails endpoint when
// the profile omits an email.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
)

const scopeUserEmail = "user:email"

// Endpoints holds the four provider URLs. All of them come from
// configuration; the defaults point at github.com.
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
	UserURL      string
	EmailsURL    string
}

// Client performs the authorization-code exchange against GitHub.
// It keeps no state between login attempts; every call is independent.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	endpoints    Endpoints
	httpClient   *http.Client
	log          *slog.Logger
}

// NewClient creates a GitHub OAuth client. Calls are single-attempt with
// no internal retries; callers bound them with the request context, and
// the HTTP client timeout is the backstop.
func NewClient(clientID, clientSecret, redirectURI string, endpoints Endpoints, logger *slog.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		endpoints:    endpoints,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "github_oauth"),
	}
}

// ProviderError reports a non-success HTTP response or malformed payload
// from the identity provider.
type ProviderError struct {
	Op     string // which provider call failed
	Status int    // HTTP status, 0 for transport/decode failures
	Detail string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("github %s: status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("github %s: %s", e.Op, e.Detail)
}

// tokenResponse is the token endpoint payload. Field names are matched
// case-insensitively by encoding/json.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// profileResponse is the user endpoint payload. Email may be absent for
// privacy-configured accounts.
type profileResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// emailEntry is one element of the emails endpoint payload.
type emailEntry struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// AuthorizationURL builds the authorization redirect URL. Pure, no network
// call. The state parameter is included only when non-empty.
func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("scope", scopeUserEmail)
	if state != "" {
		q.Set("state", state)
	}
	return c.endpoints.AuthorizeURL + "?" + q.Encode()
}

// ResolveIdentity runs the full exchange for one login attempt:
// code -> bearer token -> profile -> email-list fallback if the profile
// has no email. Fails with domain.ErrIdentityUnavailable when no usable
// email can be resolved.
func (c *Client) ResolveIdentity(ctx context.Context, code string) (*auth.ProviderIdentity, error) {
	token, err := c.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := c.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	email := profile.Email
	if email == "" {
		email, err = c.fetchPrimaryEmail(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	if email == "" {
		return nil, fmt.Errorf("no email for account %q: %w", profile.Login, domain.ErrIdentityUnavailable)
	}

	c.log.DebugContext(ctx, "github identity resolved", slog.String("login", profile.Login))

	return &auth.ProviderIdentity{
		ProviderID: strconv.FormatInt(profile.ID, 10),
		Login:      profile.Login,
		Name:       profile.Name,
		Email:      email,
		AvatarURL:  profile.AvatarURL,
	}, nil
}

// exchangeCode posts the authorization code to the token endpoint and
// returns the bearer token response.
func (c *Client) exchangeCode(ctx context.Context, code string) (*tokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "github token exchange failed", slog.String("error", err.Error()))
		return nil, &ProviderError{Op: "token exchange", Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: "token exchange", Detail: "failed to read response"}
	}

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "github token exchange failed", slog.Int("status", resp.StatusCode))
		return nil, &ProviderError{Op: "token exchange", Status: resp.StatusCode, Detail: snippet(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &ProviderError{Op: "token exchange", Detail: "invalid json"}
	}
	if token.AccessToken == "" {
		c.log.ErrorContext(ctx, "github token exchange failed", slog.String("error", "missing access_token"))
		return nil, &ProviderError{Op: "token exchange", Detail: "missing access_token"}
	}

	return &token, nil
}

// fetchProfile fetches the authenticated user's profile.
func (c *Client) fetchProfile(ctx context.Context, bearerToken string) (*profileResponse, error) {
	var profile profileResponse
	if err := c.getJSON(ctx, "profile fetch", c.endpoints.UserURL, bearerToken, &profile); err != nil {
		return nil, err
	}
	if profile.ID == 0 || profile.Login == "" {
		return nil, &ProviderError{Op: "profile fetch", Detail: "missing required fields"}
	}
	return &profile, nil
}

// fetchPrimaryEmail fetches the account's registered emails and selects
// the one marked primary, falling back to the first entry. Returns an
// empty string when the account has no registered emails.
func (c *Client) fetchPrimaryEmail(ctx context.Context, bearerToken string) (string, error) {
	var emails []emailEntry
	if err := c.getJSON(ctx, "email fetch", c.endpoints.EmailsURL, bearerToken, &emails); err != nil {
		return "", err
	}
	if len(emails) == 0 {
		return "", nil
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	return emails[0].Email, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, op, endpoint, bearerToken string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "github request failed",
			slog.String("op", op), slog.String("error", err.Error()))
		return &ProviderError{Op: op, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "github request failed",
			slog.String("op", op), slog.Int("status", resp.StatusCode))
		return &ProviderError{Op: op, Status: resp.StatusCode, Detail: snippet(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ProviderError{Op: op, Detail: "invalid json"}
	}
	return nil
}

// snippet truncates a response body for error messages.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max]
	}
	return s
}
