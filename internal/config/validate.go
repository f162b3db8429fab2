package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	// Partial GitHub credentials are a deployment mistake, not a disabled
	// provider. All-or-nothing.
	set := 0
	for _, v := range []string{c.Auth.GitHubClientID, c.Auth.GitHubClientSecret, c.Auth.GitHubRedirectURI} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("github oauth requires client_id, client_secret and redirect_uri together")
	}

	for name, u := range map[string]string{
		"github_authorize_url": c.Auth.GitHubAuthorizeURL,
		"github_token_url":     c.Auth.GitHubTokenURL,
		"github_user_url":      c.Auth.GitHubUserURL,
		"github_emails_url":    c.Auth.GitHubEmailsURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("auth.%s must be an http(s) URL (got %q)", name, u)
		}
	}

	return nil
}
