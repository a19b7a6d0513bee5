// Package ebay implements the marketplace provider: an OAuth
// client-credentials token gate and a Browse API client feeding the
// listing filter rules.
package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

// defaultTokenTTL applies when the identity endpoint omits expires_in.
const defaultTokenTTL = 3600 * time.Second

// TokenCache is the process-wide single-slot credential gate. A cached
// token is reused until its expiry; concurrent callers during a refresh
// share one in-flight exchange instead of issuing duplicates.
type TokenCache struct {
	httpClient   *http.Client
	identityURL  string
	clientID     string
	clientSecret string

	group singleflight.Group
	now   func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenCache creates an empty token cache. The first Token call
// performs the initial exchange.
func NewTokenCache(clientID, clientSecret, identityURL string) *TokenCache {
	return &TokenCache{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		identityURL:  identityURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns the cached token while now < expiresAt, otherwise
// refreshes. Single-flight: one credential exchange no matter how many
// aggregation runs ask at once.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		// A waiter may arrive just after the winner stored a fresh token.
		if token, ok := c.cached(); ok {
			return token, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *TokenCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, true
	}
	return "", false
}

// refresh performs the client-credentials exchange and stores the result.
func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.identityURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCredentialFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrCredentialFailure, resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrCredentialFailure, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrCredentialFailure)
	}

	ttl := defaultTokenTTL
	if payload.ExpiresIn > 0 {
		ttl = time.Duration(payload.ExpiresIn) * time.Second
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.expiresAt = c.now().Add(ttl)
	c.mu.Unlock()

	return payload.AccessToken, nil
}
