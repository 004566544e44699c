// Package esign is the typed client for the remote eSignature user and group
// management API: an HTTP client scoped to one account, a token manager for
// the OAuth grant, and a request executor that recovers from rate limiting.
package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/esignconn/internal/config"
	"github.com/dmitrijs2005/esignconn/internal/logging"
)

const (
	baseURISuffix = "/restapi"
	apiVersion    = "v2.1"
)

// ListPageLimit is the maximum page size the remote API accepts.
const ListPageLimit = 100

// Client talks to the remote eSignature API for a single account. All calls
// obtain a bearer credential from the token manager per request and run
// through the rate-limit-aware executor.
type Client struct {
	httpc     *http.Client
	baseURL   string
	accountID string
	tokens    *TokenManager
	log       logging.Logger
	now       func() time.Time
}

func NewClient(cfg *config.Config, log logging.Logger) *Client {
	httpc := &http.Client{Timeout: cfg.RequestTimeout}
	return &Client{
		httpc:     httpc,
		baseURL:   strings.TrimRight(cfg.APIURL, "/") + baseURISuffix,
		accountID: cfg.AccountID,
		tokens:    NewTokenManager(cfg, httpc, log),
		log:       log,
		now:       time.Now,
	}
}

// Tokens returns the client's token manager.
func (c *Client) Tokens() *TokenManager { return c.tokens }

// do performs one HTTP exchange against the account-scoped API: it obtains
// the bearer credential, sends the request and decodes the JSON response
// into out. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	auth, err := c.tokens.Authorization(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := fmt.Sprintf("%s/%s/accounts/%s%s", c.baseURL, apiVersion, c.accountID, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(method, path, resp, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
