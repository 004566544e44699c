package esign

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

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/esignconn/internal/config"
	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/logging"
)

const (
	// tokenRefreshBuffer is subtracted from the credential expiry when
	// deciding whether a refresh is needed.
	tokenRefreshBuffer = 10 * time.Minute

	// assertionLifetime is the requested validity of the signed assertion.
	assertionLifetime = 10 * time.Minute

	assertionScopes = "signature impersonation"

	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// TokenManager guarantees that every outbound remote call carries a valid
// bearer credential. The credential is acquired lazily on first use and
// replaced when its remaining lifetime falls inside the refresh buffer.
//
// Credentials are handed out per call via Authorization; no shared request
// state is mutated. A race where two in-flight calls both refresh is
// tolerated: the exchange is idempotent and last-write-wins.
type TokenManager struct {
	cfg   *config.Config
	httpc *http.Client
	log   logging.Logger
	now   func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewTokenManager(cfg *config.Config, httpc *http.Client, log logging.Logger) *TokenManager {
	return &TokenManager{cfg: cfg, httpc: httpc, log: log, now: time.Now}
}

// Authorization returns the value for the Authorization header, refreshing
// the credential first when needed.
func (t *TokenManager) Authorization(ctx context.Context) (string, error) {
	if err := t.EnsureValid(ctx); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return "Bearer " + t.accessToken, nil
}

// EnsureValid performs a token exchange if no credential exists or the
// current one expires within the refresh buffer; otherwise it does nothing.
func (t *TokenManager) EnsureValid(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accessToken != "" && t.now().Before(t.expiresAt.Add(-tokenRefreshBuffer)) {
		return nil
	}

	token, expiresIn, err := t.exchange(ctx)
	if err != nil {
		if classified := connerr.Classify(err); classified.Kind() != connerr.KindGeneric {
			return classified
		}
		return connerr.Generic("failed to generate an access token", err)
	}
	if token == "" {
		return connerr.InvalidResponse("found empty response in token generation", nil)
	}

	t.accessToken = token
	t.expiresAt = t.now().Add(time.Duration(expiresIn) * time.Second)
	t.log.Debug(ctx, "access token refreshed", "expires_at", t.expiresAt)
	return nil
}

// exchange runs one OAuth token request using whichever grant variant the
// configuration carries and returns the token with its lifetime in seconds.
func (t *TokenManager) exchange(ctx context.Context) (string, int64, error) {
	form := url.Values{}
	var basicAuth string

	if t.cfg.UseJWTGrant() {
		assertion, err := t.signAssertion()
		if err != nil {
			return "", 0, err
		}
		form.Set("grant_type", jwtBearerGrant)
		form.Set("assertion", assertion)
	} else {
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", t.cfg.RefreshToken)
		creds := t.cfg.ClientID + ":" + t.cfg.ClientSecret
		basicAuth = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	endpoint := "https://" + t.cfg.OAuthServerURL + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if basicAuth != "" {
		req.Header.Set("Authorization", basicAuth)
	}

	resp, err := t.httpc.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, decodeAPIError(http.MethodPost, "/oauth/token", resp, data)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	return payload.AccessToken, payload.ExpiresIn, nil
}

// signAssertion builds the RS256-signed JWT for the jwt-bearer grant.
func (t *TokenManager) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(t.cfg.PrivateKey))
	if err != nil {
		return "", connerr.Configuration(fmt.Sprintf("invalid RSA private key: %v", err), err)
	}

	now := t.now()
	claims := jwt.MapClaims{
		"iss":   t.cfg.ClientID,
		"sub":   t.cfg.UserID,
		"aud":   t.cfg.OAuthServerURL,
		"scope": assertionScopes,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(assertionLifetime)),
		"jti":   uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", connerr.Configuration(fmt.Sprintf("cannot sign token assertion: %v", err), err)
	}
	return signed, nil
}

// UserInfo decodes the current access token server-side and returns the
// identity it represents. Used by the test-connection operation only.
func (t *TokenManager) UserInfo(ctx context.Context) (*UserInfo, error) {
	auth, err := t.Authorization(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := "https://" + t.cfg.OAuthServerURL + "/oauth/userinfo"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(http.MethodGet, "/oauth/userinfo", resp, data)
	}

	var info UserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	return &info, nil
}
