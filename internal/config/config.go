package config

import (
	"fmt"
	"time"
)

// Config holds the source configuration of the eSignature connector.
//
// Authentication uses one of two OAuth grant variants:
//   - JWT bearer: ClientID + UserID + PrivateKey (PEM-encoded RSA key of an
//     impersonated integration user).
//   - Refresh token: ClientID + ClientSecret + RefreshToken.
//
// Exactly one complete pair must be configured.
type Config struct {
	// APIURL is the base URL of the eSignature REST API, without the
	// versioned /restapi suffix.
	APIURL string
	// OAuthServerURL is the host of the OAuth token service.
	OAuthServerURL string
	// AccountID is the external account number or account ID GUID that all
	// user and group operations are scoped to.
	AccountID string

	ClientID     string
	ClientSecret string
	RefreshToken string
	UserID       string
	PrivateKey   string

	// RequestTimeout bounds a single HTTP exchange. Zero means no timeout;
	// operation pacing is then bounded only by the rate-limit retry policy.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with development defaults. Credentials have no
// defaults and must always be supplied.
func (c *Config) LoadDefaults() {
	c.OAuthServerURL = "account-d.docusign.com"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks that every required field is present and that exactly one
// auth variant is completely configured. It is called before any remote call
// is attempted; a failure here is a fatal configuration error.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("'apiUrl' is required")
	}
	if c.OAuthServerURL == "" {
		return fmt.Errorf("'oauthServerUrl' is required")
	}
	if c.AccountID == "" {
		return fmt.Errorf("'accountId' is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("'clientId' is required")
	}

	hasSecretPair := c.ClientSecret != "" && c.RefreshToken != ""
	hasKeyPair := c.UserID != "" && c.PrivateKey != ""

	switch {
	case hasSecretPair && hasKeyPair:
		return fmt.Errorf("configure either 'clientSecret'/'refreshToken' or 'userId'/'privateKey', not both")
	case !hasSecretPair && !hasKeyPair:
		if c.ClientSecret != "" || c.RefreshToken != "" {
			return fmt.Errorf("'clientSecret' and 'refreshToken' are both required for the refresh-token grant")
		}
		if c.UserID != "" || c.PrivateKey != "" {
			return fmt.Errorf("'userId' and 'privateKey' are both required for the JWT grant")
		}
		return fmt.Errorf("credentials are required: either 'clientSecret'/'refreshToken' or 'userId'/'privateKey'")
	}

	return nil
}

// UseJWTGrant reports whether the JWT-bearer grant variant is configured.
func (c *Config) UseJWTGrant() bool {
	return c.UserID != "" && c.PrivateKey != ""
}
