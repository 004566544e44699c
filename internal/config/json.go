package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/esignconn/internal/flagx"
	"github.com/dmitrijs2005/esignconn/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Field names
// match the source-configuration keys of the governance platform. Durations
// accept either strings like "30s" or integer nanoseconds (timex.Duration).
type JsonConfig struct {
	APIURL         string         `json:"apiUrl"`
	OAuthServerURL string         `json:"oauthServerUrl"`
	AccountID      string         `json:"accountId"`
	ClientID       string         `json:"clientId"`
	ClientSecret   string         `json:"clientSecret"`
	RefreshToken   string         `json:"refreshToken"`
	UserID         string         `json:"userId"`
	PrivateKey     string         `json:"privateKey"`
	RequestTimeout timex.Duration `json:"requestTimeout"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c or -config flags; if absent, nothing is loaded. Empty
// JSON fields keep the values already in cfg.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.APIURL, jc.APIURL)
	overlayString(&cfg.OAuthServerURL, jc.OAuthServerURL)
	overlayString(&cfg.AccountID, jc.AccountID)
	overlayString(&cfg.ClientID, jc.ClientID)
	overlayString(&cfg.ClientSecret, jc.ClientSecret)
	overlayString(&cfg.RefreshToken, jc.RefreshToken)
	overlayString(&cfg.UserID, jc.UserID)
	overlayString(&cfg.PrivateKey, jc.PrivateKey)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
