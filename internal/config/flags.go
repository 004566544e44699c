package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/esignconn/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-api string       base URL of the eSignature REST API
//	-oauth string     host of the OAuth token service
//	-account string   account identifier
//
// Credentials are deliberately not accepted as flags; they arrive via the
// JSON source configuration.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-api", "-oauth", "-account"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "base URL of the eSignature REST API")
	fs.StringVar(&cfg.OAuthServerURL, "oauth", cfg.OAuthServerURL, "host of the OAuth token service")
	fs.StringVar(&cfg.AccountID, "account", cfg.AccountID, "account identifier")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
