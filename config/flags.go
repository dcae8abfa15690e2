package config

import (
	"flag"
	"os"
	"time"

	"github.com/todoit/accounts/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-s string   reset token HMAC secret key
//	-r int      reset token validity, seconds
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with flags owned by the
// hosting application. The validity flag is accepted as an integer in
// seconds and converted to a time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	resetTokenValidity := fs.Int("r", int(config.ResetTokenValidity.Seconds()), "reset_token_validity (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ResetTokenValidity = time.Duration(*resetTokenValidity) * time.Second
}
