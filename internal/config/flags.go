package config

import (
	"flag"
	"os"
	"time"

	"github.com/shindearyan179/notesnap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   backend: "postgres" or "file"
//	-d string   PostgreSQL DSN
//	-f string   data directory for the file backend
//	-k string   encryption secret
//	-t int      session validity, hours
//	-l int      rate limit: max attempts per window
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration flags
// are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-f", "-k", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	backend := fs.String("b", string(config.Backend), "storage backend (postgres|file)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory for the file backend")
	fs.StringVar(&config.EncryptionSecret, "k", config.EncryptionSecret, "encryption secret")

	sessionValidityHours := fs.Int("t", int(config.SessionValidity.Hours()), "session validity (in hours)")
	fs.IntVar(&config.RateLimitMax, "l", config.RateLimitMax, "max attempts per rate limit window")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Backend = Backend(*backend)
	config.SessionValidity = time.Duration(*sessionValidityHours) * time.Hour
}
