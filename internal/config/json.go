package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shindearyan179/notesnap/internal/flagx"
	"github.com/shindearyan179/notesnap/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	Backend              string         `json:"backend"`
	DatabaseDSN          string         `json:"database_dsn"`
	DataDir              string         `json:"data_dir"`
	EncryptionSecret     string         `json:"encryption_secret"`
	SessionValidity      timex.Duration `json:"session_validity"`
	SessionRenewalWindow timex.Duration `json:"session_renewal_window"`
	RateLimitMax         int            `json:"rate_limit_max"`
	RateLimitWindow      timex.Duration `json:"rate_limit_window"`
	StorageTimeout       timex.Duration `json:"storage_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config flags; if neither is set,
// no JSON file is loaded. Unreadable or invalid files panic: a deployment
// that points at a broken config file should not start.
//
// Only fields present in the file override the current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Backend != "" {
		config.Backend = Backend(c.Backend)
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.DataDir != "" {
		config.DataDir = c.DataDir
	}
	if c.EncryptionSecret != "" {
		config.EncryptionSecret = c.EncryptionSecret
	}
	if c.SessionValidity.Duration != 0 {
		config.SessionValidity = time.Duration(c.SessionValidity.Duration)
	}
	if c.SessionRenewalWindow.Duration != 0 {
		config.SessionRenewalWindow = time.Duration(c.SessionRenewalWindow.Duration)
	}
	if c.RateLimitMax != 0 {
		config.RateLimitMax = c.RateLimitMax
	}
	if c.RateLimitWindow.Duration != 0 {
		config.RateLimitWindow = time.Duration(c.RateLimitWindow.Duration)
	}
	if c.StorageTimeout.Duration != 0 {
		config.StorageTimeout = time.Duration(c.StorageTimeout.Duration)
	}
}
