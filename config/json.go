package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/todoit/accounts/internal/flagx"
	"github.com/todoit/accounts/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "10m" and integer
// nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	ResetTokenValidity timex.Duration `json:"reset_token_validity"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags;
// if neither is set, no JSON file is loaded. If the file cannot be read
// or contains invalid JSON, the function panics.
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

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.ResetTokenValidity = time.Duration(c.ResetTokenValidity.Duration)
}
