package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/seventour/seventour/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given in whole seconds.
type JsonConfig struct {
	ServerBaseURL         string `json:"server_base_url"`
	DatabasePath          string `json:"database_path"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given by the -c/-config flags. With no such flag the function is a
// no-op. Read or unmarshal errors panic; the intended order is
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
}
