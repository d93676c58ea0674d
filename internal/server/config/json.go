package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Alok0227/rallly/internal/flagx"
	"github.com/Alok0227/rallly/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "720h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr     string         `json:"endpoint_addr"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	DemoLifetime     timex.Duration `json:"demo_lifetime"`
	InactivityWindow timex.Duration `json:"inactivity_window"`
	GracePeriod      timex.Duration `json:"grace_period"`
	SweepSchedule    string         `json:"sweep_schedule"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a broken config file must
// not silently fall back to defaults.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.DemoLifetime = time.Duration(c.DemoLifetime.Duration)
	config.InactivityWindow = time.Duration(c.InactivityWindow.Duration)
	config.GracePeriod = time.Duration(c.GracePeriod.Duration)
	config.SweepSchedule = c.SweepSchedule
}
