package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/flagx"
	"github.com/dmitrijs2005/accmachine/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "2s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	EndpointURL    string         `json:"endpoint_url"`
	DatabasePath   string         `json:"database_path"`
	TargetCount    int            `json:"target_count"`
	RequestDelay   timex.Duration `json:"request_delay"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ProfilePath    string         `json:"profile_path"`
	TraceFile      string         `json:"trace_file"`
	DryRun         *bool          `json:"dry_run"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags (flagx.JsonConfigFlags); with no path
// nothing happens. Only keys present in the file override the defaults.
// Panics on read or unmarshal errors.
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

	if jc.EndpointURL != "" {
		cfg.EndpointURL = jc.EndpointURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.TargetCount != 0 {
		cfg.TargetCount = jc.TargetCount
	}
	if jc.RequestDelay.Duration != 0 {
		cfg.RequestDelay = time.Duration(jc.RequestDelay.Duration)
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ProfilePath != "" {
		cfg.ProfilePath = jc.ProfilePath
	}
	if jc.TraceFile != "" {
		cfg.TraceFile = jc.TraceFile
	}
	if jc.DryRun != nil {
		cfg.DryRun = *jc.DryRun
	}
}
