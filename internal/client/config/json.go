package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/triptracker/internal/flagx"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell an absent key apart from an empty value.
type JSONConfig struct {
	OriginHost   *string `json:"origin_host"`
	APIBaseURL   *string `json:"api_base_url"`
	DatabasePath *string `json:"database_path"`
	LogLevel     *string `json:"log_level"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing changes.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.OriginHost, jc.OriginHost)
	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
