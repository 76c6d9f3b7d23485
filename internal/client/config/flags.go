package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/triptracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-o string   origin host used to pick the API gateway
//	-u string   API base URL override
//	-d string   session database path
//	-l string   log level
//
// Only the flags handled here are passed to the flag set, so flags owned by
// other components do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, "o", "u", "d", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.OriginHost, "o", cfg.OriginHost, "origin host")
	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
