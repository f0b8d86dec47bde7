// Package config loads and validates the wrapper configuration: where
// filter definitions live, which directories resolve bare command names,
// and how the wrapper logs to syslog.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"log/syslog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/privgate/go-rootwrap/internal/logging"
)

// Error definitions for the config package
var (
	// ErrFiltersPathRequired is returned when the configuration does not
	// name any filter definition directory
	ErrFiltersPathRequired = errors.New("filters_path must list at least one directory")
	// ErrUnknownSyslogFacility is returned for an unrecognized facility name
	ErrUnknownSyslogFacility = errors.New("unexpected syslog_log_facility")
	// ErrUnknownSyslogLevel is returned for an unrecognized level name
	ErrUnknownSyslogLevel = errors.New("unexpected syslog_log_level")
)

// Config is the validated wrapper configuration.
type Config struct {
	// FiltersPath lists the directories scanned for filter definition files
	FiltersPath []string
	// ExecDirs lists the directories searched, in order, to resolve a bare
	// command name to an absolute executable path
	ExecDirs []string
	// UseSyslog enables the syslog log handler
	UseSyslog bool
	// SyslogFacility is the facility for syslog records
	SyslogFacility syslog.Priority
	// SyslogLevel is the minimum level forwarded to syslog
	SyslogLevel slog.Level
}

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	FiltersPath       []string `toml:"filters_path"`
	ExecDirs          []string `toml:"exec_dirs"`
	UseSyslog         bool     `toml:"use_syslog"`
	SyslogLogFacility string   `toml:"syslog_log_facility"`
	SyslogLogLevel    string   `toml:"syslog_log_level"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates TOML configuration content. Missing exec_dirs
// falls back to the caller's PATH so bare command names resolve the same
// way the invoking shell would.
func Parse(content []byte) (*Config, error) {
	var raw fileConfig
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(raw.FiltersPath) == 0 {
		return nil, ErrFiltersPathRequired
	}

	cfg := &Config{
		FiltersPath:    raw.FiltersPath,
		ExecDirs:       raw.ExecDirs,
		UseSyslog:      raw.UseSyslog,
		SyslogFacility: syslog.LOG_SYSLOG,
		SyslogLevel:    slog.LevelError,
	}

	if len(cfg.ExecDirs) == 0 {
		if path := os.Getenv("PATH"); path != "" {
			cfg.ExecDirs = strings.Split(path, string(os.PathListSeparator))
		}
	}

	if raw.SyslogLogFacility != "" {
		facility, ok := logging.FacilityByName(raw.SyslogLogFacility)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSyslogFacility, raw.SyslogLogFacility)
		}
		cfg.SyslogFacility = facility
	}

	if raw.SyslogLogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw.SyslogLogLevel)); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSyslogLevel, raw.SyslogLogLevel)
		}
		cfg.SyslogLevel = level
	}

	return cfg, nil
}
