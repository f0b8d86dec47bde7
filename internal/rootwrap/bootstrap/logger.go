//go:build !windows

// Package bootstrap wires process-wide state that must be initialized
// exactly once at startup, before any other component runs.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"log/syslog"
	"os"

	"github.com/privgate/go-rootwrap/internal/logging"
	"github.com/privgate/go-rootwrap/internal/terminal"
)

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	// Level is the minimum level for console output
	Level slog.Level
	// UseSyslog enables the syslog handler
	UseSyslog bool
	// SyslogFacility selects the syslog facility
	SyslogFacility syslog.Priority
	// SyslogLevel is the minimum level forwarded to syslog
	SyslogLevel slog.Level
	// SyslogTag is the program tag prefixed to syslog records
	SyslogTag string
	// ConsoleWriter receives console output (stderr by default)
	ConsoleWriter io.Writer
}

// SetupLogger initializes the process-wide logging system.
//
// This function must be called exactly once during startup, before any
// logging occurs. When the process is attached to an interactive terminal
// the console handler logs at the configured level; when driven by another
// program only errors reach the console, and syslog carries the rest.
func SetupLogger(config LoggerConfig, forceInteractive, forceQuiet bool) error {
	detector := terminal.NewInteractiveDetector(terminal.DetectorOptions{
		ForceInteractive:    forceInteractive,
		ForceNonInteractive: forceQuiet,
	})

	consoleWriter := config.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}
	consoleLevel := config.Level
	if !detector.IsInteractive() {
		consoleLevel = slog.LevelError
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(consoleWriter, &slog.HandlerOptions{Level: consoleLevel}),
	}

	if config.UseSyslog {
		syslogHandler, err := logging.NewSyslogHandler(config.SyslogFacility, config.SyslogTag, config.SyslogLevel)
		if err != nil {
			return fmt.Errorf("failed to create syslog handler: %w", err)
		}
		handlers = append(handlers, syslogHandler)
	}

	slog.SetDefault(slog.New(logging.NewMultiHandler(handlers...)))
	return nil
}
