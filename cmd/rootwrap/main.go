//go:build !windows

// Package main provides the rootwrap command, the privilege-boundary
// gatekeeper binary. It receives an already-tokenized command line from an
// unprivileged caller, checks it against the configured filter whitelist,
// and executes the matched command, proxying its exit status.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/privgate/go-rootwrap/internal/cmdcommon"
	"github.com/privgate/go-rootwrap/internal/rootwrap/audit"
	"github.com/privgate/go-rootwrap/internal/rootwrap/bootstrap"
	"github.com/privgate/go-rootwrap/internal/rootwrap/config"
	"github.com/privgate/go-rootwrap/internal/rootwrap/executor"
	"github.com/privgate/go-rootwrap/internal/rootwrap/loader"
	"github.com/privgate/go-rootwrap/internal/rootwrap/wrapper"
)

var (
	logLevel         = flag.String("log-level", "info", "console log level (debug, info, warn, error)")
	forceInteractive = flag.Bool("force-interactive", false, "treat the terminal as interactive")
	forceQuiet       = flag.Bool("quiet", false, "suppress console output below error level")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] CONFIG_FILE COMMAND [ARGS...]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		return cmdcommon.ExitNoCommand
	}
	configPath, userArgs := args[0], args[1:]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return cmdcommon.ExitBadConfig
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		return cmdcommon.ExitBadConfig
	}

	if err := bootstrap.SetupLogger(bootstrap.LoggerConfig{
		Level:          level,
		UseSyslog:      cfg.UseSyslog,
		SyslogFacility: cfg.SyslogFacility,
		SyslogLevel:    cfg.SyslogLevel,
		SyslogTag:      filepath.Base(os.Args[0]),
	}, *forceInteractive, *forceQuiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		return cmdcommon.ExitBadConfig
	}

	filterList, err := loader.NewLoader().LoadFilters(cfg.FiltersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading filter definitions: %v\n", err)
		return cmdcommon.ExitBadConfig
	}

	invoker := executor.NewInvoker(audit.NewLogger(slog.Default()))
	cmd, err := invoker.StartProcess(filterList, userArgs, cfg.ExecDirs, executor.SpawnOptions{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		LogInvocation: cfg.UseSyslog,
	})
	if err != nil {
		var notExec *wrapper.NotExecutableError
		switch {
		case errors.Is(err, wrapper.ErrNoFilterMatched):
			fmt.Fprintf(os.Stderr, "Unauthorized command: %v (no filter matched)\n", userArgs)
			return cmdcommon.ExitUnauthorized
		case errors.As(err, &notExec):
			fmt.Fprintf(os.Stderr, "Executable not found for filter %q\n", notExec.Match.Name())
			return cmdcommon.ExitNotExecutable
		default:
			fmt.Fprintf(os.Stderr, "Error running command: %v\n", err)
			return cmdcommon.ExitBadConfig
		}
	}

	return waitExitCode(cmd)
}

// waitExitCode waits for the child and converts its wait status to an exit
// code, mapping signal deaths to 128+signal per shell convention.
func waitExitCode(cmd *exec.Cmd) int {
	err := cmd.Wait()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return cmdcommon.SignalExitBase + int(status.Signal())
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintf(os.Stderr, "Error waiting for command: %v\n", err)
	return cmdcommon.ExitBadConfig
}
