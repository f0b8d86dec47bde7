// Package audit provides structured audit logging for authorized command
// invocations across the privilege boundary.
package audit

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/privgate/go-rootwrap/internal/logging"
)

// Logger emits the audit trail for command invocations. Every record
// carries a per-process run ID so multi-line trails correlate.
type Logger struct {
	logger *slog.Logger
	runID  string
}

// NewLogger creates a new audit logger instance writing through logger.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{
		logger: logger,
		runID:  logging.GenerateRunID(),
	}
}

// RunID returns the run ID stamped on every record from this logger.
func (a *Logger) RunID() string {
	return a.runID
}

// LogInvocation records an authorized command invocation. It must be called
// before the child is spawned, so a launch failure still leaves a trail of
// intent.
func (a *Logger) LogInvocation(actingLogin, targetUser string, command []string, filterName string) {
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, "Executing authorized command",
		slog.String("audit_type", "command_invocation"),
		slog.Int64("timestamp", time.Now().Unix()),
		slog.String("acting_login", actingLogin),
		slog.String("target_user", targetUser),
		slog.String("command", strings.Join(command, " ")),
		slog.String("filter_name", filterName),
		slog.String("run_id", a.runID),
		slog.Int("user_id", os.Getuid()),
		slog.Int("effective_user_id", os.Geteuid()),
		slog.Int("process_id", os.Getpid()),
	)
}

// LogDenial records a denied invocation with the failure reason. Like
// LogInvocation it fires before the caller reports the denial, keeping the
// trail complete even if the process is killed while exiting.
func (a *Logger) LogDenial(actingLogin string, userArgs []string, reason string) {
	a.logger.LogAttrs(context.Background(), slog.LevelWarn, "Denied command",
		slog.String("audit_type", "command_denial"),
		slog.Int64("timestamp", time.Now().Unix()),
		slog.String("acting_login", actingLogin),
		slog.String("command", strings.Join(userArgs, " ")),
		slog.String("reason", reason),
		slog.String("run_id", a.runID),
		slog.Int("user_id", os.Getuid()),
		slog.Int("effective_user_id", os.Geteuid()),
		slog.Int("process_id", os.Getpid()),
	)
}
