//go:build !windows

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"log/syslog"
	"strings"
	"sync"
)

// facilityNames maps configuration facility names to syslog priorities,
// mirroring the names accepted by syslog daemons.
var facilityNames = map[string]syslog.Priority{
	"auth":     syslog.LOG_AUTH,
	"authpriv": syslog.LOG_AUTHPRIV,
	"cron":     syslog.LOG_CRON,
	"daemon":   syslog.LOG_DAEMON,
	"ftp":      syslog.LOG_FTP,
	"kern":     syslog.LOG_KERN,
	"lpr":      syslog.LOG_LPR,
	"mail":     syslog.LOG_MAIL,
	"news":     syslog.LOG_NEWS,
	"syslog":   syslog.LOG_SYSLOG,
	"user":     syslog.LOG_USER,
	"uucp":     syslog.LOG_UUCP,
	"local0":   syslog.LOG_LOCAL0,
	"local1":   syslog.LOG_LOCAL1,
	"local2":   syslog.LOG_LOCAL2,
	"local3":   syslog.LOG_LOCAL3,
	"local4":   syslog.LOG_LOCAL4,
	"local5":   syslog.LOG_LOCAL5,
	"local6":   syslog.LOG_LOCAL6,
	"local7":   syslog.LOG_LOCAL7,
}

// FacilityByName resolves a syslog facility name (e.g. "daemon", "local0")
// to its priority value. Names are matched case-insensitively and may carry
// a "log_" prefix for compatibility with legacy configurations.
func FacilityByName(name string) (syslog.Priority, bool) {
	key := strings.TrimPrefix(strings.ToLower(name), "log_")
	facility, ok := facilityNames[key]
	return facility, ok
}

// SyslogWriter is the subset of *syslog.Writer used by SyslogHandler,
// extracted so tests can capture messages without a running syslog daemon.
type SyslogWriter interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
}

// SyslogHandler is a slog.Handler that forwards records to the system log.
type SyslogHandler struct {
	writer SyslogWriter
	level  slog.Level
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// NewSyslogHandler creates a handler connected to the local syslog daemon
// with the given facility and tag, dropping records below level.
func NewSyslogHandler(facility syslog.Priority, tag string, level slog.Level) (*SyslogHandler, error) {
	writer, err := syslog.New(facility, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to syslog: %w", err)
	}
	return NewSyslogHandlerWithWriter(writer, level), nil
}

// NewSyslogHandlerWithWriter creates a handler over an existing writer.
func NewSyslogHandlerWithWriter(writer SyslogWriter, level slog.Level) *SyslogHandler {
	return &SyslogHandler{
		writer: writer,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SyslogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as "message key=value ..." and writes it with
// the syslog severity corresponding to the record level.
func (h *SyslogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		writeAttr(&b, prefix, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, prefix, attr)
		return true
	})

	msg := b.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case r.Level >= slog.LevelError:
		return h.writer.Err(msg)
	case r.Level >= slog.LevelWarn:
		return h.writer.Warning(msg)
	case r.Level >= slog.LevelInfo:
		return h.writer.Info(msg)
	default:
		return h.writer.Debug(msg)
	}
}

// WithAttrs returns a new handler with the given attributes appended.
func (h *SyslogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newHandler.attrs = append(newHandler.attrs, h.attrs...)
	newHandler.attrs = append(newHandler.attrs, attrs...)
	return &newHandler
}

// WithGroup returns a new handler with the given group name appended.
func (h *SyslogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := *h
	newHandler.groups = make([]string, 0, len(h.groups)+1)
	newHandler.groups = append(newHandler.groups, h.groups...)
	newHandler.groups = append(newHandler.groups, name)
	return &newHandler
}

func writeAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	b.WriteString(attr.Key)
	b.WriteByte('=')
	b.WriteString(attr.Value.String())
}
