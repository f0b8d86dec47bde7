//go:build !windows

package config_test

import (
	"log/slog"
	"log/syslog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privgate/go-rootwrap/internal/rootwrap/config"
)

func TestParse(t *testing.T) {
	content := []byte(`
filters_path = ["/etc/rootwrap.d", "/usr/share/rootwrap"]
exec_dirs = ["/sbin", "/usr/sbin", "/bin", "/usr/bin"]
use_syslog = true
syslog_log_facility = "local0"
syslog_log_level = "warn"
`)

	cfg, err := config.Parse(content)
	require.NoError(t, err)

	assert.Equal(t, []string{"/etc/rootwrap.d", "/usr/share/rootwrap"}, cfg.FiltersPath)
	assert.Equal(t, []string{"/sbin", "/usr/sbin", "/bin", "/usr/bin"}, cfg.ExecDirs)
	assert.True(t, cfg.UseSyslog)
	assert.Equal(t, syslog.LOG_LOCAL0, cfg.SyslogFacility)
	assert.Equal(t, slog.LevelWarn, cfg.SyslogLevel)
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv("PATH", "/custom/bin:/other/bin")

	cfg, err := config.Parse([]byte(`filters_path = ["/etc/rootwrap.d"]`))
	require.NoError(t, err)

	// exec_dirs falls back to the caller's PATH, split in order.
	assert.Equal(t, []string{"/custom/bin", "/other/bin"}, cfg.ExecDirs)
	assert.False(t, cfg.UseSyslog)
	assert.Equal(t, syslog.LOG_SYSLOG, cfg.SyslogFacility)
	assert.Equal(t, slog.LevelError, cfg.SyslogLevel)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing filters_path",
			content: `exec_dirs = ["/bin"]`,
			wantErr: config.ErrFiltersPathRequired,
		},
		{
			name:    "unknown facility",
			content: "filters_path = [\"/x\"]\nsyslog_log_facility = \"nosuch\"",
			wantErr: config.ErrUnknownSyslogFacility,
		},
		{
			name:    "unknown level",
			content: "filters_path = [\"/x\"]\nsyslog_log_level = \"loud\"",
			wantErr: config.ErrUnknownSyslogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := config.Parse([]byte(`filters_path = [`))
	assert.Error(t, err)
}

func TestParse_LegacyFacilityName(t *testing.T) {
	cfg, err := config.Parse([]byte("filters_path = [\"/x\"]\nsyslog_log_facility = \"LOG_DAEMON\""))
	require.NoError(t, err)
	assert.Equal(t, syslog.LOG_DAEMON, cfg.SyslogFacility)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rootwrap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`filters_path = ["/etc/rootwrap.d"]`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/rootwrap.d"}, cfg.FiltersPath)

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
