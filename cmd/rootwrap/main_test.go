//go:build !windows

package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privgate/go-rootwrap/internal/cmdcommon"
)

func TestWaitExitCode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"clean exit", []string{"-c", "exit 0"}, 0},
		{"non-zero exit proxied", []string{"-c", "exit 7"}, 7},
		{"signal death mapped above 128", []string{"-c", "kill -TERM $$"}, cmdcommon.SignalExitBase + 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command("sh", tt.args...)
			require.NoError(t, cmd.Start())
			assert.Equal(t, tt.want, waitExitCode(cmd))
		})
	}
}
