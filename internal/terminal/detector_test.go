package terminal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/privgate/go-rootwrap/internal/terminal"
)

func TestDetector_ForceOverrides(t *testing.T) {
	forced := terminal.NewInteractiveDetector(terminal.DetectorOptions{ForceInteractive: true})
	assert.True(t, forced.IsInteractive())

	quiet := terminal.NewInteractiveDetector(terminal.DetectorOptions{ForceNonInteractive: true})
	assert.False(t, quiet.IsInteractive())

	// ForceInteractive wins over CI environment detection.
	t.Setenv("CI", "true")
	assert.True(t, forced.IsInteractive())
}

func TestDetector_CIEnvironmentIsNotInteractive(t *testing.T) {
	t.Setenv("CI", "true")

	detector := terminal.NewInteractiveDetector(terminal.DetectorOptions{})
	assert.False(t, detector.IsInteractive())
}
