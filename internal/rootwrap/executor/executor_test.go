//go:build !windows

package executor_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privgate/go-rootwrap/internal/rootwrap/executor"
	"github.com/privgate/go-rootwrap/internal/rootwrap/filters"
	"github.com/privgate/go-rootwrap/internal/rootwrap/wrapper"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func commandFilter(name, execPath, runAs string) filters.Filter {
	f := filters.NewCommandFilter(execPath, runAs)
	f.SetName(name)
	return f
}

func TestInvoker_StartProcess(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet", `echo "hello $1"`)

	invoker := executor.NewInvoker(nil)
	var stdout bytes.Buffer

	cmd, err := invoker.StartProcess(
		[]filters.Filter{commandFilter("greet", "greet", "root")},
		[]string{"greet", "world"},
		[]string{dir},
		executor.SpawnOptions{Stdout: &stdout},
	)
	require.NoError(t, err)
	require.NoError(t, cmd.Wait())

	assert.Equal(t, "hello world\n", stdout.String())
	// The spawned path is the resolved executable, not the bare token.
	assert.Equal(t, filepath.Join(dir, "greet"), cmd.Path)
}

func TestInvoker_StartProcessEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "show-env", `echo "allowed=$ALLOWED_VAR leaky=${LEAKY_VAR:-none}"`)
	t.Setenv("LEAKY_VAR", "secret")

	invoker := executor.NewInvoker(nil)
	var stdout bytes.Buffer

	cmd, err := invoker.StartProcess(
		[]filters.Filter{commandFilter("show-env", "show-env", "root")},
		[]string{"show-env"},
		[]string{dir},
		executor.SpawnOptions{
			Env:    map[string]string{"ALLOWED_VAR": "yes"},
			Stdout: &stdout,
		},
	)
	require.NoError(t, err)
	require.NoError(t, cmd.Wait())

	// The child environment is the supplied base, not the inherited process
	// environment: the base variable is present, the process variable is not.
	assert.Equal(t, "allowed=yes leaky=none\n", stdout.String())
}

func TestInvoker_StartProcessDenials(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet", "exit 0")

	invoker := executor.NewInvoker(nil)
	filterList := []filters.Filter{commandFilter("greet", "greet", "root")}

	t.Run("no filter matched", func(t *testing.T) {
		_, err := invoker.StartProcess(filterList, []string{"rm", "-rf", "/"}, []string{dir}, executor.SpawnOptions{})
		assert.ErrorIs(t, err, wrapper.ErrNoFilterMatched)
	})

	t.Run("match not executable", func(t *testing.T) {
		_, err := invoker.StartProcess(filterList, []string{"greet"}, []string{t.TempDir()}, executor.SpawnOptions{})

		var notExec *wrapper.NotExecutableError
		require.ErrorAs(t, err, &notExec)
		assert.Equal(t, "greet", notExec.Match.Name())
	})
}

func TestInvoker_StartProcessExitCode(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "fail", "exit 3")

	invoker := executor.NewInvoker(nil)

	cmd, err := invoker.StartProcess(
		[]filters.Filter{commandFilter("fail", "fail", "root")},
		[]string{"fail"},
		[]string{dir},
		executor.SpawnOptions{},
	)
	require.NoError(t, err)

	err = cmd.Wait()
	require.Error(t, err)
	assert.Equal(t, 3, cmd.ProcessState.ExitCode())
}
