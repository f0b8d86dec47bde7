// Package filters defines the whitelist rule contract and its concrete
// variants. A filter decides whether a requested argument vector is an
// allowed command shape and, if so, how to rewrite it into the concrete
// command line and environment to execute.
//
// Match is a pure function of the argument vector: it never consults the
// filesystem or the process environment. Executable resolution is a separate
// step (GetExec/GetCommand) so that "matched" and "executable" stay
// independently testable.
package filters

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Error definitions
var (
	ErrNoExecutableFound = errors.New("no executable found in exec directories")
	ErrMissingExec       = errors.New("filter definition is missing an exec path")
)

// Filter is a single whitelist rule.
type Filter interface {
	// Name returns the rule name assigned at load time. It plays no part
	// in matching.
	Name() string

	// SetName assigns the rule name. Called once by the loader.
	SetName(name string)

	// RunAs returns the identity tag grouping this filter with the leaf
	// filters a chaining filter may delegate into.
	RunAs() string

	// Match reports whether args structurally satisfies this rule. It must
	// not consult the filesystem or the environment.
	Match(args []string) bool

	// GetCommand returns the argument vector to execute, with the command
	// name replaced by its resolved executable path and any filter-defined
	// rewriting applied.
	GetCommand(args []string, execDirs []string) ([]string, error)

	// GetEnvironment returns the environment for the child process: base
	// (or the process environment when base is nil) plus any variables the
	// filter's own definition declares. The matched command line can never
	// inject variables beyond those.
	GetEnvironment(args []string, base map[string]string) (map[string]string, error)

	// GetExec resolves the filter's executable against execDirs. The second
	// return value is false when no executable was found.
	GetExec(execDirs []string) (string, bool)
}

// ChainingFilter is a filter whose matched command itself launches another
// command. The embedded command must be independently validated by the match
// engine before the chaining filter is considered a true match.
type ChainingFilter interface {
	Filter

	// ExecArgs extracts the embedded sub-command's argument vector from
	// args. An empty result means the invocation carries no usable
	// embedded command.
	ExecArgs(args []string) []string
}

// Definition is one parsed filter entry from a definition file. Args carries
// the class-specific parameters: regexp patterns for RegExpFilter, path
// constraints for PathFilter, environment variable declarations for
// EnvFilter.
type Definition struct {
	Name  string   `toml:"name"`
	Class string   `toml:"class"`
	Exec  string   `toml:"exec"`
	RunAs string   `toml:"run_as"`
	Args  []string `toml:"args"`
}

// baseFilter carries the attributes shared by every variant.
type baseFilter struct {
	name  string
	runAs string
}

func (f *baseFilter) Name() string        { return f.name }
func (f *baseFilter) SetName(name string) { f.name = name }
func (f *baseFilter) RunAs() string       { return f.runAs }

// resolveExecutable resolves an exec path against the ordered exec
// directories. An absolute path is accepted as-is when it points at an
// executable file; a bare name is joined with each directory in order and
// the first executable hit wins.
func resolveExecutable(execPath string, execDirs []string) (string, bool) {
	if execPath == "" {
		return "", false
	}
	if filepath.IsAbs(execPath) {
		if isExecutable(execPath) {
			return execPath, true
		}
		return "", false
	}
	for _, dir := range execDirs {
		candidate := filepath.Join(dir, execPath)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// baseEnvironment returns a copy of base, or a snapshot of the process
// environment when base is nil. Filters mutate the returned map freely
// without affecting the caller.
func baseEnvironment(base map[string]string) map[string]string {
	env := make(map[string]string, len(base))
	if base != nil {
		for k, v := range base {
			env[k] = v
		}
		return env
	}
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}

// commandMatches reports whether the requested command token names the
// filter's exec path. The token may be a bare name or a path; only its
// basename is compared, because the executed binary always comes from
// exec-directory resolution, never from the caller's token.
func commandMatches(execPath, token string) bool {
	return token != "" && filepath.Base(token) == filepath.Base(execPath)
}
