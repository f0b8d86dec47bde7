//go:build !windows

// Package executor is the invoker: it turns a matched filter and the
// original argument vector into a concrete executable, argument list, and
// environment, then starts the child process.
package executor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"os/user"
	"sort"
	"strconv"
	"syscall"

	"github.com/privgate/go-rootwrap/internal/rootwrap/audit"
	"github.com/privgate/go-rootwrap/internal/rootwrap/filters"
	"github.com/privgate/go-rootwrap/internal/rootwrap/wrapper"
)

// SpawnOptions controls how the child process is started.
type SpawnOptions struct {
	// Env is the base environment for the child. When nil, the invoker's
	// own environment is the base. The matched filter may add the variables
	// its definition declares, nothing else.
	Env map[string]string

	// Standard stream wiring for the child. Nil values leave the stream
	// disconnected.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LogInvocation emits the audit record before the child is spawned.
	LogInvocation bool
}

// Invoker matches an argument vector against the filter collection and
// launches the authorized command.
type Invoker struct {
	audit *audit.Logger
}

// NewInvoker creates an invoker that writes its audit trail through
// auditLogger. auditLogger may be nil when no audit trail is wanted.
func NewInvoker(auditLogger *audit.Logger) *Invoker {
	return &Invoker{audit: auditLogger}
}

// StartProcess selects the filter authorizing userArgs, resolves the final
// command and environment, and starts the child. The returned command has
// been started but not waited for.
//
// On denial the error is ErrNoFilterMatched or a NotExecutableError from
// the match engine; no process is spawned.
func (i *Invoker) StartProcess(filterList []filters.Filter, userArgs []string, execDirs []string, opts SpawnOptions) (*exec.Cmd, error) {
	matched, err := wrapper.MatchFilter(filterList, userArgs, execDirs)
	if err != nil {
		if i.audit != nil && opts.LogInvocation {
			i.audit.LogDenial(getLogin(), userArgs, err.Error())
		}
		return nil, err
	}

	command, err := matched.GetCommand(userArgs, execDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve command for filter %q: %w", matched.Name(), err)
	}
	env, err := matched.GetEnvironment(userArgs, opts.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve environment for filter %q: %w", matched.Name(), err)
	}

	// Audit before spawn: a launch failure must still leave a trail of intent.
	if i.audit != nil && opts.LogInvocation {
		i.audit.LogInvocation(getLogin(), realUserName(), command, matched.Name())
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = environList(env)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	// The Go runtime suppresses SIGPIPE; native children expect the default
	// disposition. Restore it immediately before the fork so the child
	// inherits it.
	signal.Reset(syscall.SIGPIPE)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command[0], err)
	}
	return cmd, nil
}

// environList flattens an environment map into the sorted KEY=value slice
// os/exec expects. Sorting keeps spawns reproducible for identical inputs.
func environList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}

// getLogin returns the login of the invoking user. Under sudo the real and
// effective uids are both the target's, so SUDO_USER is checked first, then
// the conventional login environment variables.
func getLogin() string {
	for _, key := range []string{"SUDO_USER", "USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// realUserName resolves the name of the real uid, the identity the child
// effectively runs as.
func realUserName() string {
	uid := os.Getuid()
	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		return u.Username
	}
	return strconv.Itoa(uid)
}
