// Package cmdcommon provides common functionality for command-line tools.
package cmdcommon

// Exit codes returned by the rootwrap command. The child's own exit code is
// proxied on success; these values cover failures of the wrapper itself.
const (
	// ExitBadConfig indicates the wrapper configuration could not be loaded
	ExitBadConfig = 1
	// ExitNoCommand indicates no command was supplied on the command line
	ExitNoCommand = 2
	// ExitNotExecutable indicates a filter matched but its executable was
	// not found in any of the configured exec directories
	ExitNotExecutable = 96
	// ExitUnauthorized indicates no filter authorized the command
	ExitUnauthorized = 99

	// SignalExitBase is added to the signal number when the child was
	// terminated by a signal, following shell conventions
	SignalExitBase = 128
)
