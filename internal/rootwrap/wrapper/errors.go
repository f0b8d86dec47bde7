package wrapper

import (
	"errors"
	"fmt"

	"github.com/privgate/go-rootwrap/internal/rootwrap/filters"
)

// ErrNoFilterMatched is returned when no filter accepted the argument
// vector. The caller must treat it as an unconditional denial.
var ErrNoFilterMatched = errors.New("no filter matched")

// NotExecutableError is returned when at least one filter matched the
// argument vector structurally but its executable could not be resolved in
// any of the exec directories. It carries the first such filter so the
// operator can fix the installation rather than guess which rule fired.
type NotExecutableError struct {
	Match filters.Filter
}

// Error implements the error interface
func (e *NotExecutableError) Error() string {
	return fmt.Sprintf("filter %q matched but no executable was found", e.Match.Name())
}

// Is reports whether target is a NotExecutableError, enabling errors.Is
// checks against the type without comparing the carried filter.
func (e *NotExecutableError) Is(target error) bool {
	_, ok := target.(*NotExecutableError)
	return ok
}
