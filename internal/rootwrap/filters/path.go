package filters

import (
	"path/filepath"
	"strings"
)

// passToken in a constraint list accepts any value for that argument.
const passToken = "pass"

// PathFilter accepts one specific command with per-argument constraints:
// the literal "pass" accepts anything, an absolute path requires the
// argument to stay inside that directory subtree, and any other string must
// match exactly. Subtree containment is checked lexically on the cleaned
// argument, so Match stays independent of filesystem state.
type PathFilter struct {
	CommandFilter
	constraints []string
}

// NewPathFilter creates a filter for execPath with one constraint per
// argument.
func NewPathFilter(execPath, runAs string, constraints ...string) *PathFilter {
	return &PathFilter{
		CommandFilter: *NewCommandFilter(execPath, runAs),
		constraints:   constraints,
	}
}

func newPathFilter(def Definition) (Filter, error) {
	if def.Exec == "" {
		return nil, ErrMissingExec
	}
	return NewPathFilter(def.Exec, def.RunAs, def.Args...), nil
}

// Match reports whether the command token names this filter's command and
// every argument satisfies its constraint.
func (f *PathFilter) Match(args []string) bool {
	if len(args) < 2 || !f.CommandFilter.Match(args) {
		return false
	}
	arguments := args[1:]
	if len(arguments) != len(f.constraints) {
		return false
	}
	for i, constraint := range f.constraints {
		if !argumentAllowed(constraint, arguments[i]) {
			return false
		}
	}
	return true
}

// GetCommand resolves the executable and cleans path arguments so the child
// never sees ".." segments that Match already ruled on.
func (f *PathFilter) GetCommand(args []string, execDirs []string) ([]string, error) {
	exec, ok := f.GetExec(execDirs)
	if !ok {
		return nil, ErrNoExecutableFound
	}
	command := make([]string, 0, len(args))
	command = append(command, exec)
	for i, arg := range args[1:] {
		if i < len(f.constraints) && filepath.IsAbs(f.constraints[i]) {
			command = append(command, filepath.Clean(arg))
			continue
		}
		command = append(command, arg)
	}
	return command, nil
}

func argumentAllowed(constraint, arg string) bool {
	switch {
	case constraint == passToken:
		return true
	case filepath.IsAbs(constraint):
		return pathWithin(constraint, arg)
	default:
		return constraint == arg
	}
}

// pathWithin reports whether arg, after lexical cleaning, is dir itself or
// a descendant of dir. Relative arguments are rejected outright.
func pathWithin(dir, arg string) bool {
	if !filepath.IsAbs(arg) {
		return false
	}
	dir = filepath.Clean(dir)
	arg = filepath.Clean(arg)
	if arg == dir {
		return true
	}
	if dir == string(filepath.Separator) {
		return true
	}
	return strings.HasPrefix(arg, dir+string(filepath.Separator))
}
