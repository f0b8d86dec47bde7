package filters

import "strings"

// EnvFilter accepts one specific command invoked with a fixed set of leading
// NAME=value assignments, optionally prefixed with "env". Exactly the
// declared variable names must appear, so the command line can never smuggle
// an undeclared variable into the child environment.
type EnvFilter struct {
	baseFilter
	execPath string
	envNames []string
}

// NewEnvFilter creates a filter for execPath requiring assignments for
// exactly the given variable names.
func NewEnvFilter(execPath, runAs string, envNames ...string) *EnvFilter {
	names := make([]string, 0, len(envNames))
	for _, name := range envNames {
		// Definitions conventionally write declared variables as "NAME=".
		names = append(names, strings.TrimSuffix(name, "="))
	}
	return &EnvFilter{
		baseFilter: baseFilter{runAs: runAs},
		execPath:   execPath,
		envNames:   names,
	}
}

func newEnvFilter(def Definition) (Filter, error) {
	if def.Exec == "" {
		return nil, ErrMissingExec
	}
	return NewEnvFilter(def.Exec, def.RunAs, def.Args...), nil
}

// Match strips an optional leading "env", extracts the leading assignments,
// and accepts iff they cover exactly the declared names and the following
// token names this filter's command.
func (f *EnvFilter) Match(args []string) bool {
	args = stripEnvCommand(args)
	assignments, count := leadingAssignments(args)
	if count != len(f.envNames) || len(assignments) != len(f.envNames) {
		return false
	}
	for _, name := range f.envNames {
		if _, ok := assignments[name]; !ok {
			return false
		}
	}
	rest := args[count:]
	return len(rest) > 0 && commandMatches(f.execPath, rest[0])
}

// GetCommand strips the "env" prefix and the assignments, then replaces the
// command token with the resolved executable path.
func (f *EnvFilter) GetCommand(args []string, execDirs []string) ([]string, error) {
	exec, ok := f.GetExec(execDirs)
	if !ok {
		return nil, ErrNoExecutableFound
	}
	args = stripEnvCommand(args)
	_, count := leadingAssignments(args)
	rest := args[count:]
	command := make([]string, 0, len(rest))
	command = append(command, exec)
	if len(rest) > 1 {
		command = append(command, rest[1:]...)
	}
	return command, nil
}

// GetEnvironment returns the base environment with the matched assignments
// applied. Match guarantees only declared names appear.
func (f *EnvFilter) GetEnvironment(args []string, base map[string]string) (map[string]string, error) {
	env := baseEnvironment(base)
	assignments, _ := leadingAssignments(stripEnvCommand(args))
	for name, value := range assignments {
		env[name] = value
	}
	return env, nil
}

// GetExec resolves the filter's exec path against execDirs.
func (f *EnvFilter) GetExec(execDirs []string) (string, bool) {
	return resolveExecutable(f.execPath, execDirs)
}

func stripEnvCommand(args []string) []string {
	if len(args) > 0 && args[0] == "env" {
		return args[1:]
	}
	return args
}

// leadingAssignments collects the NAME=value tokens at the front of args,
// stopping at the first token without '='. It returns the assignments and
// the number of tokens consumed; the two differ when a name repeats.
func leadingAssignments(args []string) (map[string]string, int) {
	assignments := make(map[string]string)
	count := 0
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			break
		}
		assignments[name] = value
		count++
	}
	return assignments, count
}
