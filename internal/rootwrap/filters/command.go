package filters

// CommandFilter accepts any invocation of one specific command, regardless
// of arguments. It is the plainest rule and the base behavior other variants
// build on.
type CommandFilter struct {
	baseFilter
	execPath string
}

// NewCommandFilter creates a filter that matches invocations of execPath.
func NewCommandFilter(execPath, runAs string) *CommandFilter {
	return &CommandFilter{
		baseFilter: baseFilter{runAs: runAs},
		execPath:   execPath,
	}
}

func newCommandFilter(def Definition) (Filter, error) {
	if def.Exec == "" {
		return nil, ErrMissingExec
	}
	return NewCommandFilter(def.Exec, def.RunAs), nil
}

// Match checks only that the first argument names this filter's command.
func (f *CommandFilter) Match(args []string) bool {
	return len(args) > 0 && commandMatches(f.execPath, args[0])
}

// GetCommand replaces the command token with the resolved executable path
// and passes the remaining arguments through unchanged.
func (f *CommandFilter) GetCommand(args []string, execDirs []string) ([]string, error) {
	exec, ok := f.GetExec(execDirs)
	if !ok {
		return nil, ErrNoExecutableFound
	}
	command := make([]string, 0, len(args))
	command = append(command, exec)
	if len(args) > 1 {
		command = append(command, args[1:]...)
	}
	return command, nil
}

// GetEnvironment returns the base environment unchanged.
func (f *CommandFilter) GetEnvironment(_ []string, base map[string]string) (map[string]string, error) {
	return baseEnvironment(base), nil
}

// GetExec resolves the filter's exec path against execDirs.
func (f *CommandFilter) GetExec(execDirs []string) (string, bool) {
	return resolveExecutable(f.execPath, execDirs)
}

// ReadFileFilter allows reading exactly one fixed file with cat.
type ReadFileFilter struct {
	CommandFilter
	filePath string
}

// NewReadFileFilter creates a filter that accepts "cat <filePath>" only.
func NewReadFileFilter(filePath, runAs string) *ReadFileFilter {
	return &ReadFileFilter{
		CommandFilter: *NewCommandFilter("cat", runAs),
		filePath:      filePath,
	}
}

func newReadFileFilter(def Definition) (Filter, error) {
	path := def.Exec
	if path == "" && len(def.Args) > 0 {
		path = def.Args[0]
	}
	if path == "" {
		return nil, ErrMissingExec
	}
	return NewReadFileFilter(path, def.RunAs), nil
}

// Match accepts exactly "cat" followed by the configured file path.
func (f *ReadFileFilter) Match(args []string) bool {
	return len(args) == 2 && args[0] == "cat" && args[1] == f.filePath
}
