package filters

import (
	"fmt"
	"regexp"
)

// RegExpFilter matches each argument, including the command token, against
// its own anchored regular expression. The argument count must equal the
// pattern count.
type RegExpFilter struct {
	CommandFilter
	patterns []*regexp.Regexp
}

// NewRegExpFilter creates a filter from one pattern per argument. The first
// pattern covers the command token itself. Patterns are anchored so a
// partial match never authorizes a command.
func NewRegExpFilter(execPath, runAs string, patterns ...string) (*RegExpFilter, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: at least one pattern is required", ErrInvalidDefinition)
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return &RegExpFilter{
		CommandFilter: *NewCommandFilter(execPath, runAs),
		patterns:      compiled,
	}, nil
}

func newRegExpFilter(def Definition) (Filter, error) {
	if def.Exec == "" {
		return nil, ErrMissingExec
	}
	// The command token pattern is implicit: it must equal the exec name.
	patterns := append([]string{regexp.QuoteMeta(def.Exec)}, def.Args...)
	return NewRegExpFilter(def.Exec, def.RunAs, patterns...)
}

// Match reports whether every argument matches its pattern and the counts
// are equal.
func (f *RegExpFilter) Match(args []string) bool {
	if len(args) != len(f.patterns) {
		return false
	}
	for i, re := range f.patterns {
		if !re.MatchString(args[i]) {
			return false
		}
	}
	return true
}
