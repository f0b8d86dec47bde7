package filters

import (
	"errors"
	"fmt"
)

// Error definitions for filter construction
var (
	ErrUnknownFilterClass = errors.New("unknown filter class")
	ErrInvalidDefinition  = errors.New("invalid filter definition")
)

// constructor builds a filter variant from a parsed definition.
type constructor func(def Definition) (Filter, error)

// registry is the closed set of filter classes. Lookup is by the class name
// used in definition files; unknown names are a hard error here, and it is
// the loader's policy whether to skip or fail the whole load.
var registry = map[string]constructor{
	"CommandFilter":     newCommandFilter,
	"RegExpFilter":      newRegExpFilter,
	"PathFilter":        newPathFilter,
	"EnvFilter":         newEnvFilter,
	"ReadFileFilter":    newReadFileFilter,
	"IpNetnsExecFilter": newIpNetnsExecFilter,
}

// New builds a filter from a definition, assigning its load-time name.
func New(def Definition) (Filter, error) {
	build, ok := registry[def.Class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilterClass, def.Class)
	}
	f, err := build(def)
	if err != nil {
		return nil, fmt.Errorf("building %s %q: %w", def.Class, def.Name, err)
	}
	f.SetName(def.Name)
	return f, nil
}

// Classes returns the names of all registered filter classes.
func Classes() []string {
	classes := make([]string, 0, len(registry))
	for class := range registry {
		classes = append(classes, class)
	}
	return classes
}
