// Package wrapper implements the filter match engine: given the ordered
// filter collection and a requested argument vector, it selects the single
// filter authorized to execute it, or denies the invocation.
package wrapper

import (
	"github.com/privgate/go-rootwrap/internal/rootwrap/filters"
)

// maxChainDepth bounds recursion through chaining filters. Legitimate
// configurations nest a handful of run-as tiers at most; anything deeper is
// treated as no match so a pathological rule set fails closed instead of
// overflowing the stack.
const maxChainDepth = 16

// MatchFilter scans filterList in order and returns the first filter that
// both matches userArgs and resolves to an executable in execDirs.
//
// A matching filter without a resolvable executable does not stop the scan:
// it is remembered, and if no later filter fully succeeds the scan fails
// with a NotExecutableError naming that first remembered filter. When
// nothing matches at all, the failure is ErrNoFilterMatched.
//
// A chaining filter is a true match only if its embedded command is itself
// matched and executable under some non-chaining filter sharing the same
// run-as identity; the chaining filter, not the leaf, is what gets returned
// and executed.
func MatchFilter(filterList []filters.Filter, userArgs []string, execDirs []string) (filters.Filter, error) {
	return matchFilter(filterList, userArgs, execDirs, 0)
}

func matchFilter(filterList []filters.Filter, userArgs []string, execDirs []string, depth int) (filters.Filter, error) {
	var firstNotExecutable filters.Filter

	for _, f := range filterList {
		if !f.Match(userArgs) {
			continue
		}

		if chain, ok := f.(filters.ChainingFilter); ok {
			if depth >= maxChainDepth {
				continue
			}
			embedded := chain.ExecArgs(userArgs)
			if len(embedded) == 0 {
				continue
			}
			// The embedded command must be independently authorized by a
			// leaf filter in the same run-as group. Only success or failure
			// matters: the chaining filter re-runs the full pipeline on the
			// embedded command at execution time.
			if _, err := matchFilter(leafFilters(filterList, f.RunAs()), embedded, execDirs, depth+1); err != nil {
				continue
			}
		}

		if _, ok := f.GetExec(execDirs); !ok {
			if firstNotExecutable == nil {
				firstNotExecutable = f
			}
			continue
		}
		return f, nil
	}

	if firstNotExecutable != nil {
		return nil, &NotExecutableError{Match: firstNotExecutable}
	}
	return nil, ErrNoFilterMatched
}

// leafFilters returns the non-chaining filters sharing the given run-as
// identity, preserving collection order.
func leafFilters(filterList []filters.Filter, runAs string) []filters.Filter {
	leaves := make([]filters.Filter, 0, len(filterList))
	for _, f := range filterList {
		if _, chaining := f.(filters.ChainingFilter); chaining {
			continue
		}
		if f.RunAs() == runAs {
			leaves = append(leaves, f)
		}
	}
	return leaves
}
