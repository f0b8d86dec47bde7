package filters

import "path/filepath"

// IpNetnsExecFilter accepts "ip netns exec <namespace> <command>..." and
// exposes the embedded command for independent validation. Network
// namespaces require root, so the filter refuses to match under any other
// run-as identity.
type IpNetnsExecFilter struct {
	CommandFilter
}

// ipNetnsPrefixLen covers "ip netns exec <namespace>".
const ipNetnsPrefixLen = 4

// NewIpNetnsExecFilter creates a chaining filter for ip netns exec.
func NewIpNetnsExecFilter(execPath, runAs string) *IpNetnsExecFilter {
	return &IpNetnsExecFilter{
		CommandFilter: *NewCommandFilter(execPath, runAs),
	}
}

func newIpNetnsExecFilter(def Definition) (Filter, error) {
	execPath := def.Exec
	if execPath == "" {
		execPath = "ip"
	}
	return NewIpNetnsExecFilter(execPath, def.RunAs), nil
}

// Match accepts "ip netns exec <namespace> <command>..." with at least one
// embedded command token, only when running as root.
func (f *IpNetnsExecFilter) Match(args []string) bool {
	if f.RunAs() != "root" {
		return false
	}
	if len(args) <= ipNetnsPrefixLen {
		return false
	}
	return args[0] == "ip" && args[1] == "netns" && args[2] == "exec"
}

// ExecArgs returns the embedded command's argument vector. The embedded
// command token is reduced to its basename so leaf filters match it the
// same way they would a direct invocation.
func (f *IpNetnsExecFilter) ExecArgs(args []string) []string {
	if len(args) <= ipNetnsPrefixLen {
		return nil
	}
	embedded := make([]string, len(args)-ipNetnsPrefixLen)
	copy(embedded, args[ipNetnsPrefixLen:])
	embedded[0] = filepath.Base(embedded[0])
	return embedded
}
