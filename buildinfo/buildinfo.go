// Package buildinfo reports how a binary was built, so that analysis outputs
// can be traced back to an exact commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

type BuildInfo struct {
	Package   string
	GoVersion string
	Commit    string
	BuiltAt   string
	Modified  bool
}

func (b BuildInfo) String() string {
	if b.Commit == "" {
		return fmt.Sprintf("%s built with %s (no VCS metadata)", b.Package, b.GoVersion)
	}

	commit := b.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}

	out := fmt.Sprintf("%s built with %s at commit %s (%s)", b.Package, b.GoVersion, commit, b.BuiltAt)
	if b.Modified {
		out += ", with uncommitted changes"
	}

	return out
}

// Get reads the binary's embedded module and VCS metadata. Fields are empty
// when the binary was built outside a checkout.
func Get() BuildInfo {
	out := BuildInfo{}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Package = info.Path
	out.GoVersion = info.GoVersion

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.BuiltAt = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
