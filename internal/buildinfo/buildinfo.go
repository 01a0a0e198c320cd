// Package buildinfo reports what binary is running. Release builds set the variables
// with -ldflags:
//
//	go build -ldflags "-X graphvis/internal/buildinfo.Version=v1.2.0"
//
// Otherwise the VCS stamp that the go command embeds is used when present.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// vcs returns the embedded revision and commit time, if any.
func vcs() (rev, at string) {
	bi, ok := readBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return rev, at
}

func commit() (rev, at string) {
	rev, at = Commit, Date
	if rev == "" {
		vrev, vat := vcs()
		rev = vrev
		if at == "" {
			at = vat
		}
	}
	return rev, at
}

// Short is the version for window titles: the release tag, else a 12-digit commit,
// else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	rev, _ := commit()
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" {
		return rev
	}
	return "dev"
}

// String is the long form printed by -version.
func String() string {
	rev, at := commit()
	if rev == "" {
		rev = "unknown"
	}
	if at == "" {
		at = "unknown"
	}
	return fmt.Sprintf("graphvis %s (commit %s, built %s)", Version, rev, at)
}
