// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/pyfold/pyfold/pkg/buildinfo.VersionSuffix=value"
// to "go build".
package buildinfo

import (
	"fmt"
	"os"

	"github.com/pyfold/pyfold/pkg/prog"
)

// Version identifies the version of pyfold. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "pyfold -version" to
// build the full version string. It can be overridden when building.
var VersionSuffix = "-dev.unknown"

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version {
		return prog.ErrNotSuitable
	}
	fmt.Fprintln(fds[1], Version+VersionSuffix)
	return nil
}
