// Command pyfold rewraps over-long lines in Python source files.
package main

import (
	"os"

	"github.com/pyfold/pyfold/pkg/buildinfo"
	"github.com/pyfold/pyfold/pkg/fold"
	"github.com/pyfold/pyfold/pkg/lsp"
	"github.com/pyfold/pyfold/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program, fold.Program)))
}
