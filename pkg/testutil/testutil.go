// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"testing"

	"github.com/pyfold/pyfold/pkg/must"
)

// InTempDir creates a temporary directory, changes into it, and restores the
// old working directory with a cleanup. It returns the path of the temporary
// directory.
func InTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	t.Cleanup(func() { must.OK(os.Chdir(old)) })
	return dir
}

// ApplyDir creates the given files in the current directory.
func ApplyDir(files map[string]string) {
	for name, content := range files {
		must.WriteFile(name, content)
	}
}
