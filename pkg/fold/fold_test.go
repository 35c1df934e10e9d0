package fold

import (
	"crypto/sha256"
	"fmt"
	"os"
	"testing"

	"github.com/pyfold/pyfold/pkg/must"
	"github.com/pyfold/pyfold/pkg/prog"
	"github.com/pyfold/pyfold/pkg/store"
	"github.com/pyfold/pyfold/pkg/testutil"
)

const (
	longSource  = "x = aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa\n"
	shortSource = "x = 1\n"
)

var fixedSource = testutil.Dedent(`
	x = (aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa +
	    aaaaaaaaaa + aaaaaaaaaa)
	`)

func run(t *testing.T, stdin string, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	in := must.OK1(os.CreateTemp(t.TempDir(), "stdin"))
	defer in.Close()
	must.WriteFile(in.Name(), stdin)
	out := must.OK1(os.CreateTemp(t.TempDir(), "stdout"))
	defer out.Close()
	errFile := must.OK1(os.CreateTemp(t.TempDir(), "stderr"))
	defer errFile.Close()

	exit = prog.Run([3]*os.File{in, out, errFile},
		append([]string{"pyfold"}, args...), Program)
	return exit, must.ReadFileString(out.Name()), must.ReadFileString(errFile.Name())
}

func TestProgram_Stdin(t *testing.T) {
	testutil.InTempDir(t)
	exit, stdout, _ := run(t, longSource)
	if exit != 0 || stdout != fixedSource {
		t.Errorf("got (%d, %q), want (0, %q)", exit, stdout, fixedSource)
	}
}

func TestProgram_StdoutDefault(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.py": longSource})
	exit, stdout, _ := run(t, "", "a.py")
	if exit != 0 || stdout != fixedSource {
		t.Errorf("got (%d, %q), want (0, %q)", exit, stdout, fixedSource)
	}
	// The source file stays untouched without -w.
	if got := must.ReadFileString("a.py"); got != longSource {
		t.Errorf("source file rewritten to %q", got)
	}
}

func TestProgram_Write(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.py": longSource})
	exit, stdout, _ := run(t, "", "-w", "a.py")
	if exit != 0 || stdout != "" {
		t.Errorf("got (%d, %q), want (0, no output)", exit, stdout)
	}
	if got := must.ReadFileString("a.py"); got != fixedSource {
		t.Errorf("source file is %q, want %q", got, fixedSource)
	}
}

func TestProgram_List(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.py": longSource, "b.py": shortSource})
	exit, stdout, _ := run(t, "", "-l", "a.py", "b.py")
	if exit != 1 || stdout != "a.py\n" {
		t.Errorf("got (%d, %q), want (1, %q)", exit, stdout, "a.py\n")
	}

	exit, stdout, _ = run(t, "", "-l", "b.py")
	if exit != 0 || stdout != "" {
		t.Errorf("got (%d, %q), want (0, no output)", exit, stdout)
	}
}

func TestProgram_ExcludeFromConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{
		".pyfold.yml": "exclude:\n  - '*.gen.py'\n",
		"a.gen.py":    longSource,
	})
	exit, stdout, _ := run(t, "", "-l", "a.gen.py")
	if exit != 0 || stdout != "" {
		t.Errorf("got (%d, %q), want (0, no output)", exit, stdout)
	}
}

func TestProgram_WriteFromConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{
		".pyfold.yml": "write: true\n",
		"a.py":        longSource,
	})
	exit, _, _ := run(t, "", "a.py")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	if got := must.ReadFileString("a.py"); got != fixedSource {
		t.Errorf("source file is %q, want %q", got, fixedSource)
	}
}

func TestProgram_CacheHit(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.py": longSource})

	// Seed the cache with a recognizable output for this input.
	sum := fmt.Sprintf("%x", sha256.Sum256([]byte(longSource)))
	st := must.OK1(store.NewStore("cache.db"))
	must.OK(st.PutOutput(sum, "CACHED\n"))
	must.OK(st.Close())

	exit, stdout, _ := run(t, "", "-cache", "cache.db", "a.py")
	if exit != 0 || stdout != "CACHED\n" {
		t.Errorf("got (%d, %q), want cached output", exit, stdout)
	}
}

func TestProgram_CachePopulated(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.py": longSource})

	exit, _, _ := run(t, "", "-cache", "cache.db", "a.py")
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}

	sum := fmt.Sprintf("%x", sha256.Sum256([]byte(longSource)))
	st := must.OK1(store.NewStore("cache.db"))
	defer st.Close()
	if got, err := st.CachedOutput(sum); err != nil || got != fixedSource {
		t.Errorf("CachedOutput -> (%q, %v), want (%q, nil)", got, err, fixedSource)
	}
}

func TestProgram_WriteNeedsFiles(t *testing.T) {
	testutil.InTempDir(t)
	exit, _, _ := run(t, "", "-w")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
}

func TestProgram_ParseError(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"bad.py": "x = 'abc\n"})
	exit, _, stderr := run(t, "", "bad.py")
	if exit != 2 || stderr == "" {
		t.Errorf("got (%d, %q), want exit 2 with a message", exit, stderr)
	}
}

func TestProgram_MissingFile(t *testing.T) {
	testutil.InTempDir(t)
	exit, _, stderr := run(t, "", "no-such-file.py")
	if exit != 2 || stderr == "" {
		t.Errorf("got (%d, %q), want exit 2 with a message", exit, stderr)
	}
}
