// Package fold implements the formatter subprogram: it reads Python sources,
// rewraps lines longer than the width limit, and writes the results to
// stdout or back to the source files.
package fold

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pyfold/pyfold/pkg/diag"
	"github.com/pyfold/pyfold/pkg/fix"
	"github.com/pyfold/pyfold/pkg/logutil"
	"github.com/pyfold/pyfold/pkg/parse"
	"github.com/pyfold/pyfold/pkg/prog"
	"github.com/pyfold/pyfold/pkg/store"
)

var logger = logutil.GetLogger("[fold] ")

// Program is the formatter subprogram. It is the fallback of the composite
// program and is always suitable.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !isatty.IsTerminal(fds[2].Fd()) {
		diag.DisableStyling()
	}

	cfg, err := loadConfig(f.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	write := f.Write || cfg.Write
	if f.Cache != "" {
		cfg.Cache = f.Cache
	}

	var st store.Store
	if cfg.Cache != "" {
		st, err = store.NewStore(cfg.Cache)
		if err != nil {
			// The cache is an optimization; a broken cache file should not
			// stop the formatter.
			fmt.Fprintln(fds[2], "warning: cannot open cache:", err)
		} else {
			defer st.Close()
		}
	}

	if len(args) == 0 {
		if f.Write || f.List {
			return prog.BadUsage("-w and -l require file arguments")
		}
		content, err := io.ReadAll(fds[0])
		if err != nil {
			return err
		}
		out, err := fixContent(st, "stdin", string(content))
		if err != nil {
			diag.ShowError(fds[2], err)
			return prog.Exit(2)
		}
		_, err = fds[1].WriteString(out)
		return err
	}

	failed, diffs := false, false
	for _, name := range args {
		if cfg.excludes(name) {
			logger.Printf("skipping excluded file %s", name)
			continue
		}
		content, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(fds[2], err)
			failed = true
			continue
		}
		out, err := fixContent(st, name, string(content))
		if err != nil {
			diag.ShowError(fds[2], err)
			failed = true
			continue
		}
		switch {
		case f.List:
			if out != string(content) {
				fmt.Fprintln(fds[1], name)
				diffs = true
			}
		case write:
			if out != string(content) {
				if err := os.WriteFile(name, []byte(out), 0o644); err != nil {
					fmt.Fprintln(fds[2], err)
					failed = true
				}
			}
		default:
			if _, err := fds[1].WriteString(out); err != nil {
				return err
			}
		}
	}
	if failed {
		return prog.Exit(2)
	}
	if diffs {
		return prog.Exit(1)
	}
	return nil
}

// fixContent rewraps content, consulting the result cache if there is one.
func fixContent(st store.Store, name, content string) (string, error) {
	var sum string
	if st != nil {
		sum = fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
		if out, err := st.CachedOutput(sum); err == nil {
			logger.Printf("cache hit for %s", name)
			return out, nil
		}
	}
	out, err := fix.Source(parse.Source{Name: name, Code: content})
	if err != nil {
		return "", err
	}
	if st != nil {
		if err := st.PutOutput(sum, out); err != nil {
			logger.Printf("cannot cache output for %s: %v", name, err)
		}
	}
	return out, nil
}
