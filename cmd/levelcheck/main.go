// Command levelcheck parses level files and prints a summary of each.
//
// With no arguments it checks the embedded levels. Arguments may be level
// files or directories of them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/pandamonium/levels"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("levelcheck", flag.ContinueOnError)
	fset.SetOutput(stderr)
	strict := fset.Bool("strict", false, "reject unknown level characters")
	werror := fset.Bool("werror", false, "treat warnings as errors")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	var opts []levels.Option
	if *strict {
		opts = append(opts, levels.Strict())
	}

	var results []result
	if fset.NArg() == 0 {
		for _, name := range levels.Names() {
			m, err := levels.LoadLevelFromFS(levels.LevelsFS, name, opts...)
			results = append(results, result{source: "embedded:" + name, m: m, err: err})
		}
	} else {
		paths, err := expand(fset.Args())
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		for _, path := range paths {
			results = append(results, checkFile(path, opts...))
		}
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", r.source, r.err)
			failed++
			continue
		}

		warnings := check(r.m)
		fmt.Fprintf(stdout, "ok   %s: %s\n", r.source, summary(r.m))
		for _, w := range warnings {
			fmt.Fprintf(stdout, "     warning: %s\n", w)
		}
		if *werror && len(warnings) > 0 {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d levels failed\n", failed, len(results))
		return 1
	}
	return 0
}

type result struct {
	source string
	m      *levels.Map
	err    error
}

func checkFile(path string, opts ...levels.Option) result {
	f, err := os.Open(path)
	if err != nil {
		return result{source: path, err: err}
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := levels.Parse(f, append([]levels.Option{levels.Named(name)}, opts...)...)
	return result{source: path, m: m, err: err}
}

// expand replaces directories with the level files inside them.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.txt"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func summary(m *levels.Map) string {
	s := fmt.Sprintf("%dx%d tiles, start %d,%d, exit %d,%d, %d enemies",
		m.Width, m.Height, m.Start.X, m.Start.Y, m.Exit.X, m.Exit.Y, len(m.Enemies))
	if m.Unknown > 0 {
		s += fmt.Sprintf(", %d unknown tiles read as empty", m.Unknown)
	}
	return s
}

// check reports problems that load but play badly.
func check(m *levels.Map) []string {
	var warnings []string
	for _, e := range m.Enemies {
		if !m.Grounded(e) {
			warnings = append(warnings, fmt.Sprintf("enemy at %d,%d has no ground beneath it", e.X, e.Y))
		}
	}
	if !m.Grounded(m.Start) {
		warnings = append(warnings, fmt.Sprintf("start at %d,%d has no ground beneath it", m.Start.X, m.Start.Y))
	}
	return warnings
}
