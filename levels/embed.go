package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.txt
var LevelsFS embed.FS

// Names lists the embedded levels in play order.
func Names() []string {
	matches, err := fs.Glob(LevelsFS, "*.txt")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		names = append(names, strings.TrimSuffix(path, ".txt"))
	}
	sort.Strings(names)
	return names
}

// LoadLevelFromFS parses a level from fsys. The .txt extension is optional.
func LoadLevelFromFS(fsys fs.FS, name string, opts ...Option) (*Map, error) {
	path := withExt(name)
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	defer f.Close()

	opts = append([]Option{Named(strings.TrimSuffix(path, ".txt"))}, opts...)
	return Parse(f, opts...)
}

// Load prefers a level file under dir on disk and falls back to the
// embedded copy.
func Load(dir, name string, opts ...Option) (*Map, error) {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, withExt(name))); err == nil {
			return LoadLevelFromFS(os.DirFS(dir), name, opts...)
		}
	}
	return LoadLevelFromFS(LevelsFS, name, opts...)
}

func withExt(name string) string {
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	return name
}
