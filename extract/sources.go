package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// DefaultExtensions are the source file extensions scanned by default.
var DefaultExtensions = []string{"vue", "js"}

// globMeta are the characters that make a directory entry a pattern
// rather than a plain path.
const globMeta = "*?[]{}!@()"

// Pattern returns the human-readable scan pattern,
// e.g. "./@(src|lib)/**/*.@(vue|js)".
func Pattern(base string, dirs, exts []string) string {
	return fmt.Sprintf("%s/@(%s)/**/*.@(%s)", base, strings.Join(dirs, "|"), strings.Join(exts, "|"))
}

// Matcher reports whether a base-relative, slash-separated path is a
// source file selected by the directory and extension lists.
type Matcher struct {
	nested glob.Glob
	direct glob.Glob
}

// NewMatcher compiles {dirs}/**/*.{exts} and {dirs}/*.{exts}.
func NewMatcher(dirs, exts []string) (*Matcher, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no source directories to scan")
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no source file extensions to scan")
	}
	d := "{" + strings.Join(dirs, ",") + "}"
	e := "{" + strings.Join(exts, ",") + "}"

	nested, err := glob.Compile(d+"/**/*."+e, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling scan pattern: %w", err)
	}
	direct, err := glob.Compile(d+"/*."+e, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling scan pattern: %w", err)
	}
	return &Matcher{nested: nested, direct: direct}, nil
}

// Match reports whether rel is selected.
func (m *Matcher) Match(rel string) bool {
	return m.direct.Match(rel) || m.nested.Match(rel)
}

// FindSources returns the sorted list of files under base matching
// base/@(dirs)/**/*.@(exts). Hidden files and directories are skipped.
// Plain directory names are walked directly; if any entry is a pattern the
// whole base directory is walked.
func FindSources(fs afero.Fs, base string, dirs, exts []string) ([]string, error) {
	m, err := NewMatcher(dirs, exts)
	if err != nil {
		return nil, err
	}

	var roots []string
	for _, dir := range dirs {
		if strings.ContainsAny(dir, globMeta) {
			roots = []string{base}
			break
		}
		roots = append(roots, filepath.Join(base, filepath.FromSlash(dir)))
	}

	var files []string
	seen := make(map[string]bool)

	for _, root := range roots {
		if ok, err := afero.DirExists(fs, root); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		} else if !ok {
			continue
		}

		err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(info.Name(), ".") {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				return err
			}
			if m.Match(filepath.ToSlash(rel)) && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
