// Package locale reads and writes per-language JSON locale files.
//
// Files live at <dir>/<lang>.json and hold a nested object whose leaves are
// strings:
//
//	{
//	  "nav": {
//	    "about": "About",
//	    "home": "Home"
//	  }
//	}
package locale

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/minios-linux/langgen/keytree"
)

// ErrMalformed is matched by errors.Is when a locale file exists but
// cannot be parsed.
var ErrMalformed = errors.New("malformed locale file")

// LoadError wraps a parse failure with the offending path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrMalformed and the parse error.
func (e *LoadError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// Store gives access to the locale files of one directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store for dir on fs.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the locale directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file path for lang.
func (s *Store) Path(lang string) string {
	return filepath.Join(s.dir, lang+".json")
}

// Load reads the locale tree for lang. A missing file yields an empty tree.
// A file that cannot be parsed yields a *LoadError matching ErrMalformed.
func (s *Store) Load(lang string) (*keytree.Tree, error) {
	path := s.Path(lang)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keytree.New(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tree, err := keytree.Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return tree, nil
}

// Save writes tree for lang, creating the locale directory if needed.
func (s *Store) Save(lang string, tree *keytree.Tree) error {
	data, err := keytree.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", lang, err)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", s.dir, err)
	}

	path := s.Path(lang)
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
