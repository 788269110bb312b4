package locale

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/minios-linux/langgen/keytree"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/p/lang")
	tree, err := s.Load("en")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tree.Len() != 0 {
		t.Fatalf("tree has %d keys, want 0", tree.Len())
	}
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/lang/en.json", []byte(`{"nav":`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(fs, "/p/lang").Load("en")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Load error = %v, want ErrMalformed", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Path != filepath.Join("/p/lang", "en.json") {
		t.Fatalf("Load error = %#v, want *LoadError with path", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/p/lang")

	tree := keytree.New()
	for _, k := range []string{"nav.home", "title"} {
		if err := keytree.Insert(tree, k); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Save("de", tree); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := afero.ReadFile(fs, "/p/lang/de.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "{\n  \"nav\": {\n    \"home\": \"home\"\n  },\n  \"title\": \"title\"\n}\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}

	loaded, err := s.Load("de")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if n, ok := loaded.Lookup("nav.home"); !ok || n != keytree.Leaf("home") {
		t.Fatalf("nav.home = %#v, %v", n, ok)
	}
}

func TestPath(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), filepath.Join("base", "lang"))
	if got, want := s.Path("pt-BR"), filepath.Join("base", "lang", "pt-BR.json"); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}
