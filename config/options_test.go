package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestValidateNormalizes(t *testing.T) {
	o := Defaults()
	o.BaseDirectory = "project/"
	o.Directories = []string{"./src/", " components ", ""}
	o.Extensions = []string{".vue", "ts", " "}
	o.Output = ""

	if err := o.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if o.BaseDirectory != "project" {
		t.Fatalf("BaseDirectory = %q, want project", o.BaseDirectory)
	}
	if !reflect.DeepEqual(o.Directories, []string{"src", "components"}) {
		t.Fatalf("Directories = %v", o.Directories)
	}
	if !reflect.DeepEqual(o.Extensions, []string{"vue", "ts"}) {
		t.Fatalf("Extensions = %v", o.Extensions)
	}
	if o.Output != DefaultOutput {
		t.Fatalf("Output = %q, want %q", o.Output, DefaultOutput)
	}
	if got, want := o.LocaleDir(), filepath.Join("project", "lang"); got != want {
		t.Fatalf("LocaleDir() = %q, want %q", got, want)
	}
	if got, want := o.ScanPattern(), "project/@(src|components)/**/*.@(vue|ts)"; got != want {
		t.Fatalf("ScanPattern() = %q, want %q", got, want)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Run("no directories", func(t *testing.T) {
		o := Defaults()
		if err := o.Validate(); err == nil {
			t.Fatal("expected error without directories")
		}
	})

	t.Run("bad function name", func(t *testing.T) {
		o := Defaults()
		o.Directories = []string{"src"}
		o.FunctionName = "t("
		if err := o.Validate(); err == nil {
			t.Fatal("expected error for invalid function name")
		}
	})
}

func TestValidateDefaults(t *testing.T) {
	o := Options{Directories: []string{"src"}}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if o.BaseDirectory != "/" {
		t.Fatalf("BaseDirectory = %q, want /", o.BaseDirectory)
	}
	if o.FunctionName != `\$t` {
		t.Fatalf("FunctionName = %q", o.FunctionName)
	}
	if !reflect.DeepEqual(o.Extensions, []string{"vue", "js"}) {
		t.Fatalf("Extensions = %v", o.Extensions)
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList("  en  de fr "); !reflect.DeepEqual(got, []string{"en", "de", "fr"}) {
		t.Fatalf("SplitList() = %v", got)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Fatalf("SplitList(\"\") = %v, want empty", got)
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file returns nil", func(t *testing.T) {
		f, err := LoadFile(afero.NewMemMapFs(), "/p/"+FileName)
		if err != nil || f != nil {
			t.Fatalf("LoadFile = %#v, %v; want nil, nil", f, err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_ = afero.WriteFile(fs, "/p/"+FileName, []byte("languages: [en\n"), 0644)
		if _, err := LoadFile(fs, "/p/"+FileName); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("applies unless flag is explicit", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		yaml := "directories: [src, lib]\n" +
			"languages: [en, de]\n" +
			"output: locales\n" +
			"extensions: [ts]\n" +
			"delete_expired: true\n"
		if err := afero.WriteFile(fs, DefaultPath("/p"), []byte(yaml), 0644); err != nil {
			t.Fatal(err)
		}

		f, err := LoadFile(fs, DefaultPath("/p"))
		if err != nil {
			t.Fatalf("LoadFile error: %v", err)
		}
		if f.Path() != DefaultPath("/p") {
			t.Fatalf("Path() = %q", f.Path())
		}

		o := Defaults()
		o.Languages = []string{"fr"}
		f.Apply(&o, func(flag string) bool { return flag == FlagLanguages })

		if !reflect.DeepEqual(o.Directories, []string{"src", "lib"}) {
			t.Fatalf("Directories = %v", o.Directories)
		}
		if !reflect.DeepEqual(o.Languages, []string{"fr"}) {
			t.Fatalf("Languages = %v, want explicit flag value [fr]", o.Languages)
		}
		if o.Output != "locales" || !o.DeleteExpired || o.ForceReWrite {
			t.Fatalf("unexpected options: %+v", o)
		}
		if !reflect.DeepEqual(o.Extensions, []string{"ts"}) {
			t.Fatalf("Extensions = %v", o.Extensions)
		}
		if o.FunctionName != `\$t` {
			t.Fatalf("FunctionName = %q, want default", o.FunctionName)
		}
	})
}
