package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "zh-Hant", want: "zh-Hant"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFlagFromRegion(t *testing.T) {
	if got := flagFromRegion("us"); got != "\U0001F1FA\U0001F1F8" {
		t.Fatalf("flagFromRegion(us) = %q", got)
	}
	if got := flagFromRegion("USA"); got != "" {
		t.Fatalf("flagFromRegion(USA) = %q, want empty", got)
	}
	if got := flagFromRegion("1A"); got != "" {
		t.Fatalf("flagFromRegion(1A) = %q, want empty", got)
	}
}

func TestValid(t *testing.T) {
	for _, lang := range []string{"en", "de", "pt_BR", "zh-Hant"} {
		if !Valid(lang) {
			t.Fatalf("Valid(%q) = false, want true", lang)
		}
	}
	for _, lang := range []string{"", "not a language", "zz"} {
		if Valid(lang) {
			t.Fatalf("Valid(%q) = true, want false", lang)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("native name", func(t *testing.T) {
		got := Resolve("de")
		if got.Name != "Deutsch" || got.Flag != "\U0001F1E9\U0001F1EA" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("normalized region flag", func(t *testing.T) {
		got := Resolve("pt_br")
		if got.Name == "" || got.Flag != "\U0001F1E7\U0001F1F7" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("zz-ZZ")
		if got.Name != "zz-ZZ" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}
