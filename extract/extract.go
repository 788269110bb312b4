// Package extract finds translation keys in source files.
//
// Keys are the single-quoted first argument of a translation call such as
//
//	{{ $t('nav.home') }}
//	this.$t('errors.required', { field })
//
// The call must be preceded by a non-word character and the literal must be
// followed by ')' or ','. Double-quoted and template literals are not keys.
package extract

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/minios-linux/langgen/keytree"
)

// DefaultFunctionName matches the Vue i18n "$t" helper.
const DefaultFunctionName = `\$t`

// Extractor scans text for calls of one translation function.
type Extractor struct {
	functionName string
	re           *regexp.Regexp
}

// NewExtractor compiles the call pattern for functionName.
//
// functionName is placed into the regular expression as is, so `\$t`
// matches "$t(" literally. A bare '$' is escaped first so that "$t" works
// too; any other metacharacter keeps its regex meaning.
func NewExtractor(functionName string) (*Extractor, error) {
	if functionName == "" {
		return nil, fmt.Errorf("empty translation function name")
	}
	expr := `\W` + escapeDollar(functionName) + `\('([^']*)'(\)|,)`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid translation function name %q: %w", functionName, err)
	}
	return &Extractor{functionName: functionName, re: re}, nil
}

// escapeDollar escapes every '$' not already preceded by a backslash.
func escapeDollar(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
		case c == '$':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FunctionName returns the name the extractor was built with.
func (e *Extractor) FunctionName() string { return e.functionName }

// Pattern returns the compiled regular expression.
func (e *Extractor) Pattern() string { return e.re.String() }

// Keys yields every key in text in order of appearance, duplicates
// included. Empty literals are skipped. The sequence can be iterated any
// number of times.
func (e *Extractor) Keys(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for pos := 0; pos < len(text); {
			loc := e.re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			key := text[pos+loc[2] : pos+loc[3]]
			pos += loc[1]
			if key == "" {
				continue
			}
			if !yield(key) {
				return
			}
		}
	}
}

// KeyError is returned by BuildTree when a key cannot be added to the tree.
type KeyError struct {
	File string
	Key  string
	Err  error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("error creating property %s in %s: %v", e.Key, e.File, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// BuildTree reads every file and inserts its keys into a new tree.
// The first key that cannot be inserted aborts the build with a *KeyError.
func BuildTree(fs afero.Fs, files []string, ex *Extractor) (*keytree.Tree, error) {
	tree := keytree.New()
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		// Invalid bytes become U+FFFD, as the JSON writer would store them.
		text := strings.ToValidUTF8(string(data), "\uFFFD")
		for key := range ex.Keys(text) {
			if err := keytree.Insert(tree, key); err != nil {
				return nil, &KeyError{File: file, Key: key, Err: err}
			}
		}
	}
	return tree, nil
}
