// Package config holds the run options of langgen and the optional
// .langgen.yaml file that supplies their defaults.
package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minios-linux/langgen/extract"
)

// Long flag names. The YAML file fills in any option whose flag was not
// set explicitly.
const (
	FlagBaseDirectory = "baseDirectory"
	FlagDirectory     = "directory"
	FlagLanguages     = "languages"
	FlagOutput        = "output"
	FlagFunctionName  = "functionName"
	FlagExtensions    = "extensions"
	FlagDeleteExpired = "deleteExpired"
	FlagForceReWrite  = "forceReWrite"
	FlagConfig        = "config"
)

// DefaultOutput is the locale directory relative to the base directory.
const DefaultOutput = "lang"

// Options are the settings of one run. They are not changed after
// Validate succeeds.
type Options struct {
	// BaseDirectory is the project root.
	BaseDirectory string
	// Directories are the sub-directories (or patterns) to scan.
	Directories []string
	// Output is the locale directory relative to BaseDirectory.
	Output string
	// Languages are the language codes to reconcile, in order.
	Languages []string
	// Extensions are the source file extensions, without the dot.
	Extensions []string
	// FunctionName is the translation call pattern.
	FunctionName string
	// DeleteExpired removes unused keys instead of reporting them.
	DeleteExpired bool
	// ForceReWrite treats an unparsable locale file as empty.
	ForceReWrite bool
}

// Defaults returns the built-in option values.
func Defaults() Options {
	return Options{
		BaseDirectory: ".",
		Output:        DefaultOutput,
		Extensions:    append([]string(nil), extract.DefaultExtensions...),
		FunctionName:  extract.DefaultFunctionName,
	}
}

// SplitList splits a space-separated flag value, dropping empty items.
func SplitList(s string) []string {
	return strings.Fields(s)
}

// Validate normalizes the options and checks that a run is possible.
func (o *Options) Validate() error {
	o.BaseDirectory = strings.TrimSuffix(o.BaseDirectory, "/")
	if o.BaseDirectory == "" {
		o.BaseDirectory = "/"
	}

	dirs := make([]string, 0, len(o.Directories))
	for _, d := range o.Directories {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, path.Clean(filepath.ToSlash(d)))
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no source directories given (use -d \"dir1 dir2\")")
	}
	o.Directories = dirs

	if o.Output == "" {
		o.Output = DefaultOutput
	}

	exts := make([]string, 0, len(o.Extensions))
	for _, e := range o.Extensions {
		if e = strings.TrimPrefix(strings.TrimSpace(e), "."); e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		exts = append(exts, extract.DefaultExtensions...)
	}
	o.Extensions = exts

	if o.FunctionName == "" {
		o.FunctionName = extract.DefaultFunctionName
	}
	if _, err := extract.NewExtractor(o.FunctionName); err != nil {
		return err
	}

	return nil
}

// LocaleDir returns the directory holding the locale files.
func (o *Options) LocaleDir() string {
	return filepath.Join(o.BaseDirectory, o.Output)
}

// ScanPattern returns the glob describing the scanned files.
func (o *Options) ScanPattern() string {
	return extract.Pattern(o.BaseDirectory, o.Directories, o.Extensions)
}
