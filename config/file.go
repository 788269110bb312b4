package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name, looked up in the base directory.
const FileName = ".langgen.yaml"

// File is the .langgen.yaml structure:
//
//	directories: [src, components]
//	languages: [en, de]
//	output: lang
//	function_name: '\$t'
//	extensions: [vue, js, ts]
//	delete_expired: false
//	force_rewrite: false
type File struct {
	Directories   []string `yaml:"directories,omitempty"`
	Languages     []string `yaml:"languages,omitempty"`
	Output        string   `yaml:"output,omitempty"`
	FunctionName  string   `yaml:"function_name,omitempty"`
	Extensions    []string `yaml:"extensions,omitempty"`
	DeleteExpired *bool    `yaml:"delete_expired,omitempty"`
	ForceReWrite  *bool    `yaml:"force_rewrite,omitempty"`

	path string `yaml:"-"`
}

// Path returns the file the config was read from.
func (f *File) Path() string { return f.path }

// LoadFile reads a config file. It returns nil, nil when the file does not
// exist.
func LoadFile(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.path = path
	return &f, nil
}

// DefaultPath returns the config path inside base.
func DefaultPath(base string) string {
	return filepath.Join(base, FileName)
}

// Apply copies the values set in f into o, skipping every option whose
// flag was given on the command line.
func (f *File) Apply(o *Options, explicit func(flag string) bool) {
	if len(f.Directories) > 0 && !explicit(FlagDirectory) {
		o.Directories = append([]string(nil), f.Directories...)
	}
	if len(f.Languages) > 0 && !explicit(FlagLanguages) {
		o.Languages = append([]string(nil), f.Languages...)
	}
	if f.Output != "" && !explicit(FlagOutput) {
		o.Output = f.Output
	}
	if f.FunctionName != "" && !explicit(FlagFunctionName) {
		o.FunctionName = f.FunctionName
	}
	if len(f.Extensions) > 0 && !explicit(FlagExtensions) {
		o.Extensions = append([]string(nil), f.Extensions...)
	}
	if f.DeleteExpired != nil && !explicit(FlagDeleteExpired) {
		o.DeleteExpired = *f.DeleteExpired
	}
	if f.ForceReWrite != nil && !explicit(FlagForceReWrite) {
		o.ForceReWrite = *f.ForceReWrite
	}
}
