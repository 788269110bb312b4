// langgen — keeps JSON locale files in sync with the translation keys used in source code.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/minios-linux/langgen/config"
	"github.com/minios-linux/langgen/extract"
	"github.com/minios-linux/langgen/i18n"
	"github.com/minios-linux/langgen/keytree"
	"github.com/minios-linux/langgen/langmeta"
	"github.com/minios-linux/langgen/locale"
	"github.com/minios-linux/langgen/reconcile"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	colorInfo    = color.New(color.FgBlue)
	colorSuccess = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorError   = color.New(color.FgRed)
	colorHeader  = color.New(color.Bold)
)

// logOutput receives all log lines; the report goes to the command output.
var logOutput io.Writer = color.Error

func logInfo(format string, args ...any) {
	fmt.Fprintf(logOutput, colorInfo.Sprint("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(logOutput, colorSuccess.Sprint("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOutput, colorWarning.Sprint("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOutput, colorError.Sprint("[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := config.Defaults()
	var (
		dirs       string
		langs      string
		exts       string
		configPath string
	)

	root := &cobra.Command{
		Use:   "langgen",
		Short: "Sync JSON locale files with translation keys found in source code",
		Long: `langgen scans source files for translation calls such as $t('nav.home'),
builds the nested key tree and reconciles it with one JSON locale file per
language:

  - new keys are added with their last segment as placeholder value
  - existing translations are never overwritten
  - keys no longer used are reported, or deleted with -x
  - keys still holding their placeholder are reported as needing translation

Locale files are written to <base>/<output>/<lang>.json only when keys were
added or removed.

Example:
  langgen -b ./app -d "src components" -l "en de" -o lang`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Directories = config.SplitList(dirs)
			opts.Languages = config.SplitList(langs)
			opts.Extensions = config.SplitList(exts)

			if err := applyConfigFile(cmd, fs, &opts, configPath); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), fs, opts)
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.BaseDirectory, config.FlagBaseDirectory, "b", opts.BaseDirectory, "Project root directory")
	f.StringVarP(&dirs, config.FlagDirectory, "d", "", "Space-separated source directories to scan, relative to the root (required, on the command line or in the config file)")
	f.StringVarP(&langs, config.FlagLanguages, "l", "", "Space-separated language codes to update")
	f.StringVarP(&opts.Output, config.FlagOutput, "o", opts.Output, "Locale directory, relative to the root")
	f.StringVarP(&opts.FunctionName, config.FlagFunctionName, "f", opts.FunctionName, "Translation function pattern")
	f.StringVarP(&exts, config.FlagExtensions, "e", strings.Join(opts.Extensions, " "), "Space-separated source file extensions")
	f.BoolVarP(&opts.DeleteExpired, config.FlagDeleteExpired, "x", false, "Delete keys no longer found in the sources instead of reporting them")
	f.BoolVarP(&opts.ForceReWrite, config.FlagForceReWrite, "r", false, "Rewrite locale files that cannot be parsed instead of aborting (a switch: -r or --forceReWrite=true)")
	f.StringVarP(&configPath, config.FlagConfig, "c", "", "Config file (default <root>/"+config.FileName+")")

	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// applyConfigFile fills options not given on the command line from the
// config file. A missing default config file is not an error.
func applyConfigFile(cmd *cobra.Command, fs afero.Fs, opts *config.Options, path string) error {
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath(opts.BaseDirectory)
	}

	file, err := config.LoadFile(fs, path)
	if err != nil {
		return err
	}
	if file == nil {
		if explicit {
			return fmt.Errorf("config file %s not found", path)
		}
		return nil
	}

	logInfo(i18n.T("Using config %s"), file.Path())
	file.Apply(opts, cmd.Flags().Changed)
	return nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "langgen version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

// run extracts the key tree once, then reconciles each language in order.
// The first error stops the run; languages already written stay written.
func run(out io.Writer, fs afero.Fs, opts config.Options) error {
	ex, err := extract.NewExtractor(opts.FunctionName)
	if err != nil {
		return err
	}

	logInfo(i18n.T("Scanning %s"), opts.ScanPattern())
	files, err := extract.FindSources(fs, opts.BaseDirectory, opts.Directories, opts.Extensions)
	if err != nil {
		return fmt.Errorf("scanning sources: %w", err)
	}
	logInfo(i18n.N("Found %d source file", "Found %d source files", len(files)), len(files))

	extracted, err := extract.BuildTree(fs, files, ex)
	if err != nil {
		return err
	}
	keyCount := len(keytree.Flatten(extracted))
	logInfo(i18n.N("Extracted %d key", "Extracted %d keys", keyCount), keyCount)

	if len(opts.Languages) == 0 {
		logWarning("%s", i18n.T("No languages given (use -l \"en de\"), nothing to update"))
		return nil
	}

	store := locale.NewStore(fs, opts.LocaleDir())
	for _, lang := range opts.Languages {
		if err := processLanguage(out, store, extracted, lang, opts); err != nil {
			return err
		}
	}
	return nil
}

// processLanguage reconciles one locale file and prints its report.
func processLanguage(out io.Writer, store *locale.Store, extracted *keytree.Tree, lang string, opts config.Options) error {
	printHeader(out, lang)

	if !langmeta.Valid(lang) {
		logWarning(i18n.T("%s is not a known language code"), lang)
	}

	existing, err := store.Load(lang)
	if err != nil {
		if !errors.Is(err, locale.ErrMalformed) {
			return err
		}
		if !opts.ForceReWrite {
			return fmt.Errorf("%w: please fix it or force a rewrite with the option -r", err)
		}
		logWarning(i18n.T("%v: rewriting it because -r is set"), err)
		existing = keytree.New()
	}

	res := reconcile.Reconcile(extracted, existing, reconcile.Options{DeleteExpired: opts.DeleteExpired})

	if res.Changed() {
		if err := store.Save(lang, res.Merged); err != nil {
			return err
		}
		logSuccess(i18n.T("Updated %s (%d added, %d removed)"), store.Path(lang), len(res.Added), len(res.Removed))
	}

	printReport(out, res.Report)
	return nil
}

// ---------------------------------------------------------------------------
// Console output
// ---------------------------------------------------------------------------

func printHeader(out io.Writer, lang string) {
	meta := langmeta.Resolve(lang)
	label := meta.Name
	if meta.Flag != "" {
		label = meta.Flag + " " + label
	}
	fmt.Fprintf(out, "\n%s  %s\n", colorHeader.Sprint(lang+".json"), label)
}

var statusColors = map[reconcile.Status]*color.Color{
	reconcile.StatusUnused:           color.New(color.FgYellow),
	reconcile.StatusNew:              color.New(color.FgGreen),
	reconcile.StatusNeedsTranslation: color.New(color.FgRed),
}

// printReport prints the report as a two-column table, or "No issues".
func printReport(out io.Writer, report *reconcile.Report) {
	if report.Len() == 0 {
		fmt.Fprintln(out, colorSuccess.Sprint(i18n.T("No issues")))
		return
	}

	keyHeader, statusHeader := i18n.T("Key"), i18n.T("Status")
	entries := report.Entries()

	width := utf8.RuneCountInString(keyHeader)
	for _, e := range entries {
		if n := utf8.RuneCountInString(e.Key); n > width {
			width = n
		}
	}

	fmt.Fprintf(out, "%s  %s\n", padRight(keyHeader, width), statusHeader)
	fmt.Fprintf(out, "%s  %s\n", strings.Repeat("─", width), strings.Repeat("─", len(reconcile.StatusNeedsTranslation)))
	for _, e := range entries {
		status := string(e.Status)
		if c, ok := statusColors[e.Status]; ok {
			status = c.Sprint(status)
		}
		fmt.Fprintf(out, "%s  %s\n", padRight(e.Key, width), status)
	}
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
