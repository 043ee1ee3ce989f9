package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.tpnote.dev/tpnote/log"
)

// Flags holds CLI flag names, letting callers customize them while
// keeping sensible defaults via [NewConfig] — the teacher's
// Flags/Config convention (see profile.Flags, magicschema.Flags).
type Flags struct {
	AddHeader             string
	Batch                 string
	ConfigFile             string
	ConfigDefaults         string
	Debug                  string
	Edit                   string
	ForceLang              string
	Port                   string
	NoFilenameSync         string
	Scheme                 string
	TTY                    string
	Popup                  string
	View                   string
	Version                string
	Export                 string
	ExportLinkRewriting    string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values plus everything else sourced from
// environment variables and TOML files (spec.md §6.1, §6.3, §6.4).
type Config struct {
	Flags Flags `toml:"-"`

	// CLI flags (spec.md §6.1). Fields that only ever come from argv,
	// never from a TOML file, are tagged toml:"-" so DumpDefaults
	// doesn't dump runtime/session state as if it were configuration.
	AddHeader           bool   `toml:"-"`
	Batch               bool   `toml:"-"`
	ConfigFile          string `toml:"-"`
	ConfigDefaults      string `toml:"-"`
	DebugRaw            string `toml:"debug"`
	Edit                bool   `toml:"-"`
	ForceLang           string `toml:"force-lang"`
	ForceLangSet        bool   `toml:"-"`
	Port                int    `toml:"port"`
	NoFilenameSync      bool   `toml:"-"`
	Scheme              string `toml:"scheme-default"`
	TTY                 bool   `toml:"-"`
	Popup               bool   `toml:"-"`
	View                bool   `toml:"-"`
	Version             bool   `toml:"-"`
	Export              string `toml:"-"`
	ExportSet           bool   `toml:"-"`
	ExportLinkRewriting string `toml:"export-link-rewriting"`

	// Environment/file-sourced values (spec.md §6.3, Glossary).
	Lang             string `toml:"lang"`
	LangDetection    string `toml:"lang-detection"`
	Browser          string `toml:"browser"`
	Editor           string `toml:"editor"`
	EditorConsole    string `toml:"editor-console"`
	ExtensionDefault string `toml:"extension-default"`
	User             string `toml:"-"`

	// RawSchemes carries each `[[scheme]]` table from the merged TOML
	// configuration verbatim (keyed by its `name` field during merge);
	// wiring these into scheme.Registry at runtime is scheme-bundle
	// configuration scope beyond what this package owns.
	RawSchemes []map[string]any `toml:"scheme"`

	// ServedMimeTypes maps an extension (without the dot) to the
	// Content-Type the viewer serves it as (spec.md §4.J's "configured
	// served-mime-types table"). TOML-only: there is no CLI flag, since
	// spec.md names no flag for it, just a config-file table.
	ServedMimeTypes map[string]string `toml:"served-mime-types"`

	// ServedNoteCap bounds how many note files one viewer session will
	// serve before refusing further note requests (spec.md §4.J's
	// allow-list condition (d)).
	ServedNoteCap int `toml:"served-note-cap"`
}

// NewConfig returns a new [Config] with default flag names and
// [Defaults] values.
func NewConfig() *Config {
	f := Flags{
		AddHeader:           "add-header",
		Batch:               "batch",
		ConfigFile:          "config",
		ConfigDefaults:      "config-defaults",
		Debug:               "debug",
		Edit:                "edit",
		ForceLang:           "force-lang",
		Port:                "port",
		NoFilenameSync:      "no-filename-sync",
		Scheme:              "scheme",
		TTY:                 "tty",
		Popup:               "popup",
		View:                "view",
		Version:             "version",
		Export:              "export",
		ExportLinkRewriting: "export-link-rewriting",
	}

	c := f.NewConfig()
	Defaults(c)

	return c
}

// Defaults applies tpnote's built-in defaults onto c, leaving Flags
// and anything already set by a higher-priority source untouched.
func Defaults(c *Config) {
	c.DebugRaw = string(log.LevelInfo)
	c.Scheme = "default"
	c.ExtensionDefault = "md"
	c.ExportLinkRewriting = "long"
	c.Port = 0
	c.ServedNoteCap = 400
	c.ServedMimeTypes = map[string]string{
		"md": "text/markdown; charset=utf-8", "markdown": "text/markdown; charset=utf-8",
		"mdtxt": "text/markdown; charset=utf-8", "rst": "text/x-rst; charset=utf-8",
		"txt": "text/plain; charset=utf-8",
		"png": "image/png", "jpg": "image/jpeg", "jpeg": "image/jpeg", "gif": "image/gif",
		"svg": "image/svg+xml", "webp": "image/webp",
		"pdf": "application/pdf",
		"mp3": "audio/mpeg", "ogg": "audio/ogg", "wav": "audio/wav",
		"mp4": "video/mp4", "webm": "video/webm",
		"css": "text/css; charset=utf-8", "js": "text/javascript; charset=utf-8",
	}
}

// DebugLevel parses the --debug flag value into a [log.Level].
func (c *Config) DebugLevel() (log.Level, error) {
	return log.GetLevel(c.DebugRaw)
}

// RegisterFlags adds tpnote's CLI flags to flags, per spec.md §6.1.
// Call it after [Config.ApplyEnv] and [Config.Load], so each flag's
// default reflects whatever the environment/TOML chain already
// settled on — flags.Parse then only overwrites the fields the user
// actually passed on the command line.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.AddHeader, c.Flags.AddHeader, "a", c.AddHeader,
		"prepend a header to a bare text file when missing")
	flags.BoolVarP(&c.Batch, c.Flags.Batch, "b", c.Batch,
		"no editor, no viewer; stdin replaces clipboard")
	flags.StringVarP(&c.ConfigFile, c.Flags.ConfigFile, "c", c.ConfigFile,
		"additional TOML configuration, merged last")
	flags.StringVarP(&c.ConfigDefaults, c.Flags.ConfigDefaults, "C", c.ConfigDefaults,
		"dump internal defaults as TOML (- for stdout)")
	flags.StringVarP(&c.DebugRaw, c.Flags.Debug, "d", c.DebugRaw,
		"one of trace|debug|info|warn|error|off")
	flags.BoolVarP(&c.Edit, c.Flags.Edit, "e", c.Edit,
		"editor only, no viewer (unless --view is also given)")
	flags.StringVarP(&c.ForceLang, c.Flags.ForceLang, "l", c.ForceLang,
		"disable detection; '' selects env/locale")
	flags.IntVarP(&c.Port, c.Flags.Port, "p", c.Port,
		"bind port (0 = pick free)")
	flags.BoolVarP(&c.NoFilenameSync, c.Flags.NoFilenameSync, "n", c.NoFilenameSync,
		"do not rename")
	flags.StringVarP(&c.Scheme, c.Flags.Scheme, "s", c.Scheme,
		"override scheme for creation")
	flags.BoolVarP(&c.TTY, c.Flags.TTY, "t", c.TTY,
		"force console-only editor choice, no viewer")
	flags.BoolVarP(&c.Popup, c.Flags.Popup, "u", c.Popup,
		"send log records to alert dialogs")
	flags.BoolVarP(&c.View, c.Flags.View, "v", c.View,
		"viewer only; suppresses editor unless --edit")
	flags.BoolVarP(&c.Version, c.Flags.Version, "V", c.Version,
		"print version and sourced config path")
	flags.StringVarP(&c.Export, c.Flags.Export, "x", c.Export,
		"export to HTML; - for stdout; '' for the note's directory")
	flags.StringVar(&c.ExportLinkRewriting, c.Flags.ExportLinkRewriting, c.ExportLinkRewriting,
		"off|short|long (default long)")
}

// CaptureChanged records which flags the user actually passed on the
// command line. It must run after flags.Parse has returned — calling
// it from RegisterFlags would see every flag as unchanged, since
// parsing hasn't happened yet.
//
// ForceLang and Export both treat "" as a meaningful explicit value
// (force-lang: fall back to env/locale detection; export: the note's
// own directory), distinct from the flag never having been passed at
// all, so tracking Changed is the only way to tell those apart.
func (c *Config) CaptureChanged(flags *pflag.FlagSet) {
	c.ForceLangSet = flags.Changed(c.Flags.ForceLang)
	c.ExportSet = flags.Changed(c.Flags.Export)
}

// RegisterCompletions registers shell completions for tpnote's flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}

	completions := []struct {
		flag string
		fn   func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)
	}{
		{c.Flags.Debug, fixed("trace", "debug", "info", "warn", "error", "off")},
		{c.Flags.Scheme, fixed("default", "zettel")},
		{c.Flags.ExportLinkRewriting, fixed("off", "short", "long")},
	}

	for _, e := range completions {
		if err := cmd.RegisterFlagCompletionFunc(e.flag, e.fn); err != nil {
			return fmt.Errorf("registering %s completion: %w", e.flag, err)
		}
	}

	return nil
}
