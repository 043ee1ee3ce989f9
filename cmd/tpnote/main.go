// Package main provides the CLI entry point for tpnote, a note-taking
// tool that templates headers, keeps filenames synchronized with a
// note's front matter, and serves a live-rendered preview.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.tpnote.dev/tpnote/clipboard"
	"go.tpnote.dev/tpnote/config"
	"go.tpnote.dev/tpnote/dispatcher"
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/linkrewrite"
	"go.tpnote.dev/tpnote/log"
	"go.tpnote.dev/tpnote/profile"
	"go.tpnote.dev/tpnote/scheme"
	"go.tpnote.dev/tpnote/version"
	"go.tpnote.dev/tpnote/viewer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// installLogger points the package-level slog default at cfg's current
// --debug level, in logfmt (spec.md §6.1 names no --log-format flag, so
// the format itself isn't user-configurable). Called once right after
// ApplyEnv (so early config-load diagnostics already go through slog)
// and again after flags are parsed, since --debug may have changed the
// level by then.
func installLogger(cfg *config.Config) {
	level, err := cfg.DebugLevel()
	if err != nil {
		level = log.LevelInfo
	}
	slog.SetDefault(slog.New(log.NewHandler(os.Stderr, level, log.FormatLogfmt)))
}

func run(argv []string) int {
	cfg := config.NewConfig()
	cfg.ApplyEnv()
	installLogger(cfg)

	target, flagConfigPath := prelimParse(argv, cfg)

	noteDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		noteDir = filepath.Dir(target)
	}

	loadErr := cfg.Load(noteDir, flagConfigPath, func(path string, err error) {
		slog.Warn("config source skipped", "path", path, "err", err)
	})
	if loadErr != nil {
		slog.Error("config load failed", "err", loadErr)
		return dispatcher.ExitCode(loadErr)
	}

	exitCode := 0

	prof := profile.NewConfig()
	profiler := prof.NewProfiler()

	var rootCmd *cobra.Command
	rootCmd = &cobra.Command{
		Use:           "tpnote [flags] [path]",
		Short:         "Minimalistic note-taking with templated headers and filename sync",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Start()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg.CaptureChanged(rootCmd.Flags())
			t := target
			if len(args) > 0 {
				t = args[0]
			}

			code, err := execute(t, cfg)
			exitCode = code

			return err
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	prof.RegisterFlags(rootCmd.PersistentFlags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		slog.Warn("register completions failed", "err", err)
	}
	if err := prof.RegisterCompletions(rootCmd); err != nil {
		slog.Warn("register completions failed", "err", err)
	}

	rootCmd.SetArgs(argv)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("tpnote failed", "err", err)
		if exitCode == 0 {
			exitCode = dispatcher.ExitCode(err)
		}
	}

	if err := profiler.Stop(); err != nil {
		slog.Warn("writing profile failed", "err", err)
	}

	return exitCode
}

// prelimParse extracts the positional path argument and the --config
// value from argv using a throwaway FlagSet, since cfg.Load must run
// (to discover .tpnote.toml and size the real flag defaults) before
// cfg.RegisterFlags/Parse ever runs on rootCmd. It registers the full
// real flag surface, including profile's (not just --config), so a
// value-taking flag doesn't get misread as the positional path; the
// resulting field values are harmless scratch, since the later real
// Parse on rootCmd.Flags() parses this same argv again and lands on
// identical final values.
func prelimParse(argv []string, cfg *config.Config) (target, configPath string) {
	fs := pflag.NewFlagSet("tpnote-prelim", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}
	fs.Usage = func() {}

	cfg.RegisterFlags(fs)
	profile.NewConfig().RegisterFlags(fs)
	_ = fs.Parse(argv)

	target = "."
	if args := fs.Args(); len(args) > 0 {
		target = args[0]
	}

	return target, cfg.ConfigFile
}

// execute runs one invocation of tpnote against target: classify and
// sync the note, print its final path, then launch whatever editor/
// viewer combination the flags call for (spec.md §6.1's --batch/--edit/
// --view/--tty).
func execute(target string, cfg *config.Config) (int, error) {
	if cfg.Version {
		ver := version.Version
		if ver == "" {
			ver = "dev"
		}
		fmt.Printf("tpnote %s\n", ver)
		fmt.Printf("revision: %s\n", version.Revision)
		fmt.Printf("go: %s %s/%s\n", version.GoVersion, version.GoOS, version.GoArch)
		if cfg.ConfigFile != "" {
			fmt.Printf("config: %s\n", cfg.ConfigFile)
		}
		return 0, nil
	}

	if cfg.ConfigDefaults != "" {
		return dumpDefaults(cfg.ConfigDefaults)
	}

	if _, err := cfg.DebugLevel(); err != nil {
		return 1, fmt.Errorf("tpnote: %w", err)
	}
	installLogger(cfg)

	registry := scheme.NewRegistry()
	registry.MergeRaw(cfg.RawSchemes)

	var ing clipboard.Ingester = clipboard.System{}
	if cfg.Batch {
		ing = clipboard.NewStdin(os.Stdin)
	}

	res, runErr := dispatcher.Run(target, cfg, registry, ing, time.Now())
	if runErr != nil {
		return dispatcher.ExitCode(runErr), fmt.Errorf("tpnote: %w", runErr)
	}

	fmt.Println(res.Path)

	if dispatcher.IsDegradedHeader(res.Degraded) && cfg.Batch {
		return 1, nil
	}

	if cfg.Batch {
		return 0, nil
	}

	return launch(res.Path, cfg, registry)
}

func dumpDefaults(dest string) (int, error) {
	out, err := config.DumpDefaults()
	if err != nil {
		return 5, fmt.Errorf("tpnote: %w", err)
	}

	if dest == "-" {
		fmt.Print(out)
		return 0, nil
	}

	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
		return 5, fmt.Errorf("tpnote: writing %q: %w", dest, err)
	}

	return 0, nil
}

// launch runs the editor and/or viewer for path, per spec.md §6.1's
// --edit/--view/--tty combination rules, and waits for whichever of
// them the invocation started to finish.
func launch(path string, cfg *config.Config, registry scheme.Registry) (int, error) {
	wantEditor := cfg.TTY || !cfg.View || cfg.Edit
	wantViewer := !cfg.TTY && (!cfg.Edit || cfg.View)

	launcher := viewer.ProcessLauncher{}

	var sess *viewer.Session

	if wantViewer {
		sch := resolveSchemeForView(path, registry, cfg.Scheme)
		resolver := linkrewrite.NewResolver(sch.Grammar, linkrewrite.DefaultMarkerName, noteExtensions(sch),
			linkrewrite.PolicyLong, false)

		opts := viewer.ServeOptions{
			Path:           path,
			Scheme:         sch,
			Resolver:       resolver,
			Port:           cfg.Port,
			MimeTypes:      cfg.ServedMimeTypes,
			NoteCap:        cfg.ServedNoteCap,
			BrowserCommand: cfg.Browser,
			Launcher:       launcher,
		}

		started, err := viewer.Serve(opts)
		if err != nil {
			return 1, fmt.Errorf("tpnote: starting viewer: %w", err)
		}
		sess = started
	}

	if wantEditor {
		editorCmd := cfg.Editor
		if cfg.TTY {
			editorCmd = cfg.EditorConsole
		}

		if editorCmd != "" {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			done, err := launcher.Launch(ctx, editorCmd, path)
			if err != nil {
				if sess != nil {
					sess.Shutdown(context.Background())
				}
				return 1, fmt.Errorf("tpnote: starting editor: %w", err)
			}
			<-done
		}
	}

	// The editor, if any, has already exited above; the viewer session
	// (if started) keeps serving independently until its browser exits
	// or SIGINT arrives — spec.md §5's "the viewer waits on the browser
	// child to decide shutdown" is independent of the editor's lifetime.
	if sess != nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		select {
		case <-sess.Done():
		case <-ctx.Done():
			sess.Shutdown(context.Background())
		}
	}

	return 0, nil
}

// resolveSchemeForView picks the scheme the viewer should render path
// with: the note's own `scheme:` header field if present and valid,
// otherwise the --scheme override, otherwise the registry default.
func resolveSchemeForView(path string, registry scheme.Registry, override string) *scheme.Scheme {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Get(override)
	}

	parsed, err := frontmatter.Parse(data)
	if err != nil {
		return registry.Get(override)
	}

	fm, err := frontmatter.Deserialize(parsed.Header)
	if err != nil {
		return registry.Get(override)
	}

	if field, ok := fm["scheme"]; ok {
		if s, serr := field.AsString(); serr == nil && s != "" {
			return registry.Get(s)
		}
	}

	return registry.Get(override)
}

func noteExtensions(sch *scheme.Scheme) map[string]bool {
	exts := make(map[string]bool, len(sch.Extensions))
	for ext := range sch.Extensions {
		exts[ext] = true
	}
	return exts
}
