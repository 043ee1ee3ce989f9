package dispatcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.tpnote.dev/tpnote/clipboard"
	"go.tpnote.dev/tpnote/config"
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/langdetect"
	"go.tpnote.dev/tpnote/scheme"
	"go.tpnote.dev/tpnote/syncer"
	"go.tpnote.dev/tpnote/tmpl"
)

// Result is what [Run] reports back to the CLI layer: the note's final
// path, the mode that was taken, and (for a target or a just-written
// note whose header failed to parse or failed the scheme's
// preconditions) the degraded error the viewer would otherwise show via
// its error template.
type Result struct {
	Path     string
	Mode     Mode
	Degraded error
}

// Run classifies target (spec.md §4.F), expands the selected mode's
// templates, writes the result, synchronizes its filename, and
// returns the final path. It is synchronous and single-threaded: the
// content template runs to completion before the filename template;
// the filename template runs to completion before any disk write; the
// disk write precedes whatever the CLI layer does next (launch an
// editor or viewer).
func Run(target string, cfg *config.Config, registry scheme.Registry, ing clipboard.Ingester, now time.Time) (Result, error) {
	info, err := os.Stat(target)
	isDir := err == nil && info.IsDir()
	if err != nil && !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("dispatcher: stat %q: %w", target, err)
	}

	if isDir {
		return runDir(target, cfg, registry, ing, now)
	}

	return runFile(target, cfg, registry, now)
}

func runDir(dir string, cfg *config.Config, registry scheme.Registry, ing clipboard.Ingester, now time.Time) (Result, error) {
	vars, err := clipboard.Ingest(ing, !cfg.Batch)
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: ingest: %w", err)
	}

	ingested := vars.TxtClipboard
	if cfg.Batch {
		ingested = vars.Stdin
	}

	mode := Classify(ClassifyInput{IsDir: true, Ingested: ingested})

	sch := registry.Get(cfg.Scheme)

	opts := tmpl.ContextOptions{
		DirPath:          dir,
		ExtensionDefault: cfg.ExtensionDefault,
		Username:         cfg.User,
		Now:              now,
		Grammar:          sch.Grammar,
		Clipboard:        vars,
	}
	opts.Lang = resolveLang(cfg, sch, bodyForMode(mode, vars))

	return createNote(dir, mode, sch, cfg, opts)
}

func runFile(path string, cfg *config.Config, registry scheme.Registry, now time.Time) (Result, error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := trimLeadingDot(filepath.Ext(name))

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: reading %q: %w", path, err)
	}

	sch := registry.Get(cfg.Scheme)

	extRegistered := false
	if _, ok := sch.Extensions[ext]; ok {
		extRegistered = true
	}

	var (
		fm            frontmatter.FrontMatter
		headerPresent bool
		docErr        error
	)

	if extRegistered {
		parsed, perr := frontmatter.Parse(data)
		if perr == nil {
			headerPresent = true

			fm, docErr = frontmatter.Deserialize(parsed.Header)
			if docErr == nil {
				docErr = frontmatter.AssertPreconditions(fm, sch.Preconditions)
			}
		}
	}

	mode := Classify(ClassifyInput{
		IsDir:               false,
		ExtensionRegistered: extRegistered,
		HeaderPresent:       headerPresent,
	})

	if schemeField, ok := fm["scheme"]; ok {
		if s, serr := schemeField.AsString(); serr == nil && s != "" {
			sch = registry.Get(s)
		}
	}

	switch mode {
	case Sync:
		return syncExisting(dir, name, path, sch, cfg, fm, docErr)
	case FromTextFile:
		return fromTextFile(dir, name, path, data, sch, cfg, now)
	default: // AnnotateFile
		return annotateFile(dir, path, sch, cfg, now)
	}
}

// bodyForMode returns the text a mode's language detection should run
// over, per spec.md §4.D's "detect over the ingested body, not the
// header" rule.
func bodyForMode(mode Mode, vars clipboard.Variables) string {
	switch mode {
	case FromClipboard, FromClipboardYaml:
		if vars.Stdin != "" {
			return vars.Stdin
		}
		return vars.TxtClipboard
	default:
		return ""
	}
}

// resolveLang applies spec.md §6.1's --force-lang contract: passing
// the flag at all (even with an empty value) disables detection.
func resolveLang(cfg *config.Config, sch *scheme.Scheme, body string) string {
	if cfg.ForceLangSet {
		if cfg.ForceLang != "" {
			return cfg.ForceLang
		}
		return cfg.Lang
	}

	if body == "" {
		return cfg.Lang
	}

	detected := langdetect.GetLang(body, sch.LangDetect.Candidates)
	if detected == "" {
		return cfg.Lang
	}

	return langdetect.MapLang(detected, sch.LangDetect.Alist, cfg.Lang)
}

// createNote runs a creation mode's (FromDir/FromClipboard/
// FromClipboardYaml/AnnotateFile) content/filename templates, writes
// the result to a fresh file in dir, and — unless NoFilenameSync is
// set — immediately runs the Sync filename template over it too
// (spec.md §4.F: "any creation mode ends in Sync on the just-written
// file"). opts.Path, if the caller set it (AnnotateFile's foreign
// file), is left untouched for this first filename render; the other
// three modes never set it, since their filename templates only
// consult fm_*, today_sort_tag, and extension_default.
func createNote(dir string, mode Mode, sch *scheme.Scheme, cfg *config.Config, opts tmpl.ContextOptions) (Result, error) {
	engine := tmpl.New(sch)

	content, err := engine.RenderContent(ContentTemplateKey(mode), tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render content: %w", err)
	}

	fm, degraded := parseWrittenHeader(content, sch)
	opts.FM = fm

	candidate, err := engine.RenderFilename(FilenameTemplateKey(mode), tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render filename: %w", err)
	}

	writtenName, err := createFile(dir, candidate, []byte(content))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: write: %w", err)
	}

	finalName := writtenName
	if !cfg.NoFilenameSync {
		opts.Path = filepath.Join(dir, writtenName)
		syncCandidate, err := engine.RenderFilename(scheme.TmplSyncFilename, tmpl.BuildContext(opts))
		if err != nil {
			return Result{}, fmt.Errorf("dispatcher: render sync filename: %w", err)
		}

		finalName, err = syncer.Sync(dir, syncCandidate, writtenName)
		if err != nil {
			return Result{}, fmt.Errorf("dispatcher: sync: %w", err)
		}
	}

	return Result{Path: filepath.Join(dir, finalName), Mode: mode, Degraded: degraded}, nil
}

// annotateFile creates a sibling note for an existing foreign file;
// the foreign file itself is left untouched.
func annotateFile(dir, path string, sch *scheme.Scheme, cfg *config.Config, now time.Time) (Result, error) {
	opts := tmpl.ContextOptions{
		Path:             path,
		ExtensionDefault: cfg.ExtensionDefault,
		Username:         cfg.User,
		Now:              now,
		Grammar:          sch.Grammar,
	}
	opts.Lang = resolveLang(cfg, sch, "")

	return createNote(dir, AnnotateFile, sch, cfg, opts)
}

// fromTextFile converts an existing, registered-extension file with no
// valid header into a managed note in place: it overwrites the file's
// content at its current path, renames it once using its own filename
// template (bootstrapping a sort tag the original name may be missing
// entirely), then falls through to a second, ordinary Sync pass —
// exactly spec.md §4.F's "from_text_file_content / from_text_file_filename,
// then fallthrough to Sync".
func fromTextFile(dir, name, path string, data []byte, sch *scheme.Scheme, cfg *config.Config, now time.Time) (Result, error) {
	engine := tmpl.New(sch)

	parsed, _ := frontmatter.Parse(data) // headerPresent was false; Parse may still recover a body
	body := parsed.Body
	if body == "" {
		body = string(data)
	}

	opts := tmpl.ContextOptions{
		Path:             path,
		ExtensionDefault: cfg.ExtensionDefault,
		Username:         cfg.User,
		Now:              now,
		Grammar:          sch.Grammar,
		DocBodyText:      body,
		DocFileDate:      fileModTime(path, now),
	}
	opts.Lang = resolveLang(cfg, sch, body)

	content, err := engine.RenderContent(scheme.TmplFromTextFileContent, tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render content: %w", err)
	}

	fm, degraded := parseWrittenHeader(content, sch)
	opts.FM = fm

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Result{}, fmt.Errorf("dispatcher: write %q: %w", path, err)
	}

	if cfg.NoFilenameSync {
		return Result{Path: path, Mode: FromTextFile, Degraded: degraded}, nil
	}

	bootstrapCandidate, err := engine.RenderFilename(scheme.TmplFromTextFileFilename, tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render filename: %w", err)
	}

	bootstrapped, err := syncer.Sync(dir, bootstrapCandidate, name)
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: sync: %w", err)
	}

	opts.Path = filepath.Join(dir, bootstrapped)
	syncCandidate, err := engine.RenderFilename(scheme.TmplSyncFilename, tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render sync filename: %w", err)
	}

	finalName, err := syncer.Sync(dir, syncCandidate, bootstrapped)
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: sync: %w", err)
	}

	return Result{Path: filepath.Join(dir, finalName), Mode: FromTextFile, Degraded: degraded}, nil
}

// syncExisting handles a target already classified Sync: its header,
// valid or not, is re-read and its filename re-derived; a precondition
// failure is reported as Result.Degraded rather than aborting, per
// spec.md §7's HeaderPrecondition category.
func syncExisting(dir, name, path string, sch *scheme.Scheme, cfg *config.Config, fm frontmatter.FrontMatter, docErr error) (Result, error) {
	if cfg.NoFilenameSync {
		return Result{Path: path, Mode: Sync, Degraded: docErr}, nil
	}

	engine := tmpl.New(sch)

	opts := tmpl.ContextOptions{
		Path:             path,
		ExtensionDefault: cfg.ExtensionDefault,
		Username:         cfg.User,
		Grammar:          sch.Grammar,
		FM:               fm,
	}

	candidate, err := engine.RenderFilename(scheme.TmplSyncFilename, tmpl.BuildContext(opts))
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: render sync filename: %w", err)
	}

	finalName, err := syncer.Sync(dir, candidate, name)
	if err != nil {
		return Result{}, fmt.Errorf("dispatcher: sync: %w", err)
	}

	return Result{Path: filepath.Join(dir, finalName), Mode: Sync, Degraded: docErr}, nil
}

// parseWrittenHeader extracts the header a just-rendered content
// template produced, for the filename template's fm_* variables. A
// content template that (by scheme design, e.g. FromClipboardYaml
// passing an already-YAML clipboard header through) fails to parse is
// reported as a degraded error rather than aborting the write — the
// file is still created, just without fm_* substitutions available to
// its filename template.
func parseWrittenHeader(content string, sch *scheme.Scheme) (frontmatter.FrontMatter, error) {
	parsed, err := frontmatter.Parse([]byte(content))
	if err != nil {
		return nil, err
	}

	fm, err := frontmatter.Deserialize(parsed.Header)
	if err != nil {
		return nil, err
	}

	if err := frontmatter.AssertPreconditions(fm, sch.Preconditions); err != nil {
		return fm, err
	}

	return fm, nil
}

// createFile writes content to a fresh file in dir named candidate,
// allocating the lowest free copy-counter "(n)" on collision — the
// same counter-allocation idiom [syncer.Sync] uses for renames, here
// applied to an O_CREATE|O_EXCL loop instead, since there is no
// existing file to rename from.
func createFile(dir, candidate string, content []byte) (string, error) {
	ext := filepath.Ext(candidate)
	base := candidate[:len(candidate)-len(ext)]

	target := candidate
	for n := 1; ; n++ {
		f, err := os.OpenFile(filepath.Join(dir, target), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := f.Write(content)
			cerr := f.Close()
			if werr != nil {
				return "", werr
			}
			if cerr != nil {
				return "", cerr
			}
			return target, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		target = fmt.Sprintf("%s(%d)%s", base, n, ext)
	}
}

func trimLeadingDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

func fileModTime(path string, fallback time.Time) string {
	info, err := os.Stat(path)
	if err != nil {
		return fallback.Format("2006-01-02")
	}
	return info.ModTime().Format("2006-01-02")
}
