package dispatcher

import (
	"go.tpnote.dev/tpnote/frontmatter"
	"go.tpnote.dev/tpnote/scheme"
)

// Mode is one state of the operation-mode dispatcher's state machine.
type Mode int

const (
	FromDir Mode = iota
	FromClipboard
	FromClipboardYaml
	AnnotateFile
	Sync
	FromTextFile
)

func (m Mode) String() string {
	switch m {
	case FromDir:
		return "FromDir"
	case FromClipboard:
		return "FromClipboard"
	case FromClipboardYaml:
		return "FromClipboardYaml"
	case AnnotateFile:
		return "AnnotateFile"
	case Sync:
		return "Sync"
	case FromTextFile:
		return "FromTextFile"
	default:
		return "Mode(unknown)"
	}
}

// ClassifyInput is everything [Classify] needs to pick a mode, decoupled
// from the filesystem/clipboard IO that produces it so the state
// machine itself stays pure and directly testable.
type ClassifyInput struct {
	// IsDir is true when the invocation target is a directory.
	IsDir bool
	// ExtensionRegistered is true when the target file's extension is
	// one of the active scheme's registered note extensions. Ignored
	// when IsDir.
	ExtensionRegistered bool
	// HeaderPresent is true when the target file's content begins with
	// a front-matter header at all (regardless of whether it passes
	// the scheme's preconditions). Ignored when IsDir or
	// !ExtensionRegistered.
	HeaderPresent bool
	// Ingested is the clipboard/stdin text read for a directory
	// target. Ignored when !IsDir.
	Ingested string
}

// Classify selects the operation mode per spec.md §4.F's table.
func Classify(in ClassifyInput) Mode {
	if in.IsDir {
		if in.Ingested == "" {
			return FromDir
		}
		if beginsWithHeader(in.Ingested) {
			return FromClipboardYaml
		}
		return FromClipboard
	}

	if !in.ExtensionRegistered {
		return AnnotateFile
	}

	if in.HeaderPresent {
		return Sync
	}

	return FromTextFile
}

// beginsWithHeader reports whether text opens directly with a valid
// front-matter header, mirroring clipboard.split's own criterion: a
// header found only after skipping a leading prefix doesn't count.
func beginsWithHeader(text string) bool {
	parsed, err := frontmatter.Parse([]byte(text))
	return err == nil && parsed.Prefix == ""
}

// ContentTemplateKey returns the scheme content-template key for m, or
// "" for modes that only rename (Sync).
func ContentTemplateKey(m Mode) string {
	switch m {
	case FromDir:
		return scheme.TmplFromDirContent
	case FromClipboard:
		return scheme.TmplFromClipboardContent
	case FromClipboardYaml:
		return scheme.TmplFromClipboardYamlContent
	case AnnotateFile:
		return scheme.TmplAnnotateFileContent
	case FromTextFile:
		return scheme.TmplFromTextFileContent
	default:
		return ""
	}
}

// FilenameTemplateKey returns the scheme filename-template key for m.
func FilenameTemplateKey(m Mode) string {
	switch m {
	case FromDir:
		return scheme.TmplFromDirFilename
	case FromClipboard:
		return scheme.TmplFromClipboardFilename
	case FromClipboardYaml:
		return scheme.TmplFromClipboardYamlFilename
	case AnnotateFile:
		return scheme.TmplAnnotateFileFilename
	case FromTextFile:
		return scheme.TmplFromTextFileFilename
	case Sync:
		return scheme.TmplSyncFilename
	default:
		return ""
	}
}
