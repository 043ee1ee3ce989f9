package dispatcher

import (
	"errors"

	"go.tpnote.dev/tpnote/config"
	"go.tpnote.dev/tpnote/frontmatter"
)

// ExitCode maps an error returned by [Run] to the process exit code
// spec.md §6.2 defines: 0 on success (err == nil), 5 for configuration
// failures (errors from [config.Config.Load] that Load itself could
// not recover from by falling back to defaults), 1 for every other
// operational error — parse, IO, rename, render.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		return 5
	}

	return 1
}

// IsDegradedHeader reports whether err belongs to the
// HeaderMissing/HeaderSyntax/HeaderPrecondition category spec.md §7
// assigns a degraded path: a Sync-mode target whose header fails to
// parse or validate is still reported via [Result.Degraded] rather
// than aborting Run, so the CLI layer can show it through the
// viewer's error template (interactive) or exit 1 (batch).
func IsDegradedHeader(err error) bool {
	return errors.Is(err, frontmatter.ErrHeaderMissing) ||
		errors.Is(err, frontmatter.ErrHeaderSyntax) ||
		errors.Is(err, frontmatter.ErrPrecondition) ||
		errors.Is(err, frontmatter.ErrFieldType)
}
