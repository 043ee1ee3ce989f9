package clipboard

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"go.tpnote.dev/tpnote/frontmatter"
)

// htmlPrefixes are the stdin sniffing markers spec'd for telling rich
// text apart from plain text in batch mode.
var htmlPrefixes = []string{"<!DOCTYPE html", "<html"}

// Ingester is the capability set an operation mode needs to obtain input
// text: read the plain and rich clipboard selections (interactive mode),
// read stdin (batch mode), and clear the clipboard after a successful
// creation.
type Ingester interface {
	ReadPlain() (string, error)
	ReadHTML() (string, error)
	ReadStdin() (string, error)
	Clear() error
}

// System is the platform clipboard, backed by github.com/atotto/clipboard.
// Its HTML capability is a degenerate no-op: atotto/clipboard exposes only
// a single plain-text selection, and reading a platform's rich-clipboard
// format is the "clipboard platform bindings" left unspecified.
type System struct{}

var _ Ingester = System{}

func (System) ReadPlain() (string, error) { return clipboard.ReadAll() }
func (System) ReadHTML() (string, error)  { return "", nil }
func (System) Clear() error               { return clipboard.WriteAll("") }

func (System) ReadStdin() (string, error) {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Stdin is the batch-mode ingester: plain and html are both served from
// one buffered read of r, sniffed for an HTML prefix. Clear is a no-op
// since batch mode never touches the interactive clipboard.
type Stdin struct {
	text string
	read bool
	r    io.Reader
}

var _ Ingester = (*Stdin)(nil)

// NewStdin returns a [Stdin] ingester reading from r.
func NewStdin(r io.Reader) *Stdin {
	return &Stdin{r: r}
}

func (s *Stdin) ReadStdin() (string, error) {
	if s.read {
		return s.text, nil
	}

	b, err := io.ReadAll(s.r)
	if err != nil {
		return "", err
	}

	s.text = string(b)
	s.read = true

	return s.text, nil
}

func (s *Stdin) ReadPlain() (string, error) {
	text, err := s.ReadStdin()
	if err != nil {
		return "", err
	}

	if isHTML(text) {
		return "", nil
	}

	return text, nil
}

func (s *Stdin) ReadHTML() (string, error) {
	text, err := s.ReadStdin()
	if err != nil {
		return "", err
	}

	if isHTML(text) {
		return text, nil
	}

	return "", nil
}

func (s *Stdin) Clear() error { return nil }

func isHTML(text string) bool {
	for _, p := range htmlPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}

	return false
}

// Variables is the set of template variables [Ingest] produces.
type Variables struct {
	TxtClipboard       string
	TxtClipboardHeader string

	HTMLClipboard       string
	HTMLClipboardHeader string

	Stdin       string
	StdinHeader string
}

// Ingest reads ing's plain/HTML clipboard selections in interactive mode,
// or stdin in batch mode, splitting any front-matter-prefixed text into
// its header and body halves.
func Ingest(ing Ingester, interactive bool) (Variables, error) {
	var v Variables

	if interactive {
		plain, err := ing.ReadPlain()
		if err != nil {
			return Variables{}, err
		}

		v.TxtClipboard, v.TxtClipboardHeader = split(plain)

		html, err := ing.ReadHTML()
		if err != nil {
			return Variables{}, err
		}

		v.HTMLClipboard, v.HTMLClipboardHeader = split(html)

		return v, nil
	}

	text, err := ing.ReadStdin()
	if err != nil {
		return Variables{}, err
	}

	v.Stdin, v.StdinHeader = split(text)

	return v, nil
}

// split separates text into its body and header halves if text begins
// with a valid front matter header; otherwise header is empty and body
// is text unchanged.
func split(text string) (body, header string) {
	if text == "" {
		return "", ""
	}

	parsed, err := frontmatter.Parse([]byte(text))
	if err != nil || parsed.Prefix != "" {
		// Either no header at all, or one found only after skipping a
		// leading prefix — ingested text must *begin* with the header.
		return text, ""
	}

	return parsed.Body, parsed.Header
}
