package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by [Parse], [Deserialize], and
// [AssertPreconditions].
var (
	ErrHeaderMissing = errors.New("header missing")
	ErrHeaderSyntax  = errors.New("header syntax")
	ErrPrecondition  = errors.New("header precondition")
	ErrFieldType     = errors.New("header field type")
)

// startMarker and endMarkers delimit the header block.
const startMarker = "---"

var endMarkers = []string{"---", "..."}

// MaxIgnorablePrefix bounds how many bytes of a leading, non-header prefix
// Parse will skip looking for the start marker.
const MaxIgnorablePrefix = 2048

// Parsed is the three-way split of a note file's bytes.
type Parsed struct {
	// Prefix is the ignorable text preceding the header, if any (without
	// its trailing blank line).
	Prefix string
	// Header is the raw text between the start and end markers, exclusive.
	Header string
	// Body is everything after the end marker line.
	Body string
}

// Parse splits file content into its ignorable prefix, header, and body.
// It fails with [ErrHeaderMissing] if no start marker is found within
// [MaxIgnorablePrefix] bytes, terminated by a blank line, or with
// [ErrHeaderSyntax] if a start marker is found but no matching end marker
// follows.
func Parse(content []byte) (Parsed, error) {
	text := normalizeLineEndings(string(content))
	lines := strings.Split(text, "\n")

	prefixEnd, headerStart, err := findStart(lines)
	if err != nil {
		return Parsed{}, err
	}

	headerEnd := -1

	for i := headerStart + 1; i < len(lines); i++ {
		if isEndMarker(lines[i]) {
			headerEnd = i

			break
		}
	}

	if headerEnd == -1 {
		return Parsed{}, fmt.Errorf("%w: no end marker found for header starting at line %d", ErrHeaderSyntax, headerStart+1)
	}

	return Parsed{
		Prefix: strings.Join(lines[:prefixEnd], "\n"),
		Header: strings.Join(lines[headerStart+1:headerEnd], "\n"),
		Body:   strings.Join(lines[headerEnd+1:], "\n"),
	}, nil
}

// findStart locates the header start marker. If the file begins with the
// marker directly, there is no prefix. Otherwise it skips an ignorable
// prefix (bounded by [MaxIgnorablePrefix] bytes) up to its terminating
// blank line, and requires the start marker to be the very next line.
func findStart(lines []string) (prefixEnd, headerStart int, err error) {
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == startMarker {
		return 0, 0, nil
	}

	budget := MaxIgnorablePrefix

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		budget -= len(lines[i]) + 1
		if budget < 0 {
			return 0, 0, fmt.Errorf("%w: no start marker %q found within %d bytes", ErrHeaderMissing, startMarker, MaxIgnorablePrefix)
		}

		i++
	}

	next := i + 1
	if i >= len(lines) || next >= len(lines) || strings.TrimSpace(lines[next]) != startMarker {
		return 0, 0, fmt.Errorf("%w: no start marker %q found", ErrHeaderMissing, startMarker)
	}

	return i, next, nil
}

func isEndMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, m := range endMarkers {
		if trimmed == m {
			return true
		}
	}

	return false
}

func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
