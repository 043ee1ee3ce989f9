package frontmatter

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
)

// Deserialize parses header text (the block between the start and end
// markers) into a [FrontMatter]. It fails with [ErrHeaderSyntax] if the
// text is not valid YAML or its root is not a mapping.
//
// Values recognized as a calendar date (RFC 3339 date or date-time) are
// normalized to their ISO-8601 string form, per spec.md §4.B.
func Deserialize(headerText string) (FrontMatter, error) {
	var raw map[string]any

	if err := yaml.Unmarshal([]byte(headerText), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeaderSyntax, err)
	}

	fm := make(FrontMatter, len(raw))

	for k, v := range raw {
		fm[k] = toValue(v)
	}

	return fm, nil
}

// toValue converts a value produced by yaml.Unmarshal into a [Value].
func toValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{kind: KindNull}
	case string:
		if iso, ok := normalizeDate(t); ok {
			return String(iso)
		}

		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Int(int64(t))
	case float64:
		return Float(t)
	case time.Time:
		return String(t.Format("2006-01-02"))
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = toValue(e)
		}

		return Seq(out)
	case map[string]any:
		out := make(FrontMatter, len(t))
		for k, e := range t {
			out[k] = toValue(e)
		}

		return Map(out)
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// normalizeDate reports whether s parses as an RFC 3339 date or date-time,
// returning its ISO-8601 date form (YYYY-MM-DD) if so.
func normalizeDate(s string) (string, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), true
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02"), true
	}

	return "", false
}
