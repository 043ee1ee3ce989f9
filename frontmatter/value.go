package frontmatter

import "fmt"

// Kind discriminates the variants of [Value].
type Kind int

const (
	// KindNull is the kind of an absent or YAML-null value.
	KindNull Kind = iota
	// KindString is a scalar string value.
	KindString
	// KindInt is a scalar integer value.
	KindInt
	// KindFloat is a scalar floating-point value.
	KindFloat
	// KindBool is a scalar boolean value.
	KindBool
	// KindSeq is an ordered sequence of values.
	KindSeq
	// KindMap is a mapping from string keys to values.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged header field value: a scalar (string, int, float, bool),
// a sequence, or a nested map. Filters and precondition checks switch on
// [Value.Kind] rather than type-asserting an `any`, so a malformed header
// produces an [ErrFieldType] error instead of a panic.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	seq  []Value
	m    FrontMatter
}

// FrontMatter is a deserialized header: a mapping from string key to tagged
// [Value].
type FrontMatter map[string]Value

func String(s string) Value   { return Value{kind: KindString, str: s} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Seq(v []Value) Value     { return Value{kind: KindSeq, seq: v} }
func Map(m FrontMatter) Value { return Value{kind: KindMap, m: m} }

// Kind reports v's variant.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the null kind, an empty string, an empty
// sequence, or an empty map -- the notion of "empty" the precondition table
// checks against.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == ""
	case KindSeq:
		return len(v.seq) == 0
	case KindMap:
		return len(v.m) == 0
	default:
		return false
	}
}

// AsString returns v's string representation for scalar kinds, and an error
// for sequences and maps.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindInt:
		return fmt.Sprintf("%d", v.i), nil
	case KindFloat:
		return fmt.Sprintf("%g", v.f), nil
	case KindBool:
		return fmt.Sprintf("%t", v.b), nil
	case KindNull:
		return "", nil
	default:
		return "", fmt.Errorf("%w: cannot render %s as a string", ErrFieldType, v.kind)
	}
}

// AsInt returns v's integer value, or an error if v is not [KindInt].
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("%w: %s is not an int", ErrFieldType, v.kind)
	}

	return v.i, nil
}

// AsFloat returns v's floating-point value, or an error if v is not
// [KindFloat].
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("%w: %s is not a float", ErrFieldType, v.kind)
	}

	return v.f, nil
}

// AsBool returns v's boolean value, or an error if v is not [KindBool].
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: %s is not a bool", ErrFieldType, v.kind)
	}

	return v.b, nil
}

// AsSeq returns v's elements if v is a sequence, or a one-element slice
// containing v itself if v is a non-null scalar (the "scalar-or-list"
// convenience tpnote filters like `keywords` rely on), or an error for maps.
func (v Value) AsSeq() ([]Value, error) {
	switch v.kind {
	case KindSeq:
		return v.seq, nil
	case KindMap:
		return nil, fmt.Errorf("%w: cannot render a map as a sequence", ErrFieldType)
	case KindNull:
		return nil, nil
	default:
		return []Value{v}, nil
	}
}

// AsMap returns v's entries if v is a map, or an error otherwise.
func (v Value) AsMap() (FrontMatter, error) {
	if v.kind != KindMap {
		return nil, fmt.Errorf("%w: %s is not a map", ErrFieldType, v.kind)
	}

	return v.m, nil
}
