package frontmatter

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// FieldPrecondition constrains one header field: its type and emptiness, via
// a [jsonschema.Schema], plus whether the field must be present at all.
type FieldPrecondition struct {
	Schema   *jsonschema.Schema
	Required bool
}

// PreconditionTable maps a header field name to its [FieldPrecondition].
type PreconditionTable map[string]FieldPrecondition

// HeaderPreconditionError reports which field failed validation and why,
// per spec.md §4.B's HeaderPrecondition{field, got, expected}.
type HeaderPreconditionError struct {
	Field    string
	Got      string
	Expected string
}

func (e *HeaderPreconditionError) Error() string {
	return fmt.Sprintf("%s: field %q: got %s, expected %s", ErrPrecondition, e.Field, e.Got, e.Expected)
}

func (e *HeaderPreconditionError) Unwrap() error { return ErrPrecondition }

// AssertPreconditions checks fm against table: for each named field, fm's
// value (if present) must match the schema's declared type and, if
// Required, must be present and non-empty. The schema fields this function
// reads -- [jsonschema.Schema.Type] and [jsonschema.Schema.MinLength] -- are
// read one field at a time rather than via an external validator, since
// jsonschema-go ships schema types, not a Validate method.
func AssertPreconditions(fm FrontMatter, table PreconditionTable) error {
	for field, fp := range table {
		if fp.Schema == nil {
			continue
		}

		v, present := fm[field]

		if !present {
			if fp.Required {
				return &HeaderPreconditionError{Field: field, Got: "missing", Expected: "present"}
			}

			continue
		}

		if err := checkType(field, v, fp.Schema); err != nil {
			return err
		}

		if fp.Required && v.IsEmpty() {
			return &HeaderPreconditionError{Field: field, Got: "empty", Expected: "non-empty"}
		}

		if fp.Schema.MinLength != nil {
			s, err := v.AsString()
			if err != nil {
				return &HeaderPreconditionError{Field: field, Got: v.Kind().String(), Expected: "string"}
			}

			if len(s) < *fp.Schema.MinLength {
				return &HeaderPreconditionError{
					Field:    field,
					Got:      fmt.Sprintf("length %d", len(s)),
					Expected: fmt.Sprintf("length >= %d", *fp.Schema.MinLength),
				}
			}
		}
	}

	return nil
}

// checkType verifies v's kind against schema's declared JSON Schema type.
func checkType(field string, v Value, schema *jsonschema.Schema) error {
	want := schema.Type
	if want == "" {
		return nil
	}

	if !kindMatchesJSONType(v.Kind(), want) {
		return &HeaderPreconditionError{Field: field, Got: v.Kind().String(), Expected: want}
	}

	return nil
}

func kindMatchesJSONType(k Kind, jsonType string) bool {
	switch jsonType {
	case "string":
		return k == KindString || k == KindNull
	case "integer":
		return k == KindInt
	case "number":
		return k == KindInt || k == KindFloat
	case "boolean":
		return k == KindBool
	case "array":
		return k == KindSeq || k == KindNull
	case "object":
		return k == KindMap || k == KindNull
	default:
		return true
	}
}
