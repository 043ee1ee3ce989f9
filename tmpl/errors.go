package tmpl

import "fmt"

// FilterError is returned by a filter on type or value violation, per
// spec.md §4.C: "fail with FilterError{name, reason}".
type FilterError struct {
	Name   string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: %s", e.Name, e.Reason)
}
