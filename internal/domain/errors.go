package domain

import "fmt"

// InvalidInputError reports a malformed entry encountered during calculation,
// naming the offending field and the index of the entry within its collection.
type InvalidInputError struct {
	Field string
	Index int
	Msg   string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input at %s[%d]: %s", e.Field, e.Index, e.Msg)
}

// UnsupportedYearError is returned when no rule set is registered for the
// requested tax year.
type UnsupportedYearError struct {
	Year int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("no tax rules registered for year %d", e.Year)
}

// ValidationError reports a record that violates a structural invariant.
// Path identifies the offending field (e.g. "dependents[1].tax_id").
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}
