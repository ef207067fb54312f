package catalog

import (
	"bytes"
	"fmt"
	"strings"
)

func lineSuffix(line int) string {
	if line > 0 {
		return fmt.Sprintf(" (line %d)", line)
	}
	return ""
}

// MissingReferenceError reports a reference to an item the document does not define
type MissingReferenceError struct {
	Item string // Referencing item, empty for a direct build request
	Ref  string // Name that could not be found
	Line int
}

// Error returns a formatted error message
func (e *MissingReferenceError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("item %q is not defined%s", e.Ref, lineSuffix(e.Line))
	}
	return fmt.Sprintf("item %q references undefined item %q%s", e.Item, e.Ref, lineSuffix(e.Line))
}

// MissingRequiredKeyError reports a table without item or a get-table without rpc
type MissingRequiredKeyError struct {
	Item string
	Key  string
	Line int
}

// Error returns a formatted error message
func (e *MissingRequiredKeyError) Error() string {
	return fmt.Sprintf("item %q is missing required key %q%s", e.Item, e.Key, lineSuffix(e.Line))
}

// UnsupportedTypeError reports an astype name outside the type registry
type UnsupportedTypeError struct {
	Item      string
	Field     string
	Type      string
	Supported []string
	Line      int
}

// Error returns a formatted error message
func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("field %q of item %q uses unsupported type %q%s", e.Field, e.Item, e.Type, lineSuffix(e.Line))
	if len(e.Supported) > 0 {
		msg += fmt.Sprintf(". Suggestion: use one of %s", strings.Join(e.Supported, ", "))
	}
	return msg
}

// MalformedDefinitionError reports a definition that does not have the expected shape
type MalformedDefinitionError struct {
	Item    string
	Path    string // Attribute path inside the item, e.g. "fields.mtu"
	Message string
	Line    int
}

// Error returns a formatted error message
func (e *MalformedDefinitionError) Error() string {
	switch {
	case e.Item == "":
		return fmt.Sprintf("malformed document%s: %s", lineSuffix(e.Line), e.Message)
	case e.Path == "":
		return fmt.Sprintf("malformed item %q%s: %s", e.Item, lineSuffix(e.Line), e.Message)
	default:
		return fmt.Sprintf("malformed item %q at %s%s: %s", e.Item, e.Path, lineSuffix(e.Line), e.Message)
	}
}

// KindMismatchError reports a reference to an item of the wrong kind,
// e.g. a table whose view names another table
type KindMismatchError struct {
	Item string
	Ref  string
	Want Kind
	Got  Kind
	Line int
}

// Error returns a formatted error message
func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("item %q references %q as a %s, but it is a %s%s", e.Item, e.Ref, e.Want, e.Got, lineSuffix(e.Line))
}

// CircularReferenceError reports items that reference each other in a loop
type CircularReferenceError struct {
	Chain []string // First and last entries name the same item
}

// Error returns a formatted error message
func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference: %s", strings.Join(e.Chain, " -> "))
}

// BuildErrors collects the failures of a full-document check
type BuildErrors []error

// Error returns all build errors formatted with clear separation
func (e BuildErrors) Error() string {
	if len(e) == 0 {
		return "build errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("found %d build errors:\n", len(e)))
	for i, err := range e {
		buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return buf.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e BuildErrors) Unwrap() []error {
	return e
}
