// Package diag contains building blocks for diagnostics that point into
// source code.
package diag

import (
	"fmt"
	"strings"
)

// ErrorTag is used to parameterize [Error] into different concrete types. The
// ErrorTag method is called with a zero receiver, and its return value is used
// in [Error.Error] and [Error.Show].
type ErrorTag interface {
	ErrorTag() string
}

// Error is an error with a source range. The type parameter is used to
// distinguish errors from different subsystems (like lexing vs statement
// shaping) that otherwise carry the same data.
type Error[T ErrorTag] struct {
	Message string
	Context Context
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	return fmt.Sprintf("%s: %s: %s", tag[T](), e.Context.describeRange(), e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error with the source context, styled for a terminal.
func (e *Error[T]) Show(indent string) string {
	return fmt.Sprintf("%s: %s\n%s", tag[T](), styled(e.Message, errorStyle),
		e.Context.Show(indent+"  "))
}

func tag[T ErrorTag]() string {
	var t T
	return t.ErrorTag()
}

// PackErrors packs multiple instances of [Error] with the same tag into one
// error. It returns nil if the slice is empty, the sole error if there is
// exactly one, and a multiError otherwise.
func PackErrors[T ErrorTag](errs []*Error[T]) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return multiError[T](errs)
	}
}

// UnpackErrors returns the constituent [Error] instances in an error if it is
// built from [PackErrors]. Otherwise it returns nil.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	if err, ok := err.(*Error[T]); ok {
		return []*Error[T]{err}
	}
	if errs, ok := err.(multiError[T]); ok {
		return errs
	}
	return nil
}

type multiError[T ErrorTag] []*Error[T]

func (errs multiError[T]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple %ss: ", tag[T]())
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %s", e.Context.describeRange(), e.Message)
	}
	return sb.String()
}

func (errs multiError[T]) Show(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple %ss:", tag[T]())
	for _, e := range errs {
		sb.WriteString("\n" + indent + "  " + e.Show(indent+"  "))
	}
	return sb.String()
}
