package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ypbank/txcompare/internal/record"
)

// ParseError reports a structural or field-level decode failure, localized as
// precisely as the format allows: line-oriented formats set Line (1-based),
// the binary format sets Offset. Field names the offending wire key when the
// failure is field-level; Err, when set, is the underlying cause (usually a
// *record.FieldError) and is exposed for errors.As.
type ParseError struct {
	Format string
	Line   int
	Offset int64
	Field  string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:", e.Format)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d:", e.Line)
	}
	if e.Offset > 0 {
		fmt.Fprintf(&b, " offset %d:", e.Offset)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s:", e.Field)
	}
	b.WriteByte(' ')
	b.WriteString(e.Msg)

	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// LocalizeFieldError converts a canonicalization failure into a *ParseError
// pinned to the given source line, keeping the wire key of the offending
// field when the cause is a *record.FieldError.
func LocalizeFieldError(format string, line int, err error) error {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		return &ParseError{
			Format: format,
			Line:   line,
			Field:  fe.Field,
			Msg:    fmt.Sprintf("invalid value %q: %s", fe.Value, fe.Reason),
			Err:    err,
		}
	}
	return &ParseError{Format: format, Line: line, Msg: err.Error(), Err: err}
}

// UnsupportedFormat reports a registry lookup for a format identifier with no
// registered codec.
type UnsupportedFormat struct {
	Identifier string
}

func (e *UnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Identifier)
}
