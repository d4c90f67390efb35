package record

import "fmt"

// FieldError reports that a single field failed semantic validation during
// canonicalization. Field holds the wire key (TX_ID, AMOUNT, ...), Value the
// raw input as read off the wire.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: invalid value %q: %s", e.Field, e.Value, e.Reason)
}
