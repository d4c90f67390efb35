package record

import "strconv"

// Status is the settlement state of a transaction. The numeric values are
// the binary format's on-wire encoding and must not be reordered.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusPending
)

var statusNames = map[Status]string{
	StatusSuccess: "SUCCESS",
	StatusFailure: "FAILURE",
	StatusPending: "PENDING",
}

// String returns the wire spelling of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus parses the textual wire spelling of a transaction status.
func ParseStatus(value string) (Status, error) {
	switch value {
	case "SUCCESS":
		return StatusSuccess, nil
	case "FAILURE":
		return StatusFailure, nil
	case "PENDING":
		return StatusPending, nil
	}
	return 0, &FieldError{Field: KeyStatus, Value: value, Reason: "unknown status"}
}

// StatusFromByte decodes the binary representation of a transaction status.
func StatusFromByte(b byte) (Status, error) {
	s := Status(b)
	if _, ok := statusNames[s]; !ok {
		return 0, &FieldError{Field: KeyStatus, Value: strconv.Itoa(int(b)), Reason: "unknown status"}
	}
	return s, nil
}
