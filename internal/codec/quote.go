package codec

import "strings"

// The legacy formats (csv, text, bin) wrap the DESCRIPTION value in double
// quotes on the wire. The quotes are format escaping, not part of the value:
// decoders strip them, encoders re-add them, and the canonical record holds
// the bare text.

// UnwrapDescription strips the mandatory surrounding quotes from a wire-level
// description value. It reports false when the value is not quote-wrapped.
func UnwrapDescription(value string) (string, bool) {
	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return "", false
	}
	return value[1 : len(value)-1], true
}

// WrapDescription adds the wire-level surrounding quotes.
func WrapDescription(value string) string {
	return `"` + value + `"`
}
