// =============================================================================
// txcompare - Codec Interfaces
// =============================================================================
//
// A codec turns one file's byte stream into an ordered sequence of canonical
// transaction records, and back. One implementation exists per supported
// format (csv, text, bin, json, xlsx); all of them are stateless and safe for
// concurrent use.
//
// Decoding is strict: the first malformed unit aborts the decode with a
// *ParseError localized to a line or byte offset, and no partial sequence is
// returned. Source order is significant and always preserved.
//
// =============================================================================

package codec

import (
	"io"

	"github.com/ypbank/txcompare/internal/record"
)

// Decoder converts a complete byte stream into transaction records. An empty
// input decodes to an empty sequence, not an error.
type Decoder interface {
	Decode(r io.Reader) ([]record.TransactionRecord, error)
}

// Encoder serializes a record sequence into its format's byte representation.
type Encoder interface {
	Encode(w io.Writer, records []record.TransactionRecord) error
}

// Codec is a bidirectional format implementation. Name returns the canonical
// (lowercase) format identifier used for registry lookup.
type Codec interface {
	Decoder
	Encoder
	Name() string
}
