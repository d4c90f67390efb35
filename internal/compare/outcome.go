package compare

import "github.com/ypbank/txcompare/internal/record"

// Side tags which input a decode failure belongs to.
type Side int

const (
	SideFirst Side = iota
	SideSecond
)

func (s Side) String() string {
	if s == SideFirst {
		return "first"
	}
	return "second"
}

// Outcome is the result of aligning two record sequences: Match, Mismatch,
// LengthMismatch or DecodeFailure. Divergence is a successfully computed
// result, not an error; only DecodeFailure carries an upstream error.
type Outcome interface {
	isOutcome()
}

// Match reports that both sequences are equal, pair by pair and in length.
type Match struct {
	// Records is the common sequence length.
	Records int
}

// Mismatch reports the first index at which the sequences diverge.
type Mismatch struct {
	Index           int
	Left            record.TransactionRecord
	Right           record.TransactionRecord
	DifferingFields []string
}

// LengthMismatch reports sequences that agree on their shared prefix but
// differ in length. ExtraRecords is the tail of the longer sequence and
// LongerSide names the input it came from.
type LengthMismatch struct {
	ShorterLen   int
	LongerLen    int
	LongerSide   Side
	ExtraRecords []record.TransactionRecord
}

// DecodeFailure reports that one side failed to decode; the comparator never
// ran. Err is the upstream *codec.ParseError or *codec.UnsupportedFormat,
// reported verbatim.
type DecodeFailure struct {
	Side Side
	Err  error
}

func (Match) isOutcome()          {}
func (Mismatch) isOutcome()       {}
func (LengthMismatch) isOutcome() {}
func (DecodeFailure) isOutcome()  {}
