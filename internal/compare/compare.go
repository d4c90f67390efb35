// =============================================================================
// txcompare - Comparison Engine
// =============================================================================
//
// The comparator aligns two record sequences positionally: record i of the
// left sequence is compared against record i of the right one. The tool
// verifies that two logs represent the same transaction stream in the same
// order, so no content-based realignment or edit-distance diffing is
// attempted; an inserted or reordered record surfaces as a mismatch at the
// first affected index.
//
// =============================================================================

package compare

import "github.com/ypbank/txcompare/internal/record"

// Compare performs a deterministic left-to-right scan over the shared prefix
// of the two sequences and returns the first divergence, a LengthMismatch
// when the prefix agrees but the lengths differ, or Match.
func Compare(left, right []record.TransactionRecord) Outcome {
	shared := min(len(left), len(right))

	for i := 0; i < shared; i++ {
		if diff := left[i].DiffFields(right[i]); len(diff) > 0 {
			return Mismatch{
				Index:           i,
				Left:            left[i],
				Right:           right[i],
				DifferingFields: diff,
			}
		}
	}

	if len(left) != len(right) {
		return lengthMismatch(left, right)
	}

	return Match{Records: shared}
}

// CompareAll reports every divergence instead of stopping at the first:
// one Mismatch per differing shared index, followed by a LengthMismatch when
// the lengths differ. Equal sequences yield a single Match.
func CompareAll(left, right []record.TransactionRecord) []Outcome {
	shared := min(len(left), len(right))

	var outcomes []Outcome
	for i := 0; i < shared; i++ {
		if diff := left[i].DiffFields(right[i]); len(diff) > 0 {
			outcomes = append(outcomes, Mismatch{
				Index:           i,
				Left:            left[i],
				Right:           right[i],
				DifferingFields: diff,
			})
		}
	}

	if len(left) != len(right) {
		outcomes = append(outcomes, lengthMismatch(left, right))
	}

	if len(outcomes) == 0 {
		return []Outcome{Match{Records: shared}}
	}
	return outcomes
}

func lengthMismatch(left, right []record.TransactionRecord) LengthMismatch {
	longer, side := left, SideFirst
	if len(right) > len(left) {
		longer, side = right, SideSecond
	}
	shorter := min(len(left), len(right))

	extra := make([]record.TransactionRecord, len(longer)-shorter)
	copy(extra, longer[shorter:])

	return LengthMismatch{
		ShorterLen:   shorter,
		LongerLen:    len(longer),
		LongerSide:   side,
		ExtraRecords: extra,
	}
}
