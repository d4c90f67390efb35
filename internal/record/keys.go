package record

// Wire keys of the canonical record fields. These spellings are shared by the
// text format (as line prefixes), the csv and xlsx formats (as header
// columns) and by field-level error reporting.
const (
	KeyTxID        = "TX_ID"
	KeyTxType      = "TX_TYPE"
	KeyFromUserID  = "FROM_USER_ID"
	KeyToUserID    = "TO_USER_ID"
	KeyAmount      = "AMOUNT"
	KeyTimestamp   = "TIMESTAMP"
	KeyStatus      = "STATUS"
	KeyDescription = "DESCRIPTION"

	// KeyCurrency only appears in formats with explicit currency support.
	KeyCurrency = "CURRENCY"
)

// ExpectedKeys lists the legacy wire keys in their canonical column order.
// The csv and xlsx headers are exactly this sequence; the text format
// requires each block to contain all of them.
var ExpectedKeys = []string{
	KeyTxID,
	KeyTxType,
	KeyFromUserID,
	KeyToUserID,
	KeyAmount,
	KeyTimestamp,
	KeyStatus,
	KeyDescription,
}

// keyOrder indexes the canonical ordering used when sorting differing-field
// reports. CURRENCY sorts with AMOUNT since the two are compared together.
var keyOrder = map[string]int{
	KeyTxID:        0,
	KeyTxType:      1,
	KeyFromUserID:  2,
	KeyToUserID:    3,
	KeyAmount:      4,
	KeyCurrency:    4,
	KeyTimestamp:   5,
	KeyStatus:      6,
	KeyDescription: 7,
}
