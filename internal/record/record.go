// =============================================================================
// txcompare - Canonical Transaction Record
// =============================================================================
//
// This package defines the canonical, format-independent representation of a
// single ledger transaction. Every decoder produces these records and the
// comparator consumes them, so the field set and the equality rules defined
// here are the contract between all formats.
//
// Text-based decoders construct records through New, which validates the raw
// field values; the binary decoder fills the struct from already-typed wire
// values. Field validation failures are reported as *FieldError naming the
// offending wire key.
//
// =============================================================================

package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is supplied for formats that predate multi-currency support
// (csv, text, bin, xlsx) and therefore carry no currency column. The JSON
// format carries the currency explicitly. The CLI shell may override this
// from configuration before any decoding starts.
var DefaultCurrency = "USD"

// TransactionRecord is the canonical form of one ledger transaction. Decoders
// own construction; the struct is treated as immutable once returned.
type TransactionRecord struct {
	// ID identifies the transaction within its source sequence. Duplicates
	// are preserved in order and compared positionally like any other record.
	ID uint64

	// Type is the transaction kind (deposit, transfer, withdrawal).
	Type TxType

	// FromAccount is the sending account, 0 for deposits.
	FromAccount uint64

	// ToAccount is the receiving account, 0 for withdrawals.
	ToAccount uint64

	// Amount is the transaction value. Legacy formats express it as an
	// integer count of minor currency units; it is kept exactly as written.
	Amount decimal.Decimal

	// Currency is the uppercased ISO-style code the amount is denominated in.
	Currency string

	// Timestamp is the transaction time in UTC, millisecond precision.
	Timestamp time.Time

	// Status is the settlement state of the transaction.
	Status Status

	// Description is free text, preserved verbatim. Wire-level quote
	// wrapping is a format concern and is stripped before construction.
	Description string
}

// Fields carries the raw textual field values of one record as read off the
// wire. Decoders fill it and hand it to New for validation.
type Fields struct {
	ID          string
	Type        string
	FromAccount string
	ToAccount   string
	Amount      string
	Timestamp   string
	Status      string
	Description string

	// Currency is optional; the empty string selects DefaultCurrency.
	Currency string
}

// New validates the raw field values and builds a canonical record. The first
// field that fails validation aborts construction with a *FieldError; no
// value is ever silently defaulted or coerced.
func New(f Fields) (TransactionRecord, error) {
	var r TransactionRecord
	var err error

	if r.ID, err = parseAccountNumber(KeyTxID, f.ID); err != nil {
		return TransactionRecord{}, err
	}
	if r.Type, err = ParseTxType(f.Type); err != nil {
		return TransactionRecord{}, err
	}
	if r.FromAccount, err = parseAccountNumber(KeyFromUserID, f.FromAccount); err != nil {
		return TransactionRecord{}, err
	}
	if r.ToAccount, err = parseAccountNumber(KeyToUserID, f.ToAccount); err != nil {
		return TransactionRecord{}, err
	}
	if r.Amount, err = parseAmount(f.Amount); err != nil {
		return TransactionRecord{}, err
	}
	if r.Timestamp, err = parseTimestamp(f.Timestamp); err != nil {
		return TransactionRecord{}, err
	}
	if r.Status, err = ParseStatus(f.Status); err != nil {
		return TransactionRecord{}, err
	}
	if r.Currency, err = NormalizeCurrency(f.Currency); err != nil {
		return TransactionRecord{}, err
	}
	r.Description = f.Description

	return r, nil
}

// Equal reports whether two records are identical field by field. Comparison
// is exact: amounts must have the same numeric value AND the same currency,
// timestamps must name the same instant, descriptions must match byte for
// byte.
func (r TransactionRecord) Equal(o TransactionRecord) bool {
	return len(r.DiffFields(o)) == 0
}

// DiffFields returns the wire keys of every field on which the two records
// differ, in the canonical key order. An empty result means the records are
// equal.
func (r TransactionRecord) DiffFields(o TransactionRecord) []string {
	var diff []string

	if r.ID != o.ID {
		diff = append(diff, KeyTxID)
	}
	if r.Type != o.Type {
		diff = append(diff, KeyTxType)
	}
	if r.FromAccount != o.FromAccount {
		diff = append(diff, KeyFromUserID)
	}
	if r.ToAccount != o.ToAccount {
		diff = append(diff, KeyToUserID)
	}
	if !r.Amount.Equal(o.Amount) || r.Currency != o.Currency {
		diff = append(diff, KeyAmount)
	}
	if !r.Timestamp.Equal(o.Timestamp) {
		diff = append(diff, KeyTimestamp)
	}
	if r.Status != o.Status {
		diff = append(diff, KeyStatus)
	}
	if r.Description != o.Description {
		diff = append(diff, KeyDescription)
	}

	sort.Slice(diff, func(i, j int) bool { return keyOrder[diff[i]] < keyOrder[diff[j]] })
	return diff
}

// String renders the record in a single line for diagnostics and mismatch
// reports.
func (r TransactionRecord) String() string {
	return fmt.Sprintf(
		"tx_id: %d, tx_type: %s, from_user_id: %d, to_user_id: %d, amount: %s %s, timestamp: %d, status: %s, description: %q",
		r.ID, r.Type, r.FromAccount, r.ToAccount,
		r.Amount.String(), r.Currency, r.Timestamp.UnixMilli(), r.Status, r.Description,
	)
}

// =============================================================================
// FIELD VALIDATION
// =============================================================================

// parseAccountNumber parses TX_ID, FROM_USER_ID and TO_USER_ID, which are all
// non-negative base-10 integers on the wire.
func parseAccountNumber(key, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: key, Value: value, Reason: "not a non-negative integer"}
	}
	return n, nil
}

// parseAmount parses AMOUNT as a fixed-precision decimal. The decimal library
// keeps the value exact, so "100" and "100.00" decode to equal amounts on
// every platform with no floating-point drift.
func parseAmount(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, &FieldError{Field: KeyAmount, Value: value, Reason: "not a number"}
	}
	return d, nil
}

// parseTimestamp accepts either a Unix epoch value in milliseconds (legacy
// formats) or an RFC 3339 string (JSON). Anything else is a decode failure,
// never a defaulted value.
func parseTimestamp(value string) (time.Time, error) {
	if isDigits(value) {
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, &FieldError{Field: KeyTimestamp, Value: value, Reason: "epoch milliseconds out of range"}
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, &FieldError{Field: KeyTimestamp, Value: value, Reason: "not epoch milliseconds or an RFC 3339 timestamp"}
	}
	return t.UTC(), nil
}

// NormalizeCurrency uppercases and validates a currency code. The empty
// string selects DefaultCurrency for formats without a currency column.
func NormalizeCurrency(value string) (string, error) {
	if value == "" {
		return DefaultCurrency, nil
	}

	code := strings.ToUpper(value)
	if len(code) != 3 {
		return "", &FieldError{Field: KeyCurrency, Value: value, Reason: "currency code must be three letters"}
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return "", &FieldError{Field: KeyCurrency, Value: value, Reason: "currency code must be three letters"}
		}
	}
	return code, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
