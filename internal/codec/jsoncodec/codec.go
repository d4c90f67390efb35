// =============================================================================
// txcompare - JSON Format Codec
// =============================================================================
//
// The json ledger format is a single JSON array of transaction objects:
//
//   [{"id": 1001, "type": "DEPOSIT", "from_account": 0, "to_account": 501,
//     "amount": 50000, "currency": "USD",
//     "timestamp": "2023-01-01T00:00:00Z", "status": "SUCCESS",
//     "description": "Initial account funding"}]
//
// It is the only format carrying an explicit currency. Numeric fields are
// decoded through json.Number so the amount literal is preserved exactly and
// never passes through a float. Timestamps are RFC 3339.
//
// =============================================================================

package jsoncodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

// FormatName is the registry identifier of this codec.
const FormatName = "json"

// Codec implements the json ledger format. The zero value is ready to use.
type Codec struct{}

// New returns a json codec.
func New() *Codec { return &Codec{} }

// Name returns the registry identifier.
func (*Codec) Name() string { return FormatName }

// wireRecord is the JSON shape of one transaction. Numeric fields use
// json.Number to keep the source literal intact.
type wireRecord struct {
	ID          json.Number `json:"id"`
	Type        string      `json:"type"`
	FromAccount json.Number `json:"from_account"`
	ToAccount   json.Number `json:"to_account"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Timestamp   string      `json:"timestamp"`
	Status      string      `json:"status"`
	Description string      `json:"description"`
}

// Decode reads the full stream and returns the records in array order.
// Empty (or whitespace-only) input decodes to an empty sequence.
func (*Codec) Decode(r io.Reader) ([]record.TransactionRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("json: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var wires []wireRecord
	if err := dec.Decode(&wires); err != nil {
		return nil, structuralError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &codec.ParseError{
			Format: FormatName,
			Offset: dec.InputOffset(),
			Msg:    "unexpected data after the transaction array",
		}
	}

	records := make([]record.TransactionRecord, 0, len(wires))
	for i, wire := range wires {
		rec, err := record.New(record.Fields{
			ID:          wire.ID.String(),
			Type:        wire.Type,
			FromAccount: wire.FromAccount.String(),
			ToAccount:   wire.ToAccount.String(),
			Amount:      wire.Amount.String(),
			Timestamp:   wire.Timestamp,
			Status:      wire.Status,
			Description: wire.Description,
			Currency:    wire.Currency,
		})
		if err != nil {
			return nil, localize(i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// structuralError maps encoding/json failures onto a parse error with the
// best localization the library offers (a byte offset).
func structuralError(err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &codec.ParseError{Format: FormatName, Offset: syn.Offset, Msg: syn.Error(), Err: err}
	}

	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return &codec.ParseError{
			Format: FormatName,
			Offset: typ.Offset,
			Field:  strings.ToUpper(typ.Field),
			Msg:    fmt.Sprintf("cannot decode %s as %s", typ.Value, typ.Type),
			Err:    err,
		}
	}

	return &codec.ParseError{Format: FormatName, Msg: err.Error(), Err: err}
}

func localize(index int, err error) error {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		return &codec.ParseError{
			Format: FormatName,
			Field:  fe.Field,
			Msg:    fmt.Sprintf("record %d: invalid value %q: %s", index, fe.Value, fe.Reason),
			Err:    err,
		}
	}
	return &codec.ParseError{
		Format: FormatName,
		Msg:    fmt.Sprintf("record %d: %s", index, err),
		Err:    err,
	}
}

// Encode writes the records as an indented JSON array. An empty sequence
// encodes as [].
func (*Codec) Encode(w io.Writer, records []record.TransactionRecord) error {
	wires := make([]wireRecord, 0, len(records))
	for _, rec := range records {
		wires = append(wires, wireRecord{
			ID:          json.Number(fmt.Sprintf("%d", rec.ID)),
			Type:        rec.Type.String(),
			FromAccount: json.Number(fmt.Sprintf("%d", rec.FromAccount)),
			ToAccount:   json.Number(fmt.Sprintf("%d", rec.ToAccount)),
			Amount:      json.Number(rec.Amount.String()),
			Currency:    rec.Currency,
			Timestamp:   rec.Timestamp.UTC().Format(time.RFC3339Nano),
			Status:      rec.Status.String(),
			Description: rec.Description,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wires); err != nil {
		return fmt.Errorf("json: write: %w", err)
	}
	return nil
}
