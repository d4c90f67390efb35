// =============================================================================
// txcompare - CSV Format Codec
// =============================================================================
//
// The csv ledger format is a fixed eight-column table:
//
//   TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION
//
// Line 1 must reproduce that header exactly. DESCRIPTION is the last column
// and absorbs any remaining commas, so a line is split into at most eight
// fields rather than parsed with a general CSV reader; the description value
// must be wrapped in double quotes, which are stripped on decode. The format
// carries no currency column; records canonicalize with the default currency.
//
// =============================================================================

package csvcodec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

// FormatName is the registry identifier of this codec.
const FormatName = "csv"

const columnCount = 8

// Codec implements the csv ledger format. The zero value is ready to use.
type Codec struct{}

// New returns a csv codec.
func New() *Codec { return &Codec{} }

// Name returns the registry identifier.
func (*Codec) Name() string { return FormatName }

// Header returns the expected header line.
func Header() string { return strings.Join(record.ExpectedKeys, ",") }

// Decode reads the full stream and returns the records in source order.
// Decoding stops at the first malformed line. A stream with no content (or
// only blank lines) decodes to an empty sequence; once any content is
// present, the first non-blank line must be the header.
func (*Codec) Decode(r io.Reader) ([]record.TransactionRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []record.TransactionRecord
	line := 0
	headerSeen := false

	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			continue
		}

		if !headerSeen {
			if text != Header() {
				return nil, &codec.ParseError{Format: FormatName, Line: line, Msg: "invalid header structure"}
			}
			headerSeen = true
			continue
		}

		rec, err := decodeLine(line, text)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csv: read: %w", err)
	}

	return records, nil
}

// decodeLine splits one data line into the eight canonical fields and builds
// the record.
func decodeLine(line int, text string) (record.TransactionRecord, error) {
	values := strings.SplitN(text, ",", columnCount)
	if len(values) != columnCount {
		return record.TransactionRecord{}, &codec.ParseError{
			Format: FormatName,
			Line:   line,
			Msg:    fmt.Sprintf("invalid count of columns: %d", len(values)),
		}
	}

	description, ok := codec.UnwrapDescription(values[7])
	if !ok {
		return record.TransactionRecord{}, &codec.ParseError{
			Format: FormatName,
			Line:   line,
			Field:  record.KeyDescription,
			Msg:    "description must be wrapped in double quotes",
		}
	}

	rec, err := record.New(record.Fields{
		ID:          values[0],
		Type:        values[1],
		FromAccount: values[2],
		ToAccount:   values[3],
		Amount:      values[4],
		Timestamp:   values[5],
		Status:      values[6],
		Description: description,
	})
	if err != nil {
		return record.TransactionRecord{}, codec.LocalizeFieldError(FormatName, line, err)
	}
	return rec, nil
}

// Encode writes the header line followed by one line per record. Records
// denominated in a currency other than the default cannot be represented in
// this format and abort the encode.
func (*Codec) Encode(w io.Writer, records []record.TransactionRecord) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header() + "\n"); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i, rec := range records {
		if rec.Currency != record.DefaultCurrency {
			return fmt.Errorf("csv: record %d: currency %s cannot be represented (format has no currency column)", i, rec.Currency)
		}
		_, err := fmt.Fprintf(bw, "%d,%s,%d,%d,%s,%s,%s,%s\n",
			rec.ID, rec.Type, rec.FromAccount, rec.ToAccount,
			rec.Amount.String(),
			strconv.FormatInt(rec.Timestamp.UnixMilli(), 10),
			rec.Status,
			codec.WrapDescription(rec.Description),
		)
		if err != nil {
			return fmt.Errorf("csv: write record %d: %w", i, err)
		}
	}

	return bw.Flush()
}
