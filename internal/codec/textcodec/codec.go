// =============================================================================
// txcompare - Text Format Codec
// =============================================================================
//
// The text ledger format describes each transaction as a block of
// "KEY: value" lines, one block per record, blocks separated by a blank
// line. Lines starting with '#' are comments. Keys may appear in any order
// but every block must contain all eight of them; an unknown key is an
// error. The DESCRIPTION value is wrapped in double quotes on the wire.
//
// =============================================================================

package textcodec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

// FormatName is the registry identifier of this codec.
const FormatName = "text"

// Codec implements the text ledger format. The zero value is ready to use.
type Codec struct{}

// New returns a text codec.
func New() *Codec { return &Codec{} }

// Name returns the registry identifier.
func (*Codec) Name() string { return FormatName }

var expectedKeySet = func() map[string]bool {
	set := make(map[string]bool, len(record.ExpectedKeys))
	for _, key := range record.ExpectedKeys {
		set[key] = true
	}
	return set
}()

// block accumulates the key/value lines of one record and remembers the line
// each key was read from so field errors can be localized precisely.
type block struct {
	values   map[string]string
	keyLines map[string]int
	lastLine int
}

func (b *block) open() bool { return len(b.values) > 0 }

// Decode reads the full stream and returns the records in source order.
// Decoding stops at the first malformed line or incomplete block. Blank
// lines between blocks (and trailing ones) are ignored; empty input decodes
// to an empty sequence.
func (*Codec) Decode(r io.Reader) ([]record.TransactionRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []record.TransactionRecord
	line := 0
	current := newBlock()

	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			if current.open() {
				rec, err := current.finish()
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
				current = newBlock()
			}
			continue
		}

		if strings.HasPrefix(text, "#") {
			continue
		}

		if err := current.addLine(line, text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("text: read: %w", err)
	}

	if current.open() {
		rec, err := current.finish()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func newBlock() *block {
	return &block{
		values:   make(map[string]string, len(record.ExpectedKeys)),
		keyLines: make(map[string]int, len(record.ExpectedKeys)),
	}
}

// addLine parses one "KEY: value" line into the block. A repeated key simply
// overwrites the earlier value, matching the original tool.
func (b *block) addLine(line int, text string) error {
	prefix, value, found := strings.Cut(text, " ")
	if !found {
		return &codec.ParseError{
			Format: FormatName,
			Line:   line,
			Msg:    fmt.Sprintf("could not split line by space delimiter: %q", text),
		}
	}

	key, hasColon := strings.CutSuffix(prefix, ":")
	if !hasColon {
		return &codec.ParseError{
			Format: FormatName,
			Line:   line,
			Msg:    fmt.Sprintf("colon after key %q not found", prefix),
		}
	}

	if !expectedKeySet[key] {
		return &codec.ParseError{
			Format: FormatName,
			Line:   line,
			Msg:    fmt.Sprintf("unknown key %q", key),
		}
	}

	b.values[key] = value
	b.keyLines[key] = line
	b.lastLine = line
	return nil
}

// finish validates block completeness and builds the canonical record.
func (b *block) finish() (record.TransactionRecord, error) {
	for _, key := range record.ExpectedKeys {
		if _, ok := b.values[key]; !ok {
			return record.TransactionRecord{}, &codec.ParseError{
				Format: FormatName,
				Line:   b.lastLine,
				Field:  key,
				Msg:    "missing key",
			}
		}
	}

	description, ok := codec.UnwrapDescription(b.values[record.KeyDescription])
	if !ok {
		return record.TransactionRecord{}, &codec.ParseError{
			Format: FormatName,
			Line:   b.keyLines[record.KeyDescription],
			Field:  record.KeyDescription,
			Msg:    "description must be wrapped in double quotes",
		}
	}

	rec, err := record.New(record.Fields{
		ID:          b.values[record.KeyTxID],
		Type:        b.values[record.KeyTxType],
		FromAccount: b.values[record.KeyFromUserID],
		ToAccount:   b.values[record.KeyToUserID],
		Amount:      b.values[record.KeyAmount],
		Timestamp:   b.values[record.KeyTimestamp],
		Status:      b.values[record.KeyStatus],
		Description: description,
	})
	if err != nil {
		return record.TransactionRecord{}, b.localize(err)
	}
	return rec, nil
}

func (b *block) localize(err error) error {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		if line, ok := b.keyLines[fe.Field]; ok {
			return codec.LocalizeFieldError(FormatName, line, err)
		}
	}
	return codec.LocalizeFieldError(FormatName, b.lastLine, err)
}

// Encode writes one block per record, blocks separated by a blank line.
// Records denominated in a currency other than the default cannot be
// represented in this format and abort the encode.
func (*Codec) Encode(w io.Writer, records []record.TransactionRecord) error {
	bw := bufio.NewWriter(w)

	for i, rec := range records {
		if rec.Currency != record.DefaultCurrency {
			return fmt.Errorf("text: record %d: currency %s cannot be represented (format has no currency field)", i, rec.Currency)
		}
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("text: write separator: %w", err)
			}
		}
		_, err := fmt.Fprintf(bw, "%s: %d\n%s: %s\n%s: %d\n%s: %d\n%s: %s\n%s: %s\n%s: %s\n%s: %s\n",
			record.KeyTxID, rec.ID,
			record.KeyTxType, rec.Type,
			record.KeyFromUserID, rec.FromAccount,
			record.KeyToUserID, rec.ToAccount,
			record.KeyAmount, rec.Amount.String(),
			record.KeyTimestamp, strconv.FormatInt(rec.Timestamp.UnixMilli(), 10),
			record.KeyStatus, rec.Status,
			record.KeyDescription, codec.WrapDescription(rec.Description),
		)
		if err != nil {
			return fmt.Errorf("text: write record %d: %w", i, err)
		}
	}

	return bw.Flush()
}
