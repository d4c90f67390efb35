// =============================================================================
// txcompare - Binary Format Codec
// =============================================================================
//
// The bin ledger format is a stream of self-delimiting record frames:
//
//   MAGIC "YPBN"        4 bytes
//   RECORD_SIZE         u32, body size in bytes (fixed fields + description)
//   TX_ID               u64
//   TX_TYPE             u8  (0=DEPOSIT, 1=TRANSFER, 2=WITHDRAWAL)
//   FROM_USER_ID        u64
//   TO_USER_ID          u64
//   AMOUNT              u64, minor currency units
//   TIMESTAMP           u64, Unix epoch milliseconds
//   STATUS              u8  (0=SUCCESS, 1=FAILURE, 2=PENDING)
//   DESCRIPTION_SIZE    u32
//   DESCRIPTION         UTF-8 bytes, stored with surrounding double quotes
//
// All integers are big-endian. Decode errors are localized by byte offset.
//
// =============================================================================

package bincodec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

// FormatName is the registry identifier of this codec.
const FormatName = "bin"

var magic = [4]byte{'Y', 'P', 'B', 'N'}

// fixedBodySize is the size of the record body without the description.
const fixedBodySize = 46

// Codec implements the binary ledger format. The zero value is ready to use.
type Codec struct{}

// New returns a bin codec.
func New() *Codec { return &Codec{} }

// Name returns the registry identifier.
func (*Codec) Name() string { return FormatName }

// Decode reads record frames until EOF. A clean EOF on a frame boundary ends
// the sequence; EOF inside a frame is a parse error. Empty input decodes to
// an empty sequence.
func (c *Codec) Decode(r io.Reader) ([]record.TransactionRecord, error) {
	br := &offsetReader{r: bufio.NewReader(r)}

	var records []record.TransactionRecord
	for {
		rec, ok, err := decodeFrame(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return records, nil
		}
		records = append(records, rec)
	}
}

// decodeFrame reads one record frame. ok is false on a clean end of stream.
func decodeFrame(br *offsetReader) (record.TransactionRecord, bool, error) {
	start := br.offset

	var m [4]byte
	if err := br.readFull(m[:]); err != nil {
		if errors.Is(err, io.EOF) && br.offset == start {
			return record.TransactionRecord{}, false, nil
		}
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if m != magic {
		return record.TransactionRecord{}, false, &codec.ParseError{
			Format: FormatName, Offset: start, Msg: "invalid magic number",
		}
	}

	recordSize, err := br.readUint32()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if recordSize < fixedBodySize {
		return record.TransactionRecord{}, false, &codec.ParseError{
			Format: FormatName, Offset: start,
			Msg: fmt.Sprintf("invalid record size: %d", recordSize),
		}
	}

	var rec record.TransactionRecord
	rec.Currency = record.DefaultCurrency

	if rec.ID, err = br.readUint64(); err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}

	typeOffset := br.offset
	typeByte, err := br.readByte()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if rec.Type, err = record.TxTypeFromByte(typeByte); err != nil {
		return record.TransactionRecord{}, false, localize(typeOffset, err)
	}

	if rec.FromAccount, err = br.readUint64(); err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if rec.ToAccount, err = br.readUint64(); err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}

	amount, err := br.readUint64()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	rec.Amount = decimal.NewFromUint64(amount)

	tsOffset := br.offset
	ts, err := br.readUint64()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if ts > math.MaxInt64 {
		return record.TransactionRecord{}, false, &codec.ParseError{
			Format: FormatName, Offset: tsOffset, Field: record.KeyTimestamp,
			Msg: "epoch milliseconds out of range",
		}
	}
	rec.Timestamp = time.UnixMilli(int64(ts)).UTC()

	statusOffset := br.offset
	statusByte, err := br.readByte()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if rec.Status, err = record.StatusFromByte(statusByte); err != nil {
		return record.TransactionRecord{}, false, localize(statusOffset, err)
	}

	descLen, err := br.readUint32()
	if err != nil {
		return record.TransactionRecord{}, false, br.truncated(err)
	}
	if uint64(descLen) != uint64(recordSize)-fixedBodySize {
		return record.TransactionRecord{}, false, &codec.ParseError{
			Format: FormatName, Offset: start, Field: record.KeyDescription,
			Msg: fmt.Sprintf("description size %d inconsistent with record size %d", descLen, recordSize),
		}
	}

	if descLen > 0 {
		descOffset := br.offset
		buf := make([]byte, descLen)
		if err := br.readFull(buf); err != nil {
			return record.TransactionRecord{}, false, br.truncated(err)
		}
		if !utf8.Valid(buf) {
			return record.TransactionRecord{}, false, &codec.ParseError{
				Format: FormatName, Offset: descOffset, Field: record.KeyDescription,
				Msg: "description is not valid UTF-8",
			}
		}
		description, ok := codec.UnwrapDescription(string(buf))
		if !ok {
			return record.TransactionRecord{}, false, &codec.ParseError{
				Format: FormatName, Offset: descOffset, Field: record.KeyDescription,
				Msg: "description must be wrapped in double quotes",
			}
		}
		rec.Description = description
	}

	return rec, true, nil
}

func localize(offset int64, err error) error {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		return &codec.ParseError{
			Format: FormatName, Offset: offset, Field: fe.Field,
			Msg: fmt.Sprintf("invalid value %q: %s", fe.Value, fe.Reason),
			Err: err,
		}
	}
	return &codec.ParseError{Format: FormatName, Offset: offset, Msg: err.Error(), Err: err}
}

// Encode writes one frame per record. Amounts must be non-negative integers
// (minor units) and records must be denominated in the default currency;
// anything else cannot be represented in this format and aborts the encode.
func (*Codec) Encode(w io.Writer, records []record.TransactionRecord) error {
	bw := bufio.NewWriter(w)

	for i, rec := range records {
		if err := encodeFrame(bw, rec); err != nil {
			return fmt.Errorf("bin: record %d: %w", i, err)
		}
	}

	return bw.Flush()
}

func encodeFrame(w io.Writer, rec record.TransactionRecord) error {
	if rec.Currency != record.DefaultCurrency {
		return fmt.Errorf("currency %s cannot be represented (format has no currency field)", rec.Currency)
	}

	amount := rec.Amount.BigInt()
	if !rec.Amount.IsInteger() || amount.Sign() < 0 || !amount.IsUint64() {
		return fmt.Errorf("amount %s cannot be represented as unsigned minor units", rec.Amount.String())
	}

	ms := rec.Timestamp.UnixMilli()
	if ms < 0 {
		return fmt.Errorf("timestamp %s predates the epoch", rec.Timestamp)
	}

	description := codec.WrapDescription(rec.Description)
	if len(description) > math.MaxUint32-fixedBodySize {
		return fmt.Errorf("description of %d bytes exceeds the format limit", len(description))
	}

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	for _, v := range []any{
		uint32(fixedBodySize + len(description)),
		rec.ID,
		byte(rec.Type),
		rec.FromAccount,
		rec.ToAccount,
		amount.Uint64(),
		uint64(ms),
		byte(rec.Status),
		uint32(len(description)),
	} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, description); err != nil {
		return err
	}
	return nil
}
