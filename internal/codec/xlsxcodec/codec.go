// =============================================================================
// txcompare - XLSX Format Codec
// =============================================================================
//
// The xlsx ledger format is a workbook whose first sheet holds the same
// eight-column table as the csv format: row 1 is the header, every following
// row is one record. Cells need no quote escaping, so DESCRIPTION is stored
// bare. Amounts are written as text cells to keep them out of Excel's float
// handling. Trailing fully-empty rows are ignored.
//
// =============================================================================

package xlsxcodec

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

// FormatName is the registry identifier of this codec.
const FormatName = "xlsx"

const sheetName = "Sheet1"

// Codec implements the xlsx ledger format. The zero value is ready to use.
type Codec struct{}

// New returns an xlsx codec.
func New() *Codec { return &Codec{} }

// Name returns the registry identifier.
func (*Codec) Name() string { return FormatName }

// Decode reads the first sheet of the workbook and returns the records in
// row order. An empty byte stream (or a workbook with no rows) decodes to an
// empty sequence; once rows are present, row 1 must be the header.
func (*Codec) Decode(r io.Reader) ([]record.TransactionRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &codec.ParseError{
			Format: FormatName,
			Msg:    fmt.Sprintf("not a valid xlsx workbook: %v", err),
			Err:    err,
		}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if !headerMatches(rows[0]) {
		return nil, &codec.ParseError{Format: FormatName, Line: 1, Msg: "invalid header structure"}
	}

	var records []record.TransactionRecord
	for i, row := range rows[1:] {
		rowNum := i + 2

		if isEmptyRow(row) {
			continue
		}

		rec, err := record.New(record.Fields{
			ID:          cell(row, 0),
			Type:        cell(row, 1),
			FromAccount: cell(row, 2),
			ToAccount:   cell(row, 3),
			Amount:      cell(row, 4),
			Timestamp:   cell(row, 5),
			Status:      cell(row, 6),
			Description: cell(row, 7),
		})
		if err != nil {
			return nil, codec.LocalizeFieldError(FormatName, rowNum, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// headerMatches compares row 1 against the canonical column set. GetRows
// trims trailing empty cells, so extra columns show up as a length mismatch.
func headerMatches(header []string) bool {
	if len(header) != len(record.ExpectedKeys) {
		return false
	}
	for i, key := range record.ExpectedKeys {
		if header[i] != key {
			return false
		}
	}
	return true
}

func isEmptyRow(row []string) bool {
	for _, value := range row {
		if value != "" {
			return false
		}
	}
	return true
}

// cell returns the value at the given column, tolerating rows that excelize
// returned short of trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Encode writes the header row and one row per record to a fresh workbook.
// Records denominated in a currency other than the default cannot be
// represented in this format and abort the encode.
func (*Codec) Encode(w io.Writer, records []record.TransactionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(record.ExpectedKeys))
	for i, key := range record.ExpectedKeys {
		header[i] = key
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, rec := range records {
		if rec.Currency != record.DefaultCurrency {
			return fmt.Errorf("xlsx: record %d: currency %s cannot be represented (format has no currency column)", i, rec.Currency)
		}
		row := []any{
			strconv.FormatUint(rec.ID, 10),
			rec.Type.String(),
			strconv.FormatUint(rec.FromAccount, 10),
			strconv.FormatUint(rec.ToAccount, 10),
			rec.Amount.String(),
			strconv.FormatInt(rec.Timestamp.UnixMilli(), 10),
			rec.Status.String(),
			rec.Description,
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("xlsx: write record %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}
