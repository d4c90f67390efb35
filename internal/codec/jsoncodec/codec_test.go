package jsoncodec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

const sampleInput = `[
  {
    "id": 1001,
    "type": "DEPOSIT",
    "from_account": 0,
    "to_account": 501,
    "amount": 50000,
    "currency": "USD",
    "timestamp": "2023-01-01T00:00:00Z",
    "status": "SUCCESS",
    "description": "Initial account funding"
  },
  {
    "id": 1002,
    "type": "TRANSFER",
    "from_account": 501,
    "to_account": 502,
    "amount": "150.75",
    "currency": "EUR",
    "timestamp": "2023-01-01T01:00:00+01:00",
    "status": "FAILURE",
    "description": "Payment for services, invoice #123"
  }
]`

func TestDecode(t *testing.T) {
	records, err := New().Decode(strings.NewReader(sampleInput))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, uint64(1001), first.ID)
	assert.Equal(t, record.TxDeposit, first.Type)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, int64(1672531200000), first.Timestamp.UnixMilli())

	// The amount literal survives as written whether it arrives as a JSON
	// number or a string, and the currency is carried per record.
	second := records[1]
	assert.Equal(t, "150.75", second.Amount.String())
	assert.Equal(t, "EUR", second.Currency)
	assert.Equal(t, int64(1672531200000), second.Timestamp.UnixMilli(), "offset timestamps normalize to the same instant")
}

func TestDecodeMissingCurrencyDefaults(t *testing.T) {
	input := `[{"id": 1, "type": "DEPOSIT", "from_account": 0, "to_account": 2,
		"amount": 100, "timestamp": "2023-01-01T00:00:00Z",
		"status": "SUCCESS", "description": "x"}]`

	records, err := New().Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.DefaultCurrency, records[0].Currency)
}

func TestDecodeEpochTimestamp(t *testing.T) {
	input := `[{"id": 1, "type": "DEPOSIT", "from_account": 0, "to_account": 2,
		"amount": 100, "timestamp": "1672531200000",
		"status": "SUCCESS", "description": "x"}]`

	records, err := New().Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1672531200000), records[0].Timestamp.UnixMilli())
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		records, err := New().Decode(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, records)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	records, err := New().Decode(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := New().Decode(strings.NewReader(`[{"id": 1,]`))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, FormatName, pe.Format)
	assert.Greater(t, pe.Offset, int64(0))
}

func TestDecodeWrongValueType(t *testing.T) {
	input := `[{"id": 1, "type": "DEPOSIT", "from_account": 0, "to_account": 2,
		"amount": true, "timestamp": "2023-01-01T00:00:00Z",
		"status": "SUCCESS", "description": "x"}]`

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "AMOUNT", pe.Field)
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := New().Decode(strings.NewReader("[] []"))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "unexpected data after the transaction array")
}

func TestDecodeFieldErrorNamesRecord(t *testing.T) {
	input := `[{"id": 1, "type": "DEPOSIT", "from_account": 0, "to_account": 2,
		"amount": 100, "timestamp": "2023-01-01T00:00:00Z",
		"status": "SUCCESS", "description": "ok"},
		{"id": 2, "type": "DEPOSIT", "from_account": 0, "to_account": 2,
		"amount": 100, "timestamp": "2023-01-01T00:00:00Z",
		"status": "DECLINED", "description": "bad"}]`

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, record.KeyStatus, pe.Field)
	assert.Contains(t, pe.Msg, "record 1")

	var fe *record.FieldError
	assert.ErrorAs(t, err, &fe)
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	records, err := New().Decode(strings.NewReader(sampleInput))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, records))

	decoded, err := New().Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(records))
	for i := range records {
		assert.True(t, records[i].Equal(decoded[i]), "record %d changed across the round trip", i)
	}
}
