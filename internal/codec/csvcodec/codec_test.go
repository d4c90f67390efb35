package csvcodec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
)

const sampleInput = `TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION
1001,DEPOSIT,0,501,50000,1672531200000,SUCCESS,"Initial account funding"
1002,TRANSFER,501,502,15000,1672534800000,FAILURE,"Payment for services, invoice #123"
1003,WITHDRAWAL,502,0,1000,1672538400000,PENDING,"ATM withdrawal"
`

func TestDecode(t *testing.T) {
	records, err := New().Decode(strings.NewReader(sampleInput))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, uint64(1001), records[0].ID)
	assert.Equal(t, record.TxDeposit, records[0].Type)
	assert.Equal(t, "Initial account funding", records[0].Description)
	assert.Equal(t, record.DefaultCurrency, records[0].Currency)

	// DESCRIPTION is the last column and absorbs embedded commas.
	assert.Equal(t, "Payment for services, invoice #123", records[1].Description)
	assert.Equal(t, record.StatusFailure, records[1].Status)

	assert.Equal(t, record.TxWithdrawal, records[2].Type)
	assert.Equal(t, uint64(0), records[2].ToAccount)
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "\n\n   \n"} {
		records, err := New().Decode(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, records)
	}
}

func TestDecodeHeaderOnly(t *testing.T) {
	records, err := New().Decode(strings.NewReader(Header() + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeCRLF(t *testing.T) {
	input := strings.ReplaceAll(sampleInput, "\n", "\r\n")
	records, err := New().Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestDecodeInvalidHeader(t *testing.T) {
	input := "ID,TYPE,FROM,TO,AMOUNT,TS,STATUS,DESC\n"

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, FormatName, pe.Format)
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, "invalid header structure", pe.Msg)
}

func TestDecodeInvalidColumnCount(t *testing.T) {
	input := Header() + "\n" + `1001,DEPOSIT,0,501,50000,1672531200000,SUCCESS` + "\n"

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "invalid count of columns: 7", pe.Msg)
}

func TestDecodeUnquotedDescription(t *testing.T) {
	input := Header() + "\n" + `1001,DEPOSIT,0,501,50000,1672531200000,SUCCESS,no quotes` + "\n"

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, record.KeyDescription, pe.Field)
}

func TestDecodeInvalidField(t *testing.T) {
	input := sampleInput + `1004,DEPOSIT,0,501,not-a-number,1672538400000,SUCCESS,"x"` + "\n"

	_, err := New().Decode(strings.NewReader(input))
	require.Error(t, err)

	var pe *codec.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 5, pe.Line)
	assert.Equal(t, record.KeyAmount, pe.Field)

	var fe *record.FieldError
	assert.ErrorAs(t, err, &fe)
}

func TestEncode(t *testing.T) {
	records, err := New().Decode(strings.NewReader(sampleInput))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, records))
	assert.Equal(t, sampleInput, buf.String())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, nil))
	assert.Equal(t, Header()+"\n", buf.String())
}

func TestEncodeRejectsForeignCurrency(t *testing.T) {
	rec, err := record.New(record.Fields{
		ID: "1", Type: "DEPOSIT", FromAccount: "0", ToAccount: "2",
		Amount: "100", Timestamp: "1672531200000", Status: "SUCCESS",
		Description: "x", Currency: "EUR",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = New().Encode(&buf, []record.TransactionRecord{rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EUR")
}
