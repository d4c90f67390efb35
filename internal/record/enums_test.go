package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxTypeRoundTrip(t *testing.T) {
	for _, name := range []string{"DEPOSIT", "TRANSFER", "WITHDRAWAL"} {
		parsed, err := ParseTxType(name)
		require.NoError(t, err)
		assert.Equal(t, name, parsed.String())

		fromByte, err := TxTypeFromByte(byte(parsed))
		require.NoError(t, err)
		assert.Equal(t, parsed, fromByte)
	}
}

func TestTxTypeInvalid(t *testing.T) {
	_, err := ParseTxType("deposit")
	assert.Error(t, err, "matching is exact, lowercase is rejected")

	_, err = ParseTxType("")
	assert.Error(t, err)

	_, err = TxTypeFromByte(3)
	assert.Error(t, err)
}

func TestStatusRoundTrip(t *testing.T) {
	for _, name := range []string{"SUCCESS", "FAILURE", "PENDING"} {
		parsed, err := ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, name, parsed.String())

		fromByte, err := StatusFromByte(byte(parsed))
		require.NoError(t, err)
		assert.Equal(t, parsed, fromByte)
	}
}

func TestStatusInvalid(t *testing.T) {
	_, err := ParseStatus("OK")
	assert.Error(t, err)

	_, err = StatusFromByte(7)
	assert.Error(t, err)
}

func TestBinaryEncodingValuesAreStable(t *testing.T) {
	// The numeric values are the bin format's on-wire encoding.
	assert.Equal(t, TxType(0), TxDeposit)
	assert.Equal(t, TxType(1), TxTransfer)
	assert.Equal(t, TxType(2), TxWithdrawal)
	assert.Equal(t, Status(0), StatusSuccess)
	assert.Equal(t, Status(1), StatusFailure)
	assert.Equal(t, Status(2), StatusPending)
}
