package record

import "strconv"

// TxType is the transaction kind. The numeric values are the binary format's
// on-wire encoding and must not be reordered.
type TxType uint8

const (
	TxDeposit TxType = iota
	TxTransfer
	TxWithdrawal
)

var txTypeNames = map[TxType]string{
	TxDeposit:    "DEPOSIT",
	TxTransfer:   "TRANSFER",
	TxWithdrawal: "WITHDRAWAL",
}

// String returns the wire spelling of the transaction type.
func (t TxType) String() string {
	if name, ok := txTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseTxType parses the textual wire spelling of a transaction type.
// Matching is exact: the legacy formats are uppercase-only.
func ParseTxType(value string) (TxType, error) {
	switch value {
	case "DEPOSIT":
		return TxDeposit, nil
	case "TRANSFER":
		return TxTransfer, nil
	case "WITHDRAWAL":
		return TxWithdrawal, nil
	}
	return 0, &FieldError{Field: KeyTxType, Value: value, Reason: "unknown transaction type"}
}

// TxTypeFromByte decodes the binary representation of a transaction type.
func TxTypeFromByte(b byte) (TxType, error) {
	t := TxType(b)
	if _, ok := txTypeNames[t]; !ok {
		return 0, &FieldError{Field: KeyTxType, Value: strconv.Itoa(int(b)), Reason: "unknown transaction type"}
	}
	return t, nil
}
