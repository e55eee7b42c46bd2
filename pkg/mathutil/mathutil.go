package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount expressed in an asset's smallest unit as a
// decimal string according to the asset's precision (number of decimal
// places), ie. FormatAmount(500000000000, 12) = "0.5".
func FormatAmount(amount uint64, precision int32) string {
	amountDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -precision)
	return amountDecimal.String()
}

// ParseAmount converts a decimal string to an amount in the asset's smallest
// unit. It fails if the string carries more decimal places than the asset's
// precision or if the value does not fit a uint64.
func ParseAmount(s string, precision int32) (uint64, error) {
	amountDecimal, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	shifted := amountDecimal.Shift(precision)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrTooManyDecimals
	}
	if shifted.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if !shifted.BigInt().IsUint64() {
		return 0, ErrAmountOutOfRange
	}
	return shifted.BigInt().Uint64(), nil
}
