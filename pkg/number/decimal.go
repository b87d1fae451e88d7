package number

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Decimal parse v, zero if malformed
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromUint256 exact decimal of v
func FromUint256(v *uint256.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v.ToBig(), 0)
}

// FloorUint256 integer part of d as uint256, ok is false when d is negative or does not fit
func FloorUint256(d decimal.Decimal) (v *uint256.Int, ok bool) {
	if d.IsNegative() {
		return nil, false
	}

	v, overflow := uint256.FromBig(d.Truncate(0).BigInt())
	return v, !overflow
}
