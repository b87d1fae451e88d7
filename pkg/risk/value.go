// Package risk pins the arithmetic that turns a collateral position into borrowing capacity.
package risk

import (
	"fmt"
	"overseer/core"
	"overseer/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ValidLTV ltv must lie in [0, 1]
func ValidLTV(ltv decimal.Decimal) bool {
	return !ltv.IsNegative() && ltv.LessThanOrEqual(one)
}

// CollateralValue borrowing capacity of amount units of collateral:
//
//	value = floor(floor(amount * ltv) * price)
//
// The order is fixed: amount first, then ltv, then price, truncating to whole base
// units after each product. Truncation never rounds in the borrower's favour.
func CollateralValue(amount *uint256.Int, ltv, price decimal.Decimal) (*uint256.Int, error) {
	if !ValidLTV(ltv) {
		return nil, fmt.Errorf("%w: ltv %s out of range", core.ErrInvalidArgument, ltv)
	}

	if price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price %s", core.ErrPriceUnavailable, price)
	}

	weighted := number.FromUint256(amount).Mul(ltv).Truncate(0)
	value, ok := number.FloorUint256(weighted.Mul(price))
	if !ok {
		return nil, fmt.Errorf("%w: value of %s at %s", core.ErrOverflow, amount.Dec(), price)
	}

	return value, nil
}

// Accumulate limit += value, failing with ErrOverflow instead of wrapping
func Accumulate(limit, value *uint256.Int) error {
	if _, overflow := limit.AddOverflow(limit, value); overflow {
		return fmt.Errorf("%w: borrow limit", core.ErrOverflow)
	}

	return nil
}
