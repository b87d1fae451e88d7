package core

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// CollateralValuation one collateral's contribution to the borrow limit
type CollateralValuation struct {
	Asset            Address
	Amount           uint256.Int
	LTV              decimal.Decimal
	Price            decimal.Decimal
	LastUpdatedBase  int64
	LastUpdatedQuote int64
	Value            uint256.Int
}

// BorrowLimit borrow limit of a collateral basket with the inputs it was derived from
type BorrowLimit struct {
	Limit      uint256.Int
	Valuations []*CollateralValuation
}

// OldestUpdate earliest oracle update among the valued collaterals, 0 if none
func (b *BorrowLimit) OldestUpdate() int64 {
	var (
		oldest int64
		set    bool
	)

	for _, v := range b.Valuations {
		for _, ts := range []int64{v.LastUpdatedBase, v.LastUpdatedQuote} {
			if !set || ts < oldest {
				oldest, set = ts, true
			}
		}
	}

	return oldest
}

// BorrowLimitService borrow limit calculator
type BorrowLimitService interface {
	ComputeBorrowLimit(ctx context.Context, collaterals Collaterals) (*BorrowLimit, error)
}

// OverseerService borrower facing actions and queries
type OverseerService interface {
	LockCollateral(ctx context.Context, borrower Address, deposits Collaterals) (*Response, error)
	UnlockCollateral(ctx context.Context, borrower Address, withdrawals Collaterals) (*Response, error)
	Borrow(ctx context.Context, borrower Address, amount uint256.Int) (*Response, error)
	LiquidateCollateral(ctx context.Context, borrower Address) (*Response, error)

	Loan(ctx context.Context, borrower Address) (*Loan, error)
	BorrowLimit(ctx context.Context, borrower Address) (*Loan, *BorrowLimit, error)
}
