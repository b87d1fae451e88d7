package core

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// Collateral an (asset, locked amount) pair
type Collateral struct {
	Asset  Address
	Amount uint256.Int
}

// NewCollateral build a collateral from an asset and a uint64 amount
func NewCollateral(asset Address, amount uint64) Collateral {
	return Collateral{
		Asset:  asset,
		Amount: *uint256.NewInt(amount),
	}
}

// Collaterals collateral basket, ordered by first insertion.
// At rest no two entries share an asset.
type Collaterals []Collateral

// Index position of asset in the basket, -1 if absent
func (cs Collaterals) Index(asset Address) int {
	for idx := range cs {
		if cs[idx].Asset == asset {
			return idx
		}
	}

	return -1
}

// Amount locked amount of asset, zero if absent
func (cs Collaterals) Amount(asset Address) uint256.Int {
	if idx := cs.Index(asset); idx >= 0 {
		return cs[idx].Amount
	}

	return uint256.Int{}
}

// Clone deep copy
func (cs Collaterals) Clone() Collaterals {
	if cs == nil {
		return nil
	}

	out := make(Collaterals, len(cs))
	copy(out, cs)
	return out
}

// Loan per borrower record of locked collaterals and outstanding debt.
//
// BorrowAmount <= borrow limit of Collaterals holds after every persisted mutation.
type Loan struct {
	Borrower     Address
	Collaterals  Collaterals
	BorrowAmount uint256.Int
}

// Clone deep copy
func (l *Loan) Clone() *Loan {
	return &Loan{
		Borrower:     l.Borrower,
		Collaterals:  l.Collaterals.Clone(),
		BorrowAmount: l.BorrowAmount,
	}
}

// AddCollateral increase the locked amount of every delta's asset, inserting new entries
// at the end of the basket. A zero delta never inserts an entry. Overflow fails with
// ErrOverflow and leaves the loan unchanged.
func (l *Loan) AddCollateral(deltas Collaterals) error {
	next := l.Collaterals.Clone()

	for _, delta := range deltas {
		idx := next.Index(delta.Asset)
		if idx < 0 {
			if !delta.Amount.IsZero() {
				next = append(next, delta)
			}

			continue
		}

		sum, overflow := new(uint256.Int).AddOverflow(&next[idx].Amount, &delta.Amount)
		if overflow {
			return fmt.Errorf("%w: collateral %s", ErrOverflow, delta.Asset)
		}

		next[idx].Amount = *sum
	}

	l.Collaterals = next
	return nil
}

// SubCollateral decrease the locked amount of every delta's asset. Entries driven to zero
// are dropped. Any delta exceeding the locked amount fails with ErrUnderflow and leaves
// the loan unchanged.
func (l *Loan) SubCollateral(deltas Collaterals) error {
	next := l.Collaterals.Clone()

	for _, delta := range deltas {
		idx := next.Index(delta.Asset)
		if idx < 0 {
			if delta.Amount.IsZero() {
				continue
			}

			return fmt.Errorf("%w: collateral %s not locked", ErrUnderflow, delta.Asset)
		}

		diff, underflow := new(uint256.Int).SubOverflow(&next[idx].Amount, &delta.Amount)
		if underflow {
			return fmt.Errorf("%w: collateral %s locked %s, requested %s",
				ErrUnderflow, delta.Asset, next[idx].Amount.Dec(), delta.Amount.Dec())
		}

		next[idx].Amount = *diff
	}

	pruned := next[:0]
	for _, c := range next {
		if !c.Amount.IsZero() {
			pruned = append(pruned, c)
		}
	}

	l.Collaterals = pruned
	return nil
}

// AddBorrow increase the outstanding debt
func (l *Loan) AddBorrow(amount uint256.Int) error {
	sum, overflow := new(uint256.Int).AddOverflow(&l.BorrowAmount, &amount)
	if overflow {
		return fmt.Errorf("%w: borrow amount", ErrOverflow)
	}

	l.BorrowAmount = *sum
	return nil
}

// LoanStore collateral ledger persistence
type LoanStore interface {
	// Find returns the stored loan, or an empty loan for borrower if none exists
	Find(ctx context.Context, borrower Address) (*Loan, error)
	// Save overwrites the loan record and enqueues its instructions in one atomic write
	Save(ctx context.Context, loan *Loan, instructions ...*Instruction) error
}
