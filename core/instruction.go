package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// InstructionKind outbound message type
type InstructionKind string

const (
	// InstructionLockCollateral custody: lock borrower collateral
	InstructionLockCollateral InstructionKind = "lock_collateral"
	// InstructionUnlockCollateral custody: release borrower collateral
	InstructionUnlockCollateral InstructionKind = "unlock_collateral"
	// InstructionExecuteLoan market: disburse the loan
	InstructionExecuteLoan InstructionKind = "execute_loan"
)

// Instruction request for a collaborator, committed together with the loan mutation
// that produced it
type Instruction struct {
	// assigned by the ledger when enqueued
	Seq     uint64
	TraceID string
	// human address of the receiving collaborator
	Contract string
	Kind     InstructionKind
	// human address of the borrower
	Borrower  string
	Amount    uint256.Int
	CreatedAt time.Time
}

// InstructionStore outbox of committed instructions awaiting delivery
type InstructionStore interface {
	// List returns up to limit pending instructions in commit order
	List(ctx context.Context, limit int) ([]*Instruction, error)
	Delete(ctx context.Context, seqs ...uint64) error
}

// Attribute audit log entry
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewAttribute build attribute
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Response result of an accepted action
type Response struct {
	TraceID      string
	Instructions []*Instruction
	Logs         []Attribute
}
