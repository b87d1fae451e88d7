package ledger

import (
	"fmt"
	"overseer/core"
	"time"

	"github.com/fox-one/msgpack"
	"github.com/holiman/uint256"
)

type collateralRecord struct {
	Asset  []byte `msgpack:"a"`
	Amount string `msgpack:"m"`
}

type loanRecord struct {
	Collaterals  []collateralRecord `msgpack:"c"`
	BorrowAmount string             `msgpack:"b"`
}

type instructionRecord struct {
	TraceID   string `msgpack:"t"`
	Contract  string `msgpack:"c"`
	Kind      string `msgpack:"k"`
	Borrower  string `msgpack:"b"`
	Amount    string `msgpack:"m"`
	CreatedAt int64  `msgpack:"at"`
}

func encodeLoan(loan *core.Loan) ([]byte, error) {
	r := loanRecord{
		Collaterals:  make([]collateralRecord, 0, len(loan.Collaterals)),
		BorrowAmount: loan.BorrowAmount.Dec(),
	}

	for _, c := range loan.Collaterals {
		asset := c.Asset
		r.Collaterals = append(r.Collaterals, collateralRecord{
			Asset:  asset[:],
			Amount: c.Amount.Dec(),
		})
	}

	return msgpack.Marshal(r)
}

func decodeLoan(borrower core.Address, data []byte) (*core.Loan, error) {
	var r loanRecord
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode loan %s: %w", borrower, err)
	}

	loan := &core.Loan{
		Borrower:    borrower,
		Collaterals: make(core.Collaterals, 0, len(r.Collaterals)),
	}

	debt, err := uint256.FromDecimal(r.BorrowAmount)
	if err != nil {
		return nil, fmt.Errorf("decode loan %s: borrow amount: %w", borrower, err)
	}
	loan.BorrowAmount = *debt

	for _, c := range r.Collaterals {
		asset, err := core.AddressFromBytes(c.Asset)
		if err != nil {
			return nil, fmt.Errorf("decode loan %s: %w", borrower, err)
		}

		amount, err := uint256.FromDecimal(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("decode loan %s: collateral %s: %w", borrower, asset, err)
		}

		loan.Collaterals = append(loan.Collaterals, core.Collateral{Asset: asset, Amount: *amount})
	}

	return loan, nil
}

func encodeInstruction(ins *core.Instruction) ([]byte, error) {
	return msgpack.Marshal(instructionRecord{
		TraceID:   ins.TraceID,
		Contract:  ins.Contract,
		Kind:      string(ins.Kind),
		Borrower:  ins.Borrower,
		Amount:    ins.Amount.Dec(),
		CreatedAt: ins.CreatedAt.UnixNano(),
	})
}

func decodeInstruction(data []byte) (*core.Instruction, error) {
	var r instructionRecord
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode instruction: %w", err)
	}

	amount, err := uint256.FromDecimal(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode instruction %s: %w", r.TraceID, err)
	}

	return &core.Instruction{
		TraceID:   r.TraceID,
		Contract:  r.Contract,
		Kind:      core.InstructionKind(r.Kind),
		Borrower:  r.Borrower,
		Amount:    *amount,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}, nil
}
