package views

import (
	"overseer/core"
	"time"

	"github.com/shopspring/decimal"
)

// Collateral collateral view
type Collateral struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Loan loan view
type Loan struct {
	Borrower     string        `json:"borrower"`
	Collaterals  []*Collateral `json:"collaterals"`
	BorrowAmount string        `json:"borrow_amount"`
}

// Valuation collateral valuation view
type Valuation struct {
	Collateral
	LTV              decimal.Decimal `json:"ltv"`
	Price            decimal.Decimal `json:"price"`
	Value            string          `json:"value"`
	LastUpdatedBase  int64           `json:"last_updated_base"`
	LastUpdatedQuote int64           `json:"last_updated_quote"`
}

// BorrowLimit borrow limit view
type BorrowLimit struct {
	Borrower     string       `json:"borrower"`
	BorrowAmount string       `json:"borrow_amount"`
	BorrowLimit  string       `json:"borrow_limit"`
	OldestUpdate int64        `json:"oldest_update"`
	Valuations   []*Valuation `json:"valuations"`
}

// Instruction outbound instruction view
type Instruction struct {
	TraceID   string    `json:"trace_id"`
	Contract  string    `json:"contract"`
	Kind      string    `json:"kind"`
	Borrower  string    `json:"borrower"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Response accepted action view
type Response struct {
	TraceID      string           `json:"trace_id"`
	Instructions []*Instruction   `json:"instructions"`
	Logs         []core.Attribute `json:"logs"`
}

// LoanView render loan with human addresses
func LoanView(codec core.AddressCodec, loan *core.Loan) *Loan {
	v := &Loan{
		Borrower:     codec.MustHuman(loan.Borrower),
		Collaterals:  make([]*Collateral, 0, len(loan.Collaterals)),
		BorrowAmount: loan.BorrowAmount.Dec(),
	}

	for _, c := range loan.Collaterals {
		amount := c.Amount
		v.Collaterals = append(v.Collaterals, &Collateral{
			Asset:  codec.MustHuman(c.Asset),
			Amount: amount.Dec(),
		})
	}

	return v
}

// BorrowLimitView render borrow limit
func BorrowLimitView(codec core.AddressCodec, loan *core.Loan, limit *core.BorrowLimit) *BorrowLimit {
	v := &BorrowLimit{
		Borrower:     codec.MustHuman(loan.Borrower),
		BorrowAmount: loan.BorrowAmount.Dec(),
		BorrowLimit:  limit.Limit.Dec(),
		OldestUpdate: limit.OldestUpdate(),
		Valuations:   make([]*Valuation, 0, len(limit.Valuations)),
	}

	for _, val := range limit.Valuations {
		v.Valuations = append(v.Valuations, &Valuation{
			Collateral: Collateral{
				Asset:  codec.MustHuman(val.Asset),
				Amount: val.Amount.Dec(),
			},
			LTV:              val.LTV,
			Price:            val.Price,
			Value:            val.Value.Dec(),
			LastUpdatedBase:  val.LastUpdatedBase,
			LastUpdatedQuote: val.LastUpdatedQuote,
		})
	}

	return v
}

// ResponseView render accepted action
func ResponseView(resp *core.Response) *Response {
	v := &Response{
		TraceID:      resp.TraceID,
		Instructions: make([]*Instruction, 0, len(resp.Instructions)),
		Logs:         resp.Logs,
	}

	for _, ins := range resp.Instructions {
		v.Instructions = append(v.Instructions, &Instruction{
			TraceID:   ins.TraceID,
			Contract:  ins.Contract,
			Kind:      string(ins.Kind),
			Borrower:  ins.Borrower,
			Amount:    ins.Amount.Dec(),
			CreatedAt: ins.CreatedAt,
		})
	}

	return v
}
