package overseer

import (
	"context"
	"fmt"
	"overseer/core"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

const lockStripes = 64

type overseerService struct {
	codec     core.AddressCodec
	loans     core.LoanStore
	limits    core.BorrowLimitService
	protocols core.ProtocolConfigStore

	// mutations of one borrower run one at a time
	locks [lockStripes]sync.Mutex
}

// New solvency gate
func New(
	codec core.AddressCodec,
	loans core.LoanStore,
	limits core.BorrowLimitService,
	protocols core.ProtocolConfigStore,
) core.OverseerService {
	return &overseerService{
		codec:     codec,
		loans:     loans,
		limits:    limits,
		protocols: protocols,
	}
}

func (s *overseerService) lock(borrower core.Address) func() {
	var h uint32
	for _, b := range borrower {
		h = h*31 + uint32(b)
	}

	mu := &s.locks[h%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *overseerService) LockCollateral(ctx context.Context, borrower core.Address, deposits core.Collaterals) (*core.Response, error) {
	defer s.lock(borrower)()

	log := logger.FromContext(ctx).WithField("action", "lock_collateral")

	loan, err := s.loans.Find(ctx, borrower)
	if err != nil {
		log.WithError(err).Errorln("loans.Find")
		return nil, err
	}

	if err := loan.AddCollateral(deposits); err != nil {
		log.WithError(err).Infoln("AddCollateral")
		return nil, err
	}

	resp, err := s.newResponse("lock_collateral", borrower)
	if err != nil {
		return nil, err
	}

	for _, c := range deposits {
		if err := s.emit(resp, c.Asset, core.InstructionLockCollateral, c.Amount); err != nil {
			return nil, err
		}
	}

	resp.Logs = append(resp.Logs, core.NewAttribute("collaterals", s.formatCollaterals(deposits)))
	return s.commit(ctx, loan, resp)
}

func (s *overseerService) UnlockCollateral(ctx context.Context, borrower core.Address, withdrawals core.Collaterals) (*core.Response, error) {
	defer s.lock(borrower)()

	log := logger.FromContext(ctx).WithField("action", "unlock_collateral")

	loan, err := s.loans.Find(ctx, borrower)
	if err != nil {
		log.WithError(err).Errorln("loans.Find")
		return nil, err
	}

	if err := loan.SubCollateral(withdrawals); err != nil {
		log.WithError(err).Infoln("SubCollateral")
		return nil, err
	}

	limit, err := s.limits.ComputeBorrowLimit(ctx, loan.Collaterals)
	if err != nil {
		return nil, err
	}

	if loan.BorrowAmount.Gt(&limit.Limit) {
		log.WithField("borrow_amount", loan.BorrowAmount.Dec()).
			WithField("limit", limit.Limit.Dec()).
			Infoln("reject unlock")
		return nil, fmt.Errorf("%w: limit %s, borrow amount %s",
			core.ErrInsufficientCollateral, limit.Limit.Dec(), loan.BorrowAmount.Dec())
	}

	resp, err := s.newResponse("unlock_collateral", borrower)
	if err != nil {
		return nil, err
	}

	for _, c := range withdrawals {
		if err := s.emit(resp, c.Asset, core.InstructionUnlockCollateral, c.Amount); err != nil {
			return nil, err
		}
	}

	resp.Logs = append(resp.Logs, core.NewAttribute("collaterals", s.formatCollaterals(withdrawals)))
	return s.commit(ctx, loan, resp)
}

func (s *overseerService) Borrow(ctx context.Context, borrower core.Address, amount uint256.Int) (*core.Response, error) {
	defer s.lock(borrower)()

	log := logger.FromContext(ctx).WithField("action", "borrow")

	loan, err := s.loans.Find(ctx, borrower)
	if err != nil {
		log.WithError(err).Errorln("loans.Find")
		return nil, err
	}

	if err := loan.AddBorrow(amount); err != nil {
		log.WithError(err).Infoln("AddBorrow")
		return nil, err
	}

	limit, err := s.limits.ComputeBorrowLimit(ctx, loan.Collaterals)
	if err != nil {
		return nil, err
	}

	if loan.BorrowAmount.Gt(&limit.Limit) {
		log.WithField("borrow_amount", loan.BorrowAmount.Dec()).
			WithField("limit", limit.Limit.Dec()).
			Infoln("reject borrow")
		return nil, fmt.Errorf("%w: limit %s, borrow amount %s",
			core.ErrExceedsLimit, limit.Limit.Dec(), loan.BorrowAmount.Dec())
	}

	cfg, err := s.protocols.Get(ctx)
	if err != nil {
		log.WithError(err).Errorln("protocols.Get")
		return nil, err
	}

	resp, err := s.newResponse("borrow", borrower)
	if err != nil {
		return nil, err
	}

	if err := s.emit(resp, cfg.MarketContract, core.InstructionExecuteLoan, amount); err != nil {
		return nil, err
	}

	resp.Logs = append(resp.Logs, core.NewAttribute("amount", amount.Dec()))
	return s.commit(ctx, loan, resp)
}

// LiquidateCollateral seizing collateral of an insolvent borrower is not implemented.
// It accepts every request and changes nothing.
func (s *overseerService) LiquidateCollateral(ctx context.Context, borrower core.Address) (*core.Response, error) {
	logger.FromContext(ctx).WithField("action", "liquidate_collateral").
		WithField("borrower", s.codec.MustHuman(borrower)).
		Debugln("liquidation not implemented, skip")

	return &core.Response{}, nil
}

func (s *overseerService) Loan(ctx context.Context, borrower core.Address) (*core.Loan, error) {
	return s.loans.Find(ctx, borrower)
}

func (s *overseerService) BorrowLimit(ctx context.Context, borrower core.Address) (*core.Loan, *core.BorrowLimit, error) {
	loan, err := s.loans.Find(ctx, borrower)
	if err != nil {
		return nil, nil, err
	}

	limit, err := s.limits.ComputeBorrowLimit(ctx, loan.Collaterals)
	if err != nil {
		return nil, nil, err
	}

	return loan, limit, nil
}

// response under construction for one accepted action
type response struct {
	*core.Response
	borrower string
}

func (s *overseerService) newResponse(action string, borrower core.Address) (*response, error) {
	human, err := s.codec.Human(borrower)
	if err != nil {
		return nil, err
	}

	return &response{
		Response: &core.Response{
			TraceID: foxuuid.New(),
			Logs: []core.Attribute{
				core.NewAttribute("action", action),
				core.NewAttribute("borrower", human),
			},
		},
		borrower: human,
	}, nil
}

func (s *overseerService) emit(resp *response, contract core.Address, kind core.InstructionKind, amount uint256.Int) error {
	target, err := s.codec.Human(contract)
	if err != nil {
		return err
	}

	resp.Instructions = append(resp.Instructions, &core.Instruction{
		TraceID:   foxuuid.Modify(resp.TraceID, strconv.Itoa(len(resp.Instructions))),
		Contract:  target,
		Kind:      kind,
		Borrower:  resp.borrower,
		Amount:    amount,
		CreatedAt: time.Now(),
	})

	return nil
}

func (s *overseerService) commit(ctx context.Context, loan *core.Loan, resp *response) (*core.Response, error) {
	log := logger.FromContext(ctx).WithField("trace", resp.TraceID)

	if err := s.loans.Save(ctx, loan, resp.Instructions...); err != nil {
		log.WithError(err).Errorln("loans.Save")
		return nil, err
	}

	for _, attr := range resp.Logs {
		log = log.WithField(attr.Key, attr.Value)
	}

	log.Infoln("loan updated")
	return resp.Response, nil
}

func (s *overseerService) formatCollaterals(cs core.Collaterals) string {
	parts := make([]string, len(cs))
	for idx, c := range cs {
		parts[idx] = c.Amount.Dec() + s.codec.MustHuman(c.Asset)
	}

	return strings.Join(parts, ",")
}
