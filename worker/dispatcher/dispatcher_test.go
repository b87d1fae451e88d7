package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"overseer/core"
	"overseer/store/ledger"
	"overseer/worker"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type published struct {
	subject string
	data    []byte
}

type memPublisher struct {
	mu   sync.Mutex
	msgs []published
	fail bool
}

func (p *memPublisher) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return nil, errors.New("nats: no responders available for request")
	}

	p.msgs = append(p.msgs, published{subject: subject, data: data})
	return &jetstream.PubAck{Sequence: uint64(len(p.msgs))}, nil
}

func newLedger(t *testing.T) *ledger.Store {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)

	s, err := ledger.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func enqueue(t *testing.T, s *ledger.Store, kinds ...core.InstructionKind) {
	var instructions []*core.Instruction
	for _, kind := range kinds {
		instructions = append(instructions, &core.Instruction{
			TraceID:   "trace-" + string(kind),
			Contract:  "terra1contract",
			Kind:      kind,
			Borrower:  "terra1borrower",
			Amount:    *uint256.NewInt(500),
			CreatedAt: time.Now(),
		})
	}

	require.NoError(t, s.Save(context.Background(), &core.Loan{}, instructions...))
}

func TestOnWork(t *testing.T) {
	ctx := context.Background()
	s := newLedger(t)
	pub := &memPublisher{}
	d := New(s, pub, Config{SubjectPrefix: "overseer"})

	assert.True(t, errors.Is(d.onWork(ctx), worker.ErrIdle))

	enqueue(t, s, core.InstructionLockCollateral, core.InstructionExecuteLoan)
	require.NoError(t, d.onWork(ctx))
	require.Len(t, pub.msgs, 2)

	subjects := map[string]bool{}
	for _, m := range pub.msgs {
		subjects[m.subject] = true
	}

	assert.True(t, subjects["overseer.custody.lock_collateral"])
	assert.True(t, subjects["overseer.market.execute_loan"])

	pending, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOnWorkPublishFailed(t *testing.T) {
	ctx := context.Background()
	s := newLedger(t)
	pub := &memPublisher{fail: true}
	d := New(s, pub, Config{SubjectPrefix: "overseer"})

	enqueue(t, s, core.InstructionUnlockCollateral)
	assert.Error(t, d.onWork(ctx))

	pending, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "undelivered instructions stay in the outbox")

	pub.fail = false
	require.NoError(t, d.onWork(ctx))
	assert.Len(t, pub.msgs, 1)
}

func TestEnvelope(t *testing.T) {
	data, err := json.Marshal(Envelope(&core.Instruction{
		TraceID:  "t",
		Contract: "terra1custody",
		Kind:     core.InstructionLockCollateral,
		Borrower: "terra1borrower",
		Amount:   *uint256.NewInt(100),
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"trace_id": "t",
		"contract": "terra1custody",
		"msg": {"lock_collateral": {"borrower": "terra1borrower", "amount": "100"}}
	}`, string(data))
}

func TestRunStopsWithContext(t *testing.T) {
	s := newLedger(t)
	d := New(s, &memPublisher{}, Config{SubjectPrefix: "overseer", Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, d.Run(ctx))
}
