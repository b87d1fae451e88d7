package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"overseer/core"
	"overseer/worker"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/sync/errgroup"
)

// Publisher the part of jetstream.JetStream the dispatcher needs
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Config dispatcher config
type Config struct {
	SubjectPrefix string
	Batch         int
	Interval      time.Duration
}

// Dispatcher delivers committed instructions to their collaborators
type Dispatcher struct {
	instructions core.InstructionStore
	publisher    Publisher
	config       Config
	job          *worker.BaseJob
}

// New new dispatcher
func New(instructions core.InstructionStore, publisher Publisher, cfg Config) *Dispatcher {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}

	w := &Dispatcher{
		instructions: instructions,
		publisher:    publisher,
		config:       cfg,
	}

	w.job = worker.NewBaseJob("dispatcher", cfg.Interval, w.onWork)
	return w
}

// Run drains the outbox until ctx is done
func (w *Dispatcher) Run(ctx context.Context) error {
	return w.job.Serve(ctx)
}

func (w *Dispatcher) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	instructions, err := w.instructions.List(ctx, w.config.Batch)
	if err != nil {
		log.WithError(err).Errorln("instructions.List")
		return err
	}

	if len(instructions) == 0 {
		return worker.ErrIdle
	}

	var g errgroup.Group
	for _, ins := range instructions {
		ins := ins
		g.Go(func() error {
			return w.publish(ctx, ins)
		})
	}

	// the batch is removed only once every message is acked,
	// republished messages are dropped by jetstream on msg id
	if err := g.Wait(); err != nil {
		return err
	}

	seqs := make([]uint64, len(instructions))
	for idx, ins := range instructions {
		seqs[idx] = ins.Seq
	}

	if err := w.instructions.Delete(ctx, seqs...); err != nil {
		log.WithError(err).Errorln("instructions.Delete")
		return err
	}

	log.Debugf("dispatched %d instructions", len(instructions))
	return nil
}

func (w *Dispatcher) publish(ctx context.Context, ins *core.Instruction) error {
	log := logger.FromContext(ctx).WithField("trace", ins.TraceID)

	data, err := json.Marshal(Envelope(ins))
	if err != nil {
		return err
	}

	subject := Subject(w.config.SubjectPrefix, ins)
	if _, err := w.publisher.Publish(ctx, subject, data, jetstream.WithMsgID(ins.TraceID)); err != nil {
		log.WithError(err).Errorln("publish", subject)
		return err
	}

	return nil
}

// Collaborator receiving side of an instruction kind
func Collaborator(kind core.InstructionKind) string {
	switch kind {
	case core.InstructionExecuteLoan:
		return "market"
	default:
		return "custody"
	}
}

// Subject <prefix>.<collaborator>.<kind>
func Subject(prefix string, ins *core.Instruction) string {
	return fmt.Sprintf("%s.%s.%s", prefix, Collaborator(ins.Kind), ins.Kind)
}

// StreamSubjects subjects the outbound stream must capture
func StreamSubjects(prefix string) []string {
	return []string{prefix + ".>"}
}

type message struct {
	TraceID  string                          `json:"trace_id"`
	Contract string                          `json:"contract"`
	Msg      map[core.InstructionKind]params `json:"msg"`
}

type params struct {
	Borrower string `json:"borrower"`
	Amount   string `json:"amount"`
}

// Envelope wire form of an instruction:
//
//	{"trace_id":"..","contract":"..","msg":{"lock_collateral":{"borrower":"..","amount":".."}}}
func Envelope(ins *core.Instruction) interface{} {
	return message{
		TraceID:  ins.TraceID,
		Contract: ins.Contract,
		Msg: map[core.InstructionKind]params{
			ins.Kind: {
				Borrower: ins.Borrower,
				Amount:   ins.Amount.Dec(),
			},
		},
	}
}
