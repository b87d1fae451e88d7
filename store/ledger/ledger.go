package ledger

import (
	"context"
	"encoding/binary"
	"errors"
	"overseer/core"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	loanPrefix   = []byte("loan/")
	outboxPrefix = []byte("outbox/")
	seqKey       = []byte("meta/outbox_seq")
)

// Store leveldb backed collateral ledger and instruction outbox
type Store struct {
	db *leveldb.DB

	// guards seq, outbox order follows commit order
	mu  sync.Mutex
	seq uint64
}

// Open open or create the ledger at path
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}

	return New(db)
}

// New new ledger store
func New(db *leveldb.DB) (*Store, error) {
	s := &Store{db: db}

	v, err := db.Get(seqKey, nil)
	switch {
	case err == nil:
		s.seq = binary.BigEndian.Uint64(v)
	case errors.Is(err, leveldb.ErrNotFound):
	default:
		return nil, err
	}

	return s, nil
}

// Close close the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func loanKey(borrower core.Address) []byte {
	return append(append([]byte{}, loanPrefix...), borrower[:]...)
}

func outboxKey(seq uint64) []byte {
	key := make([]byte, len(outboxPrefix)+8)
	copy(key, outboxPrefix)
	binary.BigEndian.PutUint64(key[len(outboxPrefix):], seq)
	return key
}

func encodeSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func (s *Store) Find(ctx context.Context, borrower core.Address) (*core.Loan, error) {
	data, err := s.db.Get(loanKey(borrower), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return &core.Loan{Borrower: borrower}, nil
	}

	if err != nil {
		return nil, err
	}

	return decodeLoan(borrower, data)
}

func (s *Store) Save(ctx context.Context, loan *core.Loan, instructions ...*core.Instruction) error {
	data, err := encodeLoan(loan)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := new(leveldb.Batch)
	batch.Put(loanKey(loan.Borrower), data)

	seq := s.seq
	for _, ins := range instructions {
		seq++
		data, err := encodeInstruction(ins)
		if err != nil {
			return err
		}

		batch.Put(outboxKey(seq), data)
	}

	if seq != s.seq {
		batch.Put(seqKey, encodeSeq(seq))
	}

	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}

	for idx, ins := range instructions {
		ins.Seq = s.seq + uint64(idx) + 1
	}

	s.seq = seq
	return nil
}

func (s *Store) List(ctx context.Context, limit int) ([]*core.Instruction, error) {
	iter := s.db.NewIterator(util.BytesPrefix(outboxPrefix), nil)
	defer iter.Release()

	var instructions []*core.Instruction
	for iter.Next() {
		if limit > 0 && len(instructions) >= limit {
			break
		}

		ins, err := decodeInstruction(iter.Value())
		if err != nil {
			return nil, err
		}

		ins.Seq = binary.BigEndian.Uint64(iter.Key()[len(outboxPrefix):])
		instructions = append(instructions, ins)
	}

	if err := iter.Error(); err != nil {
		return nil, err
	}

	return instructions, nil
}

func (s *Store) Delete(ctx context.Context, seqs ...uint64) error {
	if len(seqs) == 0 {
		return nil
	}

	batch := new(leveldb.Batch)
	for _, seq := range seqs {
		batch.Delete(outboxKey(seq))
	}

	return s.db.Write(batch, nil)
}
