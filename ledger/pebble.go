package ledger

import (
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"
	solanago "github.com/gagliardetto/solana-go"
)

// PebbleStore persists records in a pebble database. Each Update commits
// its staged writes in one batch with a synced WAL, so a crash mid-commit
// never leaves a half-applied invocation behind.
type PebbleStore struct {
	mu sync.Mutex
	db *pebble.DB
}

func OpenPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) get(key solanago.PublicKey) ([]byte, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	val, closer, err := s.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *PebbleStore) View(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}
	return fn(newTxn(s, true))
}

func (s *PebbleStore) Update(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	tx := newTxn(s, false)
	if err := fn(tx); err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	for key, data := range tx.writes {
		if data == nil {
			if err := batch.Delete(key.Bytes(), nil); err != nil {
				return err
			}
			continue
		}
		if err := batch.Set(key.Bytes(), data, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (s *PebbleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
