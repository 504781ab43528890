package ledger

import (
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

// MemoryStore is an in-process Store. A single mutex serializes all
// transactions, which is exactly the serialization guarantee the programs
// assume from the substrate.
type MemoryStore struct {
	mu      sync.Mutex
	records map[solanago.PublicKey][]byte
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[solanago.PublicKey][]byte)}
}

func (s *MemoryStore) get(key solanago.PublicKey) ([]byte, error) {
	data, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) View(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return fn(newTxn(s, true))
}

func (s *MemoryStore) Update(fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	tx := newTxn(s, false)
	if err := fn(tx); err != nil {
		return err
	}
	for key, data := range tx.writes {
		if data == nil {
			delete(s.records, key)
			continue
		}
		s.records[key] = data
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
