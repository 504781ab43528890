// Package ledger provides the keyed record substrate the programs run
// against: 32-byte addresses map to opaque record bytes, and every program
// invocation executes inside one transaction whose writes commit atomically
// or not at all.
package ledger

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrStoreClosed    = errors.New("store is closed")
)

// Store is the persistence boundary. Update serializes conflicting writers:
// two invocations touching the same record never interleave mid-transaction.
type Store interface {
	// View runs fn against a read-only snapshot.
	View(fn func(tx *Txn) error) error
	// Update runs fn against a transaction; staged writes commit only if
	// fn returns nil.
	Update(fn func(tx *Txn) error) error
	Close() error
}

type backend interface {
	get(key solanago.PublicKey) ([]byte, error)
}

// Txn stages the reads and writes of a single invocation.
type Txn struct {
	base     backend
	writes   map[solanago.PublicKey][]byte
	readOnly bool
}

func newTxn(base backend, readOnly bool) *Txn {
	return &Txn{base: base, writes: make(map[solanago.PublicKey][]byte), readOnly: readOnly}
}

// Get returns the record at key, observing writes staged earlier in the
// same transaction. Missing records yield ErrRecordNotFound.
func (tx *Txn) Get(key solanago.PublicKey) ([]byte, error) {
	if data, ok := tx.writes[key]; ok {
		if data == nil {
			return nil, ErrRecordNotFound
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	return tx.base.get(key)
}

// Has reports whether a record exists at key.
func (tx *Txn) Has(key solanago.PublicKey) bool {
	_, err := tx.Get(key)
	return err == nil
}

// Set stages a record write.
func (tx *Txn) Set(key solanago.PublicKey, data []byte) error {
	if tx.readOnly {
		return errors.New("write inside read-only transaction")
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	tx.writes[key] = stored
	return nil
}

// Delete stages a record removal.
func (tx *Txn) Delete(key solanago.PublicKey) error {
	if tx.readOnly {
		return errors.New("write inside read-only transaction")
	}
	tx.writes[key] = nil
	return nil
}
