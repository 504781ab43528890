package ledger

import (
	"errors"
	"sync"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) solanago.PublicKey {
	var key solanago.PublicKey
	key[0] = b
	return key
}

func TestMemoryStoreCommit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	key := testKey(1)
	require.NoError(t, store.Update(func(tx *Txn) error {
		return tx.Set(key, []byte("hello"))
	}))

	require.NoError(t, store.View(func(tx *Txn) error {
		data, err := tx.Get(key)
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), data)
		return nil
	}))
}

func TestMemoryStoreRollback(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	key := testKey(2)
	boom := errors.New("boom")
	err := store.Update(func(tx *Txn) error {
		require.NoError(t, tx.Set(key, []byte("staged")))

		// The staged write is visible inside the same transaction.
		data, err := tx.Get(key)
		require.NoError(t, err)
		require.Equal(t, []byte("staged"), data)
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.View(func(tx *Txn) error {
		_, err := tx.Get(key)
		require.ErrorIs(t, err, ErrRecordNotFound)
		return nil
	}))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	key := testKey(3)
	require.NoError(t, store.Update(func(tx *Txn) error {
		return tx.Set(key, []byte("x"))
	}))
	require.NoError(t, store.Update(func(tx *Txn) error {
		return tx.Delete(key)
	}))
	require.NoError(t, store.View(func(tx *Txn) error {
		require.False(t, tx.Has(key))
		return nil
	}))
}

func TestMemoryStoreReadOnlyView(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.View(func(tx *Txn) error {
		require.Error(t, tx.Set(testKey(4), []byte("nope")))
		require.Error(t, tx.Delete(testKey(4)))
		return nil
	}))
}

func TestMemoryStoreSerializesWriters(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	key := testKey(5)
	require.NoError(t, store.Update(func(tx *Txn) error {
		return tx.Set(key, []byte{0, 0, 0, 0, 0, 0, 0, 0})
	}))

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(func(tx *Txn) error {
				data, err := tx.Get(key)
				if err != nil {
					return err
				}
				data[0]++
				return tx.Set(key, data)
			})
		}()
	}
	wg.Wait()

	require.NoError(t, store.View(func(tx *Txn) error {
		data, err := tx.Get(key)
		require.NoError(t, err)
		require.Equal(t, byte(64), data[0])
		return nil
	}))
}

func TestPebbleStoreCommitAndReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenPebbleStore(dir)
	require.NoError(t, err)

	key := testKey(6)
	require.NoError(t, store.Update(func(tx *Txn) error {
		return tx.Set(key, []byte("durable"))
	}))
	require.NoError(t, store.Close())

	store, err = OpenPebbleStore(dir)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.View(func(tx *Txn) error {
		data, err := tx.Get(key)
		require.NoError(t, err)
		require.Equal(t, []byte("durable"), data)
		return nil
	}))
}

func TestPebbleStoreRollback(t *testing.T) {
	store, err := OpenPebbleStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	key := testKey(7)
	boom := errors.New("boom")
	err = store.Update(func(tx *Txn) error {
		require.NoError(t, tx.Set(key, []byte("staged")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.View(func(tx *Txn) error {
		_, err := tx.Get(key)
		require.ErrorIs(t, err, ErrRecordNotFound)
		return nil
	}))
}
