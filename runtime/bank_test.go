package runtime

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/snailpad/snail-go/ledger"
)

func key(b byte) solanago.PublicKey {
	var out solanago.PublicKey
	out[0] = b
	return out
}

type bankFixture struct {
	bank  *Bank
	store *ledger.MemoryStore

	mint      solanago.PublicKey
	authority solanago.PublicKey
	freezer   solanago.PublicKey
	alice     solanago.PublicKey
	bob       solanago.PublicKey
	aliceATA  solanago.PublicKey
	bobATA    solanago.PublicKey
}

func newBankFixture(t *testing.T) *bankFixture {
	f := &bankFixture{
		bank:      NewBank(),
		store:     ledger.NewMemoryStore(),
		mint:      key(1),
		authority: key(2),
		freezer:   key(3),
		alice:     key(4),
		bob:       key(5),
		aliceATA:  key(6),
		bobATA:    key(7),
	}
	t.Cleanup(func() { f.store.Close() })

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		if err := f.bank.CreateMint(tx, f.mint, 9, &f.authority, &f.freezer); err != nil {
			return err
		}
		if err := f.bank.CreateTokenAccount(tx, f.aliceATA, f.mint, f.alice); err != nil {
			return err
		}
		return f.bank.CreateTokenAccount(tx, f.bobATA, f.mint, f.bob)
	}))
	return f
}

func TestBankMintAndTransfer(t *testing.T) {
	f := newBankFixture(t)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.MintTo(tx, f.mint, f.aliceATA, f.authority, 1_000)
	}))

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.TransferChecked(tx, f.aliceATA, f.bobATA, f.alice, f.mint, 400, 9)
	}))

	require.NoError(t, f.store.View(func(tx *ledger.Txn) error {
		mint, err := f.bank.GetMint(tx, f.mint)
		require.NoError(t, err)
		require.Equal(t, uint64(1_000), mint.Supply)

		src, err := f.bank.GetTokenAccount(tx, f.aliceATA)
		require.NoError(t, err)
		require.Equal(t, uint64(600), src.Amount)

		dst, err := f.bank.GetTokenAccount(tx, f.bobATA)
		require.NoError(t, err)
		require.Equal(t, uint64(400), dst.Amount)
		return nil
	}))
}

func TestBankTransferChecks(t *testing.T) {
	f := newBankFixture(t)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.MintTo(tx, f.mint, f.aliceATA, f.authority, 100)
	}))

	err := f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.TransferChecked(tx, f.aliceATA, f.bobATA, f.bob, f.mint, 10, 9)
	})
	require.ErrorIs(t, err, ErrInvalidAuthority)

	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.TransferChecked(tx, f.aliceATA, f.bobATA, f.alice, f.mint, 10, 6)
	})
	require.ErrorIs(t, err, ErrDecimalsMismatch)

	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.TransferChecked(tx, f.aliceATA, f.bobATA, f.alice, f.mint, 101, 9)
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestBankMintAuthorityRevocation(t *testing.T) {
	f := newBankFixture(t)

	err := f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.MintTo(tx, f.mint, f.aliceATA, f.bob, 1)
	})
	require.ErrorIs(t, err, ErrInvalidAuthority)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.SetAuthority(tx, f.mint, AuthorityMintTokens, f.authority, nil)
	}))

	// Once revoked, minting is gone for everyone, and the capability
	// cannot be reinstated.
	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.MintTo(tx, f.mint, f.aliceATA, f.authority, 1)
	})
	require.ErrorIs(t, err, ErrAuthorityRevoked)

	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.SetAuthority(tx, f.mint, AuthorityMintTokens, f.authority, &f.authority)
	})
	require.ErrorIs(t, err, ErrAuthorityRevoked)
}

func TestBankFreeze(t *testing.T) {
	f := newBankFixture(t)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.MintTo(tx, f.mint, f.aliceATA, f.authority, 100)
	}))

	err := f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.FreezeAccount(tx, f.aliceATA, f.mint, f.alice)
	})
	require.ErrorIs(t, err, ErrInvalidAuthority)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.FreezeAccount(tx, f.aliceATA, f.mint, f.freezer)
	}))

	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.TransferChecked(tx, f.aliceATA, f.bobATA, f.alice, f.mint, 10, 9)
	})
	require.ErrorIs(t, err, ErrAccountFrozen)

	err = f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.FreezeAccount(tx, f.aliceATA, f.mint, f.freezer)
	})
	require.ErrorIs(t, err, ErrAccountFrozen)
}

func TestBankLamports(t *testing.T) {
	f := newBankFixture(t)

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.Credit(tx, f.alice, 1_000)
	}))

	require.NoError(t, f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.Transfer(tx, f.alice, f.bob, 300)
	}))

	err := f.store.Update(func(tx *ledger.Txn) error {
		return f.bank.Transfer(tx, f.alice, f.bob, 800)
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.NoError(t, f.store.View(func(tx *ledger.Txn) error {
		require.Equal(t, uint64(700), f.bank.Balance(tx, f.alice))
		require.Equal(t, uint64(300), f.bank.Balance(tx, f.bob))
		return nil
	}))
}

func TestBankRecordRoundTrip(t *testing.T) {
	f := newBankFixture(t)

	require.NoError(t, f.store.View(func(tx *ledger.Txn) error {
		mint, err := f.bank.GetMint(tx, f.mint)
		require.NoError(t, err)
		require.NotNil(t, mint.MintAuthority)
		require.True(t, mint.MintAuthority.Equals(f.authority))
		require.NotNil(t, mint.FreezeAuthority)
		require.True(t, mint.FreezeAuthority.Equals(f.freezer))
		require.Equal(t, uint8(9), mint.Decimals)

		acc, err := f.bank.GetTokenAccount(tx, f.aliceATA)
		require.NoError(t, err)
		require.True(t, acc.Mint.Equals(f.mint))
		require.True(t, acc.Owner.Equals(f.alice))
		require.False(t, acc.Frozen)
		return nil
	}))
}
