package runtime

import (
	"bytes"
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/snailpad/snail-go/ledger"
)

// Bank implements the token and native-value primitives the programs invoke
// as external calls: mint, checked transfer, account freeze, authority
// revocation and lamport moves. All bank state lives in the same ledger
// transaction as the program records, so an operation that flips a latch
// and then transfers either commits both or neither.
type Bank struct {
	// RentMinimum is the lamport floor a system account must retain.
	RentMinimum uint64
}

// RentMinimumBalance is the rent-exempt minimum for a zero-data account.
const RentMinimumBalance uint64 = 890_880

func NewBank() *Bank {
	return &Bank{RentMinimum: RentMinimumBalance}
}

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrInvalidAuthority  = errors.New("invalid authority")
	ErrAuthorityRevoked  = errors.New("authority has been revoked")
	ErrMintMismatch      = errors.New("token account mint mismatch")
	ErrDecimalsMismatch  = errors.New("mint decimals mismatch")
	ErrAccountFrozen     = errors.New("token account is frozen")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAmountOverflow    = errors.New("amount overflow")
)

// AuthorityType selects which mint capability SetAuthority operates on.
type AuthorityType uint8

const (
	AuthorityMintTokens    AuthorityType = 0
	AuthorityFreezeAccount AuthorityType = 1
)

// Mint is the supply record of a token. A nil authority is a permanently
// revoked capability; it cannot be reinstated.
type Mint struct {
	MintAuthority   *solanago.PublicKey `bin:"optional"`
	FreezeAuthority *solanago.PublicKey `bin:"optional"`
	Supply          uint64
	Decimals        uint8
}

// TokenAccount is a token holding location.
type TokenAccount struct {
	Mint   solanago.PublicKey
	Owner  solanago.PublicKey
	Amount uint64
	Frozen bool
}

func encode(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Bank) CreateMint(tx *ledger.Txn, mint solanago.PublicKey, decimals uint8, mintAuthority, freezeAuthority *solanago.PublicKey) error {
	if tx.Has(mint) {
		return ErrAccountExists
	}
	return b.putMint(tx, mint, &Mint{
		MintAuthority:   mintAuthority,
		FreezeAuthority: freezeAuthority,
		Decimals:        decimals,
	})
}

func (b *Bank) GetMint(tx *ledger.Txn, mint solanago.PublicKey) (*Mint, error) {
	data, err := tx.Get(mint)
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	out := new(Mint)
	if err := bin.NewBorshDecoder(data).Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Bank) putMint(tx *ledger.Txn, key solanago.PublicKey, mint *Mint) error {
	data, err := encode(mint)
	if err != nil {
		return err
	}
	return tx.Set(key, data)
}

func (b *Bank) CreateTokenAccount(tx *ledger.Txn, address, mint, owner solanago.PublicKey) error {
	if tx.Has(address) {
		return ErrAccountExists
	}
	return b.putTokenAccount(tx, address, &TokenAccount{Mint: mint, Owner: owner})
}

func (b *Bank) GetTokenAccount(tx *ledger.Txn, address solanago.PublicKey) (*TokenAccount, error) {
	data, err := tx.Get(address)
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	out := new(TokenAccount)
	if err := bin.NewBorshDecoder(data).Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Bank) putTokenAccount(tx *ledger.Txn, key solanago.PublicKey, account *TokenAccount) error {
	data, err := encode(account)
	if err != nil {
		return err
	}
	return tx.Set(key, data)
}

// MintTo creates amount new units on dest. The signing authority must match
// the mint's live mint authority.
func (b *Bank) MintTo(tx *ledger.Txn, mint, dest, authority solanago.PublicKey, amount uint64) error {
	m, err := b.GetMint(tx, mint)
	if err != nil {
		return err
	}
	if m.MintAuthority == nil {
		return ErrAuthorityRevoked
	}
	if !m.MintAuthority.Equals(authority) {
		return ErrInvalidAuthority
	}
	acc, err := b.GetTokenAccount(tx, dest)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mint) {
		return ErrMintMismatch
	}
	if acc.Frozen {
		return ErrAccountFrozen
	}
	supply, ok := checkedAdd(m.Supply, amount)
	if !ok {
		return ErrAmountOverflow
	}
	balance, ok := checkedAdd(acc.Amount, amount)
	if !ok {
		return ErrAmountOverflow
	}
	m.Supply = supply
	acc.Amount = balance
	if err := b.putMint(tx, mint, m); err != nil {
		return err
	}
	return b.putTokenAccount(tx, dest, acc)
}

// TransferChecked moves amount between two accounts of the same mint,
// verifying the expected decimals against the mint record.
func (b *Bank) TransferChecked(tx *ledger.Txn, from, to, authority, mint solanago.PublicKey, amount uint64, decimals uint8) error {
	m, err := b.GetMint(tx, mint)
	if err != nil {
		return err
	}
	if m.Decimals != decimals {
		return ErrDecimalsMismatch
	}
	src, err := b.GetTokenAccount(tx, from)
	if err != nil {
		return err
	}
	dst, err := b.GetTokenAccount(tx, to)
	if err != nil {
		return err
	}
	if !src.Mint.Equals(mint) || !dst.Mint.Equals(mint) {
		return ErrMintMismatch
	}
	if !src.Owner.Equals(authority) {
		return ErrInvalidAuthority
	}
	if src.Frozen || dst.Frozen {
		return ErrAccountFrozen
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	balance, ok := checkedAdd(dst.Amount, amount)
	if !ok {
		return ErrAmountOverflow
	}
	src.Amount -= amount
	dst.Amount = balance
	if err := b.putTokenAccount(tx, from, src); err != nil {
		return err
	}
	return b.putTokenAccount(tx, to, dst)
}

// FreezeAccount permanently halts transfers in and out of account. Only the
// mint's live freeze authority may freeze.
func (b *Bank) FreezeAccount(tx *ledger.Txn, account, mint, authority solanago.PublicKey) error {
	m, err := b.GetMint(tx, mint)
	if err != nil {
		return err
	}
	if m.FreezeAuthority == nil {
		return ErrAuthorityRevoked
	}
	if !m.FreezeAuthority.Equals(authority) {
		return ErrInvalidAuthority
	}
	acc, err := b.GetTokenAccount(tx, account)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mint) {
		return ErrMintMismatch
	}
	if acc.Frozen {
		return ErrAccountFrozen
	}
	acc.Frozen = true
	return b.putTokenAccount(tx, account, acc)
}

// SetAuthority replaces a mint capability. Passing nil revokes it for good:
// once cleared, any later SetAuthority on the same capability fails.
func (b *Bank) SetAuthority(tx *ledger.Txn, mint solanago.PublicKey, authorityType AuthorityType, current solanago.PublicKey, next *solanago.PublicKey) error {
	m, err := b.GetMint(tx, mint)
	if err != nil {
		return err
	}
	switch authorityType {
	case AuthorityMintTokens:
		if m.MintAuthority == nil {
			return ErrAuthorityRevoked
		}
		if !m.MintAuthority.Equals(current) {
			return ErrInvalidAuthority
		}
		m.MintAuthority = next
	case AuthorityFreezeAccount:
		if m.FreezeAuthority == nil {
			return ErrAuthorityRevoked
		}
		if !m.FreezeAuthority.Equals(current) {
			return ErrInvalidAuthority
		}
		m.FreezeAuthority = next
	default:
		return errors.New("unknown authority type")
	}
	return b.putMint(tx, mint, m)
}

// Balance returns the lamport balance of a system account; absent accounts
// hold zero.
func (b *Bank) Balance(tx *ledger.Txn, address solanago.PublicKey) uint64 {
	data, err := tx.Get(address)
	if err != nil || len(data) != 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(data)
}

// Credit adds lamports to an account, creating it if absent.
func (b *Bank) Credit(tx *ledger.Txn, address solanago.PublicKey, amount uint64) error {
	balance, ok := checkedAdd(b.Balance(tx, address), amount)
	if !ok {
		return ErrAmountOverflow
	}
	return b.putBalance(tx, address, balance)
}

// Transfer moves lamports between system accounts.
func (b *Bank) Transfer(tx *ledger.Txn, from, to solanago.PublicKey, amount uint64) error {
	fromBalance := b.Balance(tx, from)
	if fromBalance < amount {
		return ErrInsufficientFunds
	}
	toBalance, ok := checkedAdd(b.Balance(tx, to), amount)
	if !ok {
		return ErrAmountOverflow
	}
	if err := b.putBalance(tx, from, fromBalance-amount); err != nil {
		return err
	}
	return b.putBalance(tx, to, toBalance)
}

func (b *Bank) putBalance(tx *ledger.Txn, address solanago.PublicKey, balance uint64) error {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, balance)
	return tx.Set(address, data)
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
