package snail_launch

import (
	"errors"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/snailpad/snail-go/ledger"
	"github.com/snailpad/snail-go/runtime"
)

// Program is the launch controller: one-time supply mint, the admin/LP
// bucket, the timed public sale with pro-rata settlement, airdrops and
// ownership revocation. Every operation runs as one ledger transaction.
type Program struct {
	store  ledger.Store
	bank   *runtime.Bank
	clock  runtime.Clock
	events runtime.Emitter
}

func NewProgram(store ledger.Store, bank *runtime.Bank, clock runtime.Clock, events runtime.Emitter) *Program {
	if bank == nil {
		bank = runtime.NewBank()
	}
	if clock == nil {
		clock = runtime.SystemClock{}
	}
	if events == nil {
		events = runtime.NewLogEmitter(nil)
	}
	return &Program{store: store, bank: bank, clock: clock, events: events}
}

// Initialize mints the full fixed supply to the treasury and revokes the
// mint authority so no further supply can ever exist. The supplied mint
// authority must be the derived program capability; anything else is a
// wrong-account submission.
func (p *Program) Initialize(owner, snailMint, mintAuthority solanago.PublicKey) error {
	derived := DeriveMintAuthority()
	if !derived.Equals(mintAuthority) {
		return ErrInvalidMintAuthority
	}

	err := p.store.Update(func(tx *ledger.Txn) error {
		key := DeriveLaunchState()
		if tx.Has(key) {
			return ErrAlreadyInitialized
		}

		treasuryATA := DeriveTreasuryTokenAccount(snailMint)
		if !tx.Has(treasuryATA) {
			if err := p.bank.CreateTokenAccount(tx, treasuryATA, snailMint, DeriveTreasuryAuthority()); err != nil {
				return err
			}
		}
		if err := p.bank.MintTo(tx, snailMint, treasuryATA, derived, MaxSupply); err != nil {
			return err
		}
		if err := p.bank.SetAuthority(tx, snailMint, runtime.AuthorityMintTokens, derived, nil); err != nil {
			return err
		}

		state := &LaunchState{
			Owner:       owner,
			SnailMint:   snailMint,
			Initialized: true,
		}
		data, err := state.Marshal()
		if err != nil {
			return err
		}
		return tx.Set(key, data)
	})
	if err != nil {
		return err
	}
	p.events.Emit(Initialized{Owner: owner, SnailMint: snailMint, TotalSupply: MaxSupply})
	return nil
}

// State returns the current LaunchState, or ErrNotInitialized.
func (p *Program) State() (*LaunchState, error) {
	var state *LaunchState
	err := p.store.View(func(tx *ledger.Txn) error {
		var err error
		state, err = p.loadState(tx)
		return err
	})
	return state, err
}

func (p *Program) loadState(tx *ledger.Txn) (*LaunchState, error) {
	data, err := tx.Get(DeriveLaunchState())
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return ParseLaunchState(data)
}

func (p *Program) writeState(tx *ledger.Txn, state *LaunchState) error {
	data, err := state.Marshal()
	if err != nil {
		return err
	}
	return tx.Set(DeriveLaunchState(), data)
}

// ClaimAdminLp transfers the 20% admin/LP bucket from the treasury to the
// owner's token account. One-time.
func (p *Program) ClaimAdminLp(owner, snailMint, adminTokenAccount solanago.PublicKey) error {
	var claimed AdminLPClaimed
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if !state.Owner.Equals(owner) {
			return ErrUnauthorized
		}
		if state.AdminClaimed {
			return ErrAdminAlreadyClaimed
		}
		if !state.SnailMint.Equals(snailMint) {
			return ErrInvalidMint
		}

		mint, err := p.bank.GetMint(tx, snailMint)
		if err != nil {
			return err
		}
		amount, err := scaleTokens(AdminLpTokens, mint.Decimals)
		if err != nil {
			return err
		}

		state.AdminClaimed = true
		if err := p.writeState(tx, state); err != nil {
			return err
		}

		if err := p.bank.TransferChecked(tx, DeriveTreasuryTokenAccount(snailMint), adminTokenAccount, DeriveTreasuryAuthority(), snailMint, amount, mint.Decimals); err != nil {
			return err
		}
		claimed = AdminLPClaimed{Owner: owner, SnailAmount: amount}
		return nil
	})
	if err != nil {
		return err
	}
	p.events.Emit(claimed)
	return nil
}

// InitializeSale sets (or resets) the public sale window. Reconfiguration
// clears the admin sweep latch but deliberately leaves TotalSolRaised in
// place: contributions persist across reconfigurations.
func (p *Program) InitializeSale(owner solanago.PublicKey, startTime, endTime, claimStamp int64) error {
	if endTime <= startTime {
		return ErrInvalidTimestamps
	}
	if claimStamp < endTime {
		return ErrInvalidClaimStamp
	}

	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if !state.Owner.Equals(owner) {
			return ErrUnauthorized
		}
		state.SaleStartTime = startTime
		state.SaleEndTime = endTime
		state.ClaimStamp = claimStamp
		state.SaleAdminClaimed = false
		state.SaleConfigured = true
		return p.writeState(tx, state)
	})
	if err != nil {
		return err
	}
	p.events.Emit(PublicSaleConfigured{StartTime: startTime, EndTime: endTime, ClaimStamp: claimStamp})
	return nil
}

// Contribute moves amount lamports from the contributor into the sale
// vault and accumulates it on both the contributor record and the global
// total. Repeatable while the sale window is open; each call adds.
func (p *Program) Contribute(contributor solanago.PublicKey, amount uint64) error {
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		now := p.clock.Unix()
		if now < state.SaleStartTime || now > state.SaleEndTime {
			return ErrSaleNotActive
		}

		if err := p.bank.Transfer(tx, contributor, DeriveSaleVault(), amount); err != nil {
			return err
		}

		record, err := p.loadContributor(tx, contributor)
		if err != nil {
			return err
		}
		total, ok := checkedAdd(record.Amount, amount)
		if !ok {
			return ErrMathOverflow
		}
		record.Amount = total

		raised, ok := checkedAdd(state.TotalSolRaised, amount)
		if !ok {
			return ErrMathOverflow
		}
		state.TotalSolRaised = raised

		if err := p.writeContributor(tx, contributor, record); err != nil {
			return err
		}
		return p.writeState(tx, state)
	})
	if err != nil {
		return err
	}
	p.events.Emit(ContributionReceived{Contributor: contributor, Amount: amount})
	return nil
}

// ClaimSnail settles the contributor's pro-rata share of the public sale
// bucket. The claim latch flips in the same transaction as the transfer,
// so a second attempt can never pay out again.
func (p *Program) ClaimSnail(contributor, contributorTokenAccount solanago.PublicKey) error {
	var settled SnailClaimed
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if p.clock.Unix() < state.ClaimStamp {
			return ErrClaimNotAvailable
		}

		record, err := p.loadContributor(tx, contributor)
		if err != nil {
			return err
		}
		if record.Amount == 0 {
			return ErrNoContribution
		}
		if record.Claimed {
			return ErrAlreadyClaimed
		}

		mint, err := p.bank.GetMint(tx, state.SnailMint)
		if err != nil {
			return err
		}
		snailAmount, err := proRataShare(record.Amount, state.TotalSolRaised, mint.Decimals)
		if err != nil {
			return err
		}

		record.Claimed = true
		if err := p.writeContributor(tx, contributor, record); err != nil {
			return err
		}

		if err := p.bank.TransferChecked(tx, DeriveTreasuryTokenAccount(state.SnailMint), contributorTokenAccount, DeriveTreasuryAuthority(), state.SnailMint, snailAmount, mint.Decimals); err != nil {
			return err
		}
		settled = SnailClaimed{Claimer: contributor, SnailAmount: snailAmount}
		return nil
	})
	if err != nil {
		return err
	}
	p.events.Emit(settled)
	return nil
}

// SnailAvailable previews the contributor's claimable amount without
// mutating anything. Zero if there is no contribution, the claim is spent,
// or nothing was raised.
func (p *Program) SnailAvailable(contributor solanago.PublicKey) (uint64, error) {
	var available uint64
	err := p.store.View(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		record, err := p.loadContributor(tx, contributor)
		if err != nil {
			return err
		}
		if record.Amount == 0 || record.Claimed || state.TotalSolRaised == 0 {
			return nil
		}
		mint, err := p.bank.GetMint(tx, state.SnailMint)
		if err != nil {
			return err
		}
		available, err = proRataShare(record.Amount, state.TotalSolRaised, mint.Decimals)
		return err
	})
	return available, err
}

// ClaimAdminSol sweeps the sale vault, minus the rent floor the vault must
// retain, to the owner. One-time, and only after the sale has ended.
func (p *Program) ClaimAdminSol(owner solanago.PublicKey) error {
	var swept AdminSolClaimed
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if p.clock.Unix() <= state.SaleEndTime {
			return ErrSaleNotEnded
		}
		if !state.Owner.Equals(owner) {
			return ErrUnauthorized
		}
		if state.SaleAdminClaimed {
			return ErrAdminAlreadyClaimed
		}

		vault := DeriveSaleVault()
		balance := p.bank.Balance(tx, vault)
		if balance < p.bank.RentMinimum {
			return ErrMathOverflow
		}
		transferable := balance - p.bank.RentMinimum

		state.SaleAdminClaimed = true
		if err := p.writeState(tx, state); err != nil {
			return err
		}
		if err := p.bank.Transfer(tx, vault, owner, transferable); err != nil {
			return err
		}
		swept = AdminSolClaimed{Owner: owner, SolAmount: transferable}
		return nil
	})
	if err != nil {
		return err
	}
	p.events.Emit(swept)
	return nil
}

// Airdrop transfers amount from the treasury to any recipient token
// account. Owner-gated and repeatable; the 40% airdrop bucket is not
// tracked against a running total.
func (p *Program) Airdrop(owner, snailMint, recipientTokenAccount solanago.PublicKey, amount uint64) error {
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if !state.Owner.Equals(owner) {
			return ErrUnauthorized
		}
		if !state.SnailMint.Equals(snailMint) {
			return ErrInvalidMint
		}
		mint, err := p.bank.GetMint(tx, snailMint)
		if err != nil {
			return err
		}
		return p.bank.TransferChecked(tx, DeriveTreasuryTokenAccount(snailMint), recipientTokenAccount, DeriveTreasuryAuthority(), snailMint, amount, mint.Decimals)
	})
	if err != nil {
		return err
	}
	p.events.Emit(AirdropSent{Recipient: recipientTokenAccount, Amount: amount})
	return nil
}

// RevokeOwnership sets the owner to the system program address, disabling
// every owner-gated operation permanently.
func (p *Program) RevokeOwnership(owner solanago.PublicKey) error {
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if !state.Owner.Equals(owner) {
			return ErrUnauthorized
		}
		state.Owner = solanago.SystemProgramID
		return p.writeState(tx, state)
	})
	if err != nil {
		return err
	}
	p.events.Emit(OwnershipRevoked{PreviousOwner: owner})
	return nil
}

func (p *Program) loadContributor(tx *ledger.Txn, contributor solanago.PublicKey) (*ContributorState, error) {
	data, err := tx.Get(DeriveContributorState(contributor))
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return &ContributorState{}, nil
		}
		return nil, err
	}
	return ParseContributorState(data)
}

func (p *Program) writeContributor(tx *ledger.Txn, contributor solanago.PublicKey, record *ContributorState) error {
	data, err := record.Marshal()
	if err != nil {
		return err
	}
	return tx.Set(DeriveContributorState(contributor), data)
}

// proRataShare computes contributed * saleBucket / totalRaised in 128-bit
// space, rounding down.
func proRataShare(contributed, totalRaised uint64, decimals uint8) (uint64, error) {
	bucket, err := scaleTokens(PublicSaleTokens, decimals)
	if err != nil {
		return 0, err
	}
	if totalRaised == 0 {
		return 0, ErrMathOverflow
	}
	share := new(big.Int).Mul(new(big.Int).SetUint64(contributed), new(big.Int).SetUint64(bucket))
	share.Div(share, new(big.Int).SetUint64(totalRaised))
	if share.BitLen() > 64 {
		return 0, ErrMathOverflow
	}
	return share.Uint64(), nil
}

// scaleTokens converts a whole-token quantity to base units.
func scaleTokens(tokens uint64, decimals uint8) (uint64, error) {
	amount := tokens
	for i := uint8(0); i < decimals; i++ {
		scaled := amount * 10
		if scaled/10 != amount {
			return 0, ErrMathOverflow
		}
		amount = scaled
	}
	return amount, nil
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
