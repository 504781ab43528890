package snail_game

import (
	"errors"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/snailpad/snail-go/ledger"
	"github.com/snailpad/snail-go/runtime"
	curvemath "github.com/snailpad/snail-go/snail_game/math"
)

// InitializeParams configures the game window and the accounts the market
// cap is read from.
type InitializeParams struct {
	SnailStartStamp int64
	SnailEndStamp   int64
	TargetMarketCap uint64
	CurveFactor     uint64
	UsdcLp          solanago.PublicKey
	SnailLp         solanago.PublicKey
	SnailMint       solanago.PublicKey
}

// Program is the game controller. Every operation runs as one ledger
// transaction; the clock is read once per invocation.
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

// Initialize creates the singleton GameState. Valid exactly once.
func (p *Program) Initialize(owner solanago.PublicKey, params InitializeParams) error {
	if params.SnailEndStamp <= params.SnailStartStamp {
		return ErrInvalidTimestamps
	}
	if params.CurveFactor > 100 {
		return ErrInvalidCurveFactor
	}
	return p.store.Update(func(tx *ledger.Txn) error {
		key := DeriveGameState()
		if tx.Has(key) {
			return ErrAlreadyConfigured
		}
		state := &GameState{
			Owner:           owner,
			SnailStartStamp: params.SnailStartStamp,
			SnailEndStamp:   params.SnailEndStamp,
			TargetMarketCap: params.TargetMarketCap,
			CurveFactor:     params.CurveFactor,
			UsdcLp:          params.UsdcLp,
			SnailLp:         params.SnailLp,
			SnailMint:       params.SnailMint,
			Configured:      true,
		}
		data, err := state.Marshal()
		if err != nil {
			return err
		}
		return tx.Set(key, data)
	})
}

// State returns the current GameState, or ErrNotConfigured.
func (p *Program) State() (*GameState, error) {
	var state *GameState
	err := p.store.View(func(tx *ledger.Txn) error {
		var err error
		state, err = p.loadState(tx)
		return err
	})
	return state, err
}

func (p *Program) loadState(tx *ledger.Txn) (*GameState, error) {
	data, err := tx.Get(DeriveGameState())
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	return ParseGameState(data)
}

// RequiredMarketCap evaluates the target curve at the given timestamp.
// An unconfigured game, or a timestamp outside [start, end), yields zero.
func (p *Program) RequiredMarketCap(at int64) (uint64, error) {
	var required uint64
	err := p.store.View(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				return nil
			}
			return err
		}
		if !state.Configured || state.SnailEndStamp == 0 {
			return nil
		}
		value, err := curvemath.RequiredMarketCap(state.SnailStartStamp, state.SnailEndStamp, state.TargetMarketCap, state.CurveFactor, at)
		if err != nil {
			return err
		}
		required, err = curvemath.Uint64(value)
		return err
	})
	return required, err
}

// CurrentMarketCap reads the market cap implied by the LP reserves and the
// mint supply: usdcReserve * supply / snailReserve.
func (p *Program) CurrentMarketCap() (uint64, error) {
	var current uint64
	err := p.store.View(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		value, err := p.currentMarketCap(tx, state)
		if err != nil {
			return err
		}
		current, err = curvemath.Uint64(value)
		return err
	})
	return current, err
}

func (p *Program) currentMarketCap(tx *ledger.Txn, state *GameState) (*big.Int, error) {
	usdcLp, err := p.bank.GetTokenAccount(tx, state.UsdcLp)
	if err != nil {
		return nil, err
	}
	snailLp, err := p.bank.GetTokenAccount(tx, state.SnailLp)
	if err != nil {
		return nil, err
	}
	mint, err := p.bank.GetMint(tx, state.SnailMint)
	if err != nil {
		return nil, err
	}
	return curvemath.CurrentMarketCap(usdcLp.Amount, snailLp.Amount, mint.Supply), nil
}

// CurveProgress reports how much of the configured window has elapsed at
// the given timestamp, as a fraction in [0, 1].
func (p *Program) CurveProgress(at int64) (decimal.Decimal, error) {
	state, err := p.State()
	if err != nil {
		return decimal.Zero, err
	}
	if at <= state.SnailStartStamp {
		return decimal.Zero, nil
	}
	if at >= state.SnailEndStamp {
		return decimal.NewFromInt(1), nil
	}
	elapsed := decimal.NewFromInt(at - state.SnailStartStamp)
	duration := decimal.NewFromInt(state.SnailEndStamp - state.SnailStartStamp)
	return elapsed.Div(duration), nil
}

// TouchSnail recomputes both market caps from the ledger and, if the
// current cap has fallen to or below the curve, latches the frozen flag,
// freezes the snail LP account and revokes the freeze authority so the
// freeze can never be repeated or undone. A market still above the curve
// is rejected with ErrMarketCapTooHigh; callers may poll again later.
func (p *Program) TouchSnail() error {
	var touched SnailTouched
	err := p.store.Update(func(tx *ledger.Txn) error {
		state, err := p.loadState(tx)
		if err != nil {
			return err
		}
		if !state.Configured {
			return ErrNotConfigured
		}
		if state.Frozen {
			return ErrAlreadyFrozen
		}

		snailLp, err := p.bank.GetTokenAccount(tx, state.SnailLp)
		if err != nil {
			return err
		}
		if snailLp.Amount == 0 {
			return ErrInvalidReserves
		}
		current, err := p.currentMarketCap(tx, state)
		if err != nil {
			return err
		}

		now := p.clock.Unix()
		required, err := curvemath.RequiredMarketCap(state.SnailStartStamp, state.SnailEndStamp, state.TargetMarketCap, state.CurveFactor, now)
		if err != nil {
			return err
		}
		if required.Sign() == 0 {
			return ErrInvalidTimestamps
		}
		if current.Cmp(required) > 0 {
			return ErrMarketCapTooHigh
		}

		state.Frozen = true
		data, err := state.Marshal()
		if err != nil {
			return err
		}
		if err := tx.Set(DeriveGameState(), data); err != nil {
			return err
		}

		freezeAuthority := DeriveFreezeAuthority()
		if err := p.bank.FreezeAccount(tx, state.SnailLp, state.SnailMint, freezeAuthority); err != nil {
			return err
		}
		if err := p.bank.SetAuthority(tx, state.SnailMint, runtime.AuthorityFreezeAccount, freezeAuthority, nil); err != nil {
			return err
		}

		currentU64, err := curvemath.Uint64(current)
		if err != nil {
			return err
		}
		requiredU64, err := curvemath.Uint64(required)
		if err != nil {
			return err
		}
		touched = SnailTouched{CurrentMarketCap: currentU64, RequiredMarketCap: requiredU64}
		return nil
	})
	if err != nil {
		return err
	}
	p.events.Emit(touched)
	return nil
}
