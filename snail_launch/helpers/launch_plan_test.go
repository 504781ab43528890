package helpers

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/snailpad/snail-go/ledger"
	"github.com/snailpad/snail-go/runtime"
	"github.com/snailpad/snail-go/snail_launch"
)

const planDoc = `{
  "sale": {"start_time": 200, "end_time": 300, "claim_stamp": 400},
  "airdrops": [
    {"recipient": "11111111111111111111111111111112", "amount": "1250.5"},
    {"recipient": "11111111111111111111111111111113", "amount": "3"}
  ]
}`

func TestParseLaunchPlan(t *testing.T) {
	plan, err := ParseLaunchPlan([]byte(planDoc), 9)
	require.NoError(t, err)

	require.NotNil(t, plan.Sale)
	require.Equal(t, int64(200), plan.Sale.StartTime)
	require.Equal(t, int64(300), plan.Sale.EndTime)
	require.Equal(t, int64(400), plan.Sale.ClaimStamp)

	require.Len(t, plan.Airdrops, 2)
	require.Equal(t, uint64(1_250_500_000_000), plan.Airdrops[0].Amount)
	require.Equal(t, uint64(3_000_000_000), plan.Airdrops[1].Amount)
}

func TestParseLaunchPlanAirdropsOnly(t *testing.T) {
	plan, err := ParseLaunchPlan([]byte(`{"airdrops": [{"recipient": "11111111111111111111111111111112", "amount": "1"}]}`), 6)
	require.NoError(t, err)
	require.Nil(t, plan.Sale)
	require.Len(t, plan.Airdrops, 1)
	require.Equal(t, uint64(1_000_000), plan.Airdrops[0].Amount)
}

func TestParseLaunchPlanRejects(t *testing.T) {
	_, err := ParseLaunchPlan([]byte(`{not json`), 9)
	require.Error(t, err)

	_, err = ParseLaunchPlan([]byte(`{"airdrops": [{"recipient": "not-base58", "amount": "1"}]}`), 9)
	require.Error(t, err)

	_, err = ParseLaunchPlan([]byte(`{"airdrops": [{"recipient": "11111111111111111111111111111112", "amount": "99999999999999999999"}]}`), 9)
	require.Error(t, err)
}

func TestConvertToLamports(t *testing.T) {
	got, err := ConvertToLamports("1250.5", 9)
	require.NoError(t, err)
	require.Equal(t, "1250500000000", got.String())

	// Dust below one base unit truncates.
	got, err = ConvertToLamports("0.1234567891", 9)
	require.NoError(t, err)
	require.Equal(t, "123456789", got.String())

	_, err = ConvertToLamports("-1", 9)
	require.Error(t, err)

	_, err = ConvertToLamports("abc", 9)
	require.Error(t, err)
}

func TestToUIAmount(t *testing.T) {
	require.Equal(t, "1250.5", ToUIAmount(1_250_500_000_000, 9).String())
	require.Equal(t, "0", ToUIAmount(0, 9).String())
}

func TestApplyLaunchPlan(t *testing.T) {
	store := ledger.NewMemoryStore()
	defer store.Close()

	bank := runtime.NewBank()
	clock := runtime.NewManualClock(100)
	program := snail_launch.NewProgram(store, bank, clock, runtime.NewMemoryEmitter())

	var owner, snailMint, recipientATA solanago.PublicKey
	owner[0], snailMint[0], recipientATA[0] = 1, 2, 3

	mintAuthority := snail_launch.DeriveMintAuthority()
	require.NoError(t, store.Update(func(tx *ledger.Txn) error {
		if err := bank.CreateMint(tx, snailMint, 9, &mintAuthority, nil); err != nil {
			return err
		}
		return bank.CreateTokenAccount(tx, recipientATA, snailMint, owner)
	}))
	require.NoError(t, program.Initialize(owner, snailMint, mintAuthority))

	plan := &LaunchPlan{
		Sale:     &SalePlan{StartTime: 200, EndTime: 300, ClaimStamp: 400},
		Airdrops: []AirdropEntry{{Recipient: recipientATA, Amount: 1_000}},
	}
	require.NoError(t, ApplyLaunchPlan(program, owner, snailMint, plan))

	state, err := program.State()
	require.NoError(t, err)
	require.True(t, state.SaleConfigured)
	require.Equal(t, int64(200), state.SaleStartTime)

	require.NoError(t, store.View(func(tx *ledger.Txn) error {
		acc, err := bank.GetTokenAccount(tx, recipientATA)
		require.NoError(t, err)
		require.Equal(t, uint64(1_000), acc.Amount)
		return nil
	}))
}
