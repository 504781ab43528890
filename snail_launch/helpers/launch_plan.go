// Package helpers carries the off-ledger conveniences around the launch
// program: JSON launch plans and unit conversions.
package helpers

import (
	"errors"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/snailpad/snail-go/snail_launch"
)

// SalePlan is a public sale window parsed from a launch plan document.
type SalePlan struct {
	StartTime  int64
	EndTime    int64
	ClaimStamp int64
}

// AirdropEntry is one recipient of the airdrop bucket, in base units.
type AirdropEntry struct {
	Recipient solanago.PublicKey
	Amount    uint64
}

// LaunchPlan is the parsed form of a JSON launch plan:
//
//	{
//	  "sale": {"start_time": 1700000000, "end_time": 1700086400, "claim_stamp": 1700090000},
//	  "airdrops": [{"recipient": "<base58 token account>", "amount": "1250.5"}]
//	}
//
// Airdrop amounts are whole-token strings converted with the mint's
// decimals.
type LaunchPlan struct {
	Sale     *SalePlan
	Airdrops []AirdropEntry
}

// ParseLaunchPlan reads a launch plan document.
func ParseLaunchPlan(data []byte, tokenDecimal int32) (*LaunchPlan, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid launch plan JSON")
	}
	root := gjson.ParseBytes(data)

	plan := new(LaunchPlan)
	if sale := root.Get("sale"); sale.Exists() {
		plan.Sale = &SalePlan{
			StartTime:  sale.Get("start_time").Int(),
			EndTime:    sale.Get("end_time").Int(),
			ClaimStamp: sale.Get("claim_stamp").Int(),
		}
	}

	for _, item := range root.Get("airdrops").Array() {
		recipient, err := solanago.PublicKeyFromBase58(item.Get("recipient").String())
		if err != nil {
			return nil, fmt.Errorf("airdrop recipient: %w", err)
		}
		lamports, err := ConvertToLamports(item.Get("amount").String(), tokenDecimal)
		if err != nil {
			return nil, fmt.Errorf("airdrop amount: %w", err)
		}
		if lamports.BitLen() > 64 {
			return nil, errors.New("airdrop amount overflows u64")
		}
		plan.Airdrops = append(plan.Airdrops, AirdropEntry{Recipient: recipient, Amount: lamports.Uint64()})
	}
	return plan, nil
}

// ApplyLaunchPlan configures the sale window (when present) and sends every
// airdrop in the plan. Each step is its own invocation; a failure stops the
// remainder and reports how far the plan got.
func ApplyLaunchPlan(program *snail_launch.Program, owner, snailMint solanago.PublicKey, plan *LaunchPlan) error {
	if plan.Sale != nil {
		if err := program.InitializeSale(owner, plan.Sale.StartTime, plan.Sale.EndTime, plan.Sale.ClaimStamp); err != nil {
			return fmt.Errorf("sale config: %w", err)
		}
	}
	for i, entry := range plan.Airdrops {
		if err := program.Airdrop(owner, snailMint, entry.Recipient, entry.Amount); err != nil {
			return fmt.Errorf("airdrop %d of %d: %w", i+1, len(plan.Airdrops), err)
		}
	}
	return nil
}

// ConvertToLamports converts a whole-token decimal string to base units,
// truncating any dust below one base unit.
func ConvertToLamports(amount string, tokenDecimal int32) (*big.Int, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, errors.New("amount cannot be negative")
	}
	value = value.Mul(decimal.New(1, tokenDecimal))
	return value.Truncate(0).BigInt(), nil
}

// ToUIAmount converts base units back to a whole-token decimal.
func ToUIAmount(lamports uint64, tokenDecimal int32) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-tokenDecimal)
}
