package snail_launch

import (
	solanago "github.com/gagliardetto/solana-go"
)

// Initialized is emitted once, after the full supply lands in the treasury
// and the mint authority is revoked.
type Initialized struct {
	Owner       solanago.PublicKey
	SnailMint   solanago.PublicKey
	TotalSupply uint64
}

func (Initialized) EventName() string { return "initialized" }

func (e Initialized) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"owner":        e.Owner.String(),
		"snail_mint":   e.SnailMint.String(),
		"total_supply": e.TotalSupply,
	}
}

type AdminLPClaimed struct {
	Owner       solanago.PublicKey
	SnailAmount uint64
}

func (AdminLPClaimed) EventName() string { return "admin_lp_claimed" }

func (e AdminLPClaimed) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"owner":        e.Owner.String(),
		"snail_amount": e.SnailAmount,
	}
}

type PublicSaleConfigured struct {
	StartTime  int64
	EndTime    int64
	ClaimStamp int64
}

func (PublicSaleConfigured) EventName() string { return "public_sale_configured" }

func (e PublicSaleConfigured) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"start_time":  e.StartTime,
		"end_time":    e.EndTime,
		"claim_stamp": e.ClaimStamp,
	}
}

type ContributionReceived struct {
	Contributor solanago.PublicKey
	Amount      uint64
}

func (ContributionReceived) EventName() string { return "contribution_received" }

func (e ContributionReceived) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"contributor": e.Contributor.String(),
		"amount":      e.Amount,
	}
}

type SnailClaimed struct {
	Claimer     solanago.PublicKey
	SnailAmount uint64
}

func (SnailClaimed) EventName() string { return "snail_claimed" }

func (e SnailClaimed) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"claimer":      e.Claimer.String(),
		"snail_amount": e.SnailAmount,
	}
}

type AdminSolClaimed struct {
	Owner     solanago.PublicKey
	SolAmount uint64
}

func (AdminSolClaimed) EventName() string { return "admin_sol_claimed" }

func (e AdminSolClaimed) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"owner":      e.Owner.String(),
		"sol_amount": e.SolAmount,
	}
}

type AirdropSent struct {
	Recipient solanago.PublicKey
	Amount    uint64
}

func (AirdropSent) EventName() string { return "airdrop_sent" }

func (e AirdropSent) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"recipient": e.Recipient.String(),
		"amount":    e.Amount,
	}
}

type OwnershipRevoked struct {
	PreviousOwner solanago.PublicKey
}

func (OwnershipRevoked) EventName() string { return "ownership_revoked" }

func (e OwnershipRevoked) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"previous_owner": e.PreviousOwner.String(),
	}
}
