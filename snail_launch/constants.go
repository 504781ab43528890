package snail_launch

const (
	// MaxSupply is the full fixed supply minted at initialization:
	// 1,000,000 tokens at 9 decimals. Mint authority is revoked right
	// after, so this is also the terminal supply.
	MaxSupply uint64 = 1_000_000_000_000_000

	// Distribution buckets, in whole tokens. Scaled by the live mint's
	// decimals at claim time.
	AdminLpTokens    uint64 = 200_000
	PublicSaleTokens uint64 = 400_000
	AirdropTokens    uint64 = 400_000
)
