package snail_launch

import (
	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID is the snail launch program address.
var ProgramID = solanago.MustPublicKeyFromBase58("8ondokpt7wa5mWsr4wSEZe7N3YtkLoPNRy39ovydwyXt")

var seed = struct {
	LaunchState   []byte
	Treasury      []byte
	MintAuthority []byte
	SaleVault     []byte
	Contributor   []byte
}{
	LaunchState:   []byte("launch_state"),
	Treasury:      []byte("treasury"),
	MintAuthority: []byte("mint_authority"),
	SaleVault:     []byte("sale_vault"),
	Contributor:   []byte("contributor"),
}

// DeriveLaunchState returns the singleton launch record address.
func DeriveLaunchState() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.LaunchState}, ProgramID)
	return pub
}

// DeriveTreasuryAuthority returns the program-owned authority over the
// treasury token account.
func DeriveTreasuryAuthority() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Treasury}, ProgramID)
	return pub
}

// DeriveMintAuthority returns the program-owned mint capability address;
// it signs the one initialization mint and is then revoked.
func DeriveMintAuthority() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.MintAuthority}, ProgramID)
	return pub
}

// DeriveSaleVault returns the native-value vault the sale proceeds land in.
func DeriveSaleVault() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.SaleVault}, ProgramID)
	return pub
}

// DeriveContributorState returns the per-participant contribution record
// address.
func DeriveContributorState(contributor solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Contributor, contributor.Bytes()}, ProgramID)
	return pub
}

// DeriveTreasuryTokenAccount returns the associated token account holding
// the minted supply, owned by the treasury authority.
func DeriveTreasuryTokenAccount(mint solanago.PublicKey) solanago.PublicKey {
	treasury := DeriveTreasuryAuthority()
	pub, _, _ := solanago.FindProgramAddress(
		[][]byte{treasury.Bytes(), solanago.Token2022ProgramID.Bytes(), mint.Bytes()},
		solanago.SPLAssociatedTokenAccountProgramID,
	)
	return pub
}
