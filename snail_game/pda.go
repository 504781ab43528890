package snail_game

import (
	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID is the snail game program address.
var ProgramID = solanago.MustPublicKeyFromBase58("2PgtpKBFjWgdk7wLxZD7xC8sc6qpsXmDw1dPKQnmdJPT")

var seed = struct {
	GameState       []byte
	FreezeAuthority []byte
}{
	GameState:       []byte("game_state"),
	FreezeAuthority: []byte("freeze-authority"),
}

// DeriveGameState returns the singleton configuration record address.
func DeriveGameState() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.GameState}, ProgramID)
	return pub
}

// DeriveFreezeAuthority returns the program-owned freeze capability address.
func DeriveFreezeAuthority() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.FreezeAuthority}, ProgramID)
	return pub
}
