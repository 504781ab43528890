package snail_game

import (
	"bytes"
	"crypto/sha256"
	"errors"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// GameState is the singleton configuration record. Field order is part of
// the wire layout: 8-byte account discriminator, then the fields below in
// borsh encoding. External indexers depend on these offsets.
type GameState struct {
	Owner           solanago.PublicKey
	SnailStartStamp int64
	SnailEndStamp   int64
	TargetMarketCap uint64
	CurveFactor     uint64 // one decimal of precision: 77 means 7.7
	UsdcLp          solanago.PublicKey
	SnailLp         solanago.PublicKey
	SnailMint       solanago.PublicKey
	Configured      bool
	Frozen          bool
}

var gameStateDiscriminator = accountDiscriminator("GameState")

func accountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

func (s *GameState) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(gameStateDiscriminator)
	if err := bin.NewBorshEncoder(buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseGameState(data []byte) (*GameState, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], gameStateDiscriminator) {
		return nil, errors.New("not a GameState record")
	}
	out := new(GameState)
	if err := bin.NewBorshDecoder(data[8:]).Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}
