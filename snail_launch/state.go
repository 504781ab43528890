package snail_launch

import (
	"bytes"
	"crypto/sha256"
	"errors"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// LaunchState is the singleton launch record. Wire layout is the 8-byte
// account discriminator followed by the fields below in borsh encoding;
// external indexers depend on these offsets.
type LaunchState struct {
	Owner       solanago.PublicKey
	SnailMint   solanago.PublicKey
	Initialized bool

	// Admin/LP bucket (20%).
	AdminClaimed bool

	// Public sale bucket (40%).
	SaleConfigured   bool
	SaleStartTime    int64
	SaleEndTime      int64
	ClaimStamp       int64
	TotalSolRaised   uint64
	SaleAdminClaimed bool
}

// ContributorState tracks one participant's cumulative contribution and
// their one-time claim latch.
type ContributorState struct {
	Amount  uint64
	Claimed bool
}

var (
	launchStateDiscriminator      = accountDiscriminator("LaunchState")
	contributorStateDiscriminator = accountDiscriminator("ContributorData")
)

func accountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

func (s *LaunchState) Marshal() ([]byte, error) {
	return marshalAccount(launchStateDiscriminator, s)
}

func ParseLaunchState(data []byte) (*LaunchState, error) {
	out := new(LaunchState)
	if err := unmarshalAccount(launchStateDiscriminator, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ContributorState) Marshal() ([]byte, error) {
	return marshalAccount(contributorStateDiscriminator, s)
}

func ParseContributorState(data []byte) (*ContributorState, error) {
	out := new(ContributorState)
	if err := unmarshalAccount(contributorStateDiscriminator, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func marshalAccount(discriminator []byte, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator)
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalAccount(discriminator, data []byte, v interface{}) error {
	if len(data) < 8 || !bytes.Equal(data[:8], discriminator) {
		return errors.New("account discriminator mismatch")
	}
	return bin.NewBorshDecoder(data[8:]).Decode(v)
}
