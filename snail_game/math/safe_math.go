package math

import (
	"errors"
	"math/big"
)

// ErrMathOverflow is returned whenever an intermediate value leaves the
// unsigned 128-bit range the on-chain arithmetic operates in.
var ErrMathOverflow = errors.New("math overflow")

const u128Bits = 128

// Wad is the fixed-point scale (1e18). All fractional quantities in the
// curve math are integers carrying this implicit denominator.
var Wad = new(big.Int).SetUint64(1_000_000_000_000_000_000)

// Mul128 multiplies a and b, failing instead of wrapping past u128.
func Mul128(a, b *big.Int) (*big.Int, error) {
	prod := new(big.Int).Mul(a, b)
	if prod.BitLen() > u128Bits {
		return nil, ErrMathOverflow
	}
	return prod, nil
}

// Sub128 subtracts b from a, failing on underflow.
func Sub128(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, ErrMathOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

// Div128 divides a by b, failing on a zero divisor.
func Div128(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.New("division by zero")
	}
	return new(big.Int).Div(a, b), nil
}

// Uint64 narrows v to u64, failing if it does not fit.
func Uint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || v.BitLen() > 64 {
		return 0, ErrMathOverflow
	}
	return v.Uint64(), nil
}
