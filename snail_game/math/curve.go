package math

import (
	"math/big"
)

// Pow raises a WAD fixed-point base to a WAD fixed-point exponent.
//
// The exponent is split into its integer part n and fractional remainder f.
// base^n is computed by repeated multiply-and-rescale; the fractional part
// is then covered by linear interpolation between base^n and base^(n+1).
// The interpolation is a deliberate low-cost approximation: it is exact at
// integer exponents and must not be replaced by a true fractional power,
// since downstream consumers reproduce these results bit for bit.
func Pow(base, exponent *big.Int) (*big.Int, error) {
	if base.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if exponent.Sign() == 0 {
		return new(big.Int).Set(Wad), nil
	}
	if exponent.Cmp(Wad) == 0 {
		return new(big.Int).Set(base), nil
	}
	if base.Cmp(Wad) == 0 {
		return new(big.Int).Set(Wad), nil
	}

	integerPart := new(big.Int).Div(exponent, Wad)
	fractionalPart := new(big.Int).Mod(exponent, Wad)

	n, err := Uint64(integerPart)
	if err != nil {
		return nil, err
	}

	result := new(big.Int).Set(Wad)
	for i := uint64(0); i < n; i++ {
		prod, err := Mul128(result, base)
		if err != nil {
			return nil, err
		}
		result = new(big.Int).Div(prod, Wad)
	}

	if fractionalPart.Sign() > 0 {
		prod, err := Mul128(result, base)
		if err != nil {
			return nil, err
		}
		nextPower := new(big.Int).Div(prod, Wad)
		diff, err := Sub128(result, nextPower)
		if err != nil {
			return nil, err
		}
		step, err := Mul128(diff, fractionalPart)
		if err != nil {
			return nil, err
		}
		result, err = Sub128(result, new(big.Int).Div(step, Wad))
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// curveFactor is stored with one decimal of precision (77 means 7.7) and
// maps to the exponent 1 + curveFactor/10 * 0.4, encoded in WAD.
func curveExponent(curveFactor uint64) *big.Int {
	scaled := new(big.Int).Mul(new(big.Int).SetUint64(curveFactor), big.NewInt(40_000_000_000_000_000))
	return new(big.Int).Add(Wad, scaled)
}

// RequiredMarketCap evaluates the target curve at the given timestamp.
// Outside [startStamp, endStamp) the requirement is zero; endStamp itself
// is exclusive. Inside the window the requirement ramps from zero toward
// targetCap along progress^(1 + curveFactor*0.04).
func RequiredMarketCap(startStamp, endStamp int64, targetCap, curveFactor uint64, now int64) (*big.Int, error) {
	if endStamp == 0 || now < startStamp || now >= endStamp {
		return big.NewInt(0), nil
	}

	elapsed := new(big.Int).SetInt64(now - startStamp)
	duration := new(big.Int).SetInt64(endStamp - startStamp)
	progress, err := Div128(new(big.Int).Mul(elapsed, Wad), duration)
	if err != nil {
		return nil, err
	}

	curved, err := Pow(progress, curveExponent(curveFactor))
	if err != nil {
		return nil, err
	}

	required := new(big.Int).Mul(new(big.Int).SetUint64(targetCap), curved)
	return required.Div(required, Wad), nil
}

// CurrentMarketCap reads the market cap implied by the pool reserves:
// quoteReserve * supply / baseReserve. A drained base reserve yields zero
// rather than a division by zero.
func CurrentMarketCap(quoteReserve, baseReserve, supply uint64) *big.Int {
	if baseReserve == 0 {
		return big.NewInt(0)
	}
	cap := new(big.Int).Mul(new(big.Int).SetUint64(quoteReserve), new(big.Int).SetUint64(supply))
	return cap.Div(cap, new(big.Int).SetUint64(baseReserve))
}
