package precise

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// PreciseNumber is a representation of a non-negative fixed-point decimal
// number with 10 digits after the decimal point.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A precise number is a single 256-bit unsigned integer holding the numeric
// value multiplied by [ONE]. For example, a raw value of 15_000_000_000
// represents the number 1.5. There is no sign and no floating decimal point:
// negative results are not representable and are either reported as errors
// (see [PreciseNumber.Sub]) or carried out-of-band as a magnitude with a
// separate flag (see [PreciseNumber.SubAbs]).
//
// Every operation returns a new value; no operation mutates its receiver.
type PreciseNumber struct {
	value wint // the numeric value multiplied by ONE
}

// ONE is the raw value representing the number 1, that is, the number of raw
// units in one whole unit. It defines the precision of the type: one raw unit
// is 10^-10.
const ONE = 10_000_000_000

const (
	// approximationPrecision is the desired precision, in raw units, of the
	// correction term applied during each iteration of PowApprox and NthRoot.
	// Once the term is smaller than this number, or the iteration cap is
	// reached, the calculation ends.
	approximationPrecision = 100

	// minPowBase and maxPowBase bound the base accepted by PowApprox and
	// PowFraction. The calculation uses a Taylor series approximation around 1,
	// which converges for bases between 0 and 2. See
	// https://en.wikipedia.org/wiki/Binomial_series#Conditions_for_convergence
	// for more information.
	minPowBase = 1
	maxPowBase = 2 * ONE
)

// MaxApproximationIterations is the hard upper bound on the number of
// iterations performed by [PreciseNumber.PowApprox] and
// [PreciseNumber.NthRoot], regardless of convergence.
// It guarantees a deterministic worst-case amount of work per call.
const MaxApproximationIterations = 100

var (
	errOverflow       = errors.New("arithmetic overflow")
	errUnderflow      = errors.New("arithmetic underflow")
	errDivisionByZero = errors.New("division by zero")
	errInvalidNumber  = errors.New("invalid number")
	errScaleRange     = errors.New("more than 10 digits after the decimal point")
	errBaseRange      = errors.New("base out of range (0, 2]")
)

// one returns the precise number 1, used for easier calculations.
func one() PreciseNumber {
	return New(1)
}

// roundingCorrection returns the correction to apply to avoid truncation
// errors on division. Since integer operations always floor the result, it is
// artificially bumped up by one half to get the expected result.
func roundingCorrection() wint {
	return newWint(ONE / 2)
}

// New returns a precise number equal to value.
func New(value uint64) PreciseNumber {
	var v wint
	x := newWint(value)
	o := newWint(ONE)
	v.mul(&x, &o) // cannot overflow 256 bits
	return PreciseNumber{value: v}
}

// NewFromUint256 returns a precise number whose raw value is equal to value,
// that is, a number equal to value / [ONE].
// Also see method [PreciseNumber.Value].
func NewFromUint256(value *uint256.Int) PreciseNumber {
	return PreciseNumber{value: wint(*value)}
}

// Parse converts a string to a precise number.
// The input string must be a non-negative fixed-point literal in one of the
// following formats:
//
//	1234
//	1.234
//	.234
//	1234.
//
// At most 10 digits after the decimal point are allowed.
// Signs, exponents, and special values are not supported.
func Parse(num string) (PreciseNumber, error) {
	var (
		pos      int
		width    int
		coef     wint
		frac     uint64
		fracdigs int
		hascoef  bool
	)

	width = len(num)

	// Integer
	for pos < width && num[pos] >= '0' && num[pos] <= '9' {
		hascoef = true
		if !coef.fsa(&coef, num[pos]-'0') {
			return PreciseNumber{}, errOverflow
		}
		pos++
	}

	// Fraction
	if pos < width && num[pos] == '.' {
		pos++
		for pos < width && num[pos] >= '0' && num[pos] <= '9' {
			hascoef = true
			if fracdigs >= 10 {
				return PreciseNumber{}, errScaleRange
			}
			frac = frac*10 + uint64(num[pos]-'0')
			fracdigs++
			pos++
		}
	}

	if pos != width {
		return PreciseNumber{}, fmt.Errorf("invalid character %q: %w", num[pos], errInvalidNumber)
	}
	if !hascoef {
		return PreciseNumber{}, fmt.Errorf("no digits: %w", errInvalidNumber)
	}

	for i := fracdigs; i < 10; i++ {
		frac = frac * 10
	}

	var v wint
	o := newWint(ONE)
	if !v.mul(&coef, &o) {
		return PreciseNumber{}, errOverflow
	}
	f := newWint(frac)
	if !v.add(&v, &f) {
		return PreciseNumber{}, errOverflow
	}
	return PreciseNumber{value: v}, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding precise numbers.
func MustParse(num string) PreciseNumber {
	d, err := Parse(num)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", num, err))
	}
	return d
}

// Value returns a copy of the raw value of d, that is, the numeric value
// multiplied by [ONE].
// Also see function [NewFromUint256].
func (d PreciseNumber) Value() *uint256.Int {
	v := uint256.Int(d.value)
	return &v
}

// Uint64 converts a precise number back to uint64, rounding to the nearest
// whole unit.
//
// Uint64 returns an error if the result does not fit uint64 or if the
// rounding correction overflows 256 bits.
func (d PreciseNumber) Uint64() (uint64, error) {
	var v wint
	h := roundingCorrection()
	if !v.add(&d.value, &h) {
		return 0, errOverflow
	}
	o := newWint(ONE)
	v.div(&v, &o)
	u, ok := v.uint64()
	if !ok {
		return 0, errOverflow
	}
	return u, nil
}

// String method implements the [fmt.Stringer] interface and returns a string
// representation of a precise number, with trailing zeros in the fractional
// part omitted.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d PreciseNumber) String() string {
	var q, r wint
	o := newWint(ONE)
	q.quoRem(&d.value, &o, &r)
	whole := q.string()
	frac, _ := r.uint64() // the remainder is less than ONE
	if frac == 0 {
		return whole
	}

	var buf [10]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(frac%10) + '0'
		frac /= 10
	}
	end := len(buf)
	for buf[end-1] == '0' {
		end--
	}
	return whole + "." + string(buf[:end])
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see function [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *PreciseNumber) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [PreciseNumber.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d PreciseNumber) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsZero returns true if d == 0.
func (d PreciseNumber) IsZero() bool {
	return d.value.isZero()
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
func (d PreciseNumber) Cmp(e PreciseNumber) int {
	return d.value.cmp(&e.value)
}

// AlmostEqual checks that d and e are equal within the given tolerance,
// expressed in raw units of 10^-10.
// It reports whether the magnitude of the difference is strictly less than
// the tolerance, regardless of which operand is larger.
func (d PreciseNumber) AlmostEqual(e PreciseNumber, tolerance uint64) bool {
	diff, _ := d.SubAbs(e)
	return diff.value.ltUint64(tolerance)
}

// Floor returns d rounded down to the nearest whole unit, keeping the scale
// of the type.
func (d PreciseNumber) Floor() PreciseNumber {
	var v wint
	o := newWint(ONE)
	v.div(&d.value, &o)
	v.mul(&v, &o) // cannot overflow, the quotient was truncated
	return PreciseNumber{value: v}
}

// Add returns the sum of d and e.
//
// Add returns an error if the sum overflows 256 bits.
func (d PreciseNumber) Add(e PreciseNumber) (PreciseNumber, error) {
	var v wint
	if !v.add(&d.value, &e.value) {
		return PreciseNumber{}, errOverflow
	}
	return PreciseNumber{value: v}, nil
}

// Sub returns the difference of d and e.
//
// Sub returns an error if e is greater than d, since a precise number cannot
// hold a negative value. Also see method [PreciseNumber.SubAbs].
func (d PreciseNumber) Sub(e PreciseNumber) (PreciseNumber, error) {
	var v wint
	if !v.sub(&d.value, &e.value) {
		return PreciseNumber{}, errUnderflow
	}
	return PreciseNumber{value: v}, nil
}

// SubAbs returns the magnitude of the difference of d and e, together with a
// flag reporting whether the difference is negative, that is, whether e is
// greater than d. Unlike [PreciseNumber.Sub] it never fails.
func (d PreciseNumber) SubAbs(e PreciseNumber) (PreciseNumber, bool) {
	var v wint
	if v.sub(&d.value, &e.value) {
		return PreciseNumber{value: v}, false
	}
	v.sub(&e.value, &d.value)
	return PreciseNumber{value: v}, true
}

// Mul returns the product of d and e, rounded to the nearest raw unit.
//
// If the intermediate product overflows 256 bits, Mul falls back to truncating
// the larger operand down to whole units before multiplying, trading the
// fractional precision of that operand for headroom. If even the reduced
// product overflows, Mul returns an error.
func (d PreciseNumber) Mul(e PreciseNumber) (PreciseNumber, error) {
	var v wint
	o := newWint(ONE)
	if v.mul(&d.value, &e.value) {
		h := roundingCorrection()
		if !v.add(&v, &h) {
			return PreciseNumber{}, errOverflow
		}
		v.div(&v, &o)
		return PreciseNumber{value: v}, nil
	}
	if d.value.cmp(&e.value) >= 0 {
		v.div(&d.value, &o)
		if !v.mul(&v, &e.value) {
			return PreciseNumber{}, errOverflow
		}
	} else {
		v.div(&e.value, &o)
		if !v.mul(&v, &d.value) {
			return PreciseNumber{}, errOverflow
		}
	}
	return PreciseNumber{value: v}, nil
}

// Quo returns the quotient of d and e, rounded to the nearest raw unit.
//
// If scaling the dividend up overflows 256 bits, Quo falls back to dividing
// first and scaling the quotient afterwards, trading fractional precision for
// headroom.
//
// Quo returns an error if e is zero or if the fallback overflows.
func (d PreciseNumber) Quo(e PreciseNumber) (PreciseNumber, error) {
	if e.IsZero() {
		return PreciseNumber{}, errDivisionByZero
	}
	var v wint
	o := newWint(ONE)
	h := roundingCorrection()
	if v.mul(&d.value, &o) {
		if !v.add(&v, &h) {
			return PreciseNumber{}, errOverflow
		}
		v.div(&v, &e.value)
		return PreciseNumber{value: v}, nil
	}
	if !v.add(&d.value, &h) {
		return PreciseNumber{}, errOverflow
	}
	v.div(&v, &e.value)
	if !v.mul(&v, &o) {
		return PreciseNumber{}, errOverflow
	}
	return PreciseNumber{value: v}, nil
}

// Pow returns d raised to the given non-negative whole exponent, using binary
// exponentiation. The result is exact up to the rounding performed by each
// underlying multiplication; no series approximation is involved.
//
// Pow returns an error if any intermediate product overflows 256 bits.
func (d PreciseNumber) Pow(exponent uint64) (PreciseNumber, error) {
	// For odd powers, start with a multiplication by the base, since the
	// exponent is halved immediately.
	var result PreciseNumber
	if exponent%2 == 0 {
		result = one()
	} else {
		result = d
	}

	// To minimize the number of operations, keep squaring the base and only
	// push it onto the result on odd exponents, like a binary decomposition
	// of the exponent.
	var err error
	squaredBase := d
	currentExponent := exponent / 2
	for currentExponent != 0 {
		squaredBase, err = squaredBase.Mul(squaredBase)
		if err != nil {
			return PreciseNumber{}, err
		}
		if currentExponent%2 != 0 {
			result, err = result.Mul(squaredBase)
			if err != nil {
				return PreciseNumber{}, err
			}
		}
		currentExponent /= 2
	}
	return result, nil
}

// PowApprox approximates d raised to the given fractional exponent, where
// 0 <= exponent < 1, using a Taylor series expansion around 1:
//
//	            n         n-1           1                  n-2        2
//	x^n sums:  a  + n * a    (x - a) + --- * n * (n - 1) a     (x - a)  + ...
//	                                    2!
//
// which, for a = 1, reduces to refining the term at each iteration with:
//
//	t_k+1 = t_k * (x - 1) * (n + 1 - k) / k
//
// The iteration ends once the term falls below the internal precision of 100
// raw units, or after maxIterations iterations, whichever comes first.
// Callers should pass [MaxApproximationIterations] unless they need a tighter
// work bound.
//
// PowApprox panics if d is outside the interval (0, 2], where the series
// converges. The caller is responsible for validating the domain.
func (d PreciseNumber) PowApprox(exponent PreciseNumber, maxIterations int) (PreciseNumber, error) {
	if d.value.ltUint64(minPowBase) || d.value.gtUint64(maxPowBase) {
		panic(fmt.Sprintf("%q.PowApprox(%q, %v) failed: %v", d, exponent, maxIterations, errBaseRange))
	}
	if exponent.IsZero() {
		return one(), nil
	}

	result := one()
	term := result
	xMinusA, xMinusANegative := d.SubAbs(result)
	exponentPlusOne, err := exponent.Add(result)
	if err != nil {
		return PreciseNumber{}, err
	}
	negative := false
	for k := 1; k < maxIterations; k++ {
		kPrecise := New(uint64(k))
		currentExponent, currentExponentNegative := exponentPlusOne.SubAbs(kPrecise)
		term, err = term.Mul(currentExponent)
		if err != nil {
			return PreciseNumber{}, err
		}
		term, err = term.Mul(xMinusA)
		if err != nil {
			return PreciseNumber{}, err
		}
		term, err = term.Quo(kPrecise)
		if err != nil {
			return PreciseNumber{}, err
		}
		if term.value.ltUint64(approximationPrecision) {
			break
		}
		if xMinusANegative {
			negative = !negative
		}
		if currentExponentNegative {
			negative = !negative
		}
		if negative {
			result, err = result.Sub(term)
		} else {
			result, err = result.Add(term)
		}
		if err != nil {
			return PreciseNumber{}, err
		}
	}
	return result, nil
}

// PowFraction returns d raised to an arbitrary non-negative exponent. The
// exponent is split into its whole and fractional parts: the whole part is
// computed exactly with [PreciseNumber.Pow], the fractional part is
// approximated with [PreciseNumber.PowApprox], and the two are combined by
// multiplication.
//
// PowFraction panics if d is outside the interval (0, 2], where the series
// used for the fractional part converges. The caller is responsible for
// validating the domain.
func (d PreciseNumber) PowFraction(exponent PreciseNumber) (PreciseNumber, error) {
	if d.value.ltUint64(minPowBase) || d.value.gtUint64(maxPowBase) {
		panic(fmt.Sprintf("%q.PowFraction(%q) failed: %v", d, exponent, errBaseRange))
	}
	wholeExponent := exponent.Floor()
	whole, err := wholeExponent.Uint64()
	if err != nil {
		return PreciseNumber{}, err
	}
	preciseWhole, err := d.Pow(whole)
	if err != nil {
		return PreciseNumber{}, err
	}
	remainderExponent, negative := exponent.SubAbs(wholeExponent)
	if negative {
		panic(fmt.Sprintf("%q.PowFraction(%q) failed: negative exponent remainder", d, exponent))
	}
	if remainderExponent.IsZero() {
		return preciseWhole, nil
	}
	preciseRemainder, err := d.PowApprox(remainderExponent, MaxApproximationIterations)
	if err != nil {
		return PreciseNumber{}, err
	}
	return preciseWhole.Mul(preciseRemainder)
}

// NthRoot approximates the root-th root of d using Newton's method, starting
// from the given initial guess and refining it with:
//
//	x_k+1 = ((n - 1) * x_k + A / x_k^(n - 1)) / n
//
// If raising the guess to the n-1 power overflows, the division term is
// treated as zero for that iteration rather than failing the whole
// computation. The iteration stops early once two successive guesses differ
// by less than the internal precision of 100 raw units, and is capped at
// [MaxApproximationIterations] in any case.
//
// The result is not guaranteed to be exact; callers relying on exactness must
// round and compare against a tolerance. NthRoot returns an error if root is
// zero or less than one.
func (d PreciseNumber) NthRoot(root, guess PreciseNumber) (PreciseNumber, error) {
	if root.IsZero() {
		return PreciseNumber{}, errDivisionByZero
	}
	rootMinusOne, err := root.Sub(one())
	if err != nil {
		return PreciseNumber{}, err
	}
	rootMinusOneWhole, err := rootMinusOne.Uint64()
	if err != nil {
		return PreciseNumber{}, err
	}
	lastGuess := guess
	for i := 0; i < MaxApproximationIterations; i++ {
		firstTerm, err := rootMinusOne.Mul(guess)
		if err != nil {
			return PreciseNumber{}, err
		}
		var secondTerm PreciseNumber
		if power, err := guess.Pow(rootMinusOneWhole); err == nil {
			secondTerm, err = d.Quo(power)
			if err != nil {
				return PreciseNumber{}, err
			}
		}
		sum, err := firstTerm.Add(secondTerm)
		if err != nil {
			return PreciseNumber{}, err
		}
		guess, err = sum.Quo(root)
		if err != nil {
			return PreciseNumber{}, err
		}
		if lastGuess.AlmostEqual(guess, approximationPrecision) {
			break
		}
		lastGuess = guess
	}
	return guess, nil
}
