/*
Package precise implements immutable non-negative fixed-point decimal numbers
with checked arithmetic and deterministic approximation of rational powers and
roots.
It is specifically designed for financial curve calculations, such as weighted
pool invariants and price or amount conversions, where floating point is
unacceptable due to non-determinism and precision loss.

# Representation

[PreciseNumber] wraps a single 256-bit unsigned integer holding the numeric
value multiplied by [ONE] (10^10), giving 10 decimal digits of precision after
the decimal point.
For example, a raw value of 15_000_000_000 represents the number 1.5.

The representation is unsigned.
Conceptually negative results are never stored in a value: [PreciseNumber.Sub]
fails when the subtrahend exceeds the minuend, and [PreciseNumber.SubAbs]
reports a magnitude together with a separate sign flag.

Every value is immutable.
All operations return a new value, so a precise number is safe to share
between goroutines without coordination.

# Checked arithmetic

Arithmetic never wraps and never panics on overflow.
Every operation whose true result exceeds the representable range, divides by
zero, or would be negative, reports the failure as an error that callers must
check and propagate.
There is no fallback value substitution anywhere in the arithmetic core.

Two operations deliberately trade precision for headroom instead of failing:
when the intermediate product in [PreciseNumber.Mul] or the scaled-up dividend
in [PreciseNumber.Quo] overflows 256 bits, the operand is truncated down to
whole units first and the computation is retried at reduced precision.

Division rounds to the nearest raw unit: a correction of half a raw [ONE] is
added immediately before the truncating division step.

# Powers and roots

  - [PreciseNumber.Pow] raises a number to a whole exponent exactly, by binary
    exponentiation.
  - [PreciseNumber.PowApprox] approximates a fractional exponent in [0, 1)
    with a Taylor series expansion around 1, which converges for bases in
    (0, 2].
  - [PreciseNumber.PowFraction] combines both for arbitrary non-negative
    rational exponents.
  - [PreciseNumber.NthRoot] extracts nth roots with Newton's method from a
    caller-supplied initial guess.

Both approximation loops stop once the correction falls below 100 raw units
and are hard-capped at [MaxApproximationIterations] iterations, so every call
performs a bounded, deterministic amount of work regardless of input.
This bound is a requirement for execution in resource-metered environments and
must not be removed.

PowApprox and PowFraction panic when the base lies outside (0, 2], the
convergence region of the series.
An out-of-domain base indicates a bug in the caller, not a runtime condition,
so it is not reported as a recoverable error.

# Conversions

The package provides functions and methods for converting precise numbers:

  - from/to uint64:
    [New], [PreciseNumber.Uint64].
  - from/to string:
    [Parse], [PreciseNumber.String].
  - from/to raw 256-bit values:
    [NewFromUint256], [PreciseNumber.Value].

[PreciseNumber.Uint64] rounds to the nearest whole unit, not towards zero.
*/
package precise
