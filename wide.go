package precise

import "github.com/holiman/uint256"

// wint (Wide INTeger) is a wrapper around uint256.Int.
type wint uint256.Int

// newWint creates a wint equal to x.
func newWint(x uint64) wint {
	var z wint
	(*uint256.Int)(&z).SetUint64(x)
	return z
}

func (z *wint) cmp(x *wint) int {
	return (*uint256.Int)(z).Cmp((*uint256.Int)(x))
}

func (z *wint) isZero() bool {
	return (*uint256.Int)(z).IsZero()
}

func (z *wint) ltUint64(x uint64) bool {
	return (*uint256.Int)(z).LtUint64(x)
}

func (z *wint) gtUint64(x uint64) bool {
	return (*uint256.Int)(z).GtUint64(x)
}

func (z *wint) set(x *wint) {
	(*uint256.Int)(z).Set((*uint256.Int)(x))
}

func (z *wint) string() string {
	return (*uint256.Int)(z).Dec()
}

// uint64 converts z to uint64 and checks overflow.
func (z *wint) uint64() (u uint64, ok bool) {
	u, overflow := (*uint256.Int)(z).Uint64WithOverflow()
	return u, !overflow
}

// add calculates z = x + y and checks overflow.
func (z *wint) add(x, y *wint) bool {
	_, overflow := (*uint256.Int)(z).AddOverflow((*uint256.Int)(x), (*uint256.Int)(y))
	return !overflow
}

// sub calculates z = x - y and checks underflow.
func (z *wint) sub(x, y *wint) bool {
	_, underflow := (*uint256.Int)(z).SubOverflow((*uint256.Int)(x), (*uint256.Int)(y))
	return !underflow
}

// mul calculates z = x * y and checks overflow.
func (z *wint) mul(x, y *wint) bool {
	_, overflow := (*uint256.Int)(z).MulOverflow((*uint256.Int)(x), (*uint256.Int)(y))
	return !overflow
}

// div calculates z = x / y, rounding towards zero, and checks division by zero.
func (z *wint) div(x, y *wint) bool {
	if y.isZero() {
		return false
	}
	(*uint256.Int)(z).Div((*uint256.Int)(x), (*uint256.Int)(y))
	return true
}

// quoRem calculates z and r such that x = z * y + r.
// quoRem assumes that y is not zero.
func (z *wint) quoRem(x, y, r *wint) {
	(*uint256.Int)(z).DivMod((*uint256.Int)(x), (*uint256.Int)(y), (*uint256.Int)(r))
}

// fsa (Fused Shift and Addition) calculates z = x * 10 + b and checks overflow.
func (z *wint) fsa(x *wint, b byte) bool {
	ten := newWint(10)
	if !z.mul(x, &ten) {
		return false
	}
	d := newWint(uint64(b))
	return z.add(z, &d)
}

// powUint8 calculates z = x^b by repeated multiplication and checks overflow.
// For b less than 2 the result is x.
func (z *wint) powUint8(x *wint, b uint8) bool {
	y := *x
	z.set(&y)
	for i := uint8(1); i < b; i++ {
		if !z.mul(z, &y) {
			return false
		}
	}
	return true
}

// mulUint8 calculates z = x * b by repeated addition and checks overflow.
// For b less than 2 the result is x.
func (z *wint) mulUint8(x *wint, b uint8) bool {
	y := *x
	z.set(&y)
	for i := uint8(1); i < b; i++ {
		if !z.add(z, &y) {
			return false
		}
	}
	return true
}

// almostEqual checks that z and x differ by no more than one raw unit.
func (z *wint) almostEqual(x *wint) bool {
	var d wint
	if z.cmp(x) > 0 {
		d.sub(z, x)
	} else {
		d.sub(x, z)
	}
	return !d.gtUint64(1)
}
