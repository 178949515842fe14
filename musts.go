package precise

import "fmt"

// MustAdd is like [PreciseNumber.Add] but panics if computing error.
func (d PreciseNumber) MustAdd(e PreciseNumber) PreciseNumber {
	f, err := d.Add(e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", d, err))
	}
	return f
}

// MustSub is like [PreciseNumber.Sub] but panics if computing error.
func (d PreciseNumber) MustSub(e PreciseNumber) PreciseNumber {
	f, err := d.Sub(e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", d, err))
	}
	return f
}

// MustMul is like [PreciseNumber.Mul] but panics if computing error.
func (d PreciseNumber) MustMul(e PreciseNumber) PreciseNumber {
	f, err := d.Mul(e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", d, err))
	}
	return f
}

// MustQuo is like [PreciseNumber.Quo] but panics if computing error.
func (d PreciseNumber) MustQuo(e PreciseNumber) PreciseNumber {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", d, err))
	}
	return f
}
