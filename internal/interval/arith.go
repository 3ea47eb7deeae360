package interval

import "math"

// Add, Sub, Mul, Div and Neg implement interval arithmetic with
// saturation: a raw int64 operation that would overflow is clamped to
// w.N when its first operand is positive, w.M otherwise. Bottom is
// absorbing; Top propagates except in the division special cases below.

func Add(w Window, a, b Interval) Interval {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	if a.IsTop() || b.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	lo := checkedAdd(a.Lo, b.Lo, w)
	hi := checkedAdd(a.Hi, b.Hi, w)
	return Bounded(lo, hi)
}

func Sub(w Window, a, b Interval) Interval {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	if a.IsTop() || b.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	candidates := [4]int64{
		checkedSub(a.Lo, b.Lo, w),
		checkedSub(a.Lo, b.Hi, w),
		checkedSub(a.Hi, b.Lo, w),
		checkedSub(a.Hi, b.Hi, w),
	}
	return Bounded(minOf(candidates), maxOf(candidates))
}

func Mul(w Window, a, b Interval) Interval {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	if a.IsTop() || b.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	candidates := [4]int64{
		checkedMul(a.Lo, b.Lo, w),
		checkedMul(a.Lo, b.Hi, w),
		checkedMul(a.Hi, b.Lo, w),
		checkedMul(a.Hi, b.Hi, w),
	}
	return Bounded(minOf(candidates), maxOf(candidates))
}

// Div implements a / b. A divisor of exactly [0,0] is a guaranteed
// division by zero at the abstract level and yields ⊥. Any other divisor
// that contains zero (straddling it, l < 0 < u, or having it as one
// endpoint) cannot be excluded from a zero division, so the result is ⊤
// — except ⊤ / [0,0], which is still ⊥.
func Div(w Window, a, b Interval) Interval {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	if b.IsBounded() && b.Lo == 0 && b.Hi == 0 {
		return Bottom()
	}
	if a.IsTop() {
		return Top()
	}
	if b.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	if b.Lo <= 0 && b.Hi >= 0 {
		return Top()
	}
	candidates := [4]int64{
		checkedDiv(a.Lo, b.Lo, w),
		checkedDiv(a.Lo, b.Hi, w),
		checkedDiv(a.Hi, b.Lo, w),
		checkedDiv(a.Hi, b.Hi, w),
	}
	return Bounded(minOf(candidates), maxOf(candidates))
}

func Neg(w Window, a Interval) Interval {
	if a.IsBottom() {
		return Bottom()
	}
	if a.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	return Bounded(-a.Hi, -a.Lo)
}

func checkedAdd(a, b int64, w Window) int64 {
	sum := a + b
	overflow := (b > 0 && sum < a) || (b < 0 && sum > a)
	if !overflow {
		return sum
	}
	return saturate(a, w)
}

func checkedSub(a, b int64, w Window) int64 {
	if b == math.MinInt64 {
		return saturate(a, w)
	}
	return checkedAdd(a, -b, w)
}

func checkedMul(a, b int64, w Window) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b == a {
		return product
	}
	return saturate(a, w)
}

func checkedDiv(a, b int64, w Window) int64 {
	if a == math.MinInt64 && b == -1 {
		return saturate(a, w)
	}
	return a / b
}

// saturate picks the overflow sentinel based on the sign of the operand
// that triggered the overflow, matching spec.md's "overflow of a positive
// operand saturates to n, of a negative to m".
func saturate(a int64, w Window) int64 {
	if a > 0 {
		return w.N
	}
	return w.M
}

func minOf(vs [4]int64) int64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs [4]int64) int64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
