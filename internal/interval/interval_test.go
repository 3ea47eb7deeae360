package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var w128 = Window{M: -128, N: 127}

func TestConstructionCollapsesToBottom(t *testing.T) {
	assert.True(t, Bounded(5, 3).IsBottom(), "l > u must collapse to bottom")
	assert.Equal(t, Interval{Kind: BoundedKind, Lo: 3, Hi: 5}, Bounded(3, 5))
}

func TestLatticeLaws(t *testing.T) {
	a := Bounded(1, 5)
	b := Bounded(3, 9)

	// Idempotence
	assert.True(t, Join(w128, a, a).Equal(a))
	assert.True(t, Meet(w128, a, a).Equal(a))

	// Commutativity
	assert.True(t, Join(w128, a, b).Equal(Join(w128, b, a)))
	assert.True(t, Meet(w128, a, b).Equal(Meet(w128, b, a)))

	// Absorption: a ⊔ (a ⊓ b) = a
	assert.True(t, Join(w128, a, Meet(w128, a, b)).Equal(a))

	// Bottom/top identities
	assert.True(t, Join(w128, a, Bottom()).Equal(a))
	assert.True(t, Meet(w128, a, Top()).Equal(a))
	assert.True(t, Join(w128, a, Top()).IsTop())
	assert.True(t, Meet(w128, a, Bottom()).IsBottom())

	// Ordering <=> join/meet identities
	assert.True(t, LessEq(Bounded(2, 4), Bounded(1, 5)))
	assert.True(t, Join(w128, Bounded(2, 4), Bounded(1, 5)).Equal(Bounded(1, 5)))
	assert.True(t, Meet(w128, Bounded(2, 4), Bounded(1, 5)).Equal(Bounded(2, 4)))
}

func TestSingletonWindowCollapses(t *testing.T) {
	w := Window{M: 7, N: 7}
	a := Bounded(1, 5)
	b := Bounded(100, 200)

	assert.True(t, Join(w, a, b).Equal(Bounded(7, 7)))
	assert.True(t, Meet(w, a, b).Equal(Bounded(7, 7)))
	assert.True(t, Add(w, a, b).Equal(Bounded(7, 7)))
	assert.True(t, Widen(w, a, b).Equal(Bounded(7, 7)))
	assert.True(t, Neg(w, a).Equal(Bounded(7, 7)))
}

func TestWideningSoundness(t *testing.T) {
	old := Bounded(0, 10)
	new := Bounded(0, 20)
	widened := Widen(w128, old, new)

	// Soundness: a ⊔ b <= a ∇ b
	joined := Join(w128, old, new)
	assert.True(t, LessEq(joined, widened))
}

func TestWideningUnstableZeroCrossing(t *testing.T) {
	old := Bounded(3, 5)
	new := Bounded(0, 5) // lower bound dropped from above 0 down to 0
	widened := Widen(w128, old, new)
	assert.Equal(t, int64(0), widened.Lo, "zero-crossing lower bound should snap to 0")
}

func TestWideningTerminatesAtWindowBound(t *testing.T) {
	old := Bounded(0, 10)
	new := Bounded(5, 10000)
	widened := Widen(w128, old, new)
	assert.Equal(t, int64(127), widened.Hi)
}

func TestNarrowingReduces(t *testing.T) {
	old := Bounded(-128, 127) // post-widening, fully unstable
	new := Bounded(0, 100)    // what the next concrete iterate actually computes
	narrowed := Narrow(w128, old, new)
	assert.True(t, LessEq(narrowed, old))
	assert.Equal(t, int64(0), narrowed.Lo)
	assert.Equal(t, int64(100), narrowed.Hi)
}

func TestArithmeticContainment(t *testing.T) {
	a := Bounded(2, 4)
	b := Bounded(10, 20)

	sum := Add(w128, a, b)
	for x := a.Lo; x <= a.Hi; x++ {
		for y := b.Lo; y <= b.Hi; y++ {
			assert.True(t, sum.Lo <= x+y && x+y <= sum.Hi)
		}
	}
}

func TestDivisionByZeroInterval(t *testing.T) {
	assert.True(t, Div(w128, Bounded(10, 10), Bounded(0, 0)).IsBottom())
}

func TestDivisionStraddlingZero(t *testing.T) {
	assert.True(t, Div(w128, Bounded(10, 10), Bounded(-1, 1)).IsTop())
}

func TestDivisionTopOverZero(t *testing.T) {
	assert.True(t, Div(w128, Top(), Bounded(0, 0)).IsBottom())
}

func TestNegate(t *testing.T) {
	assert.True(t, Neg(w128, Bounded(3, 7)).Equal(Bounded(-7, -3)))
	assert.True(t, Neg(w128, Bottom()).IsBottom())
	assert.True(t, Neg(w128, Top()).IsTop())
}

func TestSaturatingAddition(t *testing.T) {
	w := Window{M: -128, N: 127}
	big := Bounded(1<<62, 1<<62)
	sum := Add(w, big, big)
	assert.Equal(t, w.N, sum.Hi)
}

func TestCompareThreeValued(t *testing.T) {
	assert.Equal(t, True, Lt(Bounded(1, 2), Bounded(5, 9)))
	assert.Equal(t, False, Lt(Bounded(5, 9), Bounded(1, 2)))
	assert.Equal(t, Unknown, Lt(Bounded(1, 9), Bounded(5, 20)))
	assert.Equal(t, Unknown, Lt(Top(), Bounded(1, 2)))
}

func TestTriStateLogic(t *testing.T) {
	assert.Equal(t, True, And(True, True))
	assert.Equal(t, False, And(True, False))
	assert.Equal(t, Unknown, And(True, Unknown))
	assert.Equal(t, False, And(False, Unknown))

	assert.Equal(t, True, Or(True, Unknown))
	assert.Equal(t, Unknown, Or(Unknown, False))

	assert.Equal(t, False, True.Not())
	assert.Equal(t, Unknown, Unknown.Not())
}
