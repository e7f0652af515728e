package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTick_Arithmetic(t *testing.T) {
	a, b := Tick(10), Tick(3)
	assert.Equal(t, Tick(13), a.Add(b))
	assert.Equal(t, Tick(7), a.Sub(b))
	assert.Equal(t, Tick(30), a.Mul(b))
	assert.Equal(t, Tick(3), a.Div(b))
	assert.Equal(t, Tick(1), a.Mod(b))
}

func TestTick_Comparisons(t *testing.T) {
	a, b := Tick(5), Tick(10)
	assert.True(t, a.Less(b))
	assert.True(t, a.LessEq(b))
	assert.True(t, b.Greater(a))
	assert.True(t, a.Equal(Tick(5)))
}

func TestTick_FromDuration_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, Tick(3), TickFromDuration(3.9))
	assert.Equal(t, Tick(-3), TickFromDuration(-3.9))
	assert.Equal(t, Tick(0), TickFromDuration(0.1))
}

func TestParseTick(t *testing.T) {
	v, err := ParseTick("42")
	assert.NoError(t, err)
	assert.Equal(t, Tick(42), v)

	_, err = ParseTick("not-a-tick")
	assert.Error(t, err)
}

func TestTickInfty_IsLargerThanAnyFiniteTick(t *testing.T) {
	assert.True(t, Tick(1_000_000_000).Less(TickInfty))
}
