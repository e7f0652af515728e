package sim

import (
	"fmt"
	"math"
	"strconv"
)

// Tick is a monotonically non-decreasing integer measuring virtual time.
type Tick int64

// TickInfty is the sentinel value meaning "never".
const TickInfty Tick = math.MaxInt64

// TickFromDuration truncates a floating-point duration toward zero.
func TickFromDuration(d float64) Tick {
	return Tick(math.Trunc(d))
}

// ParseTick parses a decimal string into a Tick.
func ParseTick(s string) (Tick, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sim: invalid tick %q: %w", s, err)
	}
	return Tick(v), nil
}

func (t Tick) String() string { return strconv.FormatInt(int64(t), 10) }

func (t Tick) Add(o Tick) Tick { return t + o }
func (t Tick) Sub(o Tick) Tick { return t - o }
func (t Tick) Mul(o Tick) Tick { return t * o }
func (t Tick) Div(o Tick) Tick { return t / o }
func (t Tick) Mod(o Tick) Tick { return t % o }

func (t Tick) Less(o Tick) bool    { return t < o }
func (t Tick) LessEq(o Tick) bool  { return t <= o }
func (t Tick) Greater(o Tick) bool { return t > o }
func (t Tick) Equal(o Tick) bool   { return t == o }
