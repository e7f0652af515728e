package sim

// Park-Miller "minimal standard" linear congruential generator constants,
// per spec: x' = (A*(x mod Q) - R*(x div Q)) mod M.
const (
	pmA int64 = 16807
	pmM int64 = 2147483647
	pmQ int64 = 127773
	pmR int64 = 2836
)

// RandomGen is a Park-Miller linear congruential generator. Two generators
// seeded with the same value emit identical sequences (Testable Property
// 7); Init resets both the stored seed and the current state.
//
// RandomGen additionally implements math/rand.Source and
// math/rand.Source64 purely so client code (and the stats package's gonum
// helpers) can obtain a *rand.Rand view of this exact generator without
// maintaining a second, independent entropy source — the engine's RNG
// reproducibility guarantee must never depend on two generators agreeing.
type RandomGen struct {
	seed  int64
	state int64
}

// NewRandomGen returns a RandomGen seeded with seed.
func NewRandomGen(seed int64) *RandomGen {
	g := &RandomGen{}
	g.Init(seed)
	return g
}

// Init resets the generator's seed and current state to seed.
func (g *RandomGen) Init(seed int64) {
	g.seed = seed
	g.state = seed
}

// Seed resets the generator to start of stream with seed; an alias for
// Init kept for math/rand.Source compatibility.
func (g *RandomGen) Seed(seed int64) { g.Init(seed) }

// Sample advances the generator and returns the next value in [1, M-1].
func (g *RandomGen) Sample() int64 {
	hi := g.state / pmQ
	lo := g.state % pmQ
	x := pmA*lo - pmR*hi
	if x <= 0 {
		x += pmM
	}
	g.state = x
	return x
}

// Modulus returns M, exposed so callers can scale Sample's output.
func (g *RandomGen) Modulus() int64 { return pmM }

// Float64 returns a sample uniformly distributed in (0, 1).
func (g *RandomGen) Float64() float64 {
	return float64(g.Sample()) / float64(pmM)
}

// Int63 implements math/rand.Source.
func (g *RandomGen) Int63() int64 { return g.Sample() }

// Uint64 implements math/rand.Source64.
func (g *RandomGen) Uint64() uint64 { return uint64(g.Sample()) }
