package sim

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"
)

// RandomVar is an abstract distribution producing float64 samples.
type RandomVar interface {
	Get() float64
}

// RandomVarFactory builds a RandomVar from scripted string parameters, the
// createInstance(vector<string>) contract of §6. Parse errors must be a
// *ParseExc.
type RandomVarFactory func(sim *Simulation, params []string) (RandomVar, error)

var randomVarFactories = map[string]RandomVarFactory{}

// RegisterRandomVarFactory adds className to the catalog used by
// CreateRandomVar. Intended to be called from init() by every RandomVar
// implementation that participates in scripted construction.
func RegisterRandomVarFactory(className string, f RandomVarFactory) {
	randomVarFactories[className] = f
}

// CreateRandomVar dispatches to the named factory. It returns a *ParseExc
// if className is unknown or the factory rejects params.
func CreateRandomVar(s *Simulation, className string, params []string) (RandomVar, error) {
	f, ok := randomVarFactories[className]
	if !ok {
		return nil, &ParseExc{ClassName: className, Reason: "unknown RandomVar class"}
	}
	return f(s, params)
}

func parseFloatPermissive(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func genOrDefault(s *Simulation, explicit *RandomGen) *RandomGen {
	if explicit != nil {
		return explicit
	}
	return s.DefaultGenerator()
}

// === Delta ===

// Delta always returns the constant c.
type Delta struct {
	C float64
}

func NewDelta(c float64) *Delta { return &Delta{C: c} }

func (d *Delta) Get() float64 { return d.C }

func init() {
	RegisterRandomVarFactory("Delta", func(_ *Simulation, p []string) (RandomVar, error) {
		if len(p) != 1 {
			return nil, NewWrongArityParseExc("Delta")
		}
		c, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Delta", Reason: err.Error()}
		}
		return NewDelta(c), nil
	})
}

// === Uniform ===

// Uniform samples uniformly from [a, b).
type Uniform struct {
	A, B float64
	gen  *RandomGen
}

func NewUniform(s *Simulation, a, b float64, gen *RandomGen) *Uniform {
	return &Uniform{A: a, B: b, gen: genOrDefault(s, gen)}
}

func (u *Uniform) Get() float64 { return u.A + (u.B-u.A)*u.gen.Float64() }

func init() {
	RegisterRandomVarFactory("Uniform", func(s *Simulation, p []string) (RandomVar, error) {
		if len(p) != 2 {
			return nil, NewWrongArityParseExc("Uniform")
		}
		a, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Uniform", Reason: err.Error()}
		}
		b, err := parseFloatPermissive(p[1])
		if err != nil {
			return nil, &ParseExc{ClassName: "Uniform", Reason: err.Error()}
		}
		return NewUniform(s, a, b, nil), nil
	})
}

// === Exponential ===

// Exponential samples from an exponential distribution with the given
// mean, via inverse-CDF on a Uniform(0,1) draw.
type Exponential struct {
	Mean float64
	gen  *RandomGen
}

func NewExponential(s *Simulation, mean float64, gen *RandomGen) *Exponential {
	return &Exponential{Mean: mean, gen: genOrDefault(s, gen)}
}

func (e *Exponential) Get() float64 {
	u := e.gen.Float64()
	return -e.Mean * math.Log(1-u)
}

func init() {
	RegisterRandomVarFactory("Exponential", func(s *Simulation, p []string) (RandomVar, error) {
		if len(p) != 1 {
			return nil, NewWrongArityParseExc("Exponential")
		}
		mean, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Exponential", Reason: err.Error()}
		}
		return NewExponential(s, mean, nil), nil
	})
}

// === Pareto ===

// Pareto samples a Pareto(mu, k) distribution: mu is the scale (minimum
// value), k is the shape, via inverse-CDF.
type Pareto struct {
	Mu, K float64
	gen   *RandomGen
}

func NewPareto(s *Simulation, mu, k float64, gen *RandomGen) *Pareto {
	return &Pareto{Mu: mu, K: k, gen: genOrDefault(s, gen)}
}

func (p *Pareto) Get() float64 {
	u := p.gen.Float64()
	return p.Mu / math.Pow(1-u, 1/p.K)
}

func init() {
	RegisterRandomVarFactory("Pareto", func(s *Simulation, p []string) (RandomVar, error) {
		if len(p) != 2 {
			return nil, NewWrongArityParseExc("Pareto")
		}
		mu, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Pareto", Reason: err.Error()}
		}
		k, err := parseFloatPermissive(p[1])
		if err != nil {
			return nil, &ParseExc{ClassName: "Pareto", Reason: err.Error()}
		}
		return NewPareto(s, mu, k, nil), nil
	})
}

// === Normal ===

// Normal samples a Normal(mu, sigma) distribution via the polar
// (Marsaglia) Box-Muller transform, which produces two independent samples
// per pass of rejection sampling; the second is cached and returned on the
// following Get() call.
type Normal struct {
	Mu, Sigma float64
	gen       *RandomGen

	hasSpare bool
	spare    float64
}

func NewNormal(s *Simulation, mu, sigma float64, gen *RandomGen) *Normal {
	return &Normal{Mu: mu, Sigma: sigma, gen: genOrDefault(s, gen)}
}

func (n *Normal) Get() float64 {
	if n.hasSpare {
		n.hasSpare = false
		return n.Mu + n.Sigma*n.spare
	}
	var v1, v2, s float64
	for {
		v1 = 2*n.gen.Float64() - 1
		v2 = 2*n.gen.Float64() - 1
		s = v1*v1 + v2*v2
		if s > 0 && s < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(s) / s)
	n.spare = v2 * mul
	n.hasSpare = true
	return n.Mu + n.Sigma*(v1*mul)
}

func init() {
	RegisterRandomVarFactory("Normal", func(s *Simulation, p []string) (RandomVar, error) {
		if len(p) != 2 {
			return nil, NewWrongArityParseExc("Normal")
		}
		mu, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Normal", Reason: err.Error()}
		}
		sigma, err := parseFloatPermissive(p[1])
		if err != nil {
			return nil, &ParseExc{ClassName: "Normal", Reason: err.Error()}
		}
		return NewNormal(s, mu, sigma, nil), nil
	})
}

// === Poisson ===

// PoissonCutoff bounds the direct-inversion search; lambda large enough to
// need more than this many terms yields PoissonCutoff itself rather than
// looping unboundedly.
const PoissonCutoff = 10000

// Poisson samples a Poisson(lambda) distribution by direct inversion of
// the CDF, capped at PoissonCutoff.
type Poisson struct {
	Lambda float64
	gen    *RandomGen
}

func NewPoisson(s *Simulation, lambda float64, gen *RandomGen) *Poisson {
	return &Poisson{Lambda: lambda, gen: genOrDefault(s, gen)}
}

func (p *Poisson) Get() float64 {
	u := p.gen.Float64()
	prob := math.Exp(-p.Lambda)
	cdf := prob
	k := 0
	for u > cdf && k < PoissonCutoff {
		k++
		prob *= p.Lambda / float64(k)
		cdf += prob
	}
	return float64(k)
}

func init() {
	RegisterRandomVarFactory("Poisson", func(s *Simulation, p []string) (RandomVar, error) {
		if len(p) != 1 {
			return nil, NewWrongArityParseExc("Poisson")
		}
		lambda, err := parseFloatPermissive(p[0])
		if err != nil {
			return nil, &ParseExc{ClassName: "Poisson", Reason: err.Error()}
		}
		return NewPoisson(s, lambda, nil), nil
	})
}

// === Det ===

// Det replays a fixed sequence of values, cycling back to the start once
// exhausted.
type Det struct {
	values []float64
	idx    int
}

// NewDet builds a Det from an in-memory sequence.
func NewDet(values []float64) *Det {
	v := make([]float64, len(values))
	copy(v, values)
	return &Det{values: v}
}

// NewDetFromFile reads a whitespace-separated text file of doubles.
func NewDetFromFile(path string) (*Det, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoExc{Path: path, Err: err}
	}
	defer f.Close()

	var values []float64
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := parseFloatPermissive(scanner.Text())
		if err != nil {
			return nil, &IoExc{Path: path, Err: err}
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IoExc{Path: path, Err: err}
	}
	if len(values) == 0 {
		return nil, &IoExc{Path: path, Err: strconv.ErrSyntax}
	}
	return &Det{values: values}, nil
}

func (d *Det) Get() float64 {
	v := d.values[d.idx]
	d.idx = (d.idx + 1) % len(d.values)
	return v
}

func init() {
	RegisterRandomVarFactory("Det", func(_ *Simulation, p []string) (RandomVar, error) {
		if len(p) == 1 {
			return NewDetFromFile(p[0])
		}
		if len(p) == 0 {
			return nil, NewWrongArityParseExc("Det")
		}
		values := make([]float64, len(p))
		for i, s := range p {
			v, err := parseFloatPermissive(s)
			if err != nil {
				return nil, &ParseExc{ClassName: "Det", Reason: err.Error()}
			}
			values[i] = v
		}
		return NewDet(values), nil
	})
}
