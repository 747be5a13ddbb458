package genre

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// DistKind identifies a distribution variant.
type DistKind int

const (
	DistConst DistKind = iota
	DistBer
	DistBin
	DistCat
	DistGeo
	DistZipf
)

func (k DistKind) String() string {
	switch k {
	case DistConst:
		return "Const"
	case DistBer:
		return "Ber"
	case DistBin:
		return "Bin"
	case DistCat:
		return "Cat"
	case DistGeo:
		return "Geo"
	case DistZipf:
		return "Zipf"
	}
	return fmt.Sprintf("DistKind(%d)", int(k))
}

// Dist is a validated repeat-count or member-selection distribution. The
// set of kinds is closed: it mirrors the annotation grammar, so adding a
// kind is a grammar change, not an extension point.
//
// Field use per kind:
//
//	Const: V (the constant value)
//	Ber:   P (probability of 1)
//	Bin:   N (trial count), P (success probability); support [0, N]
//	Cat:   Weights (nonnegative, normalized at sample time); support [0, len-1]
//	Geo:   P (success probability), N (support offset: samples are
//	       N + failures before the first success)
//	Zipf:  N (domain size), P (exponent s); support [1, N]
type Dist struct {
	Kind    DistKind
	V       int
	N       int
	P       float64
	Weights []float64
}

// NewConst returns the distribution that always yields v.
func NewConst(v int) (*Dist, error) {
	if v < 0 {
		return nil, fmt.Errorf("constant value %d must be non-negative", v)
	}
	return &Dist{Kind: DistConst, V: v}, nil
}

// NewBer returns a Bernoulli distribution: 1 with probability p, else 0.
func NewBer(p float64) (*Dist, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("probability %v outside [0,1]", p)
	}
	return &Dist{Kind: DistBer, P: p}, nil
}

// NewBin returns a binomial distribution: successes over n independent
// Bernoulli(p) trials.
func NewBin(n int, p float64) (*Dist, error) {
	if n < 0 {
		return nil, fmt.Errorf("trial count %d must be non-negative", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("probability %v outside [0,1]", p)
	}
	return &Dist{Kind: DistBin, N: n, P: p}, nil
}

// NewCat returns a categorical distribution over len(weights) outcomes,
// each drawn with probability proportional to its weight. Weights need not
// sum to one.
func NewCat(weights []float64) (*Dist, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("categorical needs at least one weight")
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %v at index %d must be finite and non-negative", w, i)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("categorical weights sum to zero")
	}
	return &Dist{Kind: DistCat, Weights: weights}, nil
}

// NewGeo returns a geometric distribution counting failures before the
// first success, shifted so its support starts at offset.
func NewGeo(p float64, offset int) (*Dist, error) {
	if p <= 0 || p >= 1 {
		return nil, fmt.Errorf("probability %v outside (0,1)", p)
	}
	if offset < 0 {
		return nil, fmt.Errorf("support offset %d must be non-negative", offset)
	}
	return &Dist{Kind: DistGeo, N: offset, P: p}, nil
}

// NewZipf returns a rank-biased distribution over 1..k with weight
// proportional to rank^-s.
func NewZipf(s float64, k int) (*Dist, error) {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, fmt.Errorf("exponent %v must be positive and finite", s)
	}
	if k < 1 {
		return nil, fmt.Errorf("domain size %d must be at least 1", k)
	}
	return &Dist{Kind: DistZipf, N: k, P: s}, nil
}

// Sample draws one value from the distribution using rng. Samplers are
// pure in rng: identical source state yields identical draws.
func (d *Dist) Sample(rng *rand.Rand) int {
	switch d.Kind {
	case DistConst:
		return d.V
	case DistBer:
		if rng.Float64() < d.P {
			return 1
		}
		return 0
	case DistBin:
		k := 0
		for i := 0; i < d.N; i++ {
			if rng.Float64() < d.P {
				k++
			}
		}
		return k
	case DistCat:
		return sampleWeighted(rng, d.Weights)
	case DistGeo:
		// Inverse transform: floor(log(1-u) / log(1-p)) counts the
		// failures before the first success.
		u := rng.Float64()
		return d.N + int(math.Log1p(-u)/math.Log1p(-d.P))
	case DistZipf:
		weights := make([]float64, d.N)
		for i := range weights {
			weights[i] = math.Pow(float64(i+1), -d.P)
		}
		return 1 + sampleWeighted(rng, weights)
	}
	panic(fmt.Sprintf("genre: sample from unknown distribution kind %d", int(d.Kind)))
}

// sampleWeighted draws an index with probability proportional to its
// weight, normalizing at sample time.
func sampleWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := rng.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return i
		}
	}
	// Float round-off can leave x at zero; land on the last positive weight.
	for i := len(weights) - 1; i > 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// distAnnotation is a parsed but not yet resolved ~Name(params) annotation.
// The parser records raw parameters; resolution checks them against the
// named kind's arity and domain.
type distAnnotation struct {
	pos  int
	name string
	args []distArg
}

// distArg is one raw annotation parameter. Key is empty for positional
// parameters; named parameters carry a single-character key or ".".
type distArg struct {
	key   string
	value float64
}

func (a *distAnnotation) fail(reason string) *ValidationError {
	return &ValidationError{Pos: a.pos, Construct: "~" + a.name, Reason: reason}
}

// scalar resolves an annotation that takes at most one parameter with the
// given key. Positional parameters fill the slot first; a named parameter
// then applies by key, with duplicate assignment rejected.
func (a *distAnnotation) scalar(key string, v *float64) *ValidationError {
	filled := false
	for _, arg := range a.args {
		switch arg.key {
		case "":
			if filled {
				return a.fail(fmt.Sprintf("too many parameters: expected at most one (%s)", key))
			}
			*v = arg.value
			filled = true
		case key:
			if filled {
				return a.fail(fmt.Sprintf("parameter %s assigned twice", key))
			}
			*v = arg.value
			filled = true
		default:
			return a.fail(fmt.Sprintf("unknown parameter %s=%v", arg.key, arg.value))
		}
	}
	return nil
}

// positional returns the annotation's parameters, rejecting named ones.
func (a *distAnnotation) positional() ([]float64, *ValidationError) {
	values := make([]float64, 0, len(a.args))
	for _, arg := range a.args {
		if arg.key != "" {
			return nil, a.fail(fmt.Sprintf("parameter %s=%v not allowed here", arg.key, arg.value))
		}
		values = append(values, arg.value)
	}
	return values, nil
}

// resolveQuantDist resolves an annotation in quantifier position with
// baseline exact count n. It returns the distribution together with the
// repeat bounds it imposes: the annotation overrides the literal count, it
// does not merely modulate it.
func resolveQuantDist(a *distAnnotation, n int) (*Dist, int, int, error) {
	switch strings.ToLower(a.name) {
	case "const":
		v := float64(n)
		if verr := a.scalar("v", &v); verr != nil {
			return nil, 0, 0, verr
		}
		if v != math.Trunc(v) {
			return nil, 0, 0, a.fail(fmt.Sprintf("constant value %v must be an integer", v))
		}
		d, err := NewConst(int(v))
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, d.V, d.V, nil
	case "ber":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, 0, 0, verr
		}
		d, err := NewBer(p)
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, 0, 1, nil
	case "bin":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, 0, 0, verr
		}
		d, err := NewBin(n, p)
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, 0, n, nil
	case "geo":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, 0, 0, verr
		}
		d, err := NewGeo(p, n)
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, n, Unbounded, nil
	case "cat":
		weights, verr := a.positional()
		if verr != nil {
			return nil, 0, 0, verr
		}
		d, err := NewCat(weights)
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, 0, len(weights) - 1, nil
	case "zipf":
		s := 1.0
		if verr := a.scalar("s", &s); verr != nil {
			return nil, 0, 0, verr
		}
		d, err := NewZipf(s, n)
		if err != nil {
			return nil, 0, 0, a.fail(err.Error())
		}
		return d, 1, n, nil
	}
	return nil, 0, 0, a.fail("unknown distribution name")
}

// resolveClassDist resolves an annotation in character-class position
// against the class's effective member alphabet. The resulting
// distribution indexes chars; Zipf draws rank 1..k, which the generator
// maps back to index rank-1.
func resolveClassDist(a *distAnnotation, chars []rune) (*Dist, error) {
	k := len(chars)
	switch strings.ToLower(a.name) {
	case "const":
		v := 0.0
		if verr := a.scalar("v", &v); verr != nil {
			return nil, verr
		}
		if v != math.Trunc(v) || int(v) < 0 || int(v) >= k {
			return nil, a.fail(fmt.Sprintf("member index %v outside [0,%d]", v, k-1))
		}
		return NewConst(int(v))
	case "ber":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, verr
		}
		d, err := NewBer(p)
		if err != nil {
			return nil, a.fail(err.Error())
		}
		return d, nil
	case "bin":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, verr
		}
		d, err := NewBin(k-1, p)
		if err != nil {
			return nil, a.fail(err.Error())
		}
		return d, nil
	case "geo":
		p := 0.5
		if verr := a.scalar("p", &p); verr != nil {
			return nil, verr
		}
		d, err := NewGeo(p, 0)
		if err != nil {
			return nil, a.fail(err.Error())
		}
		return d, nil
	case "cat":
		weights, verr := resolveClassWeights(a, chars)
		if verr != nil {
			return nil, verr
		}
		d, err := NewCat(weights)
		if err != nil {
			return nil, a.fail(err.Error())
		}
		return d, nil
	case "zipf":
		s := 1.0
		if verr := a.scalar("s", &s); verr != nil {
			return nil, verr
		}
		d, err := NewZipf(s, k)
		if err != nil {
			return nil, a.fail(err.Error())
		}
		return d, nil
	}
	return nil, a.fail("unknown distribution name")
}

// resolveClassWeights builds one weight per class member from a ~Cat
// annotation. Positional weights fill members left to right; named weights
// then apply by member character, with duplicate assignment rejected. The
// "." key sets the weight of every member left unweighted; without it,
// unweighted members share whatever probability mass the explicit weights
// leave below one.
func resolveClassWeights(a *distAnnotation, chars []rune) ([]float64, *ValidationError) {
	k := len(chars)
	weights := make([]float64, k)
	assigned := make([]bool, k)

	index := make(map[rune]int, k)
	for i, c := range chars {
		index[c] = i
	}

	next := 0
	rest := -1.0
	for _, arg := range a.args {
		switch {
		case arg.key == "":
			if next >= k {
				return nil, a.fail(fmt.Sprintf("%d weights for %d class members", next+1, k))
			}
			weights[next] = arg.value
			assigned[next] = true
			next++
		case arg.key == ".":
			if rest >= 0 {
				return nil, a.fail("parameter . assigned twice")
			}
			if arg.value < 0 {
				return nil, a.fail(fmt.Sprintf("weight %v must be non-negative", arg.value))
			}
			rest = arg.value
		default:
			i, ok := index[[]rune(arg.key)[0]]
			if !ok {
				return nil, a.fail(fmt.Sprintf("parameter key %q is not a class member", arg.key))
			}
			if assigned[i] {
				return nil, a.fail(fmt.Sprintf("weight for %q assigned twice", arg.key))
			}
			weights[i] = arg.value
			assigned[i] = true
		}
	}

	unweighted := 0
	total := 0.0
	for i := range weights {
		if assigned[i] {
			total += weights[i]
		} else {
			unweighted++
		}
	}
	if unweighted > 0 {
		each := rest
		if each < 0 {
			each = math.Max(0, 1-total) / float64(unweighted)
		}
		for i := range weights {
			if !assigned[i] {
				weights[i] = each
			}
		}
	}
	return weights, nil
}
