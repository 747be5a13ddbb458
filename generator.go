package genre

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultMaxRepeat caps unbounded quantifiers (+, * and open-ended
// annotations such as ~Geo) during generation so output stays bounded.
const DefaultMaxRepeat = 16

// GenOptions configures generation.
type GenOptions struct {
	// MaxRepeat replaces the unbounded upper bound of a quantifier.
	// Values below one fall back to DefaultMaxRepeat.
	MaxRepeat int
}

// Generate renders one string from the pattern using rng. Identical
// pattern and identical rng state yield byte-identical output.
func (p *Pattern) Generate(rng *rand.Rand) string {
	return p.GenerateWith(rng, GenOptions{})
}

// GenerateWith renders one string from the pattern using rng and the given
// options.
func (p *Pattern) GenerateWith(rng *rand.Rand, opts GenOptions) string {
	maxRepeat := opts.MaxRepeat
	if maxRepeat < 1 {
		maxRepeat = DefaultMaxRepeat
	}
	var sb strings.Builder
	if p.root != nil {
		render(&sb, p.root, rng, maxRepeat)
	}
	return sb.String()
}

func render(sb *strings.Builder, node Node, rng *rand.Rand, maxRepeat int) {
	switch n := node.(type) {
	case *Literal:
		sb.WriteRune(n.R)
	case *Wildcard:
		sb.WriteRune(DefaultAlphabet[rng.Intn(len(DefaultAlphabet))])
	case *CharClass:
		sb.WriteRune(n.Chars[classIndex(n, rng)])
	case *Concat:
		for _, child := range n.Nodes {
			render(sb, child, rng, maxRepeat)
		}
	case *Alternate:
		render(sb, n.Nodes[rng.Intn(len(n.Nodes))], rng, maxRepeat)
	case *Quantifier:
		count := repeatCount(n, rng, maxRepeat)
		for i := 0; i < count; i++ {
			render(sb, n.Body, rng, maxRepeat)
		}
	default:
		// A validated Pattern cannot hold anything else; reaching this is
		// a programming defect, not a recoverable input error.
		panic(fmt.Sprintf("genre: render of unknown node %T", node))
	}
}

// classIndex picks one member index, weighted by the class distribution if
// present, else uniform. Zipf draws rank 1..k and maps back to index.
func classIndex(n *CharClass, rng *rand.Rand) int {
	k := len(n.Chars)
	if n.Dist == nil {
		return rng.Intn(k)
	}
	i := n.Dist.Sample(rng)
	if n.Dist.Kind == DistZipf {
		i--
	}
	if i < 0 {
		return 0
	}
	if i >= k {
		return k - 1
	}
	return i
}

// repeatCount resolves the effective repeat count for a quantifier: a
// sample from its distribution clamped into [Min, Max], or a uniform draw
// over the bounds. An Unbounded max becomes the configured cap.
func repeatCount(n *Quantifier, rng *rand.Rand, maxRepeat int) int {
	min, max := n.Min, n.Max
	if max == Unbounded {
		max = maxRepeat
		if max < min {
			max = min
		}
	}
	if min > max {
		panic(fmt.Sprintf("genre: quantifier bounds [%d,%d] inverted", min, max))
	}
	if n.Dist == nil {
		return min + rng.Intn(max-min+1)
	}
	count := n.Dist.Sample(rng)
	if count < min {
		count = min
	}
	if count > max {
		count = max
	}
	return count
}
