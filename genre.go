// Package genre parses an extended, regular-expression-like pattern
// language and synthesizes random strings belonging to it. Repetition
// counts and character-class selections can be driven by named probability
// distributions attached with ~ annotations:
//
//	a{3~Geo(0.2)}   three or more a's, count geometric beyond the baseline
//	[abc~Cat(1,2,3)] one of a, b, c with weights 1:2:3
//
// Patterns are parsed once with Compile and rendered any number of times
// with Generate against a caller-supplied random source; a compiled
// Pattern is immutable and safe for concurrent use with independent
// sources. genre is a generator only: it never decides whether a string
// matches a pattern.
package genre

import "fmt"

// Pattern is the parse root: a validated, immutable tree plus anchor
// metadata. Anchors are structural only; generation always renders the
// complete core pattern.
type Pattern struct {
	expr          string
	root          Node
	anchoredStart bool
	anchoredEnd   bool
}

// Compile parses a pattern and validates its distribution annotations.
// Errors are *SyntaxError or *ValidationError, both carrying the source
// position of the offending construct.
func Compile(expr string) (*Pattern, error) {
	return NewParser(expr).Parse()
}

func MustCompile(expr string) *Pattern {
	pat, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("genre: Compile(%q): %v", expr, err))
	}
	return pat
}

// String returns the source text the pattern was compiled from.
func (p *Pattern) String() string {
	return p.expr
}

// AnchoredStart reports whether the pattern carries a leading ^.
func (p *Pattern) AnchoredStart() bool {
	return p.anchoredStart
}

// AnchoredEnd reports whether the pattern carries a trailing $.
func (p *Pattern) AnchoredEnd() bool {
	return p.anchoredEnd
}
