package genre

// NodeType identifies the type of AST node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeWildcard
	NodeCharClass
	NodeConcat
	NodeAlternate
	NodeQuantifier
)

// Unbounded marks a quantifier with no upper bound. Generation replaces it
// with the configured repeat cap.
const Unbounded = -1

// Node is the base interface for AST nodes. The tree is immutable once
// built; generation never mutates it, so one parsed Pattern can serve any
// number of concurrent Generate calls.
type Node interface {
	Type() NodeType
}

// Literal emits a single fixed character.
type Literal struct {
	R rune
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// Wildcard emits one character drawn from the default alphabet.
type Wildcard struct{}

func (n *Wildcard) Type() NodeType { return NodeWildcard }

// CharClass emits one member of a resolved character set.
//
// Chars is the effective alphabet in source order with duplicates removed.
// For a negated class it is already the complement of the written members
// against the default alphabet, so Dist always weights Chars directly.
type CharClass struct {
	Chars   []rune
	Negated bool
	Dist    *Dist
}

func (n *CharClass) Type() NodeType { return NodeCharClass }

// Concat emits its children in order. Always holds two or more nodes;
// nested runs are flattened into a single ordered list during parsing.
type Concat struct {
	Nodes []Node
}

func (n *Concat) Type() NodeType { return NodeConcat }

// Alternate emits exactly one of its branches, chosen uniformly. Always
// holds two or more branches, flattened during parsing with source order
// preserved.
type Alternate struct {
	Nodes []Node
}

func (n *Alternate) Type() NodeType { return NodeAlternate }

// Quantifier repeats Body between Min and Max times. Max may be Unbounded.
// If Dist is set, the repeat count is sampled from it and clamped into
// [Min, Max]; otherwise the count is uniform over [Min, Max].
type Quantifier struct {
	Body Node
	Min  int
	Max  int
	Dist *Dist
}

func (n *Quantifier) Type() NodeType { return NodeQuantifier }
