package genre

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parser parses a pattern string into a Pattern.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// reserved characters must be escaped to act as literals.
const reserved = `^$|().\+?*{}[]~,=`

func isReserved(c rune) bool {
	return strings.ContainsRune(reserved, c)
}

// Parse consumes the entire input and returns a validated Pattern. No
// partial Pattern is ever returned on error.
func (p *Parser) Parse() (*Pattern, error) {
	pat := &Pattern{expr: p.input}
	if p.peek() == '^' {
		p.consume()
		pat.anchoredStart = true
	}

	// An empty core (with or without anchors) renders the empty string.
	if p.pos >= len(p.input) || p.peek() == '$' {
		if p.pos < len(p.input) {
			p.consume()
			pat.anchoredEnd = true
		}
		if p.pos < len(p.input) {
			return nil, &SyntaxError{Pos: p.pos, Expected: "end of pattern"}
		}
		return pat, nil
	}

	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	pat.root = root

	if p.pos < len(p.input) && p.peek() == '$' {
		p.consume()
		pat.anchoredEnd = true
	}
	if p.pos < len(p.input) {
		return nil, &SyntaxError{Pos: p.pos, Expected: "end of pattern"}
	}
	return pat, nil
}

// parseAlternation handles expr | expr | ... The grammar is right-recursive
// on |, but branches are collected into one flat ordered list so the tree
// shape matches the semantic shape.
func (p *Parser) parseAlternation() (Node, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	branches := []Node{first}
	for p.pos < len(p.input) && p.peek() == '|' {
		p.consume()
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return first, nil
	}
	return &Alternate{Nodes: branches}, nil
}

// parseExpr handles concatenation: a maximal run of factors, flattened
// into one ordered n-ary Concat. Order is significant.
func (p *Parser) parseExpr() (Node, error) {
	var nodes []Node
	for p.pos < len(p.input) {
		c := p.peek()
		if c == '|' || c == ')' || c == '$' {
			break
		}
		node, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	switch len(nodes) {
	case 0:
		return nil, &SyntaxError{Pos: p.pos, Expected: "expression"}
	case 1:
		return nodes[0], nil
	}
	return &Concat{Nodes: nodes}, nil
}

// parseFactor handles an atom with an optional quantifier.
func (p *Parser) parseFactor() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.input) {
		return atom, nil
	}

	switch p.peek() {
	case '+':
		p.consume()
		return &Quantifier{Body: atom, Min: 1, Max: Unbounded}, nil
	case '?':
		p.consume()
		return &Quantifier{Body: atom, Min: 0, Max: 1}, nil
	case '*':
		p.consume()
		return &Quantifier{Body: atom, Min: 0, Max: Unbounded}, nil
	case '{':
		return p.parseBraceQuantifier(atom)
	}
	return atom, nil
}

// parseBraceQuantifier handles {n} and {n~Dist(params)}. The literal count
// n is the baseline the annotation resolves against; an annotation replaces
// the exact [n,n] bounds with its own support.
func (p *Parser) parseBraceQuantifier(atom Node) (Node, error) {
	open := p.pos
	p.consume() // eat {

	digits := ""
	for p.pos < len(p.input) && p.peek() >= '0' && p.peek() <= '9' {
		digits += string(p.consume())
	}
	if digits == "" {
		return nil, &SyntaxError{Pos: p.pos, Expected: "repeat count"}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, &SyntaxError{Pos: open + 1, Expected: "repeat count"}
	}

	q := &Quantifier{Body: atom, Min: n, Max: n}

	if p.pos < len(p.input) && p.peek() == '~' {
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		dist, min, max, err := resolveQuantDist(ann, n)
		if err != nil {
			return nil, err
		}
		q.Dist, q.Min, q.Max = dist, min, max
	}

	if p.pos >= len(p.input) || p.consume() != '}' {
		return nil, &SyntaxError{Pos: open, Expected: "closing } for quantifier"}
	}
	return q, nil
}

// parseAtom handles literals, wildcards, groups, classes and escapes.
func (p *Parser) parseAtom() (Node, error) {
	switch c := p.peek(); c {
	case '(':
		open := p.pos
		p.consume()
		return p.parseGroup(open)
	case '[':
		open := p.pos
		p.consume()
		return p.parseCharClass(open)
	case '.':
		p.consume()
		return &Wildcard{}, nil
	case '\\':
		p.consume()
		if p.pos >= len(p.input) {
			return nil, &SyntaxError{Pos: p.pos, Expected: "character after backslash"}
		}
		esc := p.consume()
		if chars, ok := shorthandClass(esc); ok {
			return &CharClass{Chars: chars}, nil
		}
		// Escaping makes any character literal, reserved ones included.
		return &Literal{R: esc}, nil
	case '+', '?', '*', '{':
		return nil, &SyntaxError{Pos: p.pos, Expected: "token before quantifier"}
	default:
		if isReserved(c) {
			return nil, &SyntaxError{Pos: p.pos, Expected: "literal or escaped character"}
		}
		p.consume()
		return &Literal{R: c}, nil
	}
}

// parseGroup handles (...). Groups are precedence markers only: the parsed
// contents splice directly into the enclosing position with no node of
// their own.
func (p *Parser) parseGroup(open int) (Node, error) {
	node, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.input) || p.peek() != ')' {
		return nil, &SyntaxError{Pos: open, Expected: "closing ) for group"}
	}
	p.consume()
	return node, nil
}

// parseCharClass handles [...] and [^...]. The body is one or more of
// shorthand class, posix class, literal or dot, optionally followed by a
// distribution annotation reweighting member draws.
func (p *Parser) parseCharClass(open int) (Node, error) {
	negated := false
	if p.pos < len(p.input) && p.peek() == '^' {
		p.consume()
		negated = true
	}

	var members []rune
	var ann *distAnnotation
	for p.pos < len(p.input) && p.peek() != ']' {
		switch c := p.peek(); c {
		case '~':
			a, err := p.parseAnnotation()
			if err != nil {
				return nil, err
			}
			ann = a
			if p.pos >= len(p.input) || p.peek() != ']' {
				return nil, &SyntaxError{Pos: p.pos, Expected: "closing ] after annotation"}
			}
		case '\\':
			p.consume()
			if p.pos >= len(p.input) {
				return nil, &SyntaxError{Pos: p.pos, Expected: "character after backslash"}
			}
			esc := p.consume()
			if chars, ok := shorthandClass(esc); ok {
				members = append(members, chars...)
			} else {
				members = append(members, esc)
			}
		case '.':
			p.consume()
			members = append(members, DefaultAlphabet...)
		case '[':
			chars, err := p.parsePosixClass()
			if err != nil {
				return nil, err
			}
			members = append(members, chars...)
		default:
			p.consume()
			members = append(members, c)
		}
	}

	if p.pos >= len(p.input) || p.consume() != ']' {
		return nil, &SyntaxError{Pos: open, Expected: "closing ] for character class"}
	}

	members = dedupRunes(members)
	if len(members) == 0 {
		return nil, &SyntaxError{Pos: open, Expected: "at least one class member"}
	}

	chars := members
	if negated {
		chars = complement(members)
		if len(chars) == 0 {
			return nil, &SyntaxError{Pos: open, Expected: "non-empty complement"}
		}
	}

	node := &CharClass{Chars: chars, Negated: negated}
	if ann != nil {
		dist, err := resolveClassDist(ann, chars)
		if err != nil {
			return nil, err
		}
		node.Dist = dist
	}
	return node, nil
}

// parsePosixClass handles [:name:] inside a class body. A bare [ that does
// not open a posix class is a class member like any other character.
func (p *Parser) parsePosixClass() ([]rune, error) {
	if !strings.HasPrefix(p.input[p.pos:], "[:") {
		p.consume()
		return []rune{'['}, nil
	}
	open := p.pos
	end := strings.Index(p.input[p.pos+2:], ":]")
	if end == -1 {
		return nil, &SyntaxError{Pos: open, Expected: "closing :] for posix class"}
	}
	name := p.input[p.pos+2 : p.pos+2+end]
	p.pos += 2 + end + 2
	chars, ok := posixClass(name)
	if !ok {
		return nil, &SyntaxError{Pos: open, Expected: "known posix class name"}
	}
	return chars, nil
}

// parseAnnotation handles ~Name, ~Name(p1,p2,...) and ~Name(k1=v1,...).
// Parameters are recorded raw; resolution against the named kind happens
// in a separate validation pass.
func (p *Parser) parseAnnotation() (*distAnnotation, error) {
	pos := p.pos
	p.consume() // eat ~

	name := ""
	for p.pos < len(p.input) && unicode.IsLetter(p.peek()) {
		name += string(p.consume())
	}
	if name == "" {
		return nil, &SyntaxError{Pos: p.pos, Expected: "distribution name"}
	}
	ann := &distAnnotation{pos: pos, name: name}

	if p.pos >= len(p.input) || p.peek() != '(' {
		return ann, nil
	}
	p.consume() // eat (

	for {
		arg, err := p.parseAnnotationArg()
		if err != nil {
			return nil, err
		}
		ann.args = append(ann.args, arg)

		if p.pos >= len(p.input) {
			return nil, &SyntaxError{Pos: p.pos, Expected: "closing ) for parameters"}
		}
		switch p.consume() {
		case ',':
		case ')':
			return ann, nil
		default:
			return nil, &SyntaxError{Pos: p.pos - 1, Expected: "comma or closing )"}
		}
	}
}

// parseAnnotationArg reads one parameter: either a bare number or
// key=number, where key is a single character or ".".
func (p *Parser) parseAnnotationArg() (distArg, error) {
	var arg distArg
	if p.pos+1 < len(p.input) && p.input[p.pos+1] == '=' {
		arg.key = string(p.consume())
		p.consume() // eat =
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := p.peek()
		if (c >= '0' && c <= '9') || c == '.' || (c == '-' && p.pos == start) {
			p.consume()
			continue
		}
		break
	}
	raw := p.input[start:p.pos]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return arg, &SyntaxError{Pos: start, Expected: "numeric parameter value"}
	}
	arg.value = value
	return arg, nil
}

// Helpers

func (p *Parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r
}

func (p *Parser) consume() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += w
	return r
}
