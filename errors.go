package genre

import "fmt"

// SyntaxError reports pattern text that violates the grammar: unmatched
// delimiters, dangling quantifiers, empty alternatives, trailing input.
// Pos is the byte offset of the offending construct.
type SyntaxError struct {
	Pos      int
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("genre: syntax error at %d: %s", e.Pos, e.Expected)
}

// ValidationError reports a syntactically well-formed but semantically
// invalid distribution annotation: an unknown name, a wrong parameter
// count, or an out-of-domain value.
type ValidationError struct {
	Pos       int
	Construct string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("genre: invalid %s at %d: %s", e.Construct, e.Pos, e.Reason)
}
