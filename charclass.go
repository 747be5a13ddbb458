package genre

// DefaultAlphabet is the universe used for wildcard draws and for the
// complement of negated classes: printable ASCII, 0x20 through 0x7E.
var DefaultAlphabet = func() []rune {
	chars := make([]rune, 0, 95)
	for c := rune(0x20); c <= 0x7e; c++ {
		chars = append(chars, c)
	}
	return chars
}()

var (
	digitChars = []rune("0123456789")
	spaceChars = []rune{' ', '\t', '\n', '\r', '\f', '\v'}
	upperChars = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	lowerChars = []rune("abcdefghijklmnopqrstuvwxyz")
)

func wordChars() []rune {
	chars := make([]rune, 0, 63)
	chars = append(chars, digitChars...)
	chars = append(chars, upperChars...)
	chars = append(chars, '_')
	chars = append(chars, lowerChars...)
	return chars
}

// shorthandClass resolves \d, \s and \w. Returns false for any other
// escape, which the parser then treats as a literal.
func shorthandClass(c rune) ([]rune, bool) {
	switch c {
	case 'd':
		return digitChars, true
	case 's':
		return spaceChars, true
	case 'w':
		return wordChars(), true
	}
	return nil, false
}

// posixClass resolves a [:name:] class body member.
func posixClass(name string) ([]rune, bool) {
	switch name {
	case "digit":
		return digitChars, true
	case "space":
		return spaceChars, true
	case "word":
		return wordChars(), true
	case "alpha":
		return append(append([]rune{}, upperChars...), lowerChars...), true
	case "lower":
		return lowerChars, true
	case "upper":
		return upperChars, true
	case "alnum":
		chars := append([]rune{}, digitChars...)
		chars = append(chars, upperChars...)
		return append(chars, lowerChars...), true
	}
	return nil, false
}

// complement returns the default alphabet minus the given members,
// preserving alphabet order. Members outside the alphabet (e.g. \t from
// \s) have no effect on the result.
func complement(members []rune) []rune {
	excluded := make(map[rune]struct{}, len(members))
	for _, c := range members {
		excluded[c] = struct{}{}
	}
	chars := make([]rune, 0, len(DefaultAlphabet))
	for _, c := range DefaultAlphabet {
		if _, ok := excluded[c]; !ok {
			chars = append(chars, c)
		}
	}
	return chars
}

// dedupRunes removes duplicates while preserving first-occurrence order.
func dedupRunes(chars []rune) []rune {
	seen := make(map[rune]struct{}, len(chars))
	out := chars[:0]
	for _, c := range chars {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
