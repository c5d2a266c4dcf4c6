// Package primitive implements the leaf recognizers the grammar engine
// composes: fixed-character-class words, quoted strings, integers and their
// ranges/comparisons, bracketed containers, and field names. Each primitive
// is a small value recognizing a prefix of the remaining input and, on
// success, invoking an attached parse-action callback to turn the matched
// text into a structured payload - the same role pyparsing's setParseAction
// plays in the original grammar.
package primitive

// Match is a successful recognition at a given input position: how many
// bytes of input it consumed and the (already parse-action-transformed)
// payload.
type Match struct {
	Length int
	Value  any
}

// Matcher recognizes one primitive value type at a specific byte offset.
type Matcher interface {
	// TryMatch attempts to recognize the primitive anchored at input[pos:].
	// It must not match anything beginning with leading whitespace; callers
	// are responsible for skipping insignificant whitespace first.
	TryMatch(input string, pos int) (Match, bool)

	// Name is the registry type name, e.g. "integer_range".
	Name() string

	// Precedence orders otherwise-tied alternatives; higher wins.
	Precedence() int
}

// Alternation tries every candidate at pos and returns the longest match,
// breaking ties in favor of the earlier (higher-precedence) candidate -
// the "longest-or" composition used to pick a term's value type.
type Alternation struct {
	Candidates []Matcher
}

// TryMatch implements Matcher by delegating to the longest match among
// Candidates.
func (a Alternation) TryMatch(input string, pos int) (Match, bool) {
	best, ok := Match{}, false
	for _, c := range a.Candidates {
		if m, matched := c.TryMatch(input, pos); matched {
			if !ok || m.Length > best.Length {
				best, ok = m, true
			}
		}
	}
	return best, ok
}

// Name reports "alternation"; Alternation is an internal composition, not a
// registry-addressable primitive in its own right.
func (a Alternation) Name() string { return "alternation" }

// Precedence reports the highest precedence among Candidates.
func (a Alternation) Precedence() int {
	best := 0
	for _, c := range a.Candidates {
		if p := c.Precedence(); p > best {
			best = p
		}
	}
	return best
}

// FirstMatch tries every candidate at pos in order and returns the first
// success - pyparsing's MatchFirst semantics rather than longest-match.
type FirstMatch struct {
	Candidates []Matcher
}

// TryMatch implements Matcher by returning the first successful candidate.
func (f FirstMatch) TryMatch(input string, pos int) (Match, bool) {
	for _, c := range f.Candidates {
		if m, ok := c.TryMatch(input, pos); ok {
			return m, true
		}
	}
	return Match{}, false
}

func (f FirstMatch) Name() string { return "first_match" }

func (f FirstMatch) Precedence() int {
	if len(f.Candidates) == 0 {
		return 0
	}
	return f.Candidates[0].Precedence()
}

// skipSpaces returns the offset of the first non-space byte at or after pos.
func skipSpaces(input string, pos int) int {
	for pos < len(input) && isSpace(input[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
