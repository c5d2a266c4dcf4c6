package primitive

import "strconv"

// IntegerParseMethod turns a matched decimal run plus its numeric value
// into a payload.
type IntegerParseMethod func(raw string, n int64) (any, error)

// Integer recognizes a maximal run of decimal digits.
type Integer struct {
	precedence int
	parse      IntegerParseMethod
}

// NewInteger builds the integer primitive.
func NewInteger(precedence int, parse IntegerParseMethod) *Integer {
	return &Integer{precedence: precedence, parse: parse}
}

func (p *Integer) Name() string    { return "integer" }
func (p *Integer) Precedence() int { return p.precedence }

func (p *Integer) TryMatch(input string, pos int) (Match, bool) {
	raw, length, ok := scanDigits(input, pos)
	if !ok {
		return Match{}, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Match{}, false
	}
	if p.parse == nil {
		return Match{Length: length, Value: n}, true
	}
	v, err := p.parse(raw, n)
	if err != nil {
		return Match{}, false
	}
	return Match{Length: length, Value: v}, true
}

func scanDigits(input string, pos int) (string, int, bool) {
	i := pos
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i == pos {
		return "", 0, false
	}
	return input[pos:i], i - pos, true
}

// RangeParseMethod builds the payload for a "lo..hi" range from its two
// bounds.
type RangeParseMethod func(lo, hi int64) (any, error)

// IntegerRange recognizes "<int>..<int>", e.g. "18..30".
type IntegerRange struct {
	precedence int
	sep        string
	parse      RangeParseMethod
}

// NewIntegerRange builds the integer_range primitive. sep defaults to ".."
// when empty.
func NewIntegerRange(precedence int, sep string, parse RangeParseMethod) *IntegerRange {
	if sep == "" {
		sep = ".."
	}
	return &IntegerRange{precedence: precedence, sep: sep, parse: parse}
}

func (p *IntegerRange) Name() string    { return "integer_range" }
func (p *IntegerRange) Precedence() int { return p.precedence }

func (p *IntegerRange) TryMatch(input string, pos int) (Match, bool) {
	loRaw, loLen, ok := scanDigits(input, pos)
	if !ok {
		return Match{}, false
	}
	cur := pos + loLen
	if cur+len(p.sep) > len(input) || input[cur:cur+len(p.sep)] != p.sep {
		return Match{}, false
	}
	cur += len(p.sep)
	hiRaw, hiLen, ok := scanDigits(input, cur)
	if !ok {
		return Match{}, false
	}
	cur += hiLen

	lo, err := strconv.ParseInt(loRaw, 10, 64)
	if err != nil {
		return Match{}, false
	}
	hi, err := strconv.ParseInt(hiRaw, 10, 64)
	if err != nil {
		return Match{}, false
	}
	if p.parse == nil {
		return Match{Length: cur - pos, Value: [2]int64{lo, hi}}, true
	}
	v, err := p.parse(lo, hi)
	if err != nil {
		return Match{}, false
	}
	return Match{Length: cur - pos, Value: v}, true
}

// ComparisonParseMethod builds the payload for a "<op><int>" comparison
// from the matched operator symbol and integer.
type ComparisonParseMethod func(op string, n int64) (any, error)

// IntegerComparison recognizes one of "<", "<=", ">", ">=" followed
// (optionally with whitespace) by an Integer.
type IntegerComparison struct {
	precedence int
	parse      ComparisonParseMethod
}

// NewIntegerComparison builds the integer_comparison primitive.
func NewIntegerComparison(precedence int, parse ComparisonParseMethod) *IntegerComparison {
	return &IntegerComparison{precedence: precedence, parse: parse}
}

func (p *IntegerComparison) Name() string    { return "integer_comparison" }
func (p *IntegerComparison) Precedence() int { return p.precedence }

// comparisonSymbols is tried longest-first so ">=" isn't shadowed by ">".
var comparisonSymbols = []string{">=", "<=", ">", "<"}

func (p *IntegerComparison) TryMatch(input string, pos int) (Match, bool) {
	for _, sym := range comparisonSymbols {
		end := pos + len(sym)
		if end > len(input) || input[pos:end] != sym {
			continue
		}
		cur := skipSpaces(input, end)
		raw, digLen, ok := scanDigits(input, cur)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		total := (cur + digLen) - pos
		if p.parse == nil {
			return Match{Length: total, Value: [2]any{sym, n}}, true
		}
		v, err := p.parse(sym, n)
		if err != nil {
			continue
		}
		return Match{Length: total, Value: v}, true
	}
	return Match{}, false
}
