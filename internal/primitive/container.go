package primitive

// ContainerParseMethod builds the payload from the matched element values.
type ContainerParseMethod func(items []any) (any, error)

// Container recognizes a bracketed, comma-delimited list of values matched
// by Elem, e.g. "[1,2,3]". Whitespace around delimiters is tolerated.
type Container struct {
	precedence int
	start, end byte
	delim      byte
	Elem       Matcher
	parse      ContainerParseMethod
}

// NewContainer builds the container primitive over elem. start/end/delim
// default to '[', ']', ','.
func NewContainer(precedence int, elem Matcher, parse ContainerParseMethod) *Container {
	return &Container{precedence: precedence, start: '[', end: ']', delim: ',', Elem: elem, parse: parse}
}

func (c *Container) Name() string    { return "container" }
func (c *Container) Precedence() int { return c.precedence }

func (c *Container) TryMatch(input string, pos int) (Match, bool) {
	if pos >= len(input) || input[pos] != c.start {
		return Match{}, false
	}
	cur := pos + 1
	var items []any

	cur = skipSpaces(input, cur)
	if cur < len(input) && input[cur] == c.end {
		return Match{}, false // empty container is not a valid value
	}

	for {
		cur = skipSpaces(input, cur)
		m, ok := c.Elem.TryMatch(input, cur)
		if !ok {
			return Match{}, false
		}
		items = append(items, m.Value)
		cur += m.Length
		cur = skipSpaces(input, cur)
		if cur < len(input) && input[cur] == c.delim {
			cur++
			continue
		}
		break
	}
	cur = skipSpaces(input, cur)
	if cur >= len(input) || input[cur] != c.end {
		return Match{}, false
	}
	cur++

	if c.parse == nil {
		return Match{Length: cur - pos, Value: items}, true
	}
	v, err := c.parse(items)
	if err != nil {
		return Match{}, false
	}
	return Match{Length: cur - pos, Value: v}, true
}
