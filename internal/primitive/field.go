package primitive

// FieldParseMethod builds the payload for a recognized field name.
type FieldParseMethod func(name string) (any, error)

// Field recognizes "<field_name><sep>", e.g. "status:". Only the name is
// reported in the payload; the separator is consumed but discarded.
type Field struct {
	precedence int
	sep        string
	parse      FieldParseMethod
}

// NewField builds the field primitive. sep defaults to ":" when empty.
func NewField(precedence int, sep string, parse FieldParseMethod) *Field {
	if sep == "" {
		sep = ":"
	}
	return &Field{precedence: precedence, sep: sep, parse: parse}
}

func (f *Field) Name() string    { return "field" }
func (f *Field) Precedence() int { return f.precedence }

func (f *Field) TryMatch(input string, pos int) (Match, bool) {
	name, length, ok := f.matchOne(input, pos)
	if !ok {
		return Match{}, false
	}
	if f.parse == nil {
		return Match{Length: length, Value: name}, true
	}
	v, err := f.parse(name)
	if err != nil {
		return Match{}, false
	}
	return Match{Length: length, Value: v}, true
}

// matchOne recognizes one "<name><sep>" segment without invoking parse.
func (f *Field) matchOne(input string, pos int) (string, int, bool) {
	i := pos
	for i < len(input) && IsFieldNameByte(input[i]) {
		i++
	}
	if i == pos {
		return "", 0, false
	}
	name := input[pos:i]
	end := i + len(f.sep)
	if end > len(input) || input[i:end] != f.sep {
		return "", 0, false
	}
	return name, end - pos, true
}

// MultiFieldParseMethod builds the payload from the ordered path segments.
type MultiFieldParseMethod func(path []string) (any, error)

// MultiField recognizes one-or-more consecutive "<name><sep>" segments,
// e.g. "a:b:c:" in "a:b:c:5" - used to build a multi-part field path before
// the value that follows.
type MultiField struct {
	precedence int
	field      *Field
	parse      MultiFieldParseMethod
}

// NewMultiField builds the multi_field primitive. sep defaults to ":".
func NewMultiField(precedence int, sep string, parse MultiFieldParseMethod) *MultiField {
	return &MultiField{precedence: precedence, field: NewField(precedence, sep, nil), parse: parse}
}

func (m *MultiField) Name() string    { return "multi_field" }
func (m *MultiField) Precedence() int { return m.precedence }

func (m *MultiField) TryMatch(input string, pos int) (Match, bool) {
	var path []string
	cur := pos
	for {
		name, length, ok := m.field.matchOne(input, cur)
		if !ok {
			break
		}
		path = append(path, name)
		cur += length
	}
	if len(path) == 0 {
		return Match{}, false
	}
	if m.parse == nil {
		return Match{Length: cur - pos, Value: path}, true
	}
	v, err := m.parse(path)
	if err != nil {
		return Match{}, false
	}
	return Match{Length: cur - pos, Value: v}, true
}
