package primitive

import "testing"

func TestWordMatchesEscapes(t *testing.T) {
	w := NewWord("simple_word", 3, IsSimpleWordByte, 1, nil)
	m, ok := w.TryMatch(`foo\:bar rest`, 0)
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Value != "foo:bar" {
		t.Fatalf("Value = %q, want %q", m.Value, "foo:bar")
	}
	if m.Length != len(`foo\:bar`) {
		t.Fatalf("Length = %d, want %d", m.Length, len(`foo\:bar`))
	}
}

func TestWordStopsAtWhitespace(t *testing.T) {
	w := NewWord("simple_word", 3, IsSimpleWordByte, 1, nil)
	m, ok := w.TryMatch("18..30 x", 0)
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Value != "18..30" {
		t.Fatalf("Value = %q", m.Value)
	}
}

func TestQuotedStringBothQuotes(t *testing.T) {
	q := NewQuotedString(2, nil)
	for _, in := range []string{`"hello world" x`, `'hello world' x`} {
		m, ok := q.TryMatch(in, 0)
		if !ok {
			t.Fatalf("expected match for %q", in)
		}
		if m.Value != "hello world" {
			t.Fatalf("Value = %q", m.Value)
		}
	}
}

func TestQuotedStringUnterminated(t *testing.T) {
	q := NewQuotedString(2, nil)
	if _, ok := q.TryMatch(`"unterminated`, 0); ok {
		t.Fatalf("expected no match on unterminated string")
	}
}

func TestIntegerRangePrefersOverInteger(t *testing.T) {
	rng := NewIntegerRange(10, "", nil)
	m, ok := rng.TryMatch("18..30 rest", 0)
	if !ok {
		t.Fatalf("expected range match")
	}
	if m.Value.([2]int64) != [2]int64{18, 30} {
		t.Fatalf("Value = %v", m.Value)
	}

	alt := Alternation{Candidates: []Matcher{
		NewInteger(6, nil),
		rng,
	}}
	m, ok = alt.TryMatch("18..30 rest", 0)
	if !ok || m.Length != len("18..30") {
		t.Fatalf("longest-or did not prefer the range: %+v ok=%v", m, ok)
	}
}

func TestIntegerComparison(t *testing.T) {
	c := NewIntegerComparison(9, nil)
	m, ok := c.TryMatch(">= 5", 0)
	if !ok {
		t.Fatalf("expected match")
	}
	pair := m.Value.([2]any)
	if pair[0] != ">=" || pair[1] != int64(5) {
		t.Fatalf("Value = %v", m.Value)
	}
}

func TestContainerOfIntegers(t *testing.T) {
	c := NewContainer(8, NewInteger(6, nil), nil)
	m, ok := c.TryMatch("[1, 2, 3]", 0)
	if !ok {
		t.Fatalf("expected match")
	}
	items := m.Value.([]any)
	if len(items) != 3 || items[0] != int64(1) || items[2] != int64(3) {
		t.Fatalf("items = %v", items)
	}
}

func TestFieldAndMultiField(t *testing.T) {
	f := NewField(11, "", nil)
	m, ok := f.TryMatch("status: 5", 0)
	if !ok || m.Value != "status" {
		t.Fatalf("Field match = %v, %v", m, ok)
	}

	mf := NewMultiField(12, "", nil)
	m, ok = mf.TryMatch("a:b:c:5", 0)
	if !ok {
		t.Fatalf("expected multi_field match")
	}
	path := m.Value.([]string)
	if len(path) != 3 || path[0] != "a" || path[2] != "c" {
		t.Fatalf("path = %v", path)
	}
}

func TestStringProximity(t *testing.T) {
	sp := NewStringProximity(11, nil)
	m, ok := sp.TryMatch(`"exact phrase"~3 rest`, 0)
	if !ok {
		t.Fatalf("expected match")
	}
	pair := m.Value.([2]any)
	if pair[0] != "exact phrase" || pair[1] != int64(3) {
		t.Fatalf("Value = %v", m.Value)
	}
}
