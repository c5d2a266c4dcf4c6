package term

import "testing"

func TestBuildTermDefaultField(t *testing.T) {
	p := New(Config{DefaultFields: []string{"text"}})
	tm := p.BuildTerm(nil, PartialStringValue{S: "hello"})
	if tm.Field.Kind != FieldDefault || tm.Field.Name != "text" {
		t.Fatalf("Field = %+v", tm.Field)
	}
}

func TestBuildTermMultipleDefaultFields(t *testing.T) {
	p := New(Config{DefaultFields: []string{"title", "body"}})
	tm := p.BuildTerm(nil, PartialStringValue{S: "hello"})
	if tm.Field.Kind != FieldDefault || len(tm.Field.Names) != 2 {
		t.Fatalf("Field = %+v", tm.Field)
	}
}

func TestFieldAliasResolution(t *testing.T) {
	p := New(Config{FieldAliases: map[string]string{"qty": "quantity"}})
	name := "qty"
	tm := p.BuildTerm(&name, IntValue{N: 3})
	if tm.Field.Name != "quantity" {
		t.Fatalf("Field.Name = %q, want quantity", tm.Field.Name)
	}

	other := "color"
	tm = p.BuildTerm(&other, ExactStringValue{S: "red"})
	if tm.Field.Name != "color" {
		t.Fatalf("Field.Name = %q, want unchanged color", tm.Field.Name)
	}
}

func TestQuotedStringParseWildcard(t *testing.T) {
	p := New(Config{})
	v, err := p.QuotedStringParse("hel*o")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(PartialStringValue); !ok {
		t.Fatalf("expected PartialStringValue for wildcarded text, got %T", v)
	}

	v, err = p.QuotedStringParse("hello")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(ExactStringValue); !ok {
		t.Fatalf("expected ExactStringValue, got %T", v)
	}
}

func TestIntegerComparisonParse(t *testing.T) {
	p := New(Config{})
	v, err := p.IntegerComparisonParse(">=", 5)
	if err != nil {
		t.Fatal(err)
	}
	cv := v.(ComparisonValue)
	if cv.Op != OpGreaterEqualThan || cv.N != 5 || cv.AsString {
		t.Fatalf("ComparisonValue = %+v", cv)
	}

	if _, err := p.IntegerComparisonParse("!=", 5); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}

func TestIntegerComparisonParseAsString(t *testing.T) {
	p := New(Config{IntegerAsString: true})
	v, err := p.IntegerComparisonParse(">=", 5)
	if err != nil {
		t.Fatal(err)
	}
	cv := v.(ComparisonValue)
	if !cv.AsString || cv.S != "5" || cv.Op != OpGreaterEqualThan {
		t.Fatalf("ComparisonValue = %+v", cv)
	}
}

func TestBuildKeywordTerm(t *testing.T) {
	p := New(Config{})
	tm := p.BuildKeywordTerm("status", "open")
	if tm.Field.Kind != FieldKeyword || tm.Field.Name != "status" {
		t.Fatalf("Field = %+v", tm.Field)
	}
	if tm.Value.(KeywordValue).S != "open" {
		t.Fatalf("Value = %+v", tm.Value)
	}
}

func TestBuildMultiFieldTerm(t *testing.T) {
	p := New(Config{FieldAliases: map[string]string{"b": "beta"}})
	tm := p.BuildMultiFieldTerm([]string{"a", "b", "c"}, IntValue{N: 5})
	if tm.Field.Kind != FieldAttribute || len(tm.Field.Names) != 3 || tm.Field.Names[1] != "beta" {
		t.Fatalf("Field = %+v", tm.Field)
	}
}

func TestContainerParse(t *testing.T) {
	p := New(Config{})
	v, err := p.ContainerParse([]any{IntValue{N: 1}, IntValue{N: 2}, IntValue{N: 3}})
	if err != nil {
		t.Fatal(err)
	}
	cv := v.(ContainerValue)
	if len(cv.Items) != 3 || cv.Items[1] != Value(IntValue{N: 2}) {
		t.Fatalf("ContainerValue = %+v", cv)
	}
}

func TestContainerParseRejectsNonValueElement(t *testing.T) {
	p := New(Config{})
	if _, err := p.ContainerParse([]any{IntValue{N: 1}, "not a Value"}); err == nil {
		t.Fatalf("expected error for non-Value container element")
	}
}
