package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds the caller-supplied knobs the TermParser callbacks consult:
// the default field(s) used when a term carries no explicit field, and the
// exact-match field-name alias table (§6).
type Config struct {
	DefaultFields []string
	FieldAliases  map[string]string
	// IntegerAsString makes the integer primitive build a PartialStringValue
	// instead of an IntValue - useful for fields that look numeric but are
	// compared as text (e.g. zip codes).
	IntegerAsString bool
}

// Parser holds the term-assembly callbacks: the parse-action glue between a
// primitive's raw match and a Term's Value, plus the two higher-level
// "term builder" operations (§4.2, §4.3) that combine a parsed field with a
// parsed value into a complete Term.
type Parser struct {
	cfg Config
}

// New builds a Parser from the given configuration.
func New(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// ResolveFieldAlias substitutes name for its configured alias target, or
// returns name unchanged if there is no exact-match alias.
func (p *Parser) ResolveFieldAlias(name string) string {
	if target, ok := p.cfg.FieldAliases[name]; ok {
		return target
	}
	return name
}

func (p *Parser) defaultField() Field {
	if len(p.cfg.DefaultFields) == 1 {
		return Field{Kind: FieldDefault, Name: p.cfg.DefaultFields[0]}
	}
	names := append([]string(nil), p.cfg.DefaultFields...)
	return Field{Kind: FieldDefault, Names: names}
}

// BuildTerm assembles a Term from an optional single explicit field name
// (nil when the term had none, in which case the configured default field
// is used) and an already-parsed Value.
func (p *Parser) BuildTerm(fieldName *string, value Value) Term {
	if fieldName == nil {
		return Term{Field: p.defaultField(), Value: value}
	}
	return Term{
		Field: Field{Kind: FieldAttribute, Name: p.ResolveFieldAlias(*fieldName)},
		Value: value,
	}
}

// BuildMultiFieldTerm assembles a Term from a multi-part field path
// (e.g. ["a","b","c"] from "a:b:c:5") and an already-parsed Value.
func (p *Parser) BuildMultiFieldTerm(path []string, value Value) Term {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = p.ResolveFieldAlias(n)
	}
	return Term{Field: Field{Kind: FieldAttribute, Names: names}, Value: value}
}

// BuildKeywordTerm assembles a Term for a matched keyword clause, e.g.
// "status:open" when "status" is configured as a keyword.
func (p *Parser) BuildKeywordTerm(keyword, valueText string) Term {
	return Term{
		Field: Field{Kind: FieldKeyword, Name: keyword},
		Value: KeywordValue{S: valueText},
	}
}

// The following are the per-primitive parse-action callbacks: the registry
// wires the value-type ones into the corresponding built-in primitive
// constructor (internal/registry), so that e.g. the "integer" primitive
// produces an IntValue (or a PartialStringValue, per IntegerAsString)
// rather than a bare int64. FieldParse and MultiFieldParse are not wired by
// the registry.

// IntegerParse is the integer primitive's parse action.
func (p *Parser) IntegerParse(raw string, n int64) (any, error) {
	if p.cfg.IntegerAsString {
		return PartialStringValue{S: raw}, nil
	}
	return IntValue{N: n}, nil
}

// IntegerComparisonParse is the integer_comparison primitive's parse action.
// Under IntegerAsString the bound is stored as decimal text instead of an
// int; that text is re-formatted from the parsed value, so leading zeros in
// the input are not kept.
func (p *Parser) IntegerComparisonParse(op string, n int64) (any, error) {
	name, err := comparisonOpName(op)
	if err != nil {
		return nil, err
	}
	if p.cfg.IntegerAsString {
		return ComparisonValue{Op: name, S: strconv.FormatInt(n, 10), AsString: true}, nil
	}
	return ComparisonValue{Op: name, N: n}, nil
}

// QuotedStringParse is the quoted_string primitive's parse action: a "*"
// anywhere in the text demotes it from an exact match to a partial one.
func (p *Parser) QuotedStringParse(raw string) (any, error) {
	if strings.Contains(raw, "*") {
		return PartialStringValue{S: raw}, nil
	}
	return ExactStringValue{S: raw}, nil
}

// PartialStringParse is the partial_string primitive's parse action.
func (p *Parser) PartialStringParse(raw string) (any, error) {
	return PartialStringValue{S: raw}, nil
}

// RangeParse is the integer_range primitive's parse action.
func (p *Parser) RangeParse(lo, hi int64) (any, error) {
	return RangeValue{Base: "int", Lo: IntValue{N: lo}, Hi: IntValue{N: hi}}, nil
}

// ContainerParse is the container primitive's parse action: it wraps the
// element matcher's already-parsed Value payloads into a ContainerValue.
func (p *Parser) ContainerParse(items []any) (any, error) {
	values := make([]Value, len(items))
	for i, raw := range items {
		v, ok := raw.(Value)
		if !ok {
			return nil, fmt.Errorf("container element %d is not a Value: %T", i, raw)
		}
		values[i] = v
	}
	return ContainerValue{Items: values}, nil
}

// ProximityParse is the string_proximity primitive's parse action.
func (p *Parser) ProximityParse(text string, distance int64) (any, error) {
	return ProximityValue{Text: text, Distance: distance}, nil
}

// FieldParse is the field primitive's parse action: it only resolves the
// alias, leaving BuildTerm to assign FieldAttribute once the value half of
// the term has also been matched.
func (p *Parser) FieldParse(name string) (any, error) {
	return p.ResolveFieldAlias(name), nil
}

// MultiFieldParse is the multi_field primitive's parse action.
func (p *Parser) MultiFieldParse(path []string) (any, error) {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = p.ResolveFieldAlias(n)
	}
	return names, nil
}

func comparisonOpName(sym string) (string, error) {
	switch sym {
	case ">":
		return OpGreaterThan, nil
	case ">=":
		return OpGreaterEqualThan, nil
	case "<":
		return OpLowerThan, nil
	case "<=":
		return OpLowerEqualThan, nil
	default:
		return "", fmt.Errorf("unknown comparison operator %q", sym)
	}
}
