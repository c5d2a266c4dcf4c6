package querygrammar

import (
	"sort"
	"strings"
	"sync"

	"github.com/infiniv/querygrammar/internal/cache"
	"github.com/infiniv/querygrammar/internal/primitive"
	"github.com/infiniv/querygrammar/internal/qerrors"
	"github.com/infiniv/querygrammar/internal/qlog"
	"github.com/infiniv/querygrammar/internal/registry"
	"github.com/infiniv/querygrammar/internal/term"
	"github.com/infiniv/querygrammar/internal/tree"
)

// OperatorSpec configures one boolean-operator level. Order within
// GrammarConfig.Operators is precedence order: earlier entries bind
// tighter (are built closer to the term level), mirroring pyparsing's
// operatorPrecedence convention the original grammar is built on.
type OperatorSpec struct {
	// Name is "not", "and", or "or" (case-insensitive); anything else is a
	// ConfigError at build time.
	Name string
	// Symbols are the literal surface tokens recognized for this level,
	// e.g. []string{"AND", "&&"}. Alphabetic symbols are matched
	// case-insensitively and require a trailing word boundary so "AND"
	// doesn't swallow the start of "Andrew".
	Symbols []string
	// Implicit makes two adjacent operands bind at this level even when no
	// symbol separates them (spec's "elided operator" support) - e.g. OR is
	// commonly implicit so "a b" means "a OR b".
	Implicit bool
}

// ValueTypeSpec names one registered value-type recognizer and the
// precedence used to break longest-or ties against its siblings.
type ValueTypeSpec struct {
	Name       string
	Precedence int
}

// KeywordSpec configures one named keyword shortcut, e.g. "status:open".
type KeywordSpec struct {
	Name string
	// Values lists the allowed literal values, matched case-insensitively
	// and longest-first.
	Values []string
	// AllowOther permits any simple_word value beyond the configured list.
	AllowOther bool
	// Separator defaults to the grammar's FieldSeparator when empty.
	Separator string
}

// GrammarConfig is the full set of inputs GrammarFactory needs to build a
// Grammar: the operator table, the value-type table, the keyword table,
// and the field-level knobs a term.Parser consults.
type GrammarConfig struct {
	Operators  []OperatorSpec
	ValueTypes []ValueTypeSpec
	Keywords   []KeywordSpec

	DefaultFields   []string
	FieldAliases    map[string]string
	FieldSeparator  string
	IntegerAsString bool

	// Registry supplies value-type constructors; defaults to
	// registry.NewDefault() when nil.
	Registry *registry.Registry
	// Logger receives construction- and parse-time trace events; defaults
	// to a no-op logger when nil.
	Logger *qlog.Logger
}

// DefaultConfig returns a reasonable starting configuration: not/and/or
// with their usual symbols (OR implicit), the built-in numeric and string
// value types in precedence order, no keywords, and a single default field
// named "default", matching the original's own default_fields=['default'].
func DefaultConfig() GrammarConfig {
	return GrammarConfig{
		Operators: []OperatorSpec{
			{Name: tree.NameNot, Symbols: []string{"NOT", "-", "!"}},
			{Name: tree.NameAnd, Symbols: []string{"AND", "+"}},
			{Name: tree.NameOr, Symbols: []string{"OR"}, Implicit: true},
		},
		ValueTypes: []ValueTypeSpec{
			{Name: "integer_range", Precedence: 10},
			{Name: "integer_comparison", Precedence: 8},
			{Name: "string_proximity", Precedence: 7},
			{Name: "integer", Precedence: 6},
			{Name: "container", Precedence: 5},
			{Name: "partial_string", Precedence: 3},
			{Name: "quoted_string", Precedence: 2},
		},
		DefaultFields:  []string{"default"},
		FieldSeparator: ":",
	}
}

// GrammarFactory builds Grammar values from a GrammarConfig. It holds no
// state of its own; its methods are plain constructors grouped under one
// name for discoverability, matching the teacher's *Factory convention.
type GrammarFactory struct{}

// BuildDefault builds a Grammar from DefaultConfig.
func (GrammarFactory) BuildDefault() (*Grammar, error) {
	return GrammarFactory{}.Build(DefaultConfig())
}

// Build compiles cfg into a ready-to-use Grammar.
func (GrammarFactory) Build(cfg GrammarConfig) (*Grammar, error) {
	g := &Grammar{cfg: cfg}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildDefault is the package-level shorthand for
// GrammarFactory{}.BuildDefault().
func BuildDefault() (*Grammar, error) { return GrammarFactory{}.BuildDefault() }

// Build is the package-level shorthand for GrammarFactory{}.Build(cfg).
func Build(cfg GrammarConfig) (*Grammar, error) { return GrammarFactory{}.Build(cfg) }

// parseFn is a single recursive-descent level: given input and a byte
// offset, it either recognizes a prefix starting at (or after skipping
// whitespace from) pos and returns the parsed value and the position just
// past it, or returns a non-nil error. There is no "soft" not-matched
// return at the base level - every position must parse as at least one
// primitive - but the and/or/not levels above it fall back to their inner
// level's result when no operator symbol is present.
type parseFn func(input string, pos int) (any, int, error)

// Grammar is an immutable-once-built, concurrency-safe expression
// recognizer. Its add_*/remove_* methods return a grammar rebuilt with the
// requested change rather than mutating the live recognizer out from under
// a parse in flight: each one compiles a separate Grammar from a copy of
// the configuration and leaves the receiver's recognizer unchanged.
type Grammar struct {
	mu sync.RWMutex

	cfg      GrammarConfig
	registry *registry.Registry
	termP    *term.Parser
	log      *qlog.Logger
	cacheSt  *cache.Cache

	fieldMatcher *primitive.MultiField
	valueAlt     primitive.Alternation
	topExpr      parseFn
}

// rebuild recompiles the recognizer from the current cfg. Callers must
// hold g.mu for writing (or, for the initial Build, own the only
// reference to g).
func (g *Grammar) rebuild() error {
	reg := g.cfg.Registry
	if reg == nil {
		reg = registry.NewDefault()
	}
	logger := g.cfg.Logger
	if logger == nil {
		logger = qlog.Nop()
	}
	sep := g.cfg.FieldSeparator
	if sep == "" {
		sep = ":"
	}

	termP := term.New(term.Config{
		DefaultFields:   g.cfg.DefaultFields,
		FieldAliases:    g.cfg.FieldAliases,
		IntegerAsString: g.cfg.IntegerAsString,
	})

	types := append([]ValueTypeSpec(nil), g.cfg.ValueTypes...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Precedence > types[j].Precedence })

	candidates := make([]primitive.Matcher, 0, len(types))
	for _, vt := range types {
		ctor, err := reg.Get(vt.Name)
		if err != nil {
			return err
		}
		m, err := ctor(termP, vt.Precedence)
		if err != nil {
			return qerrors.NewConfigError("value type constructor failed", vt.Name).Wrap(err)
		}
		candidates = append(candidates, m)
	}

	for _, op := range g.cfg.Operators {
		switch strings.ToLower(op.Name) {
		case tree.NameAnd, tree.NameOr, tree.NameNot:
		default:
			return qerrors.NewConfigError("unknown operator name", op.Name)
		}
	}

	g.registry = reg
	g.termP = termP
	g.log = logger
	g.fieldMatcher = primitive.NewMultiField(11, sep, nil)
	g.valueAlt = primitive.Alternation{Candidates: candidates}

	current := g.matchBase
	for _, op := range g.cfg.Operators {
		current = g.wrapLevel(op, current)
	}
	g.topExpr = current

	logger.Debug("grammar rebuilt", map[string]any{
		"value_types": len(candidates),
		"operators":   len(g.cfg.Operators),
		"keywords":    len(g.cfg.Keywords),
	})
	return nil
}

// matchTerm recognizes an optional field/multi-field prefix followed by a
// value from the configured value-type alternation, and assembles the
// resulting Term.
func (g *Grammar) matchTerm(input string, pos int) (term.Term, int, bool) {
	cur := pos
	var fieldPath []string
	if m, ok := g.fieldMatcher.TryMatch(input, cur); ok {
		fieldPath, _ = m.Value.([]string)
		cur += m.Length
	}

	valM, ok := g.valueAlt.TryMatch(input, cur)
	if !ok {
		return term.Term{}, 0, false
	}
	cur += valM.Length
	value, _ := valM.Value.(term.Value)

	var t term.Term
	switch len(fieldPath) {
	case 0:
		t = g.termP.BuildTerm(nil, value)
	case 1:
		t = g.termP.BuildTerm(&fieldPath[0], value)
	default:
		t = g.termP.BuildMultiFieldTerm(fieldPath, value)
	}
	return t, cur - pos, true
}

// matchKeyword recognizes one configured keyword clause, e.g. "status:open".
func (g *Grammar) matchKeyword(spec KeywordSpec, input string, pos int) (term.Term, int, bool) {
	sep := spec.Separator
	if sep == "" {
		sep = g.cfg.FieldSeparator
	}
	if sep == "" {
		sep = ":"
	}

	if !matchLiteralCI(input, pos, spec.Name) {
		return term.Term{}, 0, false
	}
	cur := pos + len(spec.Name)
	if !strings.HasPrefix(input[cur:], sep) {
		return term.Term{}, 0, false
	}
	cur += len(sep)

	best := ""
	for _, v := range spec.Values {
		if len(v) > len(best) && matchLiteralCI(input, cur, v) {
			best = v
		}
	}
	if best != "" {
		t := g.termP.BuildKeywordTerm(spec.Name, best)
		return t, (cur + len(best)) - pos, true
	}
	if spec.AllowOther {
		w := primitive.NewWord("keyword_value", 0, primitive.IsSimpleWordByte, 1, nil)
		if m, ok := w.TryMatch(input, cur); ok {
			t := g.termP.BuildKeywordTerm(spec.Name, m.Value.(string))
			return t, (cur + m.Length) - pos, true
		}
	}
	return term.Term{}, 0, false
}

// matchBase is the innermost expression element (§4.4): a parenthesized
// sub-expression, else the longest-matching configured keyword clause,
// else a term. Unlike the operator levels above it, failing to match here
// is always a syntax error - every position in a valid query must start
// at least a primitive.
func (g *Grammar) matchBase(input string, pos int) (any, int, error) {
	cur := skipSpace(input, pos)

	if cur < len(input) && input[cur] == '(' {
		val, afterExpr, err := g.topExpr(input, cur+1)
		if err != nil {
			return nil, 0, err
		}
		afterExpr = skipSpace(input, afterExpr)
		if afterExpr >= len(input) || input[afterExpr] != ')' {
			return nil, 0, qerrors.NewSyntaxError("unterminated parenthesized group", cur, input)
		}
		return val, afterExpr + 1, nil
	}

	bestLen := -1
	var bestTerm term.Term
	for _, spec := range g.cfg.Keywords {
		if t, l, ok := g.matchKeyword(spec, input, cur); ok && l > bestLen {
			bestTerm, bestLen = t, l
		}
	}
	if bestLen >= 0 {
		return bestTerm, cur + bestLen, nil
	}

	if t, l, ok := g.matchTerm(input, cur); ok {
		return t, cur + l, nil
	}

	return nil, 0, qerrors.NewSyntaxError("no primitive matched", cur, input)
}

// wrapLevel builds one operator level around inner, implementing the
// group-wrapping rule: a binary level that consumes more than one operand
// returns its own flat []any token list (embedded as a single nested
// element when an outer, looser-precedence level consumes it); a level
// that finds only one operand passes inner's result through unchanged.
func (g *Grammar) wrapLevel(spec OperatorSpec, inner parseFn) parseFn {
	name := strings.ToLower(spec.Name)
	if name == tree.NameNot {
		return func(input string, pos int) (any, int, error) {
			cur := skipSpace(input, pos)
			matched, symLen := matchAnySymbol(input, cur, spec.Symbols)
			if !matched {
				return inner(input, pos)
			}
			val, after, err := inner(input, cur+symLen)
			if err != nil {
				return nil, 0, err
			}
			return []any{tree.NameNot, val}, after, nil
		}
	}

	return func(input string, pos int) (any, int, error) {
		first, cur, err := inner(input, pos)
		if err != nil {
			return nil, 0, err
		}
		items := []any{first}
		matchedAny := false

		for {
			tryPos := skipSpace(input, cur)
			matchedSym, symLen := matchAnySymbol(input, tryPos, spec.Symbols)
			if !matchedSym && !spec.Implicit {
				break
			}
			nextPos := tryPos
			if matchedSym {
				nextPos = tryPos + symLen
			}

			val, after, err2 := inner(input, nextPos)
			if err2 != nil {
				if matchedSym {
					return nil, 0, err2
				}
				break
			}
			items = append(items, name, val)
			cur = after
			matchedAny = true
		}

		if !matchedAny {
			return first, cur, nil
		}
		return items, cur, nil
	}
}

// matchAnySymbol tries every symbol at pos and reports the first match and
// its length. Alphabetic symbols are matched case-insensitively and
// require a trailing non-word-character boundary.
func matchAnySymbol(input string, pos int, symbols []string) (bool, int) {
	for _, sym := range symbols {
		if sym == "" {
			continue
		}
		if pos+len(sym) > len(input) {
			continue
		}
		if isAlphaByte(sym[0]) {
			if !strings.EqualFold(input[pos:pos+len(sym)], sym) {
				continue
			}
			end := pos + len(sym)
			if end < len(input) && isWordByte(input[end]) {
				continue
			}
			return true, len(sym)
		}
		if input[pos:pos+len(sym)] == sym {
			return true, len(sym)
		}
	}
	return false, 0
}

func matchLiteralCI(input string, pos int, lit string) bool {
	if pos+len(lit) > len(input) {
		return false
	}
	return strings.EqualFold(input[pos:pos+len(lit)], lit)
}

func skipSpace(input string, pos int) int {
	for pos < len(input) && isSpaceByte(input[pos]) {
		pos++
	}
	return pos
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isAlphaByte(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isWordByte(b byte) bool {
	return isAlphaByte(b) || (b >= '0' && b <= '9') || b == '_'
}

// Parse recognizes input as a complete expression and folds it into a
// Query. A non-empty suffix left over after the outermost level returns is
// a syntax error (trailing garbage), as is any position the grammar
// couldn't recognize at all.
func (g *Grammar) Parse(input string) (*Query, error) {
	g.mu.RLock()
	expr := g.topExpr
	logger := g.log
	g.mu.RUnlock()

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		err := qerrors.NewSyntaxError("empty query", 0, input)
		logger.Error("parse failed", err, map[string]any{"query": input})
		return nil, err
	}

	val, pos, err := expr(trimmed, 0)
	if err != nil {
		logger.Error("parse failed", err, map[string]any{"query": input})
		return nil, err
	}
	pos = skipSpace(trimmed, pos)
	if pos != len(trimmed) {
		err := qerrors.NewSyntaxError("unexpected trailing input", pos, trimmed)
		logger.Error("parse failed", err, map[string]any{"query": input})
		return nil, err
	}

	root, err := tree.Build(val)
	if err != nil {
		logger.Error("parse failed", err, map[string]any{"query": input})
		return nil, err
	}
	logger.Trace("parsed query", map[string]any{"query": input})
	return newQuery(root, input), nil
}

// WithCache returns a shallow copy of g with an LRU cache of size maxSize
// attached for ParseCached. A non-positive maxSize disables caching.
func (g *Grammar) WithCache(maxSize int) *Grammar {
	g.mu.RLock()
	cp := *g
	g.mu.RUnlock()
	cp.cacheSt = cache.New(maxSize)
	return &cp
}

// ParseCached behaves like Parse but memoizes successful results keyed on
// the raw input string. Safe to call without WithCache: it then behaves
// exactly like Parse.
func (g *Grammar) ParseCached(input string) (*Query, error) {
	g.mu.RLock()
	c := g.cacheSt
	g.mu.RUnlock()
	if c == nil {
		return g.Parse(input)
	}
	if v, ok := c.Get(input); ok {
		q := v.(*Query)
		return q, nil
	}
	q, err := g.Parse(input)
	if err != nil {
		return nil, err
	}
	c.Set(input, q)
	return q, nil
}

// AddKeyword returns a grammar with kw appended to the keyword table.
// Duplicate names are rejected with a ConfigError.
func (g *Grammar) AddKeyword(kw KeywordSpec) (*Grammar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, existing := range g.cfg.Keywords {
		if existing.Name == kw.Name {
			return nil, qerrors.NewConfigError("duplicate keyword name", kw.Name)
		}
	}
	next := g.cloneLocked()
	next.cfg.Keywords = append(append([]KeywordSpec(nil), g.cfg.Keywords...), kw)
	if err := next.rebuild(); err != nil {
		return nil, err
	}
	return next, nil
}

// AddValueType returns a grammar with an additional value-type recognizer
// inserted in precedence order.
func (g *Grammar) AddValueType(vt ValueTypeSpec) (*Grammar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.cloneLocked()
	next.cfg.ValueTypes = append(append([]ValueTypeSpec(nil), g.cfg.ValueTypes...), vt)
	if err := next.rebuild(); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveType returns a grammar with the named value type removed, if
// present; absent names are tolerated silently.
func (g *Grammar) RemoveType(name string) (*Grammar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.cloneLocked()
	next.cfg.ValueTypes = filterValueTypes(g.cfg.ValueTypes, name)
	if err := next.rebuild(); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveOperator returns a grammar with the named operator level removed,
// if present; absent names are tolerated silently. Removing "not" means
// its symbols (e.g. "-") stop being recognized as a prefix operator and
// become ordinary characters available to field names and words.
func (g *Grammar) RemoveOperator(name string) (*Grammar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.cloneLocked()
	filtered := make([]OperatorSpec, 0, len(g.cfg.Operators))
	for _, op := range g.cfg.Operators {
		if !strings.EqualFold(op.Name, name) {
			filtered = append(filtered, op)
		}
	}
	next.cfg.Operators = filtered
	if err := next.rebuild(); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveKeyword returns a grammar with the named keyword removed, if
// present; absent names are tolerated silently.
func (g *Grammar) RemoveKeyword(name string) (*Grammar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.cloneLocked()
	filtered := make([]KeywordSpec, 0, len(g.cfg.Keywords))
	for _, kw := range g.cfg.Keywords {
		if kw.Name != name {
			filtered = append(filtered, kw)
		}
	}
	next.cfg.Keywords = filtered
	if err := next.rebuild(); err != nil {
		return nil, err
	}
	return next, nil
}

// cloneLocked returns a new Grammar sharing g's config by value (so the
// caller can mutate the copy's slices without touching g); g.mu must
// already be held.
func (g *Grammar) cloneLocked() *Grammar {
	cfg := g.cfg
	return &Grammar{cfg: cfg}
}

func filterValueTypes(types []ValueTypeSpec, name string) []ValueTypeSpec {
	out := make([]ValueTypeSpec, 0, len(types))
	for _, vt := range types {
		if vt.Name != name {
			out = append(out, vt)
		}
	}
	return out
}

// Operators returns the configured operator table, in precedence order.
func (g *Grammar) Operators() []OperatorSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]OperatorSpec(nil), g.cfg.Operators...)
}

// ValueTypes returns the configured value-type descriptors.
func (g *Grammar) ValueTypes() []ValueTypeSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]ValueTypeSpec(nil), g.cfg.ValueTypes...)
}

// Keywords returns the configured keyword names.
func (g *Grammar) Keywords() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, len(g.cfg.Keywords))
	for i, kw := range g.cfg.Keywords {
		names[i] = kw.Name
	}
	return names
}

// FieldName reports the field recognizer's registry name: "multi_field",
// since a single "name:" is just a length-1 path.
func (g *Grammar) FieldName() string {
	return "multi_field"
}

// DefaultFields returns the configured default field names.
func (g *Grammar) DefaultFields() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.cfg.DefaultFields...)
}
