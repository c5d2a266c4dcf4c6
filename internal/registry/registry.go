// Package registry is the sole extension point for adding or removing
// value-type recognizers at runtime (§6, §9) - it replaces the original's
// dotted-path dynamic class loading (util.load_module) with a plain
// name -> constructor lookup table that the caller can extend.
package registry

import (
	"sync"

	"github.com/infiniv/querygrammar/internal/primitive"
	"github.com/infiniv/querygrammar/internal/qerrors"
	"github.com/infiniv/querygrammar/internal/term"
)

// Constructor builds a primitive.Matcher for one value type. tp supplies
// the parse-action callbacks (§4.2); precedence is the caller-configured
// ordering used to break longest-or ties (§4.3).
type Constructor func(tp *term.Parser, precedence int) (primitive.Matcher, error)

// Registry is a thread-safe name -> Constructor table.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Constructor)}
}

// NewDefault returns a registry pre-populated with the built-in value
// types: integer, integer_range, integer_comparison (all four comparison
// operators), quoted_string, partial_string, container, and
// string_proximity.
func NewDefault() *Registry {
	r := New()
	for name, ctor := range builtins {
		r.entries[name] = ctor
	}
	return r
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = ctor
}

// Remove deletes name from the registry, if present. Matches the
// original's silent-if-absent removal semantics.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Get resolves name to a Constructor, or a ConfigError if it isn't
// registered.
func (r *Registry) Get(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.entries[name]
	if !ok {
		return nil, qerrors.NewConfigError("unknown registry key", name)
	}
	return ctor, nil
}

// Has reports whether name is currently registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns the currently registered keys, in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	return out
}

var builtins = map[string]Constructor{
	"integer": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewInteger(precedence, tp.IntegerParse), nil
	},
	"integer_range": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewIntegerRange(precedence, "", tp.RangeParse), nil
	},
	"integer_comparison": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewIntegerComparison(precedence, tp.IntegerComparisonParse), nil
	},
	"quoted_string": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewQuotedString(precedence, tp.QuotedStringParse), nil
	},
	"partial_string": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewWord("partial_string", precedence, primitive.IsSimpleWordByte, 1, tp.PartialStringParse), nil
	},
	"string_proximity": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		return primitive.NewStringProximity(precedence, tp.ProximityParse), nil
	},
	"container": func(tp *term.Parser, precedence int) (primitive.Matcher, error) {
		// Container elements are themselves a longest-or of the scalar
		// value types, matching the original's Integer ^ PartialString ^
		// QuotedString (§4.1) - "[a,b,c]" and "[1,2,3]" must both parse.
		elem := primitive.Alternation{Candidates: []primitive.Matcher{
			primitive.NewInteger(precedence, tp.IntegerParse),
			primitive.NewQuotedString(precedence, tp.QuotedStringParse),
			primitive.NewWord("partial_string", precedence, primitive.IsSimpleWordByte, 1, tp.PartialStringParse),
		}}
		return primitive.NewContainer(precedence, elem, tp.ContainerParse), nil
	},
}
