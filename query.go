package querygrammar

import (
	"fmt"
	"strings"

	"github.com/infiniv/querygrammar/internal/qerrors"
	"github.com/infiniv/querygrammar/internal/tree"
)

// history is one recorded point in a Query's stack/combine lineage: the
// tree root and the raw text that would reproduce it.
type history struct {
	root tree.Node
	raw  string
}

// Query is an immutable handle onto a parsed (or programmatically mixed)
// query tree. Mixing two queries with Stack or Combine never mutates
// either operand; it returns a new Query whose lineage remembers every
// intermediate stacking/combining step, so a caller can walk back to any
// earlier point with QueryFromStack/QueryFromCombine.
type Query struct {
	root tree.Node
	raw  string

	stackMap   map[int]history
	combineMap map[int]history
}

// newQuery wraps a freshly built tree as a Query with a fresh, one-entry
// lineage, as returned directly by Grammar.Parse.
func newQuery(root tree.Node, raw string) *Query {
	h := history{root: root, raw: raw}
	return &Query{
		root:       root,
		raw:        raw,
		stackMap:   map[int]history{0: h},
		combineMap: map[int]history{0: h},
	}
}

// Tree returns the query's parsed root node.
func (q *Query) Tree() Node { return q.root }

// Raw returns the text this Query would reproduce (the original parsed
// input, or a synthesized "(a) AND (b)"-shaped expression after Stack or
// Combine).
func (q *Query) Raw() string { return q.raw }

// Terms returns every leaf Term reachable in the tree, in left-to-right
// order. When ignoreNegated is true, terms under a Not node are excluded.
func (q *Query) Terms(ignoreNegated bool) []Term {
	operands := tree.Leaves(q.root, ignoreNegated)
	out := make([]Term, len(operands))
	for i, o := range operands {
		out[i] = o.Term
	}
	return out
}

// Stack ANDs this query with other, returning a new Query. The combined
// query's combine_map is inherited in full from this query (Stack doesn't
// disturb any prior OR-level history); a new stack_map entry is appended
// at the next level.
func (q *Query) Stack(other *Query) (*Query, error) {
	return q.mix(other, tree.NameAnd, true)
}

// Combine ORs this query with other, returning a new Query. Symmetric to
// Stack: the stack_map is inherited in full, and a new combine_map entry
// is appended.
func (q *Query) Combine(other *Query) (*Query, error) {
	return q.mix(other, tree.NameOr, false)
}

func (q *Query) mix(other *Query, opName string, isStack bool) (*Query, error) {
	if other == nil {
		return nil, qerrors.NewTreeConstructionError("cannot mix with a nil query")
	}
	op, err := tree.NewOperator(opName)
	if err != nil {
		return nil, err
	}
	node, err := op.AddInput(q.root)
	if err != nil {
		return nil, err
	}
	node, err = node.(tree.Operator).AddInput(other.root)
	if err != nil {
		return nil, err
	}

	raw := fmt.Sprintf("(%s) %s (%s)", q.raw, strings.ToUpper(opName), other.raw)
	nq := &Query{
		root:       node,
		raw:        raw,
		stackMap:   cloneHistory(q.stackMap),
		combineMap: cloneHistory(q.combineMap),
	}
	h := history{root: node, raw: raw}
	if isStack {
		nq.stackMap[len(nq.stackMap)] = h
	} else {
		nq.combineMap[len(nq.combineMap)] = h
	}
	return nq, nil
}

// QueryFromStack returns a fresh Query seeded at the given stack level
// (0 is the query as first parsed), discarding this Query's further
// lineage, along with whether that level exists.
func (q *Query) QueryFromStack(level int) (*Query, bool) {
	h, ok := q.stackMap[level]
	if !ok {
		return nil, false
	}
	return newQuery(h.root, h.raw), true
}

// QueryFromCombine returns a fresh Query seeded at the given combine
// level, symmetric to QueryFromStack.
func (q *Query) QueryFromCombine(level int) (*Query, bool) {
	h, ok := q.combineMap[level]
	if !ok {
		return nil, false
	}
	return newQuery(h.root, h.raw), true
}

// StackDepth reports how many stack levels this query's lineage records.
func (q *Query) StackDepth() int { return len(q.stackMap) }

// CombineDepth reports how many combine levels this query's lineage
// records.
func (q *Query) CombineDepth() int { return len(q.combineMap) }

// String renders the query tree back to text. This is not guaranteed to
// reproduce the exact original input byte-for-byte (whitespace is
// normalized and alias field names are rendered as their resolved target,
// since the tree no longer remembers which alias the user typed). Values
// are written without re-escaping: a quoted string containing "*" is
// rendered unquoted, and quotes, backslash escapes and other characters
// outside the word class are written as-is, so terms holding such text do
// not reparse to an equivalent tree.
func (q *Query) String() string {
	s := stringify(q.root)
	// Strip the outermost parenthesization a binary root always adds -
	// the original does the same (s[1:-1] if s.startswith('(')), §4.6.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return s
}

func cloneHistory(m map[int]history) map[int]history {
	out := make(map[int]history, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
