package querygrammar

import (
	"github.com/infiniv/querygrammar/internal/term"
	"github.com/infiniv/querygrammar/internal/tree"
)

// The types below re-export the leaf data model and the query tree node
// types from their defining internal packages, so that callers working
// with Grammar/Query never need to import internal/term or internal/tree
// directly.

type (
	// Term is a leaf record pairing a field scope with a value.
	Term = term.Term
	// Field describes which field(s) a term's value applies to.
	Field = term.Field
	// FieldKind tags which kind of field a Term's value is scoped to.
	FieldKind = term.FieldKind
	// Value is the tagged union of leaf value payloads.
	Value = term.Value

	IntValue           = term.IntValue
	ExactStringValue   = term.ExactStringValue
	PartialStringValue = term.PartialStringValue
	KeywordValue       = term.KeywordValue
	RangeValue         = term.RangeValue
	ComparisonValue    = term.ComparisonValue
	ContainerValue     = term.ContainerValue
	ProximityValue     = term.ProximityValue
)

const (
	FieldAttribute = term.FieldAttribute
	FieldDefault   = term.FieldDefault
	FieldKeyword   = term.FieldKeyword
)

const (
	OpGreaterThan      = term.OpGreaterThan
	OpGreaterEqualThan = term.OpGreaterEqualThan
	OpLowerThan        = term.OpLowerThan
	OpLowerEqualThan   = term.OpLowerEqualThan
)

type (
	// Node is any node of a parsed query tree.
	Node = tree.Node
	// Operand is a leaf node wrapping one parsed Term.
	Operand = tree.Operand
	// And is a binary conjunction node.
	And = tree.And
	// Or is a binary disjunction node.
	Or = tree.Or
	// Not is a unary negation node.
	Not = tree.Not
)
