package tree

import (
	"strings"

	"github.com/infiniv/querygrammar/internal/qerrors"
)

// AddInput attaches x as Not's single child. A second call fails: Not is
// unary and its grammar never produces a second operand, so reaching this
// path means the flat token sequence was malformed.
func (n *Not) AddInput(x Node) (Node, error) {
	if n.child != nil {
		return nil, qerrors.NewNotAttachError("not already has a child")
	}
	n.child = x
	return n, nil
}

// Operator name constants, matched case-insensitively by NewOperator.
const (
	NameAnd = "and"
	NameOr  = "or"
	NameNot = "not"
)

// NewOperator constructs a fresh, empty operator node for the given name.
// name is matched case-insensitively; anything else is a FactoryError.
func NewOperator(name string) (Operator, error) {
	switch strings.ToLower(name) {
	case NameAnd:
		return &And{}, nil
	case NameOr:
		return &Or{}, nil
	case NameNot:
		return &Not{}, nil
	default:
		return nil, qerrors.NewFactoryError("unknown operator", name)
	}
}
