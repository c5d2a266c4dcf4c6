package tree

import (
	"strings"

	"github.com/infiniv/querygrammar/internal/qerrors"
	"github.com/infiniv/querygrammar/internal/term"
)

// Build folds a grammar-engine result into a single query tree. root is
// either a bare term.Term (a query with no operators at all) or a flat,
// possibly nested []any token sequence - operator name strings, term.Term
// leaves, and []any sub-sequences for parenthesized/higher-precedence
// groups - as produced by the recursive-descent expression levels.
func Build(root any) (Node, error) {
	switch v := root.(type) {
	case term.Term:
		return &Operand{Term: v}, nil
	case []any:
		return buildList(v)
	default:
		return nil, qerrors.NewTreeConstructionError("unrecognized root element")
	}
}

// buildList folds one flat token sequence, following the stack-based
// algorithm of §4.5: operator tokens pop a left operand (for and/or)
// before being pushed, and any other token is pushed as an operand,
// attaching to - and possibly through - whatever operator is already on
// top of the stack.
func buildList(elements []any) (Node, error) {
	if len(elements) == 0 {
		return nil, qerrors.NewTreeConstructionError("empty element list")
	}

	var stack []Node
	for _, raw := range elements {
		switch v := raw.(type) {
		case string:
			op, err := NewOperator(v)
			if err != nil {
				return nil, err
			}
			if !strings.EqualFold(v, NameNot) {
				if len(stack) == 0 {
					return nil, qerrors.NewTreeConstructionError("binary operator with no left operand")
				}
				left := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if _, err := op.AddInput(left); err != nil {
					return nil, err
				}
			}
			stack = append(stack, op)

		case term.Term:
			var err error
			stack, err = pushOperand(stack, &Operand{Term: v})
			if err != nil {
				return nil, err
			}

		case []any:
			sub, err := buildList(v)
			if err != nil {
				return nil, err
			}
			stack, err = pushOperand(stack, sub)
			if err != nil {
				return nil, err
			}

		default:
			return nil, qerrors.NewTreeConstructionError("unrecognized element in token sequence")
		}
	}

	if len(stack) == 0 {
		return nil, qerrors.NewTreeConstructionError("token sequence produced no tree")
	}
	return stack[len(stack)-1], nil
}

// pushOperand attaches x to the stack: if the stack is empty, x becomes the
// new top; otherwise x attaches to the current top, and - if a second,
// outer operator is waiting beneath it (e.g. an and/or whose right operand
// is a "not" that x just completed) - the result attaches to that one too.
func pushOperand(stack []Node, x Node) ([]Node, error) {
	if len(stack) == 0 {
		return append(stack, x), nil
	}

	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	op, ok := top.(Operator)
	if !ok {
		return nil, qerrors.NewTreeConstructionError("stack top is not an operator")
	}
	cur, err := op.AddInput(x)
	if err != nil {
		return nil, err
	}

	if len(stack) > 0 {
		if prevOp, ok := stack[len(stack)-1].(Operator); ok {
			stack = stack[:len(stack)-1]
			cur, err = prevOp.AddInput(cur)
			if err != nil {
				return nil, err
			}
		}
	}

	return append(stack, cur), nil
}
