// Package tree implements the query tree node types (Operand/And/Or/Not)
// and the builder that folds a grammar's flat token sequence into one
// (§3, §4.5). And/Or/Not expose AddInput so query.go (the stack/combine
// facade) can grow a fresh root when mixing two existing trees; everything
// else treats a returned Node as opaque and read-only, matching the
// "immutable once built" invariant.
package tree

import "github.com/infiniv/querygrammar/internal/term"

// Node is any node of a query tree.
type Node interface {
	// IsLeaf reports whether this node is an Operand.
	IsLeaf() bool
	// Children returns this node's direct children, in left-to-right order.
	// A leaf (Operand) has no children.
	Children() []Node
}

// Operator is the subset of Node that accepts new operands: And/Or/Not.
type Operator interface {
	Node
	// AddInput attaches x as the next operand, rebalancing (for And/Or) or
	// rejecting a second child (for Not) as appropriate.
	AddInput(x Node) (Node, error)
}

// Operand is a leaf node wrapping one parsed Term.
type Operand struct {
	Term term.Term
}

func (o *Operand) IsLeaf() bool     { return true }
func (o *Operand) Children() []Node { return nil }

// And is a binary conjunction node.
type And struct {
	left, right Node
}

func (n *And) IsLeaf() bool     { return false }
func (n *And) Left() Node       { return n.left }
func (n *And) Right() Node      { return n.right }
func (n *And) Children() []Node { return []Node{n.left, n.right} }

// AddInput attaches x as the next operand. On the third call it rebalances:
// the current right child and x become a new And node, installed as the
// new right child.
func (n *And) AddInput(x Node) (Node, error) {
	switch {
	case n.left == nil:
		n.left = x
	case n.right == nil:
		n.right = x
	default:
		n.right = &And{left: n.right, right: x}
	}
	return n, nil
}

// Or is a binary disjunction node.
type Or struct {
	left, right Node
}

func (n *Or) IsLeaf() bool     { return false }
func (n *Or) Left() Node       { return n.left }
func (n *Or) Right() Node      { return n.right }
func (n *Or) Children() []Node { return []Node{n.left, n.right} }

// AddInput attaches x as the next operand, rebalancing on the third call
// exactly as And.AddInput does.
func (n *Or) AddInput(x Node) (Node, error) {
	switch {
	case n.left == nil:
		n.left = x
	case n.right == nil:
		n.right = x
	default:
		n.right = &Or{left: n.right, right: x}
	}
	return n, nil
}

// Not is a unary negation node. It accepts exactly one child; a second
// AddInput call fails with NotAttachError.
type Not struct {
	child Node
}

func (n *Not) IsLeaf() bool     { return false }
func (n *Not) Child() Node      { return n.child }
func (n *Not) Children() []Node { return []Node{n.child} }
