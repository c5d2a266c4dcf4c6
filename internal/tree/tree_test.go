package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/infiniv/querygrammar/internal/term"
	"github.com/kr/pretty"
)

func leaf(field, s string) term.Term {
	return term.Term{
		Field: term.Field{Kind: term.FieldDefault, Name: field},
		Value: term.PartialStringValue{S: s},
	}
}

func treeCmp() cmp.Option {
	return cmpopts.IgnoreUnexported(And{}, Or{}, Not{})
}

func TestBuildSingleTerm(t *testing.T) {
	a := leaf("text", "hello")
	n, err := Build([]any{a})
	if err != nil {
		t.Fatal(err)
	}
	operand, ok := n.(*Operand)
	if !ok {
		t.Fatalf("got %T, want *Operand", n)
	}
	if diff := cmp.Diff(a, operand.Term); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s\nwant: %# v\ngot:  %# v", diff, pretty.Formatter(a), pretty.Formatter(operand.Term))
	}
}

func TestBuildNot(t *testing.T) {
	a := leaf("text", "hello")
	n, err := Build([]any{"not", a})
	if err != nil {
		t.Fatal(err)
	}
	notNode, ok := n.(*Not)
	if !ok {
		t.Fatalf("got %T, want *Not", n)
	}
	if notNode.Child().(*Operand).Term.Value.(term.PartialStringValue).S != "hello" {
		t.Fatalf("unexpected child: %+v", notNode.Child())
	}
}

func TestBuildAndChain(t *testing.T) {
	a, b, c, d := leaf("f", "a"), leaf("f", "b"), leaf("f", "c"), leaf("f", "d")
	n, err := Build([]any{a, "and", b, "and", c, "and", d})
	if err != nil {
		t.Fatal(err)
	}
	root, ok := n.(*And)
	if !ok {
		t.Fatalf("got %T, want *And", n)
	}
	if root.Right().(*Operand).Term.Value.(term.PartialStringValue).S != "d" {
		t.Fatalf("right = %+v", root.Right())
	}
	leftAnd, ok := root.Left().(*And)
	if !ok {
		t.Fatalf("left = %T, want *And", root.Left())
	}
	innerAnd, ok := leftAnd.Left().(*And)
	if !ok {
		t.Fatalf("leftAnd.Left = %T, want *And", leftAnd.Left())
	}
	if innerAnd.Left().(*Operand).Term.Value.(term.PartialStringValue).S != "a" {
		t.Fatalf("innerAnd.Left = %+v", innerAnd.Left())
	}
	if innerAnd.Right().(*Operand).Term.Value.(term.PartialStringValue).S != "b" {
		t.Fatalf("innerAnd.Right = %+v", innerAnd.Right())
	}
	if leftAnd.Right().(*Operand).Term.Value.(term.PartialStringValue).S != "c" {
		t.Fatalf("leftAnd.Right = %+v", leftAnd.Right())
	}
}

func TestBuildOrOfAndGroup(t *testing.T) {
	a, b, c := leaf("f", "a"), leaf("f", "b"), leaf("f", "c")
	n, err := Build([]any{a, "or", []any{b, "and", c}})
	if err != nil {
		t.Fatal(err)
	}
	root, ok := n.(*Or)
	if !ok {
		t.Fatalf("got %T, want *Or", n)
	}
	if root.Left().(*Operand).Term.Value.(term.PartialStringValue).S != "a" {
		t.Fatalf("left = %+v", root.Left())
	}
	and, ok := root.Right().(*And)
	if !ok {
		t.Fatalf("right = %T, want *And", root.Right())
	}
	if and.Left().(*Operand).Term.Value.(term.PartialStringValue).S != "b" {
		t.Fatalf("and.left = %+v", and.Left())
	}
	if and.Right().(*Operand).Term.Value.(term.PartialStringValue).S != "c" {
		t.Fatalf("and.right = %+v", and.Right())
	}
}

func TestBuildAndWithNegatedRightOperand(t *testing.T) {
	d, e := leaf("f", "d"), leaf("f", "e")
	n, err := Build([]any{d, "and", []any{"not", e}})
	if err != nil {
		t.Fatal(err)
	}
	and, ok := n.(*And)
	if !ok {
		t.Fatalf("got %T, want *And", n)
	}
	notNode, ok := and.Right().(*Not)
	if !ok {
		t.Fatalf("and.Right = %T, want *Not", and.Right())
	}
	if notNode.Child().(*Operand).Term.Value.(term.PartialStringValue).S != "e" {
		t.Fatalf("not child = %+v", notNode.Child())
	}
}

func TestBuildRejectsEmpty(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("expected error for empty element list")
	}
}

func TestBuildRejectsBinaryWithoutLeftOperand(t *testing.T) {
	if _, err := Build([]any{"and", leaf("f", "a")}); err == nil {
		t.Fatalf("expected error for and with no left operand")
	}
}

func TestLeavesIgnoresNegated(t *testing.T) {
	a, b, c := leaf("f", "a"), leaf("f", "b"), leaf("f", "c")
	n, err := Build([]any{a, "and", []any{"not", b}, "or", c})
	if err != nil {
		t.Fatal(err)
	}
	// without ignoring negated terms
	all := Leaves(n, false)
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// ignoring negated terms drops b
	filtered := Leaves(n, true)
	var got []string
	for _, o := range filtered {
		got = append(got, o.Term.Value.(term.PartialStringValue).S)
	}
	for _, s := range got {
		if s == "b" {
			t.Fatalf("expected negated leaf b to be excluded, got %v", got)
		}
	}
}
