package querygrammar

import (
	"strconv"
	"strings"

	"github.com/infiniv/querygrammar/internal/term"
	"github.com/infiniv/querygrammar/internal/tree"
)

// stringify renders a query tree back to text, in the spirit of the
// original's Node.__unicode__: a leaf renders as "field:value" (or just
// "value" when the field is the default, since a default term may have
// matched any of several configured default fields and there's no way to
// know which one); And/Or render as a fully parenthesized binary
// expression; Not renders as a "not " prefix.
//
// Open question (§9, "stringify alias collisions"): when a field was
// resolved from an alias at parse time, the tree only remembers the
// resolved target name. This implementation always renders the target
// name, never the alias the user originally typed.
func stringify(n tree.Node) string {
	switch v := n.(type) {
	case *tree.Operand:
		return stringifyTerm(v.Term)
	case *tree.Not:
		return "not " + stringify(v.Child())
	case *tree.And:
		return "(" + stringify(v.Left()) + " AND " + stringify(v.Right()) + ")"
	case *tree.Or:
		return "(" + stringify(v.Left()) + " OR " + stringify(v.Right()) + ")"
	default:
		return ""
	}
}

func stringifyTerm(t term.Term) string {
	valText := stringifyValue(t.Value)
	switch t.Field.Kind {
	case term.FieldDefault:
		return valText
	case term.FieldKeyword:
		return t.Field.Name + ":" + valText
	default: // FieldAttribute
		prefix := t.Field.Name
		if len(t.Field.Names) > 0 {
			prefix = strings.Join(t.Field.Names, ":")
		}
		return prefix + ":" + valText
	}
}

func stringifyValue(v term.Value) string {
	switch val := v.(type) {
	case term.IntValue:
		return strconv.FormatInt(val.N, 10)
	case term.ExactStringValue:
		return `"` + val.S + `"`
	case term.PartialStringValue:
		return val.S
	case term.KeywordValue:
		return val.S
	case term.RangeValue:
		return stringifyValue(val.Lo) + ".." + stringifyValue(val.Hi)
	case term.ComparisonValue:
		if val.AsString {
			return comparisonSymbol(val.Op) + val.S
		}
		return comparisonSymbol(val.Op) + strconv.FormatInt(val.N, 10)
	case term.ContainerValue:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = stringifyValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case term.ProximityValue:
		return `"` + val.Text + `"~` + strconv.FormatInt(val.Distance, 10)
	default:
		return ""
	}
}

func comparisonSymbol(op string) string {
	switch op {
	case term.OpGreaterThan:
		return ">"
	case term.OpGreaterEqualThan:
		return ">="
	case term.OpLowerThan:
		return "<"
	case term.OpLowerEqualThan:
		return "<="
	default:
		return ""
	}
}
