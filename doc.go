// Package querygrammar builds runtime-configurable search query grammars:
// boolean expressions over typed terms (fields, value types, keywords) with
// operator precedence, parenthesized sub-expressions, and implicit
// (elided) operators. Nothing about the grammar - its value types, its
// operator symbols and precedence, its keyword shortcuts - is fixed at
// compile time; all of it is assembled by GrammarFactory from a
// GrammarConfig and can be extended or narrowed afterwards with the
// Grammar's add_*/remove_* methods.
//
// A typical caller builds a grammar once and reuses it concurrently:
//
//	g, err := querygrammar.BuildDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	q, err := g.Parse(`status:open AND (priority:>=3 OR tag:"urgent")`)
//
// The result of a successful Parse is a Query: an immutable handle onto a
// query tree that can be inspected (Terms), rendered back to text
// (String), or mixed with another Query (Stack, Combine) to build up
// composite searches incrementally.
package querygrammar
