// Package testdata holds fixture queries shared by table-driven and
// benchmark tests across the module, in the spirit of the teacher's own
// internal/testdata: a handful of representative inputs grouped by shape
// rather than one test inventing its own ad hoc strings.
package testdata

// BenchmarkQueries groups representative query strings by complexity, for
// use in both correctness tables and Benchmark* functions.
var BenchmarkQueries = struct {
	Simple  []string
	Complex []string
	Nested  []string
}{
	Simple: []string{
		"status:open",
		"priority:5",
		"age:18..30",
		`name:"bob"`,
		`tag:"urgent*"`,
	},
	Complex: []string{
		"status:open AND priority:>=3",
		"(status:open OR status:pending) AND NOT tag:archived",
		`text:"exact phrase"~3 AND owner:alice`,
		"category:[1,2,3] AND price:>=100",
		"status:open priority:5",
	},
	Nested: []string{
		"(status:open AND priority:>=3) OR (status:pending AND owner:bob)",
		"NOT (status:closed OR status:archived) AND owner:alice",
		"((a:1 AND b:2) OR (c:3 AND d:4)) AND NOT e:5",
	},
}
