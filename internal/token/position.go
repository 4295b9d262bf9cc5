// Package token holds the minimal source-position vocabulary shared by
// the tree interface and the annotation output (spec §3.4, §6).
package token

// Position is a line/column pair, 1-indexed as source tools expect.
type Position struct {
	Line   int
	Column int
}

// Span is a half-open byte-offset range into the source text, paired
// with the resolved line/column of each end for annotation output.
type Span struct {
	Start    int
	End      int
	StartPos Position
	EndPos   Position
}
