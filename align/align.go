// Package align maps character spans from the coreference resolver back
// onto dialogue turns.
package align

import (
	"fmt"
	"strings"

	"github.com/maastricht-university/coref-chains/discourse"
)

// Span is a half-open code point range into the concatenated dialogue text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// Turn returns the first turn, in ascending order, that contains the span:
// start >= turn.Start and end <= turn.End. The comparison is kept loose on
// purpose; resolver spans can run up to the trailing separator.
func Turn(s Span, turns []discourse.Turn) (discourse.Turn, bool) {
	for _, t := range turns {
		if s.Start >= t.Start && s.End <= t.End {
			return t, true
		}
	}
	return discourse.Turn{}, false
}

// Match is a span resolved to its turn, with its trimmed surface text.
type Match struct {
	Span Span
	Turn discourse.Turn
	Text string
}

// Result holds the matches of one cluster and the spans that were dropped.
type Result struct {
	Matches []Match
	Dropped []Span
}

// Aligner resolves clusters against one indexed dialogue.
type Aligner struct {
	idx   discourse.Indexed
	runes []rune
}

func New(idx discourse.Indexed) *Aligner {
	return &Aligner{idx: idx, runes: []rune(idx.Text)}
}

// Cluster aligns every span of a cluster. Spans outside every turn, or with
// start after end, are dropped rather than reported as errors.
func (a *Aligner) Cluster(spans []Span) Result {
	var res Result
	for _, s := range spans {
		t, ok := Turn(s, a.idx.Turns)
		if !ok || s.Start > s.End {
			res.Dropped = append(res.Dropped, s)
			continue
		}
		res.Matches = append(res.Matches, Match{
			Span: s,
			Turn: t,
			Text: strings.TrimSpace(string(a.runes[s.Start:s.End])),
		})
	}
	return res
}
