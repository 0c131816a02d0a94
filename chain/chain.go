// Package chain aggregates aligned mentions into time-ordered anaphoric
// chains and derives the transitions between consecutive mentions.
package chain

import (
	"errors"
	"fmt"

	"github.com/maastricht-university/coref-chains/mention"
)

// ErrEmptyChain is returned when a chain would have no mentions.
var ErrEmptyChain = errors.New("chain cannot be initialized with an empty list of mentions")

// Mention is one aligned, classified reference occurrence.
type Mention struct {
	ClusterID int          `json:"cluster_id"`
	StartChar int          `json:"start_char"`
	EndChar   int          `json:"end_char"`
	TurnID    int          `json:"turn_id"`
	Speaker   string       `json:"speaker"`
	Text      string       `json:"text"`
	Form      mention.Form `json:"reference_type"`
}

// Chain is an immutable, non-empty sequence of mentions of one cluster,
// ordered by (turn, start offset).
type Chain struct {
	clusterID    int
	semanticType mention.SemanticType
	mentions     []Mention
}

// New builds a chain from mentions already sorted by (turn, start offset).
// The slice is copied.
func New(mentions []Mention, semanticType mention.SemanticType) (*Chain, error) {
	if len(mentions) == 0 {
		return nil, ErrEmptyChain
	}
	ms := make([]Mention, len(mentions))
	copy(ms, mentions)
	return &Chain{
		clusterID:    ms[0].ClusterID,
		semanticType: semanticType,
		mentions:     ms,
	}, nil
}

func (c *Chain) ClusterID() int                     { return c.clusterID }
func (c *Chain) SemanticType() mention.SemanticType { return c.semanticType }
func (c *Chain) InitialText() string                { return c.mentions[0].Text }
func (c *Chain) InitialForm() mention.Form          { return c.mentions[0].Form }
func (c *Chain) Len() int                           { return len(c.mentions) }

// Mentions returns a copy of the chain's mentions.
func (c *Chain) Mentions() []Mention {
	out := make([]Mention, len(c.mentions))
	copy(out, c.mentions)
	return out
}

func (c *Chain) String() string {
	return fmt.Sprintf("Chain(ID=%d, Length=%d, Initial=%q, Type=%s (%s))",
		c.clusterID, len(c.mentions), c.InitialText(), c.semanticType, c.InitialForm())
}

// TraceStep is one entry of an adaptation trace.
type TraceStep struct {
	TurnID  int          `json:"turn_id"`
	Form    mention.Form `json:"reference_type"`
	Speaker string       `json:"speaker"`
}

// AdaptationTrace lists (turn, form, speaker) for every mention in order.
func (c *Chain) AdaptationTrace() []TraceStep {
	trace := make([]TraceStep, 0, len(c.mentions))
	for _, m := range c.mentions {
		trace = append(trace, TraceStep{TurnID: m.TurnID, Form: m.Form, Speaker: m.Speaker})
	}
	return trace
}

// Row is the flattened export view of one mention.
type Row struct {
	TurnID  int          `json:"turn_id"`
	Speaker string       `json:"speaker"`
	Text    string       `json:"text"`
	Form    mention.Form `json:"reference_type"`
}

// TabularTrace lists every mention as an export row, in order.
func (c *Chain) TabularTrace() []Row {
	rows := make([]Row, 0, len(c.mentions))
	for _, m := range c.mentions {
		rows = append(rows, Row{TurnID: m.TurnID, Speaker: m.Speaker, Text: m.Text, Form: m.Form})
	}
	return rows
}

// Transition is an adjacent mention pair within a chain.
type Transition struct {
	ClusterID      int          `json:"cluster_id"`
	TurnStart      int          `json:"turn_start"`
	TurnEnd        int          `json:"turn_end"`
	StartForm      mention.Form `json:"start_type"`
	EndForm        mention.Form `json:"end_type"`
	StartSpeaker   string       `json:"-"`
	EndSpeaker     string       `json:"-"`
	SpeakerChain   string       `json:"speaker_chain"`
	IsCrossSpeaker bool         `json:"is_cross_speaker"`
}

// Transitions returns Len()-1 transitions, none for a single mention.
func (c *Chain) Transitions() []Transition {
	if len(c.mentions) < 2 {
		return nil
	}
	out := make([]Transition, 0, len(c.mentions)-1)
	for i := 0; i < len(c.mentions)-1; i++ {
		m1, m2 := c.mentions[i], c.mentions[i+1]
		out = append(out, Transition{
			ClusterID:      c.clusterID,
			TurnStart:      m1.TurnID,
			TurnEnd:        m2.TurnID,
			StartForm:      m1.Form,
			EndForm:        m2.Form,
			StartSpeaker:   m1.Speaker,
			EndSpeaker:     m2.Speaker,
			SpeakerChain:   m1.Speaker + "->" + m2.Speaker,
			IsCrossSpeaker: m1.Speaker != m2.Speaker,
		})
	}
	return out
}
