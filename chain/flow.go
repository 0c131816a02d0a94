package chain

import (
	"sort"

	"github.com/maastricht-university/coref-chains/mention"
)

// Flow counts transitions from one reference form to another.
type Flow struct {
	From         mention.Form `json:"source"`
	To           mention.Form `json:"target"`
	Count        int          `json:"value"`
	CrossSpeaker int          `json:"cross_speaker"`
}

// FlowCounter accumulates form-to-form transition counts across chains.
type FlowCounter struct {
	counts map[[2]mention.Form]*Flow
}

func NewFlowCounter() *FlowCounter {
	return &FlowCounter{counts: map[[2]mention.Form]*Flow{}}
}

func (f *FlowCounter) Add(c *Chain) {
	for _, t := range c.Transitions() {
		k := [2]mention.Form{t.StartForm, t.EndForm}
		fl, ok := f.counts[k]
		if !ok {
			fl = &Flow{From: t.StartForm, To: t.EndForm}
			f.counts[k] = fl
		}
		fl.Count++
		if t.IsCrossSpeaker {
			fl.CrossSpeaker++
		}
	}
}

// Flows returns the accumulated counts, largest first, ties by form pair.
func (f *FlowCounter) Flows() []Flow {
	out := make([]Flow, 0, len(f.counts))
	for _, fl := range f.counts {
		out = append(out, *fl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// CountFlows is a convenience over FlowCounter for a fixed set of chains.
func CountFlows(chains []*Chain) []Flow {
	fc := NewFlowCounter()
	for _, c := range chains {
		fc.Add(c)
	}
	return fc.Flows()
}
