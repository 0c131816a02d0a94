// Package export flattens chains into tabular rows and writes them out.
package export

import (
	"errors"

	"github.com/maastricht-university/coref-chains/chain"
	"github.com/maastricht-university/coref-chains/mention"
)

// MentionRow is one mention of one chain of one dialogue.
type MentionRow struct {
	ConvID   int          `json:"conv_id"`
	ChainID  int          `json:"chain_id"`
	TurnID   int          `json:"turn_id"`
	Speaker  string       `json:"speaker"`
	Text     string       `json:"text"`
	Form     mention.Form `json:"reference_type"`
	Salience int          `json:"salience_score"`
}

type TransitionRow struct {
	ConvID  int `json:"conv_id"`
	ChainID int `json:"chain_id"`
	chain.Transition
}

// Sink receives the chains of each processed dialogue.
type Sink interface {
	WriteChains(convID int, chains []*chain.Chain) error
	Close() error
}

// MentionRows numbers chains by their position in the dialogue's chain list.
func MentionRows(convID int, chains []*chain.Chain) []MentionRow {
	var rows []MentionRow
	for i, c := range chains {
		for _, r := range c.TabularTrace() {
			rows = append(rows, MentionRow{
				ConvID:   convID,
				ChainID:  i,
				TurnID:   r.TurnID,
				Speaker:  r.Speaker,
				Text:     r.Text,
				Form:     r.Form,
				Salience: r.Form.Salience(),
			})
		}
	}
	return rows
}

func TransitionRows(convID int, chains []*chain.Chain) []TransitionRow {
	var rows []TransitionRow
	for i, c := range chains {
		for _, t := range c.Transitions() {
			rows = append(rows, TransitionRow{ConvID: convID, ChainID: i, Transition: t})
		}
	}
	return rows
}

type multi []Sink

// Multi writes to every sink in turn; errors are joined.
func Multi(sinks ...Sink) Sink { return multi(sinks) }

func (m multi) WriteChains(convID int, chains []*chain.Chain) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.WriteChains(convID, chains))
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
