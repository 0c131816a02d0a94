package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/coref-chains/mention"
)

func mentions(ms ...Mention) []Mention { return ms }

func TestNewEmpty(t *testing.T) {
	c, err := New(nil, mention.Object)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrEmptyChain)

	_, err = New([]Mention{}, mention.Object)
	assert.ErrorIs(t, err, ErrEmptyChain)
}

func TestChainMetadata(t *testing.T) {
	ms := mentions(
		Mention{ClusterID: 4, TurnID: 0, StartChar: 3, EndChar: 12, Speaker: "A", Text: "my sister", Form: mention.Nominal},
		Mention{ClusterID: 4, TurnID: 1, StartChar: 30, EndChar: 33, Speaker: "B", Text: "she", Form: mention.Pronoun},
	)
	c, err := New(ms, mention.Person)
	require.NoError(t, err)

	assert.Equal(t, 4, c.ClusterID())
	assert.Equal(t, mention.Person, c.SemanticType())
	assert.Equal(t, "my sister", c.InitialText())
	assert.Equal(t, mention.Nominal, c.InitialForm())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, `Chain(ID=4, Length=2, Initial="my sister", Type=PERSON (N))`, c.String())

	// callers cannot mutate the chain through either slice
	ms[0].Text = "changed"
	got := c.Mentions()
	got[1].Text = "changed"
	assert.Equal(t, "my sister", c.Mentions()[0].Text)
	assert.Equal(t, "she", c.Mentions()[1].Text)
}

func TestTransitions(t *testing.T) {
	speakers := []string{"A", "A", "B", "A", "B", "B"}
	forms := []mention.Form{mention.ProperNoun, mention.Pronoun, mention.Pronoun, mention.Nominal, mention.Pronoun, mention.Pronoun}

	for n := 1; n <= len(speakers); n++ {
		var ms []Mention
		for i := 0; i < n; i++ {
			ms = append(ms, Mention{ClusterID: 1, TurnID: i, StartChar: i * 10, Speaker: speakers[i], Form: forms[i]})
		}
		c, err := New(ms, mention.Person)
		require.NoError(t, err)

		trs := c.Transitions()
		require.Len(t, trs, n-1)
		for i, tr := range trs {
			assert.Equal(t, ms[i].TurnID, tr.TurnStart)
			assert.Equal(t, ms[i+1].TurnID, tr.TurnEnd)
			assert.Equal(t, ms[i].Form, tr.StartForm)
			assert.Equal(t, ms[i+1].Form, tr.EndForm)
			assert.Equal(t, ms[i].Speaker+"->"+ms[i+1].Speaker, tr.SpeakerChain)
			assert.Equal(t, ms[i].Speaker != ms[i+1].Speaker, tr.IsCrossSpeaker)
			assert.Equal(t, 1, tr.ClusterID)
		}
	}
}

func TestTracesAgree(t *testing.T) {
	c, err := New(mentions(
		Mention{TurnID: 0, Speaker: "A", Text: "John", Form: mention.ProperNoun},
		Mention{TurnID: 0, Speaker: "A", Text: "he", Form: mention.Pronoun},
		Mention{TurnID: 3, Speaker: "B", Text: "the guy", Form: mention.Nominal},
	), mention.Person)
	require.NoError(t, err)

	adapt := c.AdaptationTrace()
	table := c.TabularTrace()
	require.Len(t, adapt, 3)
	require.Len(t, table, 3)
	for i := range adapt {
		assert.Equal(t, adapt[i].TurnID, table[i].TurnID)
		assert.Equal(t, adapt[i].Speaker, table[i].Speaker)
		assert.Equal(t, adapt[i].Form, table[i].Form)
	}
	assert.Equal(t, TraceStep{TurnID: 3, Form: mention.Nominal, Speaker: "B"}, adapt[2])
	assert.Equal(t, Row{TurnID: 0, Speaker: "A", Text: "he", Form: mention.Pronoun}, table[1])

	// traces are restartable
	assert.Equal(t, adapt, c.AdaptationTrace())
}
