package chain

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/coref-chains/mention"
)

type recordingClassifier struct {
	seen []string
}

func (r *recordingClassifier) ClassifyEntity(_ context.Context, text string) mention.SemanticType {
	r.seen = append(r.seen, text)
	if text == "Dallas" {
		return mention.Place
	}
	return mention.Object
}

func TestBuild(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rc := &recordingClassifier{}
	b := NewBuilder(rc, logger)

	clusters := []Cluster{
		{ID: 0, Mentions: []Mention{
			{ClusterID: 0, TurnID: 2, StartChar: 40, Text: "it", Form: mention.Pronoun},
			{ClusterID: 0, TurnID: 0, StartChar: 9, Text: "Dallas", Form: mention.ProperNoun},
			{ClusterID: 0, TurnID: 2, StartChar: 35, Text: "there", Form: mention.Nominal},
		}},
		{ID: 1},
		{ID: 2, Mentions: []Mention{
			{ClusterID: 2, TurnID: 1, StartChar: 20, Text: "the car", Form: mention.Nominal},
		}},
	}

	chains, stats := b.Build(context.Background(), clusters)
	require.Len(t, chains, 2)
	assert.Equal(t, BuildStats{Built: 2, Skipped: 1}, stats)

	assert.Equal(t, 0, chains[0].ClusterID())
	assert.Equal(t, mention.Place, chains[0].SemanticType())
	var order []string
	for _, m := range chains[0].Mentions() {
		order = append(order, m.Text)
	}
	assert.Equal(t, []string{"Dallas", "there", "it"}, order)

	assert.Equal(t, 2, chains[1].ClusterID())
	assert.Equal(t, mention.Object, chains[1].SemanticType())
	assert.Empty(t, chains[1].Transitions())

	assert.Equal(t, []string{"Dallas", "the car"}, rc.seen, "classified once per chain, from the first mention")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 1, hook.LastEntry().Data["cluster_id"])

	// input mentions are left untouched
	assert.Equal(t, "it", clusters[0].Mentions[0].Text)
}

func TestBuildNoClusters(t *testing.T) {
	chains, stats := NewBuilder(&recordingClassifier{}, nil).Build(context.Background(), nil)
	assert.Empty(t, chains)
	assert.Equal(t, BuildStats{}, stats)
}

func TestCountFlows(t *testing.T) {
	a, err := New([]Mention{
		{TurnID: 0, Speaker: "A", Form: mention.ProperNoun},
		{TurnID: 1, Speaker: "B", Form: mention.Pronoun},
		{TurnID: 2, Speaker: "B", Form: mention.Pronoun},
	}, mention.Person)
	require.NoError(t, err)
	b, err := New([]Mention{
		{TurnID: 0, Speaker: "A", Form: mention.ProperNoun},
		{TurnID: 4, Speaker: "A", Form: mention.Pronoun},
	}, mention.Person)
	require.NoError(t, err)
	single, err := New([]Mention{{TurnID: 0, Speaker: "A", Form: mention.Nominal}}, mention.Object)
	require.NoError(t, err)

	flows := CountFlows([]*Chain{a, b, single})
	assert.Equal(t, []Flow{
		{From: mention.ProperNoun, To: mention.Pronoun, Count: 2, CrossSpeaker: 1},
		{From: mention.Pronoun, To: mention.Pronoun, Count: 1, CrossSpeaker: 0},
	}, flows)
}
