package mention

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagger struct {
	ents  map[string][]Entity
	err   error
	calls []string
}

func (f *fakeTagger) Entities(_ context.Context, text string) ([]Entity, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.ents[text], nil
}

func TestClassifyEntityPronouns(t *testing.T) {
	tagger := &fakeTagger{}
	c := NewClassifier(tagger, nil)
	ctx := context.Background()

	assert.Equal(t, Object, c.ClassifyEntity(ctx, "it"))
	assert.Equal(t, Object, c.ClassifyEntity(ctx, " Its "))
	for p := range personPronouns {
		if p == "it" || p == "its" {
			continue
		}
		assert.Equal(t, Person, c.ClassifyEntity(ctx, p), p)
	}
	assert.Empty(t, tagger.calls, "pronouns never reach the tagger")
}

func TestClassifyEntityTagger(t *testing.T) {
	tagger := &fakeTagger{ents: map[string][]Entity{
		"john smith":      {{Text: "john smith", Label: "PERSON"}},
		"the americans":   {{Text: "americans", Label: "NORP"}},
		"dallas":          {{Text: "dallas", Label: "GPE"}},
		"the golden gate": {{Text: "golden gate", Label: "FAC"}, {Text: "x", Label: "PERSON"}},
		"ibm":             {{Text: "ibm", Label: "ORG"}},
		"a widget":        {{Text: "widget", Label: "SOMETHING_NEW"}},
	}}
	c := NewClassifier(tagger, nil)
	ctx := context.Background()

	tests := []struct {
		text string
		want SemanticType
	}{
		{"John Smith", Person},
		{"the Americans", Person},
		{"Dallas", Place},
		{"the Golden Gate", Place},
		{"IBM", Object},
		{"a widget", Object},
		{"the dog", Object},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.ClassifyEntity(ctx, tt.text), tt.text)
	}
	for _, call := range tagger.calls {
		assert.Equal(t, strings.ToLower(call), call, "tagger receives lowercased text")
	}
}

func TestClassifyEntityUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("nil tagger", func(t *testing.T) {
		c := NewClassifier(nil, nil)
		assert.Equal(t, Unknown, c.ClassifyEntity(ctx, "the dog"))
		assert.Equal(t, Person, c.ClassifyEntity(ctx, "she"))
	})

	t.Run("tagger error", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		c := NewClassifier(&fakeTagger{err: errors.New("connection refused")}, logger)
		assert.Equal(t, Unknown, c.ClassifyEntity(ctx, "the dog"))
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}

func TestTypeForLabel(t *testing.T) {
	assert.Equal(t, Person, TypeForLabel("person"))
	assert.Equal(t, Place, TypeForLabel("LOC"))
	assert.Equal(t, Object, TypeForLabel("MONEY"))
	assert.Equal(t, Object, TypeForLabel(""))
}
