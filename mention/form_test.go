package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyForm(t *testing.T) {
	tests := []struct {
		text string
		want Form
	}{
		{"the dog", Nominal},
		{"Apple Inc.", ProperNoun},
		{"they", Pronoun},
		{"It", Pronoun},
		{"  She ", Pronoun},
		{"THEM", Pronoun},
		{"this", Pronoun},
		{"Texas", ProperNoun},
		{"Édouard", ProperNoun},
		{"I", Pronoun},
		{"A", Nominal},
		{"Room 101", Nominal},
		{"B2", Nominal},
		{"my brother", Nominal},
		{"", Nominal},
		{"   ", Nominal},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ClassifyForm(tt.text)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestPronounPrecedesCapitalization(t *testing.T) {
	for p := range pronouns {
		if len(p) < 2 {
			continue
		}
		capitalized := string(p[0]-'a'+'A') + p[1:]
		assert.Equal(t, Pronoun, ClassifyForm(capitalized), capitalized)
	}
}

func TestSalience(t *testing.T) {
	assert.Equal(t, 3, Pronoun.Salience())
	assert.Equal(t, 2, Nominal.Salience())
	assert.Equal(t, 1, ProperNoun.Salience())
	assert.Equal(t, 0, Form("X").Salience())
	assert.False(t, Form("X").Valid())
}
