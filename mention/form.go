// Package mention classifies referring expressions by surface form and by
// coarse semantic type.
package mention

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Form is the surface realization of a mention.
type Form string

const (
	Pronoun    Form = "P"
	ProperNoun Form = "PN"
	Nominal    Form = "N"
)

// personPronouns are the personal pronouns checked by ClassifyEntity.
// "it" and "its" are members but classify as OBJECT.
var personPronouns = set(
	"i", "me", "my", "mine", "myself",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself",
	"she", "her", "hers", "herself",
	"it", "its",
	"we", "us", "our", "ours", "ourselves",
	"they", "them", "their", "theirs", "themselves",
)

// pronouns is every form treated as pronominal by ClassifyForm.
var pronouns = union(personPronouns, set(
	"itself",
	"this", "that", "these", "those",
	"one", "ones", "oneself",
	"who", "whom", "whose", "which", "what",
	"someone", "somebody", "something",
	"anyone", "anybody", "anything",
	"everyone", "everybody", "everything",
	"nobody", "nothing", "none",
	"each other", "one another",
	"y'all", "ya",
))

// ClassifyForm tags a mention as pronoun, proper noun or nominal. The rules
// are applied in order: a capitalized pronoun is still a pronoun.
func ClassifyForm(text string) Form {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if _, ok := pronouns[lower]; ok {
		return Pronoun
	}
	if isProperNoun(trimmed) {
		return ProperNoun
	}
	return Nominal
}

// isProperNoun: capitalized, longer than one character, no digits.
func isProperNoun(s string) bool {
	if utf8.RuneCountInString(s) <= 1 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsDigit) < 0
}

// Salience ranks forms for visualization: pronouns are the most reduced
// reference, proper nouns the least.
func (f Form) Salience() int {
	switch f {
	case Pronoun:
		return 3
	case Nominal:
		return 2
	case ProperNoun:
		return 1
	}
	return 0
}

func (f Form) Valid() bool {
	return f == Pronoun || f == ProperNoun || f == Nominal
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func union(a, b map[string]struct{}) map[string]struct{} {
	m := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		m[k] = struct{}{}
	}
	for k := range b {
		m[k] = struct{}{}
	}
	return m
}
