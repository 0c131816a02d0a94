package discourse

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// disfluencyTags are the part-of-speech tags stripped from tagged turns.
var disfluencyTags = map[string]struct{}{
	"UH":  {},
	",":   {},
	".":   {},
	"PRN": {},
}

// CorpusTurn is one turn as written in a corpus file. Either Text or Tokens
// is set; Tokens are [word, tag] pairs.
type CorpusTurn struct {
	Speaker string     `yaml:"speaker"`
	Text    string     `yaml:"text,omitempty"`
	Tokens  [][]string `yaml:"tokens,omitempty"`
}

type CorpusDialogue struct {
	Name  string       `yaml:"name,omitempty"`
	Turns []CorpusTurn `yaml:"turns"`
}

type corpusFile struct {
	Dialogues []CorpusDialogue `yaml:"dialogues"`
}

// Corpus is an in-memory Source; dialogue identifiers are positions in the file.
type Corpus struct {
	dialogues [][]Utterance
}

func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCorpus(f)
}

func ReadCorpus(r io.Reader) (*Corpus, error) {
	var cf corpusFile
	if err := yaml.NewDecoder(r).Decode(&cf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("corpus decode: %w", err)
	}
	c := &Corpus{dialogues: make([][]Utterance, 0, len(cf.Dialogues))}
	for _, d := range cf.Dialogues {
		c.dialogues = append(c.dialogues, cleanDialogue(d))
	}
	return c, nil
}

// Len reports the number of dialogues in the corpus.
func (c *Corpus) Len() int { return len(c.dialogues) }

func (c *Corpus) Dialogue(_ context.Context, id int) ([]Utterance, error) {
	if id < 0 || id >= len(c.dialogues) {
		return nil, fmt.Errorf("dialogue #%d: %w", id, ErrDialogueNotFound)
	}
	out := make([]Utterance, len(c.dialogues[id]))
	copy(out, c.dialogues[id])
	return out, nil
}

func cleanDialogue(d CorpusDialogue) []Utterance {
	utts := make([]Utterance, 0, len(d.Turns))
	for _, t := range d.Turns {
		if t.Tokens == nil {
			utts = append(utts, Utterance{Speaker: t.Speaker, Sentence: t.Text})
			continue
		}
		words := CleanDisfluencies(t.Tokens)
		if len(words) == 0 {
			continue
		}
		utts = append(utts, Utterance{Speaker: t.Speaker, Sentence: strings.Join(words, " ")})
	}
	return utts
}

// CleanDisfluencies drops interjections, punctuation and parentheticals from
// a tagged turn and returns the remaining words in order.
func CleanDisfluencies(tokens [][]string) []string {
	var words []string
	for _, tok := range tokens {
		if len(tok) == 0 {
			continue
		}
		if len(tok) > 1 {
			if _, skip := disfluencyTags[tok[1]]; skip {
				continue
			}
		}
		words = append(words, tok[0])
	}
	return words
}
