package discourse

import (
	"strings"
	"unicode/utf8"
)

// Index concatenates the utterances as "{speaker}: {sentence} " and records
// where each one landed. Offsets count code points so they line up with the
// spans returned by the coreference resolver.
func Index(utts []Utterance) Indexed {
	var b strings.Builder
	turns := make([]Turn, 0, len(utts))
	cur := 0
	for i, u := range utts {
		sentence := strings.TrimSpace(u.Sentence)
		full := u.Speaker + ": " + sentence + " "
		end := cur + utf8.RuneCountInString(full)
		turns = append(turns, Turn{
			ID:      i,
			Speaker: u.Speaker,
			Start:   cur,
			End:     end,
			Text:    sentence,
		})
		b.WriteString(full)
		cur = end
	}
	return Indexed{Text: b.String(), Turns: turns}
}
