package mention

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Gazetteer is an offline Tagger that matches known names. Each line of a
// gazetteer file is "LABEL name words"; blank lines and '#' comments are skipped.
type Gazetteer struct {
	names map[string]string // lowercased name -> label
}

func LoadGazetteer(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGazetteer(f)
}

func ReadGazetteer(r io.Reader) (*Gazetteer, error) {
	g := &Gazetteer{names: map[string]string{}}
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		s := strings.TrimSpace(scan.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		label, name, ok := strings.Cut(s, " ")
		name = strings.Join(strings.Fields(name), " ")
		if !ok || name == "" {
			return nil, fmt.Errorf("gazetteer line %d: want \"LABEL name\", got %q", line, s)
		}
		g.Add(label, name)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gazetteer) Add(label, name string) {
	g.names[strings.ToLower(name)] = strings.ToUpper(label)
}

// Entities returns every known name occurring as whole words in text, in
// order of appearance; at one position the longest name wins.
func (g *Gazetteer) Entities(_ context.Context, text string) ([]Entity, error) {
	padded := " " + strings.Join(strings.Fields(strings.ToLower(text)), " ") + " "

	type hit struct {
		pos int
		ent Entity
	}
	var hits []hit
	for name, label := range g.names {
		if i := strings.Index(padded, " "+name+" "); i >= 0 {
			hits = append(hits, hit{pos: i, ent: Entity{Text: name, Label: label}})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		if len(hits[i].ent.Text) != len(hits[j].ent.Text) {
			return len(hits[i].ent.Text) > len(hits[j].ent.Text)
		}
		return hits[i].ent.Text < hits[j].ent.Text
	})

	ents := make([]Entity, 0, len(hits))
	for _, h := range hits {
		ents = append(ents, h.ent)
	}
	return ents, nil
}
