package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/maastricht-university/coref-chains/align"
	"github.com/maastricht-university/coref-chains/clients"
	"github.com/maastricht-university/coref-chains/discourse"
	"github.com/maastricht-university/coref-chains/mention"
)

// Resolver returns coreference clusters as spans into text.
type Resolver interface {
	Resolve(ctx context.Context, text string) ([][]align.Span, error)
}

type httpResolver struct {
	http *clients.HTTP
	url  string
}

func (r *httpResolver) Resolve(ctx context.Context, text string) ([][]align.Span, error) {
	resp, err := r.http.Coref(ctx, r.url, text)
	if err != nil {
		return nil, err
	}
	clusters := make([][]align.Span, 0, len(resp.Clusters))
	for _, cl := range resp.Clusters {
		spans := make([]align.Span, 0, len(cl))
		for _, s := range cl {
			spans = append(spans, align.Span{Start: s[0], End: s[1]})
		}
		clusters = append(clusters, spans)
	}
	return clusters, nil
}

type httpTagger struct {
	http *clients.HTTP
	url  string
}

func (t *httpTagger) Entities(ctx context.Context, text string) ([]mention.Entity, error) {
	resp, err := t.http.NER(ctx, t.url, text)
	if err != nil {
		return nil, err
	}
	ents := make([]mention.Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		ents = append(ents, mention.Entity{Text: e.Text, Label: e.Label})
	}
	return ents, nil
}

type httpSource struct {
	http *clients.HTTP
	url  string
}

func (s *httpSource) Dialogue(ctx context.Context, id int) ([]discourse.Utterance, error) {
	resp, err := s.http.Dialogue(ctx, s.url, id)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, fmt.Errorf("dialogue #%d: %w", id, discourse.ErrDialogueNotFound)
	}
	if err != nil {
		return nil, err
	}
	utts := make([]discourse.Utterance, 0, len(resp.Turns))
	for _, t := range resp.Turns {
		utts = append(utts, discourse.Utterance{Speaker: t.Speaker, Sentence: t.Sentence})
	}
	return utts, nil
}
