package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/coref-chains/align"
	"github.com/maastricht-university/coref-chains/chain"
	"github.com/maastricht-university/coref-chains/clients"
	cfg "github.com/maastricht-university/coref-chains/config"
	"github.com/maastricht-university/coref-chains/discourse"
	"github.com/maastricht-university/coref-chains/mention"
)

// Deps are the external collaborators of a Pipeline. Tagger may be nil, in
// which case non-pronominal chains are typed UNKNOWN_NER.
type Deps struct {
	Source   discourse.Source
	Resolver Resolver
	Tagger   mention.Tagger
	Log      logrus.FieldLogger
}

// Options tune the batch driver.
type Options struct {
	Workers          int
	OutputsDir       string
	VisualizationURL string
}

type Pipeline struct {
	source     discourse.Source
	resolver   Resolver
	classifier *mention.Classifier
	builder    *chain.Builder
	http       *clients.HTTP
	opts       Options
	log        logrus.FieldLogger
}

func New(d Deps, opts Options) *Pipeline {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	classifier := mention.NewClassifier(d.Tagger, log)
	return &Pipeline{
		source:     d.Source,
		resolver:   d.Resolver,
		classifier: classifier,
		builder:    chain.NewBuilder(classifier, log),
		opts:       opts,
		log:        log,
	}
}

// NewPipeline wires the HTTP services, corpus and gazetteer named in c.
func NewPipeline(c *cfg.Root, log logrus.FieldLogger) (*Pipeline, error) {
	if c.Services.Coref.URL == "" {
		return nil, errors.New("services.coref.url is required")
	}
	h := clients.NewHTTP(c.Timeout())

	var src discourse.Source
	if c.Services.Dialogues.URL != "" {
		src = &httpSource{http: h, url: c.Services.Dialogues.URL}
	} else {
		corpus, err := discourse.LoadCorpus(c.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		src = corpus
	}

	var tagger mention.Tagger
	switch {
	case c.Services.NER.URL != "":
		tagger = &httpTagger{http: h, url: c.Services.NER.URL}
	case c.Corpus.Gazetteer != "":
		g, err := mention.LoadGazetteer(c.Corpus.Gazetteer)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		tagger = g
	}

	p := New(Deps{
		Source:   discourse.WithFallback(src, c.Corpus.DefaultDialogue, log),
		Resolver: &httpResolver{http: h, url: c.Services.Coref.URL},
		Tagger:   tagger,
		Log:      log,
	}, Options{
		Workers:          c.Batch.Workers,
		OutputsDir:       c.Paths.Outputs,
		VisualizationURL: c.Services.Visualization.URL,
	})
	p.http = h
	return p, nil
}

// ProcessDialogue runs index, resolve, align, classify and build for one
// dialogue. Unmatched spans and empty clusters are counted, not errors.
func (p *Pipeline) ProcessDialogue(ctx context.Context, convID int) (*Result, error) {
	log := p.log.WithField("conv_id", convID)

	utts, err := p.source.Dialogue(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("load dialogue: %w", err)
	}
	idx := discourse.Index(utts)
	res := &Result{
		ConvID: convID,
		Text:   idx.Text,
		Turns:  idx.Turns,
		Stats:  DialogueStats{ConvID: convID, Turns: len(idx.Turns)},
	}
	if len(idx.Turns) == 0 {
		log.Debug("empty dialogue")
		return res, nil
	}

	spans, err := p.resolver.Resolve(ctx, idx.Text)
	if err != nil {
		return nil, fmt.Errorf("resolve coreference: %w", err)
	}
	res.Stats.Clusters = len(spans)

	clusters := p.alignClusters(log, align.New(idx), spans, &res.Stats)

	chains, bstats := p.builder.Build(ctx, clusters)
	res.Chains = chains
	res.Stats.Chains = bstats.Built
	res.Stats.SkippedClusters = bstats.Skipped
	for _, c := range chains {
		res.Stats.Transitions += len(c.Transitions())
	}

	log.WithFields(logrus.Fields{
		"chains":  bstats.Built,
		"skipped": bstats.Skipped,
		"dropped": res.Stats.DroppedMentions,
	}).Infof("Created %d chains", bstats.Built)
	return res, nil
}

// alignClusters resolves every span to its turn and classifies its form.
// Cluster ids are positions in the resolver output.
func (p *Pipeline) alignClusters(log logrus.FieldLogger, a *align.Aligner, spans [][]align.Span, st *DialogueStats) []chain.Cluster {
	clusters := make([]chain.Cluster, 0, len(spans))
	for cid, cl := range spans {
		ar := a.Cluster(cl)
		for _, s := range ar.Dropped {
			log.WithFields(logrus.Fields{"cluster_id": cid, "span": s.String()}).Debug("dropped unmatched mention")
		}
		st.DroppedMentions += len(ar.Dropped)
		st.Mentions += len(ar.Matches)

		ms := make([]chain.Mention, 0, len(ar.Matches))
		for _, m := range ar.Matches {
			ms = append(ms, chain.Mention{
				ClusterID: cid,
				StartChar: m.Span.Start,
				EndChar:   m.Span.End,
				TurnID:    m.Turn.ID,
				Speaker:   m.Turn.Speaker,
				Text:      m.Text,
				Form:      mention.ClassifyForm(m.Text),
			})
		}
		clusters = append(clusters, chain.Cluster{ID: cid, Mentions: ms})
	}
	return clusters
}
