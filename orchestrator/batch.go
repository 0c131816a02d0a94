package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/maastricht-university/coref-chains/chain"
	"github.com/maastricht-university/coref-chains/clients"
	"github.com/maastricht-university/coref-chains/export"
)

// Run processes dialogues 0..n-1 and streams their chains to sink in
// dialogue order. A failing dialogue is logged and recorded in the summary;
// it does not stop the batch. Only sink and persistence errors are returned.
func (p *Pipeline) Run(ctx context.Context, n int, sink export.Sink) (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString(), StartedAt: time.Now()}
	log := p.log.WithField("run_id", sum.RunID)
	if n < 0 {
		n = 0
	}

	results := make([]*Result, n)
	errs := make([]error, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for id := 0; id < n; id++ {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[id] = err
				return nil
			}
			results[id], errs[id] = p.ProcessDialogue(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	flows := chain.NewFlowCounter()
	for id := 0; id < n; id++ {
		if errs[id] != nil {
			log.WithField("conv_id", id).WithError(errs[id]).Error("dialogue failed")
			sum.Failed++
			sum.Dialogues = append(sum.Dialogues, DialogueStats{ConvID: id, Error: errs[id].Error()})
			continue
		}
		r := results[id]
		if sink != nil {
			if err := sink.WriteChains(id, r.Chains); err != nil {
				return sum, err
			}
		}
		for _, c := range r.Chains {
			flows.Add(c)
		}
		sum.Dialogues = append(sum.Dialogues, r.Stats)
	}
	sum.Flows = flows.Flows()
	sum.FinishedAt = time.Now()

	if p.opts.OutputsDir != "" {
		chainsPath, summaryPath, err := persist(p.opts.OutputsDir, sum, results)
		if err != nil {
			return sum, err
		}
		log.WithFields(logrus.Fields{"chains": chainsPath, "summary": summaryPath}).Info("run persisted")
	}
	p.visualize(ctx, log, sum)

	log.WithFields(logrus.Fields{"dialogues": n, "failed": sum.Failed}).Info("batch complete")
	return sum, ctx.Err()
}

// visualize posts the flow counts to the visualization service, if any.
func (p *Pipeline) visualize(ctx context.Context, log logrus.FieldLogger, sum *Summary) {
	if p.opts.VisualizationURL == "" || len(sum.Flows) == 0 {
		return
	}
	if p.http == nil {
		p.http = clients.NewHTTP(0)
	}
	links := make([]clients.SankeyLink, 0, len(sum.Flows))
	for _, f := range sum.Flows {
		links = append(links, clients.SankeyLink{
			Source:       string(f.From),
			Target:       string(f.To),
			Value:        f.Count,
			CrossSpeaker: f.CrossSpeaker,
		})
	}
	resp, err := p.http.GenerateSankey(ctx, p.opts.VisualizationURL, clients.SankeyReq{
		RunID:     sum.RunID,
		Links:     links,
		OutputDir: p.opts.OutputsDir,
	})
	if err != nil {
		log.WithError(err).Warn("sankey generation failed")
		return
	}
	log.WithField("path", resp.Path).Info("sankey generated")
}
