package chain

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/coref-chains/mention"
)

// Cluster is the aligned mentions of one resolver cluster.
type Cluster struct {
	ID       int
	Mentions []Mention
}

// EntityClassifier assigns the semantic type of a chain from its first mention.
type EntityClassifier interface {
	ClassifyEntity(ctx context.Context, text string) mention.SemanticType
}

type Builder struct {
	entities EntityClassifier
	log      logrus.FieldLogger
}

func NewBuilder(entities EntityClassifier, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{entities: entities, log: log}
}

// BuildStats counts the outcome of one Build call.
type BuildStats struct {
	Built   int `json:"built"`
	Skipped int `json:"skipped"`
}

// Build sorts each cluster's mentions by (turn, start offset), classifies
// the first one and constructs a chain. Clusters with no mentions are
// skipped and logged. Chains keep cluster order.
func (b *Builder) Build(ctx context.Context, clusters []Cluster) ([]*Chain, BuildStats) {
	var stats BuildStats
	chains := make([]*Chain, 0, len(clusters))
	for _, cl := range clusters {
		ms := make([]Mention, len(cl.Mentions))
		copy(ms, cl.Mentions)
		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].TurnID != ms[j].TurnID {
				return ms[i].TurnID < ms[j].TurnID
			}
			return ms[i].StartChar < ms[j].StartChar
		})

		var st mention.SemanticType
		if len(ms) > 0 {
			st = b.entities.ClassifyEntity(ctx, ms[0].Text)
		}
		c, err := New(ms, st)
		if err != nil {
			stats.Skipped++
			b.log.WithField("cluster_id", cl.ID).WithError(err).Warn("skipped chain")
			continue
		}
		stats.Built++
		chains = append(chains, c)
	}
	return chains, stats
}
