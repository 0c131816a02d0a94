package orchestrator

import (
	"time"

	"github.com/maastricht-university/coref-chains/chain"
	"github.com/maastricht-university/coref-chains/discourse"
)

// Result is everything derived from one dialogue.
type Result struct {
	ConvID int
	Text   string
	Turns  []discourse.Turn
	Chains []*chain.Chain
	Stats  DialogueStats
}

// DialogueStats makes the lossy steps of the pipeline observable.
type DialogueStats struct {
	ConvID          int    `json:"conv_id"`
	Turns           int    `json:"turns"`
	Clusters        int    `json:"clusters"`
	Mentions        int    `json:"mentions"`
	DroppedMentions int    `json:"dropped_mentions"`
	Chains          int    `json:"chains"`
	SkippedClusters int    `json:"skipped_clusters"`
	Transitions     int    `json:"transitions"`
	Error           string `json:"error,omitempty"`
}

// Summary describes one batch run.
type Summary struct {
	RunID       string          `json:"run_id"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
	Dialogues   []DialogueStats `json:"dialogues"`
	Failed      int             `json:"failed"`
	Flows       []chain.Flow    `json:"flows"`
	ChainsPath  string          `json:"chains_path,omitempty"`
	SummaryPath string          `json:"-"`
}
