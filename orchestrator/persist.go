package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/maastricht-university/coref-chains/chain"
	"github.com/maastricht-university/coref-chains/mention"
)

// ChainDump is the persisted form of one chain.
type ChainDump struct {
	ChainID      int                  `json:"chain_id"`
	ClusterID    int                  `json:"cluster_id"`
	SemanticType mention.SemanticType `json:"semantic_type"`
	InitialText  string               `json:"initial_text"`
	InitialForm  mention.Form         `json:"initial_type"`
	Length       int                  `json:"length"`
	Mentions     []chain.Mention      `json:"mentions"`
	Trace        []chain.TraceStep    `json:"adaptation_trace"`
	Transitions  []chain.Transition   `json:"transitions"`
}

type DialogueDump struct {
	ConvID int         `json:"conv_id"`
	Chains []ChainDump `json:"chains"`
}

func dumpChains(chains []*chain.Chain) []ChainDump {
	out := make([]ChainDump, 0, len(chains))
	for i, c := range chains {
		out = append(out, ChainDump{
			ChainID:      i,
			ClusterID:    c.ClusterID(),
			SemanticType: c.SemanticType(),
			InitialText:  c.InitialText(),
			InitialForm:  c.InitialForm(),
			Length:       c.Len(),
			Mentions:     c.Mentions(),
			Trace:        c.AdaptationTrace(),
			Transitions:  c.Transitions(),
		})
	}
	return out
}

func mkRunDir(outputsRoot string) (string, error) {
	dir := filepath.Join(outputsRoot, "run_"+time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes chains.json and summary.json into a fresh run directory.
// Failed dialogues (nil results) are left out of chains.json.
func persist(outputsRoot string, sum *Summary, results []*Result) (chainsPath, summaryPath string, err error) {
	dir, err := mkRunDir(outputsRoot)
	if err != nil {
		return "", "", err
	}
	chainsPath = filepath.Join(dir, "chains.json")
	summaryPath = filepath.Join(dir, "summary.json")

	dumps := make([]DialogueDump, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		dumps = append(dumps, DialogueDump{ConvID: r.ConvID, Chains: dumpChains(r.Chains)})
	}
	if err = writeJSON(chainsPath, dumps); err != nil {
		return "", "", err
	}

	sum.ChainsPath = chainsPath
	sum.SummaryPath = summaryPath
	if err = writeJSON(summaryPath, sum); err != nil {
		return "", "", err
	}
	return chainsPath, summaryPath, nil
}
