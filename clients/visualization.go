package clients

import (
	"context"
	"net/http"
)

// --- Visualization ---
type SankeyLink struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Value        int    `json:"value"`
	CrossSpeaker int    `json:"cross_speaker"`
}

type SankeyReq struct {
	RunID     string       `json:"run_id"`
	Links     []SankeyLink `json:"links"`
	OutputDir string       `json:"output_dir,omitempty"`
}
type SankeyResp struct{ Status, Path string }

func (h *HTTP) GenerateSankey(ctx context.Context, url string, req SankeyReq) (*SankeyResp, error) {
	var out SankeyResp
	if err := h.call(ctx, "viz sankey", http.MethodPost, url+"/generate-sankey", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
