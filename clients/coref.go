package clients

import (
	"context"
	"net/http"
)

// --- Coreference resolution (/coref) ---
type CorefReq struct {
	Text string `json:"text"`
}

// CorefResp holds clusters of [start, end) code point spans.
type CorefResp struct {
	Clusters [][][2]int `json:"clusters"`
}

func (h *HTTP) Coref(ctx context.Context, url, text string) (*CorefResp, error) {
	var out CorefResp
	if err := h.call(ctx, "coref", http.MethodPost, url+"/coref", CorefReq{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
