package clients

import (
	"context"
	"net/http"
)

// --- Named entities (/ner) ---
type NERReq struct {
	Text string `json:"text"`
}
type NEREntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
type NERResp struct {
	Entities []NEREntity `json:"entities"`
}

func (h *HTTP) NER(ctx context.Context, url, text string) (*NERResp, error) {
	var out NERResp
	if err := h.call(ctx, "ner", http.MethodPost, url+"/ner", NERReq{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
