package clients

import (
	"context"
	"fmt"
	"net/http"
)

// --- Dialogue corpus (/dialogues/{id}) ---
type DialogueTurn struct {
	Speaker  string `json:"speaker"`
	Sentence string `json:"sentence"`
}
type DialogueResp struct {
	ID    int            `json:"id"`
	Turns []DialogueTurn `json:"turns"`
}

// Dialogue fetches one cleaned dialogue. Unknown ids yield ErrNotFound.
func (h *HTTP) Dialogue(ctx context.Context, url string, id int) (*DialogueResp, error) {
	var out DialogueResp
	if err := h.call(ctx, "dialogue", http.MethodGet, fmt.Sprintf("%s/dialogues/%d", url, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
