package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/coref", func(w http.ResponseWriter, r *http.Request) {
		var req CorefReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if req.Text == "fail" {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"clusters": [[[3, 13], [30, 32]], [[40, 45]]]}`))
	})
	mux.HandleFunc("/ner", func(w http.ResponseWriter, r *http.Request) {
		var req NERReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(NERResp{Entities: []NEREntity{{Text: req.Text, Label: "GPE", End: len(req.Text)}}})
	})
	mux.HandleFunc("/dialogues/0", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"id": 0, "turns": [{"speaker": "A", "sentence": "hi"}]}`))
	})
	mux.HandleFunc("/generate-sankey", func(w http.ResponseWriter, r *http.Request) {
		var req SankeyReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Links, 1)
		_, _ = w.Write([]byte(`{"status": "ok", "path": "/tmp/sankey.html"}`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCoref(t *testing.T) {
	srv := newServer(t)
	h := NewHTTP(5 * time.Second)

	out, err := h.Coref(context.Background(), srv.URL, "A: my sister called")
	require.NoError(t, err)
	assert.Equal(t, [][][2]int{{{3, 13}, {30, 32}}, {{40, 45}}}, out.Clusters)

	_, err = h.Coref(context.Background(), srv.URL, "fail")
	assert.ErrorContains(t, err, "coref 503 Service Unavailable: model not loaded")
}

func TestNER(t *testing.T) {
	srv := newServer(t)
	out, err := NewHTTP(0).NER(context.Background(), srv.URL, "dallas")
	require.NoError(t, err)
	require.Len(t, out.Entities, 1)
	assert.Equal(t, "GPE", out.Entities[0].Label)
}

func TestDialogue(t *testing.T) {
	srv := newServer(t)
	h := NewHTTP(0)

	out, err := h.Dialogue(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, []DialogueTurn{{Speaker: "A", Sentence: "hi"}}, out.Turns)

	_, err = h.Dialogue(context.Background(), srv.URL, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateSankey(t *testing.T) {
	srv := newServer(t)
	out, err := NewHTTP(0).GenerateSankey(context.Background(), srv.URL, SankeyReq{
		RunID: "r1",
		Links: []SankeyLink{{Source: "PN", Target: "P", Value: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "/tmp/sankey.html", out.Path)
}

func TestDecodeError(t *testing.T) {
	srv := newServer(t)
	var out CorefResp
	err := NewHTTP(0).call(context.Background(), "broken", http.MethodGet, srv.URL+"/broken", nil, &out)
	assert.ErrorContains(t, err, "broken decode")
}
