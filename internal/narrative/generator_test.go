package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

func sampleRequest() Request {
	return Request{
		TeamName: "High Point Panthers",
		Season:   "2025-26",
		TeamStats: stattable.Table{Key: "teamId", Rows: []stattable.Row{
			{"teamId": float64(557), "ptsScoredPg": "90.3|17|2"},
		}},
		QuadSplits: stattable.Table{Key: "quadGroup", Rows: []stattable.Row{
			{"quadGroup": "Quad 1 & 2", "ptsScored": 81.5},
		}},
		Roster: []ranker.RosterEntry{
			{PlayerID: 1911492, FullName: "Jordan Vance"},
		},
		PlayerStats: stattable.Table{Key: "playerId", Rows: []stattable.Row{
			{"playerId": float64(1911492), "atr2FgPct": "0.650|_|_"},
		}},
	}
}

func TestBuildPromptCarriesEncodedStatsVerbatim(t *testing.T) {
	prompt, err := BuildPrompt(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt, "High Point Panthers")
	assert.Contains(t, prompt, "90.3|17|2")
	assert.Contains(t, prompt, "0.650|_|_")
	assert.Contains(t, prompt, "Quad 1 & 2")
	assert.Contains(t, prompt, "- Jordan Vance")
}

func TestChatClientGenerateNotes(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "The Panthers lead the conference in scoring."}},
			},
		})
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL, APIKey: "k", Model: "mistral-large", Temperature: 0.3})
	notes, err := client.GenerateNotes(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "The Panthers lead the conference in scoring.", notes)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer k", gotAuth)
	assert.Equal(t, "mistral-large", gotReq.Model)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "value|national_rank|conference_rank")
	assert.Contains(t, gotReq.Messages[1].Content, "90.3|17|2")
}

func TestChatClientErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL, Model: "mistral-large"})
	_, err := client.GenerateNotes(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestChatClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewChatClient(ChatConfig{BaseURL: srv.URL, Model: "mistral-large"})
	_, err := client.GenerateNotes(context.Background(), sampleRequest())
	require.Error(t, err)
}
