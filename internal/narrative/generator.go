// Package narrative turns ranked stat tables into broadcast game notes via
// an external text-generation service. The contract is deliberately narrow:
// the generator receives only the pipe-encoded tables plus roster names,
// and returns prose. It can never see statistics that are not in the
// payload.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// Request is the complete data payload for one set of game notes.
type Request struct {
	TeamName    string
	Season      string
	TeamStats   stattable.Table
	QuadSplits  stattable.Table
	Roster      []ranker.RosterEntry
	PlayerStats stattable.Table
}

// Generator produces game notes from ranked stats.
type Generator interface {
	GenerateNotes(ctx context.Context, req Request) (string, error)
}

// BuildPrompt renders the request payload as the user prompt. Tables are
// embedded as JSON so the pipe encoding survives verbatim.
func BuildPrompt(req Request) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Team: %s\nSeason: %s\n", req.TeamName, req.Season)

	sections := []struct {
		title string
		rows  []stattable.Row
	}{
		{"Team season stats", req.TeamStats.Rows},
		{"Team performance by opponent quad", req.QuadSplits.Rows},
		{"Player season stats", req.PlayerStats.Rows},
	}
	for _, s := range sections {
		data, err := json.Marshal(s.rows)
		if err != nil {
			return "", fmt.Errorf("marshal %s: %w", s.title, err)
		}
		fmt.Fprintf(&b, "\n## %s\n%s\n", s.title, data)
	}

	b.WriteString("\n## Roster\n")
	for _, p := range req.Roster {
		fmt.Fprintf(&b, "- %s\n", p.FullName)
	}

	b.WriteString("\n" + writerUserPrompt)
	return b.String(), nil
}

// ChatConfig configures the chat-completions client.
type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// ChatClient is a Generator backed by a chat-completions HTTP API.
type ChatClient struct {
	cfg        ChatConfig
	httpClient *http.Client
}

// NewChatClient creates a chat-completions generator.
func NewChatClient(cfg ChatConfig) *ChatClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &ChatClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateNotes sends the payload to the chat API and returns the prose.
func (c *ChatClient) GenerateNotes(ctx context.Context, req Request) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: writerSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
