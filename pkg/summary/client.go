package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrew-torda/molstruct/pkg/stats"
)

// DefaultEndpoint is the text endpoint the summaries were written for.
const DefaultEndpoint = "https://toolkit.rork.com/text/llm/"

// ErrEmptyReply is a model answering with no text.
var ErrEmptyReply = errors.New("empty completion from summary endpoint")

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Messages []Message `json:"messages"`
}

type reply struct {
	Completion string `json:"completion"`
}

// Client talks to an endpoint which takes a list of messages and
// answers with {"completion": text}.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewClient uses the default endpoint if endpoint is empty.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{Endpoint: endpoint, HTTP: &http.Client{Timeout: timeout}}
}

// Complete posts the messages and returns the model's text.
func (c *Client) Complete(ctx context.Context, msgs []Message) (string, error) {
	body, err := json.Marshal(request{Messages: msgs})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("summary endpoint: %s: %s", resp.Status, bytes.TrimSpace(b))
	}
	var r reply
	if err := json.Unmarshal(b, &r); err != nil {
		return "", fmt.Errorf("summary endpoint reply: %w", err)
	}
	if r.Completion == "" {
		return "", ErrEmptyReply
	}
	return r.Completion, nil
}

// Summarize makes c a Summarizer.
func (c *Client) Summarize(ctx context.Context, r stats.Record) (*Summary, error) {
	log.Debugf("asking %s about %s", c.Endpoint, r.Name)
	text, err := c.Complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: Prompt(r)},
	})
	if err != nil {
		return nil, err
	}
	return FromReply(r.Name, text), nil
}
