package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crimson-sun/sawmill/internal/model"
)

const defaultTimeout = 60 * time.Second

const systemPrompt = "You are a log analysis expert. Think through each step carefully before responding."

// promptTemplate carries the advisory regex conventions: capture only
// meaningful content, anchor with ^ and $, include a unique identifier for
// the producing utility. The engine does not enforce these; the prompt is
// where they live.
const promptTemplate = `Analyze this log line and create a regex pattern for it:

Log Line: %q

Rules for creating the regex pattern:
1. ONLY use capturing groups () for meaningful message content:
   - DO capture: actual messages, target names, important values
   - DO NOT capture: PIDs, timestamps, technical IDs
   - Regex must start with ^ and end with $.

2. The regex MUST contain unique identifiers for the utility:
   - If it's a program log (like userdel, useradd), include the exact program name
   - If it's a build/system message, include the exact unique phrase that identifies this type of message

Examples:
1. For log: "<86>May 16 05:13:18 userdel[616177]: delete user 'rooter'"
   Regex: ^<\d+>\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}\s+userdel\[\d+\]:\s+(.*)$
   Explanation: Only captures the message part, includes 'userdel' as identifier

2. For log: "Building target platforms: x86_64"
   Regex: ^Building target platforms: (\w+)$
   Explanation: Captures platform name, uses exact phrase "Building target platforms" as identifier

Respond in JSON format with these fields:
{
    "utility_name": "name of the program or unique identifier that generated this log",
    "regex": "regex pattern following the above rules"
}`

// Option configures a chat Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Default: 60s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client is an Oracle backed by an OpenAI-compatible chat-completions API.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a chat-completions oracle.
func NewClient(url, apiKey, chatModel string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		apiKey:     apiKey,
		model:      chatModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Suggest asks the service for a pattern covering line. The returned
// suggestion is unvalidated; ingestion decides whether it is acceptable.
func (c *Client) Suggest(ctx context.Context, line string) (model.Suggestion, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, line)},
		},
	})
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Suggestion{}, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(cr.Choices) == 0 {
		return model.Suggestion{}, fmt.Errorf("%w: empty choices", ErrMalformed)
	}

	content := cleanContent(cr.Choices[0].Message.Content)

	var sug model.Suggestion
	if err := json.Unmarshal([]byte(content), &sug); err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if sug.Regex == "" || sug.UtilityName == "" {
		return model.Suggestion{}, fmt.Errorf("%w: missing utility_name or regex", ErrMalformed)
	}
	return sug, nil
}

// cleanContent strips reasoning-model think blocks and markdown code fences
// from the reply, leaving the JSON payload.
func cleanContent(content string) string {
	if i := strings.LastIndex(content, "</think>"); i >= 0 {
		content = content[i+len("</think>"):]
	}
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if nl := strings.Index(content, "\n"); nl >= 0 {
			content = content[nl+1:]
		}
		if end := strings.LastIndex(content, "```"); end >= 0 {
			content = content[:end]
		}
		content = strings.TrimSpace(content)
	}
	return content
}
