// Package llm is the boundary to the hosted Groq chat-completion API. One
// outbound request per chat turn: system prompt plus full transcript in,
// free text out. No retries, no streaming; failures surface to the caller.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SystemPrompt frames every chatbot conversation.
const SystemPrompt = `You are MindMate, an empathetic and supportive mental health companion. Your role is to:
- Provide emotional support and understanding
- Listen actively and respond with empathy
- Offer constructive coping strategies and suggestions
- Encourage professional help when appropriate
- Maintain a safe and non-judgmental space
- Never provide medical diagnosis or replace professional mental health care
- Always respond in a warm, supportive manner`

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
	logger  *zap.Logger
}

func NewClient(apiKey, baseURL, model string, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the transcript (system prompt prepended) and returns the
// model's reply text.
func (c *Client) Complete(ctx context.Context, transcript []ChatMessage) (string, error) {
	messages := append([]ChatMessage{{Role: "system", Content: SystemPrompt}}, transcript...)

	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	c.logger.Debug("completion received",
		zap.String("model", c.model),
		zap.Int("transcript_len", len(transcript)),
	)
	return parsed.Choices[0].Message.Content, nil
}

// EstimateTokens is the rough chars/4 heuristic used for budget accounting
// before a call is made.
func EstimateTokens(messages []ChatMessage) int64 {
	var chars int
	for _, m := range messages {
		chars += len(m.Content)
	}
	return int64(chars/4) + 1
}
