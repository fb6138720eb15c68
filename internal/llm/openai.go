package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
// The default configuration points it at Gemini's compatibility layer.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []domain.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message domain.Message `json:"message"`
	} `json:"choices"`
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Complete sends the messages to the model and returns the first choice's
// text. Transport, authentication, and quota failures all come back as
// Success=false with the underlying message preserved.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Message) Result {
	text, err := c.complete(ctx, messages)
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}
	return Result{Success: true, Response: text}
}

func (c *OpenAIClient) complete(ctx context.Context, messages []domain.Message) (string, error) {
	data, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion server returned status: %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no response from completion server")
	}
	return out.Choices[0].Message.Content, nil
}
