package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rohitmenonhart-xhunter/starweb-p1/config"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Client is a lightweight OpenAI-compatible chat-completion client.
// It uses net/http directly — no third-party SDK needed. One Client is
// constructed at startup and injected into the analysis orchestrator;
// tests substitute a fake implementing the same capability.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewClient creates a new LLM client from config.
// Pass nil to use a default http.Client.
func NewClient(cfg config.AIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
	}
}

// Request is one chat completion request. ImagePNG, when set, is
// attached to the user message as a base64 data URL content part so
// vision-capable models can see the screenshot.
type Request struct {
	System   string
	User     string
	ImagePNG []byte
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage carries either a plain string content or a content-part
// array (needed for image attachments).
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the LLM provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends one chat request and returns the raw narrative text.
// The reply is untrusted free text; callers parse it defensively.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	userContent := any(req.User)
	if len(req.ImagePNG) > 0 {
		userContent = []contentPart{
			{Type: "text", Text: req.User},
			{Type: "image_url", ImageURL: &imageURL{
				URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.ImagePNG),
			}},
		}
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: userContent},
		},
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", models.NewAuditError(models.ErrCodeAIFailure, "AI request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewAuditError(models.ErrCodeAIFailure, "failed to read AI response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyAPIError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", models.NewAuditError(models.ErrCodeAIFailure, "failed to parse AI response", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", models.NewAuditError(models.ErrCodeAIFailure, "AI returned no choices", nil)
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", models.NewAuditError(models.ErrCodeAIFailure, "AI returned empty content", nil)
	}

	return content, nil
}

// classifyAPIError maps provider HTTP status codes to audit errors.
func classifyAPIError(statusCode int, body []byte) *models.AuditError {
	var errResp chatErrorResponse
	msg := "AI API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewAuditError(models.ErrCodeAIFailure, "AI authentication failed: "+msg, nil)
	case statusCode == http.StatusTooManyRequests:
		return models.NewAuditError(models.ErrCodeAIFailure, "AI rate limited: "+msg, nil)
	default:
		return models.NewAuditError(models.ErrCodeAIFailure, fmt.Sprintf("AI API returned %d: %s", statusCode, msg), nil)
	}
}
