package qwen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"golang.org/x/xerrors"
)

var ErrUnavailable = errors.New("completion backend unavailable")

const defaultBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

// Completer is the text-generation port. The suggest service only ever asks
// for one completion per prompt and degrades deterministically when this
// fails, so the contract stays deliberately small.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Service calls the DashScope OpenAI-compatible chat-completions endpoint.
type Service struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewService creates a new completion client configured from the
// environment.
func NewService() *Service {
	baseURL := os.Getenv("DASHSCOPE_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Service{
		baseURL:    baseURL,
		apiKey:     os.Getenv("DASHSCOPE_API_KEY"),
		httpClient: &http.Client{},
	}
}

var _ Completer = (*Service)(nil)

func (s *Service) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	response, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Completion request failed: %v\n", err)
		return "", xerrors.Errorf("chat completion: %w", ErrUnavailable)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		log.Printf("Completion backend returned %d: %s\n", response.StatusCode, body)
		return "", xerrors.Errorf("chat completion status %d: %w", response.StatusCode, ErrUnavailable)
	}

	var apiResponse chatResponse
	if err := json.NewDecoder(response.Body).Decode(&apiResponse); err != nil {
		log.Printf("Failed to parse completion response: %v\n", err)
		return "", xerrors.Errorf("parse completion: %w", ErrUnavailable)
	}

	if len(apiResponse.Choices) == 0 {
		return "", xerrors.Errorf("empty completion: %w", ErrUnavailable)
	}
	return apiResponse.Choices[0].Message.Content, nil
}

// Disabled is the stub wired in when no API key is configured. Every call
// fails, which routes the suggest service straight to its deterministic
// fallbacks.
type Disabled struct{}

var _ Completer = Disabled{}

func (Disabled) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	return "", ErrUnavailable
}
