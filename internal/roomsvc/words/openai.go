package words

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultChatModel = "gpt-4o-mini"

// Generator produces themed word lists through an OpenAI-compatible
// chat-completions endpoint. Callers must not hold any room lock across
// Generate; the call can take seconds.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeneratorFromEnv() *Generator {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultChatModel
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Generator{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate asks the model for exactly count short common words about the
// theme. Any failure leaves the caller's settings untouched.
func (g *Generator) Generate(ctx context.Context, theme string, count int) ([]string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, errors.New("word generation is not configured")
	}
	if count < 1 {
		return nil, fmt.Errorf("word count must be positive, got %d", count)
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You produce word lists for a party guessing game. Reply with one word per line, no numbering, no punctuation."},
			{Role: "user", Content: fmt.Sprintf("Give me %d short common words related to the theme %q.", count, theme)},
		},
		Temperature: 0.9,
		MaxTokens:   300,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build word generation request")
	}

	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build word generation request")
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(g.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the word generation service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the word generation response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("word generation request failed (%d)", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse the word generation response")
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("word generation error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("word generation returned no choices")
	}

	list := parseWordList(parsed.Choices[0].Message.Content)
	if len(list) < count {
		return nil, fmt.Errorf("word generation returned %d words, wanted %d", len(list), count)
	}
	return list[:count], nil
}

func parseWordList(content string) []string {
	var out []string
	for _, raw := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		w := strings.TrimSpace(raw)
		w = strings.Trim(w, "-•*. \t")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
