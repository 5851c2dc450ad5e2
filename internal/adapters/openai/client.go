// Package openai provides an adapter for the OpenAI chat-completions API.
// It backs both mood classification and song recommendation with JSON-only
// prompts and parses the structured responses into domain values.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-3.5-turbo"
)

const classifySystemPrompt = "You are a mood analysis assistant that returns JSON only."

const recommendSystemPrompt = "You are a music recommendation assistant. Always respond with valid JSON only, no markdown."

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var (
	_ ports.MoodAnalyzer    = (*Client)(nil)
	_ ports.SongRecommender = (*Client)(nil)
)

func NewClient(apiKey, baseURL, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) AnalyzeMood(ctx context.Context, text string) (domain.Mood, error) {
	prompt := fmt.Sprintf(`Analyze the following text and determine the primary mood or emotion expressed.
Return a JSON object with:
1. "name": A single word or short phrase (max 2-3 words) that best describes the mood
2. "icon": An appropriate emoji that represents this mood

Text to analyze: %q

Return ONLY valid JSON without any explanations or additional text.`, text)

	content, err := c.complete(ctx, classifySystemPrompt, prompt, 0.5, 150)
	if err != nil {
		return domain.Mood{}, err
	}

	var mood domain.Mood
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &mood); err != nil {
		return domain.Mood{}, fmt.Errorf("openai: decode mood: %w", err)
	}
	mood.IsCustom = true
	return mood, nil
}

func (c *Client) RecommendSongs(ctx context.Context, moods []string) ([]domain.Song, error) {
	prompt := fmt.Sprintf(`You are a music recommendation system. Generate a playlist of 5 songs that match these mood(s): %s.
Return ONLY a JSON array of objects with 'title' and 'artist' properties.
Do not include any markdown formatting, explanations, or additional text.
Example: [{"title": "Song Name", "artist": "Artist Name"}]`, strings.Join(moods, ", "))

	content, err := c.complete(ctx, recommendSystemPrompt, prompt, 0.7, 500)
	if err != nil {
		return nil, err
	}

	var songs []domain.Song
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &songs); err != nil {
		return nil, fmt.Errorf("openai: decode songs: %w", err)
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("openai: empty recommendation list")
	}
	return songs, nil
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return content, nil
}

// stripCodeFences removes markdown wrappers models sometimes add despite the
// JSON-only instruction.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
