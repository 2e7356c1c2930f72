package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"congestion-server/api"
)

const (
	temperature     = 0.2
	maxOutputTokens = 4096
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	Tools            []map[string]any `json:"tools,omitempty"`
	GenerationConfig map[string]any   `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeminiApiClient embeds the common HTTPClient
type GeminiApiClient struct {
	*api.HTTPClient
	apiKey  string
	model   string
	retrier api.Retrier
}

// NewGeminiApiClient creates a new instance of GeminiApiClient
func NewGeminiApiClient(httpClient *api.HTTPClient, apiKey, model string, retrier api.Retrier) *GeminiApiClient {
	return &GeminiApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		model:      model,
		retrier:    retrier,
	}
}

// FetchEventFacts asks the model, with search grounding, for the events at venueNames on date.
func (c *GeminiApiClient) FetchEventFacts(ctx context.Context, stationName, date string, venueNames []string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if c.model == "" {
		return nil, errors.New("missing GEMINI_MODEL")
	}

	request := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: BuildEventFactsPrompt(stationName, date, venueNames)}}}},
		Tools:    []map[string]any{{"google_search": map[string]any{}}},
		GenerationConfig: map[string]any{
			"temperature":     temperature,
			"maxOutputTokens": maxOutputTokens,
		},
	}
	endpoint := fmt.Sprintf("/models/%s:generateContent", c.model)

	response, err := api.Retry(ctx, c.retrier, "gemini/generateContent", func(ctx context.Context) (*generateContentResponse, error) {
		var response generateContentResponse
		if err := c.Request(ctx, http.MethodPost, endpoint, map[string]string{"x-goog-api-key": c.apiKey}, request, &response); err != nil {
			return nil, err
		}
		return &response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event facts for %s on %s: %w", stationName, date, err)
	}

	if len(response.Candidates) == 0 {
		log.Printf("[GeminiApiClient] empty answer for %s on %s", stationName, date)
		return []byte{}, nil
	}
	var text strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return []byte(text.String()), nil
}
