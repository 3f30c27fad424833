// Package gemini wraps the Google generative-language HTTP API behind a
// text-in/text-out interface. The rest of the system treats the model as an
// opaque collaborator.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Generator defines the interface for free-text generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	httpClient *resty.Client
	apiKey     string
	model      string
}

// NewClient creates a configured Gemini client. The timeout bounds the whole
// call and one retry covers transient upstream failures.
func NewClient(apiKey, model string) Generator {
	client := resty.New().
		SetHeader("content-type", "application/json").
		SetTimeout(20 * time.Second).
		SetRetryCount(1).
		SetRetryWaitTime(2 * time.Second)

	return &geminiClient{httpClient: client, apiKey: apiKey, model: model}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the model's raw text answer.
func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent", baseURL, c.model)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: status %d", resp.StatusCode())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	text := strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
