package gpt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type CompletionRequest struct {
	Prompt          string
	MaxOutputTokens int
}

type Segment struct {
	Text string
}

type CompletionResponse struct {
	Segments []Segment
}

// Completer is the text-in/text-out completion service.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

type ClientConfig struct {
	ApiUrl      string
	ApiKey      string
	Model       string
	Temperature float32
}

type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

var _ Completer = (*Client)(nil)

func NewClient(cnf ClientConfig) (*Client, error) {
	if cnf.ApiKey == "" {
		return nil, fmt.Errorf("gpt: api key is required")
	}

	oc := openai.DefaultConfig(cnf.ApiKey)
	if cnf.ApiUrl != "" {
		oc.BaseURL = cnf.ApiUrl
	}

	model := cnf.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &Client{
		api:         openai.NewClientWithConfig(oc),
		model:       model,
		temperature: cnf.Temperature,
	}, nil
}

// Complete maps every returned choice to a segment, in order.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   req.MaxOutputTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("chat completion: %w", err)
	}

	out := CompletionResponse{Segments: make([]Segment, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		out.Segments = append(out.Segments, Segment{Text: choice.Message.Content})
	}
	return out, nil
}
