package llm

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI answers prompts with the OpenAI chat completion API, or any API
// compatible with it.
type OpenAI struct {
	client *openai.Client
	Options
}

var _ Streamer = (*OpenAI)(nil)

func NewOpenAI(client *openai.Client, opts ...Option) *OpenAI {
	return &OpenAI{
		client:  client,
		Options: newOptions(DefaultOpenAIModel, opts),
	}
}

// NewOpenAIClient creates a client for apiKey. An empty baseURL keeps the
// OpenAI endpoint.
func NewOpenAIClient(apiKey string, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (o *OpenAI) request(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
}

func (o *OpenAI) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.request(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyAnswer
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Stream(ctx context.Context, prompt string, fn func(delta string) error) error {
	req := o.request(prompt)
	req.Stream = true
	stream, err := o.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return err
	}
	defer stream.Close()
	var parts int
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		parts++
		if err := fn(resp.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	if parts == 0 {
		return ErrEmptyAnswer
	}
	return nil
}
