package chat

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompleter uses any OpenAI-compatible endpoint, such as Cerebras.
type OpenAICompleter struct {
	client     *openai.Client
	model      string
	titleModel string
}

// NewOpenAICompleter creates a completer for baseURL. titleModel may be
// empty to reuse model for titles.
func NewOpenAICompleter(baseURL, apiKey, model, titleModel string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if titleModel == "" {
		titleModel = model
	}
	return &OpenAICompleter{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		titleModel: titleModel,
	}
}

// Stream implements Completer.
func (c *OpenAICompleter) Stream(ctx context.Context, turns []Turn) (Stream, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toMessages(turns),
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start completion stream: %w", err)
	}
	return &openAIStream{stream: stream}, nil
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, turns []Turn) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.titleModel,
		Messages:    toMessages(turns),
		MaxTokens:   20,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toMessages(turns []Turn) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(t.Role), Content: t.Content})
	}
	return msgs
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		// Chunks without choices (usage, keep-alives) carry no text.
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
