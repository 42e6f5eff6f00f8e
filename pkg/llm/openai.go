package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	maxTokens int64
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		maxTokens: 1024,
	}
}

func (c *OpenAIClient) params(prompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:               c.model,
		MaxCompletionTokens: openai.Int(c.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.params(prompt))
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Stream(ctx context.Context, prompt string) (ChunkStream, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params(prompt))
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("openai stream open: %w", err)
	}
	return &openaiStream{inner: stream}, nil
}

type openaiStream struct {
	inner *ssestream.Stream[openai.ChatCompletionChunk]
	text  string
}

func (s *openaiStream) Next() bool {
	for s.inner.Next() {
		chunk := s.inner.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			s.text = chunk.Choices[0].Delta.Content
			return true
		}
	}
	return false
}

func (s *openaiStream) Text() string {
	return s.text
}

func (s *openaiStream) Err() error {
	if err := s.inner.Err(); err != nil {
		return fmt.Errorf("openai stream error: %w", err)
	}
	return nil
}

func (s *openaiStream) Close() error {
	return s.inner.Close()
}
