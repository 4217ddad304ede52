package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client      *openai.Client
	model       openai.ChatModel
	streamModel openai.ChatModel
	temperature float64
}

// NewOpenAIClient builds the provider adapter. model serves the synchronous
// editor path, streamModel the chat path; either may be empty to take the
// default.
func NewOpenAIClient(apiKey, model, streamModel string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	if streamModel == "" {
		streamModel = model
	}

	return &OpenAIClient{
		client:      &client,
		model:       openai.ChatModel(model),
		streamModel: openai.ChatModel(streamModel),
		temperature: 0.7,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(c.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Stream(ctx context.Context, system, prompt string) <-chan Fragment {
	out := make(chan Fragment)

	go func() {
		defer close(out)

		stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
			Model:       c.streamModel,
			Temperature: openai.Float(c.temperature),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(prompt),
			},
		})

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}

			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			select {
			case out <- Fragment{Text: delta}:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil {
			select {
			case out <- Fragment{Err: fmt.Errorf("openai stream error: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
