package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

type AnthropicClient struct {
	client      *anthropic.Client
	model       anthropic.Model
	streamModel anthropic.Model
}

func NewAnthropicClient(apiKey, model, streamModel string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		// anthropic-sdk-go v1.5.0 predates the ModelClaudeHaiku4_5 constant;
		// use its literal value ("claude-haiku-4-5") instead.
		model = "claude-haiku-4-5"
	}
	if streamModel == "" {
		streamModel = model
	}

	return &AnthropicClient{
		client:      &client,
		model:       anthropic.Model(model),
		streamModel: anthropic.Model(streamModel),
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return resp.Content[0].Text, nil
}

func (c *AnthropicClient) Stream(ctx context.Context, system, prompt string) <-chan Fragment {
	out := make(chan Fragment)

	go func() {
		defer close(out)

		stream := c.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
			Model:     c.streamModel,
			MaxTokens: anthropicMaxTokens,
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})

		for stream.Next() {
			event := stream.Current()

			delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
			if !ok {
				continue
			}

			text, ok := delta.Delta.AsAny().(anthropic.TextDelta)
			if !ok || text.Text == "" {
				continue
			}

			select {
			case out <- Fragment{Text: text.Text}:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil {
			select {
			case out <- Fragment{Err: fmt.Errorf("anthropic stream error: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
