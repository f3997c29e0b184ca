package translate

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when Options.Model is empty.
const DefaultOpenAIModel = "gpt-4o-mini"

const systemPrompt = `You are a translation engine. Translate the text the user sends from %s to %s.
The text was recognized from a scanned page and may contain OCR mistakes; translate what was meant.
Reply with the translation only, without quotes, notes or explanations.`

// OpenAI translates with a chat completion model.
type OpenAI struct {
	client *openai.Client
	model  string
}

var _ Translator = (*OpenAI)(nil)

// NewOpenAI creates the openai backend. opts.Endpoint selects an OpenAI
// compatible server.
func NewOpenAI(opts Options) (*OpenAI, error) {
	if opts.APIKey == "" && opts.Endpoint == "" {
		return nil, errors.New("openai translator needs an API key")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.Endpoint != "" {
		cfg.BaseURL = opts.Endpoint
	}
	cfg.HTTPClient = opts.httpClient()

	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Name implements Translator.
func (o *OpenAI) Name() string { return "openai" }

// Translate implements Translator.
func (o *OpenAI) Translate(ctx context.Context, text, source, target string) (string, error) {
	translated, err := o.translate(ctx, text, source, target)
	return result(o.Name(), text, translated, err)
}

func (o *OpenAI) translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, source, target)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
