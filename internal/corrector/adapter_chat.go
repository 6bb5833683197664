package corrector

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGroqModel   = "llama-3.3-70b-versatile"

	groqBaseURL = "https://api.groq.com/openai/v1"
)

// ChatOracle implements Oracle against an OpenAI-compatible chat
// completions API.
type ChatOracle struct {
	client       *openai.Client
	cfg          OracleConfig
	name         string
	defaultModel string
}

// NewOpenAIOracle creates a correction oracle backed by OpenAI.
func NewOpenAIOracle(cfg OracleConfig) *ChatOracle {
	return &ChatOracle{
		client:       openai.NewClient(cfg.APIKey),
		cfg:          cfg,
		name:         "openai",
		defaultModel: defaultOpenAIModel,
	}
}

// NewGroqOracle creates a correction oracle backed by Groq's
// OpenAI-compatible API.
func NewGroqOracle(cfg OracleConfig) *ChatOracle {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = groqBaseURL
	return &ChatOracle{
		client:       openai.NewClientWithConfig(clientConfig),
		cfg:          cfg,
		name:         "groq",
		defaultModel: defaultGroqModel,
	}
}

func (o *ChatOracle) Correct(ctx context.Context, prompt Prompt) (string, error) {
	callCtx := ctx
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	model := o.cfg.Model
	if model == "" {
		model = o.defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(callCtx, req)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", &TimeoutError{Err: err}
		}

		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &TransportError{StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &TransportError{StatusCode: reqErr.HTTPStatusCode, Err: err}
		}
		return "", &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	log.Printf("%s-oracle: completion in %v", o.name, duration)
	return content, nil
}
