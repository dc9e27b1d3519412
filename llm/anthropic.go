package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/logger"
)

// AnthropicModel implements the LLM interface using Anthropic's API
type AnthropicModel struct {
	client anthropic.Client
	providerConfig
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key cannot be empty")
	}

	cfg := newProviderConfig(string(anthropic.ModelClaude3_5HaikuLatest), opts)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(common.NewRetryableClient(cfg.retry).StandardClient()),
		// retries are handled by the retryable transport
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}

	model := &AnthropicModel{
		client:         anthropic.NewClient(clientOpts...),
		providerConfig: cfg,
	}

	logger.Debugf("Anthropic client initialized with model: %s, timeout: %d seconds",
		model.modelName, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to Anthropic and returns the response
func (a *AnthropicModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.apiTimeout)*time.Second)
	defer cancel()

	messageParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: int64(a.tokens(req)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
		Temperature: anthropic.Float(float64(req.Temperature)),
	}
	if req.SystemPrompt != "" {
		messageParams.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	message, err := a.client.Messages.New(ctx, messageParams)
	if err != nil {
		logger.Warnf("anthropic message failed: %v", err)
		return Response{
			Error: fmt.Errorf("%w: create message: %v", ErrGeneration, err),
		}
	}

	var content strings.Builder
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content.WriteString(b.Text)
		}
	}

	text := common.NormalizeAnswer(content.String())
	if text == "" {
		return Response{
			Error: fmt.Errorf("%w: empty response from model %s", ErrGeneration, a.modelName),
		}
	}

	return Response{
		Content: text,
	}
}
