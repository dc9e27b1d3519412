package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIModel implements the LLM interface for any endpoint speaking the
// OpenAI chat completions protocol: OpenAI itself, the Hugging Face router
// and Ollama.
type OpenAIModel struct {
	client *openai.Client
	providerConfig
}

// NewOpenAI creates a new OpenAI-compatible client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	cfg := newProviderConfig("gpt-4.1-mini", opts)

	retryClient := common.NewRetryableClient(cfg.retry)

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = retryClient.StandardClient()
	if cfg.baseURL != "" {
		config.BaseURL = cfg.baseURL
	}

	model := &OpenAIModel{
		client:         openai.NewClientWithConfig(config),
		providerConfig: cfg,
	}

	logger.Debugf("OpenAI-compatible client initialized with model: %s, base url: %s, timeout: %d seconds",
		model.modelName, config.BaseURL, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to the chat completions endpoint and returns the response
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(o.apiTimeout)*time.Second)
	defer cancel()

	messages := []openai.ChatCompletionMessage{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   o.tokens(req),
		Temperature: req.Temperature,
	}

	logger.Debugf("Sending request with model %s, max tokens %d", o.modelName, chatReq.MaxTokens)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logger.Warnf("chat completion failed: %v", err)
		return Response{
			Error: fmt.Errorf("%w: chat completion: %v", ErrGeneration, err),
		}
	}

	if len(resp.Choices) == 0 {
		return Response{
			Error: fmt.Errorf("%w: response contained no choices", ErrGeneration),
		}
	}

	content := common.NormalizeAnswer(resp.Choices[0].Message.Content)
	if content == "" {
		return Response{
			Error: fmt.Errorf("%w: empty response from model %s", ErrGeneration, o.modelName),
		}
	}

	return Response{
		Content: content,
	}
}
