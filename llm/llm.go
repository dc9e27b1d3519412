package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/logger"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOllama      = "ollama"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
)

const (
	HuggingFaceBaseURL = "https://router.huggingface.co/v1"
	OllamaBaseURL      = "http://localhost:11434/v1"
)

// ErrGeneration wraps every failure of the model call: transport errors,
// timeouts and empty or malformed responses alike.
var ErrGeneration = errors.New("generation failed")

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	APITimeoutOption  OptionType = "api_timeout"
	BaseURLOption     OptionType = "base_url"
	RetryConfigOption OptionType = "retry_config"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens creates an option to set the default max tokens, used when a
// request does not carry its own budget
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithBaseURL creates an option to point a provider at a different endpoint
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithRetryConfig creates an option to tune the HTTP retry behaviour
func WithRetryConfig(cfg common.RetryConfig) Option {
	return Option{
		Type:  RetryConfigOption,
		Value: cfg,
	}
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(ctx context.Context, req Request) Response
}

// providerConfig collects the options shared by every provider
type providerConfig struct {
	modelName  string
	maxTokens  int
	apiTimeout int // in seconds
	baseURL    string
	retry      common.RetryConfig
}

func newProviderConfig(defaultModel string, opts []Option) providerConfig {
	cfg := providerConfig{
		modelName:  defaultModel,
		maxTokens:  512,
		apiTimeout: 60,
		retry:      common.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				cfg.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok && maxTokens > 0 {
				cfg.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok && timeout > 0 {
				cfg.apiTimeout = timeout
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok {
				cfg.baseURL = strings.TrimRight(baseURL, "/")
			}
		case RetryConfigOption:
			if retry, ok := opt.Value.(common.RetryConfig); ok {
				cfg.retry = retry
			}
		}
	}

	return cfg
}

func (c providerConfig) tokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return c.maxTokens
}

// apiKeyEnv lists the environment variables checked for each provider, in order
var apiKeyEnv = map[string][]string{
	ProviderHuggingFace: {"LLM_API_KEY", "HF_TOKEN"},
	ProviderOpenAI:      {"LLM_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic:   {"LLM_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderGemini:      {"LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

func getAPIKey(providerName string) (string, error) {
	names := apiKeyEnv[providerName]
	for _, name := range names {
		if apiKey := strings.TrimSpace(os.Getenv(name)); apiKey != "" {
			return apiKey, nil
		}
	}
	return "", fmt.Errorf("%s environment variable is not set", strings.Join(names, " or "))
}

// NewLLM creates the client for the named provider. The API key is read from
// the environment; ollama runs locally and needs none.
func NewLLM(ctx context.Context, providerName, modelName string, opts ...Option) (LLM, error) {
	var llmClient LLM
	var err error

	options := []Option{WithModel(modelName)}
	options = append(options, opts...)

	apiKey := ""
	if _, needsKey := apiKeyEnv[providerName]; needsKey {
		if apiKey, err = getAPIKey(providerName); err != nil {
			return nil, err
		}
	}

	switch providerName {
	case ProviderHuggingFace:
		llmClient, err = NewOpenAI(apiKey, append([]Option{WithBaseURL(HuggingFaceBaseURL)}, options...)...)
	case ProviderOllama:
		llmClient, err = NewOpenAI("ollama", append([]Option{WithBaseURL(OllamaBaseURL)}, options...)...)
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, options...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, options...)
	case ProviderGemini:
		llmClient, err = NewGemini(ctx, apiKey, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", providerName)
	}

	if err == nil {
		logger.Infof("Using LLM provider %s with model %s", providerName, modelName)
	}

	return llmClient, err
}
