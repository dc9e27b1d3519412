package answer

import (
	"context"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
	"github.com/birmacher/econ-bot/llm"
	"github.com/birmacher/econ-bot/logger"
	"github.com/birmacher/econ-bot/model"
	"github.com/birmacher/econ-bot/prompt"
)

// DefaultMaxRetries is the number of regenerations after the first attempt
const DefaultMaxRetries = 2

// State is a step of the generate-validate-retry cycle
type State int

const (
	StateAttempting State = iota
	StateValidating
	StateRetrying
	StateSuccess
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateValidating:
		return "validating"
	case StateRetrying:
		return "retrying"
	case StateSuccess:
		return "success"
	case StateFallback:
		return "fallback"
	}
	return "unknown"
}

// Controller drives one request through the model until the answer passes
// validation or the retry bound is spent, in which case the canned answer
// of the mode is returned instead.
type Controller struct {
	client     llm.LLM
	builder    prompt.Builder
	maxRetries int
}

func NewController(client llm.LLM, builder prompt.Builder, maxRetries int) *Controller {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Controller{
		client:     client,
		builder:    builder,
		maxRetries: maxRetries,
	}
}

// SetClient replaces the model client used by later requests
func (c *Controller) SetClient(client llm.LLM) {
	c.client = client
}

// Generate produces the answer for topic. Only input errors (empty topic,
// unknown mode, invalid marks) are returned; model failures end in the
// fallback answer.
func (c *Controller) Generate(ctx context.Context, topic string, mode exam.Mode, marks exam.Marks) (model.GenerationResult, error) {
	topic, err := exam.NormalizeTopic(topic)
	if err != nil {
		return model.GenerationResult{}, err
	}
	tmpl, err := exam.Lookup(mode)
	if err != nil {
		return model.GenerationResult{}, err
	}
	req, err := c.builder.Build(topic, mode, marks)
	if err != nil {
		return model.GenerationResult{}, err
	}

	result := model.GenerationResult{
		Mode:     mode.String(),
		Question: topic,
	}

	var (
		state   = StateAttempting
		retries = 0
		text    string
	)

	failed := func(reason error) State {
		logger.Infof("attempt %d for %s %q rejected: %v", result.Attempts, mode, topic, reason)
		if ctx.Err() != nil || retries >= c.maxRetries {
			return StateFallback
		}
		return StateRetrying
	}

	for {
		logger.Debugf("%s %q: %s", mode, topic, state)

		switch state {
		case StateAttempting:
			result.Attempts++
			resp := c.client.Prompt(ctx, req)
			if resp.Error != nil {
				state = failed(resp.Error)
				continue
			}
			text = resp.Content
			state = StateValidating

		case StateValidating:
			if err := Check(text, tmpl); err != nil {
				state = failed(err)
				continue
			}
			state = StateSuccess

		case StateRetrying:
			retries++
			state = StateAttempting

		case StateSuccess:
			result.RawText = common.NormalizeAnswer(text)
			result.Validated = true
			return result, nil

		case StateFallback:
			logger.Warnf("using fallback answer for %s %q after %d attempts", mode, topic, result.Attempts)
			result.RawText = tmpl.Fallback(topic)
			result.UsedFallback = true
			return result, nil
		}
	}
}
