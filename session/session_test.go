package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/birmacher/econ-bot/answer"
	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
	"github.com/birmacher/econ-bot/llm"
	"github.com/birmacher/econ-bot/model"
	"github.com/birmacher/econ-bot/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRecorder struct {
	records []model.LogRecord
	err     error
}

func (r *memoryRecorder) Append(rec model.LogRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

// formatLLM answers every request in the right format for the mode named in
// the user prompt, unless a fixed reply is set
type formatLLM struct {
	reply    string
	requests []llm.Request
}

func (f *formatLLM) Prompt(ctx context.Context, req llm.Request) llm.Response {
	f.requests = append(f.requests, req)
	if f.reply != "" {
		return llm.Response{Content: f.reply}
	}
	for _, mode := range exam.Modes {
		if strings.Contains(req.UserPrompt, "Mode: "+mode.String()) {
			tmpl, _ := exam.Lookup(mode)
			return llm.Response{Content: render(tmpl)}
		}
	}
	return llm.Response{Error: llm.ErrGeneration}
}

func render(tmpl exam.Template) string {
	var b strings.Builder
	for i := 1; i <= tmpl.QuestionCount; i++ {
		fmt.Fprintf(&b, "Q%d. Which statement is correct?\nA) one\nB) two\nC) three\nD) four\n\n", i)
	}
	if tmpl.AnswerKeyLabel != "" {
		fmt.Fprintf(&b, "%s: 1-A, 2-B, 3-C, 4-D, 5-A\n", tmpl.AnswerKeyLabel)
	}
	for i, s := range tmpl.Sections {
		fmt.Fprintf(&b, "%d) %s:\n- A complete point.\n\n", i+1, s.Label)
	}
	return b.String()
}

func newSession(t *testing.T, client llm.LLM, opts ...Option) (*Session, *memoryRecorder, *bytes.Buffer) {
	t.Helper()
	rec := &memoryRecorder{}
	out := &bytes.Buffer{}
	controller := answer.NewController(client, prompt.NewBuilder(common.WithDefaultSettings()), 2)
	return New(controller, rec, out, opts...), rec, out
}

func run(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	require.NoError(t, s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n")))
}

func TestRun_MCQRequestIsValidated(t *testing.T) {
	s, rec, out := newSession(t, &formatLLM{})

	run(t, s, "/mcq monetary policy", "exit")

	require.Len(t, rec.records, 1)
	assert.Equal(t, model.LogRecord{Mode: "mcq", Question: "monetary policy", Validated: true, UsedFallback: false}, rec.records[0])
	assert.Contains(t, out.String(), "Bot> Q1.")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRun_MalformedOutputFallsBack(t *testing.T) {
	client := &formatLLM{reply: "Tax is a compulsory payment to the government."}
	s, rec, out := newSession(t, client)

	run(t, s, "/pyq tax", "exit")

	require.Len(t, rec.records, 1)
	assert.Equal(t, model.LogRecord{Mode: "pyq", Question: "tax", Validated: false, UsedFallback: true}, rec.records[0])
	assert.Len(t, client.requests, 3)
	assert.Contains(t, out.String(), "Topic: tax")
}

func TestRun_ExitFirstWritesNothing(t *testing.T) {
	client := &formatLLM{}
	s, rec, out := newSession(t, client)

	run(t, s, "exit", "/notes never reached")

	assert.Empty(t, rec.records)
	assert.Empty(t, client.requests)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRun_OneRecordPerDispatch(t *testing.T) {
	s, rec, _ := newSession(t, &formatLLM{})

	run(t, s,
		"/notes inflation",
		"help",
		"marks 2",
		"/explain opportunity cost",
		"nonsense",
		"/notes",
		"/numerical multiplier",
		"/exam fiscal policy",
		"exit")

	require.Len(t, rec.records, 4)
	modes := make([]string, 0, len(rec.records))
	for _, r := range rec.records {
		modes = append(modes, r.Mode)
		assert.True(t, r.Validated)
		assert.False(t, r.UsedFallback)
	}
	assert.Equal(t, []string{"notes", "explain", "numerical", "exam"}, modes)
}

func TestRun_MarksScalePrompt(t *testing.T) {
	client := &formatLLM{}
	s, _, out := newSession(t, client)

	run(t, s, "marks 5", "/notes inflation", "marks 10", "/notes inflation", "exit")

	require.Len(t, client.requests, 2)
	assert.Contains(t, client.requests[0].UserPrompt, "Write a 5-mark answer.")
	assert.Contains(t, client.requests[1].UserPrompt, "Write a 10-mark answer.")
	assert.Less(t, client.requests[0].MaxTokens, client.requests[1].MaxTokens)
	assert.Contains(t, out.String(), "marks set to: 10")
	assert.Equal(t, exam.Marks10, s.State().Marks)
}

func TestRun_InvalidMarksKeepsState(t *testing.T) {
	s, _, out := newSession(t, &formatLLM{}, WithMarks(exam.Marks2))

	run(t, s, "marks 7", "exit")

	assert.Contains(t, out.String(), "marks must be 2, 5, or 10")
	assert.Equal(t, exam.Marks2, s.State().Marks)
}

func TestRun_Demo(t *testing.T) {
	client := &formatLLM{}
	s, rec, _ := newSession(t, client)

	run(t, s, "/demo", "exit")

	require.Len(t, rec.records, 1)
	assert.Equal(t, "notes", rec.records[0].Mode)
	assert.Equal(t, DemoTopic, rec.records[0].Question)
	assert.Contains(t, client.requests[0].UserPrompt, "Topic: IS-LM model")
}

func TestRun_UserErrors(t *testing.T) {
	client := &formatLLM{}
	s, rec, out := newSession(t, client)

	run(t, s, "/notes   ", "what is GDP?", "/essay tax", "exit")

	assert.Empty(t, rec.records)
	assert.Empty(t, client.requests)
	assert.Contains(t, out.String(), "Please provide a topic, e.g. /notes inflation")
	assert.Equal(t, 2, strings.Count(out.String(), "Type 'help' for commands."))
}

func TestRun_EndOfInput(t *testing.T) {
	s, rec, out := newSession(t, &formatLLM{})

	require.NoError(t, s.Run(context.Background(), strings.NewReader("/notes inflation")))

	assert.Len(t, rec.records, 1)
	assert.True(t, strings.HasSuffix(out.String(), "Bye!\n"))
}

func TestRun_CancelledContext(t *testing.T) {
	s, rec, _ := newSession(t, &formatLLM{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, strings.NewReader("/notes inflation\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.records)
}

func TestHandle_RecorderFailureStillAnswers(t *testing.T) {
	s, rec, out := newSession(t, &formatLLM{})
	rec.err = errors.New("disk full")

	done := s.Handle(context.Background(), "/notes inflation")

	assert.False(t, done)
	assert.Contains(t, out.String(), "request log not written: disk full")
	assert.Contains(t, out.String(), "Bot> ")
}

func TestHandle_Help(t *testing.T) {
	s, _, out := newSession(t, &formatLLM{})

	assert.False(t, s.Handle(context.Background(), "help"))
	assert.Contains(t, out.String(), "/numerical <topic>")
	assert.True(t, s.Handle(context.Background(), "exit"))
}

func TestRun_ModelSwitch(t *testing.T) {
	first := &formatLLM{}
	second := &formatLLM{}
	rec := &memoryRecorder{}
	out := &bytes.Buffer{}
	controller := answer.NewController(first, prompt.NewBuilder(common.WithDefaultSettings()), 2)

	var switched []string
	switcher := func(ctx context.Context, name string) error {
		switched = append(switched, name)
		controller.SetClient(second)
		return nil
	}
	s := New(controller, rec, out, WithModel("llama3.2:1b"), WithModelSwitcher(switcher))

	run(t, s, "/notes inflation", "model qwen2.5:7b", "/notes deflation", "exit")

	assert.Equal(t, []string{"qwen2.5:7b"}, switched)
	assert.Equal(t, "qwen2.5:7b", s.State().Model)
	assert.Len(t, first.requests, 1)
	assert.Len(t, second.requests, 1)
	assert.Len(t, rec.records, 2)
	assert.Contains(t, out.String(), "model set to: qwen2.5:7b")
}

func TestRun_ModelSwitchFailureKeepsModel(t *testing.T) {
	switcher := func(ctx context.Context, name string) error {
		return errors.New("unsupported provider: cohere")
	}
	s, _, out := newSession(t, &formatLLM{}, WithModel("llama3.2:1b"), WithModelSwitcher(switcher))

	run(t, s, "model other", "model", "exit")

	assert.Equal(t, "llama3.2:1b", s.State().Model)
	assert.Contains(t, out.String(), "[Error] unsupported provider: cohere")
	assert.Contains(t, out.String(), "Please provide a model name")
}

func TestRun_ModelSwitchUnavailable(t *testing.T) {
	s, _, out := newSession(t, &formatLLM{}, WithModel("llama3.2:1b"))

	run(t, s, "model other", "exit")

	assert.Equal(t, "llama3.2:1b", s.State().Model)
	assert.Contains(t, out.String(), "Switching models is not supported")
}
