// Package session runs the interactive command loop: it reads one command
// per turn, dispatches answer requests and logs one record per dispatch.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
	"github.com/birmacher/econ-bot/logger"
	"github.com/birmacher/econ-bot/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator produces a validated or fallback answer for one request
type Generator interface {
	Generate(ctx context.Context, topic string, mode exam.Mode, marks exam.Marks) (model.GenerationResult, error)
}

// Recorder stores the outcome of a request
type Recorder interface {
	Append(rec model.LogRecord) error
}

// ModelSwitcher replaces the model used for the following requests
type ModelSwitcher func(ctx context.Context, name string) error

// State is the process-local setting carried from one command to the next
type State struct {
	Marks exam.Marks
	Model string
}

type Session struct {
	id        string
	generator Generator
	recorder  Recorder
	out       io.Writer
	state     State
	switcher  ModelSwitcher
	wrapWidth int
	log       *zap.SugaredLogger
}

// Option customizes a Session
type Option func(*Session)

// WithMarks sets the initial mark weight
func WithMarks(marks exam.Marks) Option {
	return func(s *Session) {
		if marks.Valid() {
			s.state.Marks = marks
		}
	}
}

// WithModel records the model the session starts with
func WithModel(name string) Option {
	return func(s *Session) {
		s.state.Model = name
	}
}

// WithModelSwitcher enables the "model <name>" command
func WithModelSwitcher(switcher ModelSwitcher) Option {
	return func(s *Session) {
		s.switcher = switcher
	}
}

// WithWrapWidth wraps printed answers at width columns
func WithWrapWidth(width int) Option {
	return func(s *Session) {
		s.wrapWidth = width
	}
}

func New(generator Generator, recorder Recorder, out io.Writer, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		generator: generator,
		recorder:  recorder,
		out:       out,
		state:     State{Marks: exam.DefaultMarks},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.With("session", s.id)
	return s
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Run reads commands from in until exit, end of input or cancellation
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.log.Infow("session started", "marks", s.state.Marks, "model", s.state.Model)
	defer s.log.Infow("session ended")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "You> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out, "\nBye!")
			return scanner.Err()
		}

		if done := s.Handle(ctx, scanner.Text()); done {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the session should end
func (s *Session) Handle(ctx context.Context, line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.reportError(err)
		return false
	}

	switch cmd.Kind {
	case KindNone:
	case KindExit:
		fmt.Fprintln(s.out, "Bye!")
		return true
	case KindHelp:
		fmt.Fprintln(s.out, HelpText)
	case KindMarks:
		s.state.Marks = cmd.Marks
		fmt.Fprintf(s.out, "marks set to: %d\n", s.state.Marks)
	case KindModel:
		s.switchModel(ctx, cmd.Model)
	case KindDispatch, KindDemo:
		s.dispatch(ctx, cmd.Mode, cmd.Topic)
	}
	return false
}

func (s *Session) dispatch(ctx context.Context, mode exam.Mode, topic string) {
	result, err := s.generator.Generate(ctx, topic, mode, s.state.Marks)
	if err != nil {
		s.reportError(err)
		return
	}

	s.log.Infow("request answered",
		"mode", result.Mode,
		"marks", s.state.Marks,
		"attempts", result.Attempts,
		"validated", result.Validated,
		"used_fallback", result.UsedFallback)

	if err := s.recorder.Append(result.Record()); err != nil {
		s.log.Errorw("failed to write log record", "error", err)
		fmt.Fprintf(s.out, "[Warning] request log not written: %v\n", err)
	}

	fmt.Fprintf(s.out, "\nBot> %s\n\n", common.WrapText(result.RawText, s.wrapWidth))
}

func (s *Session) switchModel(ctx context.Context, name string) {
	if s.switcher == nil {
		fmt.Fprintln(s.out, "Switching models is not supported by this provider setup")
		return
	}
	if err := s.switcher(ctx, name); err != nil {
		s.log.Warnw("model switch failed", "model", name, "error", err)
		s.reportError(err)
		return
	}
	s.log.Infow("model switched", "from", s.state.Model, "to", name)
	s.state.Model = name
	fmt.Fprintf(s.out, "model set to: %s\n", s.state.Model)
}

func (s *Session) reportError(err error) {
	switch {
	case errors.Is(err, exam.ErrEmptyTopic):
		fmt.Fprintln(s.out, "Please provide a topic, e.g. /notes inflation")
	case errors.Is(err, exam.ErrInvalidMarks):
		fmt.Fprintln(s.out, "marks must be 2, 5, or 10")
	case errors.Is(err, ErrMissingModel):
		fmt.Fprintln(s.out, "Please provide a model name, e.g. model llama3.2:1b")
	case errors.Is(err, ErrUnrecognizedCommand):
		fmt.Fprintf(s.out, "%v. Type 'help' for commands.\n", err)
	default:
		fmt.Fprintf(s.out, "[Error] %v\n", err)
	}
}
