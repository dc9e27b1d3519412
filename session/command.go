package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/birmacher/econ-bot/exam"
)

var (
	// ErrUnrecognizedCommand is returned for input that is not a known command
	ErrUnrecognizedCommand = errors.New("command not recognized")

	// ErrMissingModel is returned by "model" without a model name
	ErrMissingModel = errors.New("model name cannot be empty")
)

// DemoTopic is answered in notes mode by /demo
const DemoTopic = "IS-LM model"

type Kind int

const (
	KindNone Kind = iota
	KindDispatch
	KindMarks
	KindDemo
	KindHelp
	KindExit
	KindModel
)

// Command is one parsed input line
type Command struct {
	Kind  Kind
	Mode  exam.Mode
	Topic string
	Marks exam.Marks
	Model string
}

const HelpText = `Commands:
  /notes <topic>      revision notes
  /mcq <topic>        5 multiple-choice questions with an answer key
  /pyq <topic>        past-year question guidance
  /explain <topic>    concept explanation
  /numerical <topic>  worked numerical solution
  /exam <topic>       exam-ready answer
  /demo               notes on the IS-LM model
  marks 2|5|10        set the mark weight used for length and detail
  model <name>        switch the model of the current provider
  help
  exit`

// ParseCommand interprets a single line of user input
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindNone}, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "exit":
		return Command{Kind: KindExit}, nil
	case "help", "?":
		return Command{Kind: KindHelp}, nil
	case "marks":
		marks, err := exam.ParseMarks(arg)
		if err != nil {
			return Command{Kind: KindMarks}, err
		}
		return Command{Kind: KindMarks, Marks: marks}, nil
	case "model":
		if arg == "" {
			return Command{Kind: KindModel}, ErrMissingModel
		}
		return Command{Kind: KindModel, Model: arg}, nil
	case "/demo":
		return Command{Kind: KindDemo, Mode: exam.ModeNotes, Topic: DemoTopic}, nil
	}

	if !strings.HasPrefix(name, "/") {
		return Command{}, fmt.Errorf("%w: %q", ErrUnrecognizedCommand, line)
	}

	mode, err := exam.ParseMode(strings.TrimPrefix(name, "/"))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnrecognizedCommand, name)
	}

	topic, err := exam.NormalizeTopic(arg)
	if err != nil {
		return Command{Kind: KindDispatch, Mode: mode}, err
	}
	return Command{Kind: KindDispatch, Mode: mode, Topic: topic}, nil
}
