package session

import (
	"testing"

	"github.com/birmacher/econ-bot/exam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{Kind: KindNone}},
		{"   ", Command{Kind: KindNone}},
		{"exit", Command{Kind: KindExit}},
		{"EXIT", Command{Kind: KindExit}},
		{"help", Command{Kind: KindHelp}},
		{"marks 10", Command{Kind: KindMarks, Marks: exam.Marks10}},
		{"model llama3.2:1b", Command{Kind: KindModel, Model: "llama3.2:1b"}},
		{"MODEL  Qwen/Qwen2.5-7B-Instruct ", Command{Kind: KindModel, Model: "Qwen/Qwen2.5-7B-Instruct"}},
		{"/demo", Command{Kind: KindDemo, Mode: exam.ModeNotes, Topic: DemoTopic}},
		{"/notes inflation", Command{Kind: KindDispatch, Mode: exam.ModeNotes, Topic: "inflation"}},
		{"/mcq   monetary   policy ", Command{Kind: KindDispatch, Mode: exam.ModeMCQ, Topic: "monetary policy"}},
		{"/pyq tax", Command{Kind: KindDispatch, Mode: exam.ModePYQ, Topic: "tax"}},
		{"/explain opportunity cost", Command{Kind: KindDispatch, Mode: exam.ModeExplain, Topic: "opportunity cost"}},
		{"/numerical multiplier with MPC 0.8", Command{Kind: KindDispatch, Mode: exam.ModeNumerical, Topic: "multiplier with MPC 0.8"}},
		{"/exam fiscal policy", Command{Kind: KindDispatch, Mode: exam.ModeExam, Topic: "fiscal policy"}},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("what is GDP?")
	assert.ErrorIs(t, err, ErrUnrecognizedCommand)

	_, err = ParseCommand("/essay tax")
	assert.ErrorIs(t, err, ErrUnrecognizedCommand)

	_, err = ParseCommand("/notes")
	assert.ErrorIs(t, err, exam.ErrEmptyTopic)

	_, err = ParseCommand("/mcq    ")
	assert.ErrorIs(t, err, exam.ErrEmptyTopic)

	_, err = ParseCommand("marks 3")
	assert.ErrorIs(t, err, exam.ErrInvalidMarks)

	_, err = ParseCommand("marks")
	assert.ErrorIs(t, err, exam.ErrInvalidMarks)

	_, err = ParseCommand("model   ")
	assert.ErrorIs(t, err, ErrMissingModel)
}
