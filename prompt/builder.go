package prompt

import (
	"fmt"
	"strings"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
	"github.com/birmacher/econ-bot/llm"
)

// Builder turns a topic into a model request for one answer template
type Builder struct {
	settings common.Settings
}

func NewBuilder(settings common.Settings) Builder {
	return Builder{settings: settings}
}

// Build composes the request for topic in the given mode at the given mark weight
func (b Builder) Build(topic string, mode exam.Mode, marks exam.Marks) (llm.Request, error) {
	topic, err := exam.NormalizeTopic(topic)
	if err != nil {
		return llm.Request{}, err
	}
	if !marks.Valid() {
		return llm.Request{}, fmt.Errorf("%w: got %d", exam.ErrInvalidMarks, marks)
	}
	tmpl, err := exam.Lookup(mode)
	if err != nil {
		return llm.Request{}, err
	}

	return llm.Request{
		SystemPrompt: GetSystemPrompt(b.settings),
		UserPrompt:   GetUserPrompt(topic, tmpl, marks),
		MaxTokens:    tmpl.MaxTokens(marks),
		Temperature:  tmpl.Temperature,
	}, nil
}

// GetUserPrompt embeds the template's required layout and the length scale
func GetUserPrompt(topic string, tmpl exam.Template, marks exam.Marks) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Mode: %s (%s)\n", tmpl.Mode, tmpl.Description)
	fmt.Fprintf(&b, "Write a %d-mark answer. %s\n\n", marks, marks.Guidance())

	b.WriteString("Return in this exact structure, each heading on its own line followed by a colon:\n")

	if tmpl.QuestionCount > 0 {
		fmt.Fprintf(&b, "- Exactly %d multiple-choice questions, numbered Q1. to Q%d., each with options A) B) C) D) on separate lines.\n",
			tmpl.QuestionCount, tmpl.QuestionCount)
		fmt.Fprintf(&b, "- Then one line with the heading %s: followed by the answers as 1-A, 2-C and so on.\n", tmpl.AnswerKeyLabel)
		b.WriteString("Questions must be conceptual and aligned with economics exam style.\n")
	}

	for i, section := range tmpl.Sections {
		fmt.Fprintf(&b, "%d) %s: %s\n", i+1, section.Label, section.Hint)
	}

	b.WriteString("\nDo not add any other headings. Finish every section completely.\n\nAnswer:")

	return b.String()
}
