package exam

import "fmt"

// Section is one required heading of an answer
type Section struct {
	Label string
	Hint  string
}

// Template describes the required shape of an answer for one mode
type Template struct {
	Mode        Mode
	Description string
	Sections    []Section

	// QuestionCount and AnswerKeyLabel are only set for multiple-choice output
	QuestionCount  int
	AnswerKeyLabel string

	Temperature float32
	maxTokens   map[Marks]int
	fallback    string
}

// RequiredLabels returns every section label the answer must contain
func (t Template) RequiredLabels() []string {
	labels := make([]string, 0, len(t.Sections)+1)
	for _, s := range t.Sections {
		labels = append(labels, s.Label)
	}
	if t.AnswerKeyLabel != "" {
		labels = append(labels, t.AnswerKeyLabel)
	}
	return labels
}

// MaxTokens returns the generation budget for the mark weight
func (t Template) MaxTokens(marks Marks) int {
	if n, ok := t.maxTokens[marks]; ok {
		return n
	}
	return t.maxTokens[DefaultMarks]
}

// Fallback returns the canned answer for the mode, titled with the topic
func (t Template) Fallback(topic string) string {
	return fmt.Sprintf("Topic: %s\n(Offline answer: the model did not return a usable response.)\n\n%s", topic, t.fallback)
}

// Lookup returns the template registered for the mode
func Lookup(mode Mode) (Template, error) {
	t, ok := registry[mode]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return t, nil
}

var scaledTokens = map[Marks]int{Marks2: 300, Marks5: 450, Marks10: 700}

var registry = map[Mode]Template{
	ModeNotes: {
		Mode:        ModeNotes,
		Description: "revision notes",
		Sections: []Section{
			{Label: "Key Terms", Hint: "bullets, each term with a one-line meaning"},
			{Label: "Core Points", Hint: "6-10 bullets covering the theory"},
			{Label: "Diagram Suggestion", Hint: "describe the axes and the curve shift in words"},
			{Label: "Likely Exam Questions", Hint: "3 numbered questions"},
		},
		Temperature: 0.15,
		maxTokens:   map[Marks]int{Marks2: 260, Marks5: 360, Marks10: 520},
		fallback:    notesFallback,
	},
	ModeMCQ: {
		Mode:           ModeMCQ,
		Description:    "multiple-choice practice questions",
		QuestionCount:  5,
		AnswerKeyLabel: "Answer Key",
		Temperature:    0.10,
		maxTokens:      map[Marks]int{Marks2: 520, Marks5: 520, Marks10: 520},
		fallback:       mcqFallback,
	},
	ModePYQ: {
		Mode:        ModePYQ,
		Description: "guidance for past-year exam questions",
		Sections: []Section{
			{Label: "How to Structure the Answer", Hint: "Intro, Body and Conclusion as bullets"},
			{Label: "Key Points to Include", Hint: "5-7 bullets"},
			{Label: "Common Examiner Expectations", Hint: "3-5 bullets"},
			{Label: "Sample Past-Year Questions", Hint: "2 numbered questions"},
		},
		Temperature: 0.15,
		maxTokens:   map[Marks]int{Marks2: 520, Marks5: 520, Marks10: 520},
		fallback:    pyqFallback,
	},
	ModeExplain: {
		Mode:        ModeExplain,
		Description: "a concept explanation",
		Sections: []Section{
			{Label: "Definition", Hint: "2-3 lines"},
			{Label: "Intuition", Hint: "a simple explanation"},
			{Label: "Example", Hint: "realistic but generic, no exact official numbers"},
			{Label: "Common Mistakes", Hint: "2-4 bullets"},
			{Label: "Quick Recap", Hint: "3 bullets"},
		},
		Temperature: 0.2,
		maxTokens:   scaledTokens,
		fallback:    explainFallback,
	},
	ModeNumerical: {
		Mode:        ModeNumerical,
		Description: "a worked numerical solution",
		Sections: []Section{
			{Label: "What Is Asked", Hint: "one line"},
			{Label: "Given", Hint: "data and assumptions"},
			{Label: "Step-by-Step Solution", Hint: "show each formula used"},
			{Label: "Final Answer", Hint: "with units"},
			{Label: "Common Pitfalls", Hint: "2-3 bullets"},
		},
		Temperature: 0.2,
		maxTokens:   scaledTokens,
		fallback:    numericalFallback,
	},
	ModeExam: {
		Mode:        ModeExam,
		Description: "an exam-ready answer",
		Sections: []Section{
			{Label: "Introduction", Hint: "2-3 lines"},
			{Label: "Main Body", Hint: "use sub-headings"},
			{Label: "Example", Hint: "one example"},
			{Label: "Conclusion", Hint: "1-2 lines"},
		},
		Temperature: 0.2,
		maxTokens:   scaledTokens,
		fallback:    examFallback,
	},
}
