package answer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/birmacher/econ-bot/exam"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, mode exam.Mode) exam.Template {
	t.Helper()
	tmpl, err := exam.Lookup(mode)
	require.NoError(t, err)
	return tmpl
}

// wellFormed renders an answer with every section the template requires
func wellFormed(tmpl exam.Template) string {
	if tmpl.QuestionCount > 0 {
		return mcqAnswer(tmpl.QuestionCount, true)
	}

	var b strings.Builder
	for i, s := range tmpl.Sections {
		fmt.Fprintf(&b, "**%d) %s:**\n- A complete point about the topic.\n\n", i+1, s.Label)
	}
	return b.String()
}

func mcqAnswer(questions int, withKey bool) string {
	var b strings.Builder
	for i := 1; i <= questions; i++ {
		fmt.Fprintf(&b, "Q%d. Which statement is correct?\nA) one\nB) two\nC) three\nD) four\n\n", i)
	}
	if withKey {
		keys := make([]string, questions)
		for i := range keys {
			keys[i] = fmt.Sprintf("%d-B", i+1)
		}
		b.WriteString("Answer Key:\n" + strings.Join(keys, ", "))
	}
	return b.String()
}
