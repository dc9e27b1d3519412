package answer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
)

// ErrValidation is returned by Check when the answer does not have the
// shape its template requires
var ErrValidation = errors.New("answer does not match template")

var (
	questionLine   = regexp.MustCompile(`(?im)^[ \t#*>_]*Q(?:uestion)?[ \t]*\d+[ \t]*[.:)]`)
	labelSeparator = regexp.MustCompile(`[ /_-]+`)
)

// line prefixes tolerated before a heading: markdown marks, bullets and numbering
const headingPrefix = `(?im)^[ \t#*>_\-\d.)]*`

var (
	truncatedSuffixes = []string{",", ":", ";", "(", "-", "...", "…"}

	// markdown horizontal rule: ---, ***, ___ or spaced variants
	horizontalRule = regexp.MustCompile(`^(?:[-*_][ \t]*){3,}$`)
)

func labelPattern(label string) *regexp.Regexp {
	words := labelSeparator.Split(strings.TrimSpace(label), -1)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(headingPrefix + strings.Join(words, `[ \t/_-]+`) + `\b`)
}

// Validate reports whether text has every section the template requires
func Validate(text string, tmpl exam.Template) bool {
	return Check(text, tmpl) == nil
}

// Check is Validate with the reason for a rejection
func Check(text string, tmpl exam.Template) error {
	text = common.NormalizeAnswer(text)
	if text == "" {
		return fmt.Errorf("%w: empty answer", ErrValidation)
	}

	var missing []string
	for _, section := range tmpl.Sections {
		if !labelPattern(section.Label).MatchString(text) {
			missing = append(missing, section.Label)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing sections %s", ErrValidation, strings.Join(missing, ", "))
	}

	if tmpl.QuestionCount > 0 {
		if err := checkQuestions(text, tmpl); err != nil {
			return err
		}
	}

	if truncated(text) {
		return fmt.Errorf("%w: answer looks truncated", ErrValidation)
	}

	return nil
}

func checkQuestions(text string, tmpl exam.Template) error {
	keys := labelPattern(tmpl.AnswerKeyLabel).FindAllStringIndex(text, -1)
	if len(keys) != 1 {
		return fmt.Errorf("%w: expected 1 %s block, got %d", ErrValidation, tmpl.AnswerKeyLabel, len(keys))
	}

	// key entries may be written as "Q1: B", so only lines above the key count
	questions := questionLine.FindAllStringIndex(text[:keys[0][0]], -1)
	if len(questions) != tmpl.QuestionCount {
		return fmt.Errorf("%w: expected %d questions before the %s, got %d",
			ErrValidation, tmpl.QuestionCount, tmpl.AnswerKeyLabel, len(questions))
	}
	return nil
}

func truncated(text string) bool {
	if strings.Count(text, "```")%2 == 1 {
		return true
	}

	lines := strings.Split(text, "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" && !horizontalRule.MatchString(l) {
			last = l
			break
		}
	}
	for _, suffix := range truncatedSuffixes {
		if strings.HasSuffix(last, suffix) {
			return true
		}
	}
	return false
}
