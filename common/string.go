package common

import (
	"regexp"
	"strings"
)

var (
	closedThinkBlock   = regexp.MustCompile(`(?is)<think>.*?</think>`)
	unclosedThinkBlock = regexp.MustCompile(`(?is)<think>.*$`)
)

// StripThinkBlocks removes model reasoning blocks, including a trailing
// <think> block whose closing tag never arrived.
func StripThinkBlocks(s string) string {
	s = closedThinkBlock.ReplaceAllString(s, "")
	s = unclosedThinkBlock.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeAnswer cleans raw model output before it is validated
func NormalizeAnswer(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return StripThinkBlocks(s)
}

// CollapseSpace joins all whitespace runs into single spaces
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WrapString breaks a single line at the last space before width runes
func WrapString(s string, width int) string {
	if width <= 0 {
		return s
	}
	var lines []string
	runes := []rune(s)
	for len(runes) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, string(runes[:splitAt]))
		runes = []rune(strings.TrimLeft(string(runes[splitAt:]), " "))
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return strings.Join(lines, "\n")
}

// WrapText wraps every line of a multi-line answer; width <= 0 disables wrapping
func WrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = WrapString(line, width)
	}
	return strings.Join(lines, "\n")
}
