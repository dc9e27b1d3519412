// Package exam holds the fixed answer formats the bot can produce: the
// supported modes, the mark weights and the template registry describing the
// sections every answer of a given mode must contain.
package exam

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/birmacher/econ-bot/common"
)

var (
	// ErrEmptyTopic is returned when a request carries no topic text
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrUnknownMode is returned for a mode name outside the registry
	ErrUnknownMode = errors.New("unknown answer mode")

	// ErrInvalidMarks is returned for a mark weight other than 2, 5 or 10
	ErrInvalidMarks = errors.New("marks must be 2, 5, or 10")
)

// Mode is the requested answer format
type Mode string

const (
	ModeNotes     Mode = "notes"
	ModeMCQ       Mode = "mcq"
	ModePYQ       Mode = "pyq"
	ModeExplain   Mode = "explain"
	ModeNumerical Mode = "numerical"
	ModeExam      Mode = "exam"
)

// Modes lists every supported mode in display order
var Modes = []Mode{ModeNotes, ModeMCQ, ModePYQ, ModeExplain, ModeNumerical, ModeExam}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts user input into a Mode
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[mode]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return mode, nil
}

// Marks is the exam weight of a question; it scales answer length and detail
type Marks int

const (
	Marks2  Marks = 2
	Marks5  Marks = 5
	Marks10 Marks = 10

	DefaultMarks = Marks5
)

// ParseMarks converts user input into Marks
func ParseMarks(s string) (Marks, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidMarks, s)
	}
	m := Marks(n)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidMarks, n)
	}
	return m, nil
}

func (m Marks) Valid() bool {
	return m == Marks2 || m == Marks5 || m == Marks10
}

// Guidance describes the expected answer length for the mark weight
func (m Marks) Guidance() string {
	switch {
	case m <= Marks2:
		return "Length guidance: very short (3-6 lines)."
	case m <= Marks5:
		return "Length guidance: medium (10-14 lines)."
	default:
		return "Length guidance: long (3-6 short paragraphs)."
	}
}

// NormalizeTopic trims the topic and rejects empty input
func NormalizeTopic(topic string) (string, error) {
	topic = common.CollapseSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}
	return topic, nil
}
