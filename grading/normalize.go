package grading

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies how a question's correct answer is matched.
type Kind int

const (
	// Undefined answers can never be satisfied.
	Undefined Kind = iota
	// McqIndex answers are option indexes compared as exact strings.
	McqIndex
	// FreeText answers are compared ignoring case and surrounding whitespace.
	FreeText
)

func (k Kind) String() string {
	switch k {
	case McqIndex:
		return "mcq_index"
	case FreeText:
		return "free_text"
	default:
		return "undefined"
	}
}

var optionIndex = regexp.MustCompile(`^\d+$`)

// Correct is a question's correct answer, classified once when the
// question is loaded.
type Correct struct {
	Kind Kind
	// Index is the parsed option index for McqIndex answers. Matching
	// always uses the raw digits, so "01" never equals "1".
	Index int

	value Value
}

// ParseCorrect classifies a stored correct value.
func ParseCorrect(v Value) Correct {
	c := Correct{value: v}
	switch {
	case !v.Valid() || v.String() == "":
		c.Kind = Undefined
	case optionIndex.MatchString(v.String()):
		c.Kind = McqIndex
		c.Index, _ = strconv.Atoi(v.String())
	default:
		c.Kind = FreeText
	}
	return c
}

// Value returns the correct answer exactly as stored.
func (c Correct) Value() Value { return c.value }

// IsCorrect judges a submitted answer against c.
func IsCorrect(c Correct, given Value) bool {
	switch c.Kind {
	case McqIndex:
		return given.Valid() && given.String() == c.value.String()
	case FreeText:
		g := strings.TrimSpace(given.String())
		if g == "" {
			return false
		}
		return strings.ToLower(g) == strings.ToLower(strings.TrimSpace(c.value.String()))
	default:
		return false
	}
}

// EffectivePoints returns the point value of a question, defaulting
// non-positive values to 1.
func EffectivePoints(points int) int {
	if points <= 0 {
		return 1
	}
	return points
}

// Award returns the points earned for given: all of them or none.
func Award(c Correct, given Value, points int) int {
	if !IsCorrect(c, given) {
		return 0
	}
	return EffectivePoints(points)
}
