package quiz

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether the student's answer is correct. The answer
// may be the option text (case-insensitive), its number (1-4) or its
// letter (A-D).
func CheckAnswer(answer string, q *Question) bool {
	picked, ok := Resolve(answer, q)
	return ok && picked == q.Answer
}

// Resolve returns the option the student's answer refers to.
func Resolve(answer string, q *Question) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	if i, err := strconv.Atoi(answer); err == nil {
		if i >= 1 && i <= len(q.Options) {
			return q.Options[i-1], true
		}
		// A number outside the option range may still be an option's text.
	}
	if len(answer) == 1 {
		if i := int(strings.ToUpper(answer)[0] - 'A'); i >= 0 && i < len(q.Options) {
			return q.Options[i], true
		}
	}
	for _, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o), answer) {
			return o, true
		}
	}
	return "", false
}

// OptionLabel is the letter shown next to option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}
