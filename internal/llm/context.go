package llm

import "context"

// Purposes tag each call in the event log.
const (
	PurposeLesson   = "lesson"
	PurposeSection  = "section"
	PurposePath     = "learning-path"
	PurposeAnswer   = "answer"
	PurposeAnalysis = "analysis"
	PurposeReport   = "report"
	PurposeQuiz     = "quiz"
	PurposeExercise = "exercise"
)

var purposeLabels = map[string]string{
	PurposeLesson:   "Lesson",
	PurposeSection:  "Lesson section",
	PurposePath:     "Learning path",
	PurposeAnswer:   "Mentor answer",
	PurposeAnalysis: "Teacher notes",
	PurposeReport:   "Report",
	PurposeQuiz:     "Quiz",
	PurposeExercise: "Exercise",
}

// Purposes lists the known purposes in the order a student meets them.
func Purposes() []string {
	return []string{
		PurposeLesson, PurposeSection, PurposeQuiz, PurposeExercise,
		PurposePath, PurposeAnswer, PurposeAnalysis, PurposeReport,
	}
}

// PurposeLabel is the display name of purpose, or purpose itself when it is
// not a known one.
func PurposeLabel(purpose string) string {
	if l, ok := purposeLabels[purpose]; ok {
		return l
	}
	return purpose
}

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
