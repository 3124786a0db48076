package llm

import (
	"context"
	"testing"
)

func TestPurposes(t *testing.T) {
	for _, p := range Purposes() {
		if PurposeLabel(p) == p {
			t.Errorf("purpose %q has no label", p)
		}
	}
	if got := PurposeLabel("question-gen"); got != "question-gen" {
		t.Errorf("unknown purpose label = %q", got)
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q", got)
	}
	ctx := WithPurpose(context.Background(), PurposeQuiz)
	if got := PurposeFrom(ctx); got != PurposeQuiz {
		t.Errorf("PurposeFrom = %q", got)
	}
}
