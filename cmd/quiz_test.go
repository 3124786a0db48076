package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/quiz"
	"github.com/abhisek/alfanumrik/internal/recommend"
)

func TestSplitAnswers(t *testing.T) {
	assert.Equal(t, []string{"A", "2", "Ohm's Law", ""}, splitAnswers(" A, 2 ,Ohm's Law,"))
}

func TestAskQuestions(t *testing.T) {
	set := &quiz.Set{Type: quiz.TypeIQ, Questions: []quiz.Question{
		{Text: "2, 4, 8, ?", Options: []string{"10", "12", "16", "14"}, Answer: "16"},
		{Text: "Odd one out", Options: []string{"Cat", "Dog", "Car", "Cow"}, Answer: "Car"},
	}}

	answers, err := askQuestions(strings.NewReader("c\nb\n"), set)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, answers)

	_, err = askQuestions(strings.NewReader("c\n"), set)
	assert.Error(t, err, "running out of input abandons the set")
}

func TestActionCommand(t *testing.T) {
	assert.Equal(t, `alfanumrik quiz "Physics" "Electricity"`, actionCommand(recommend.ActionPractice, "Physics", "Electricity"))
	assert.Equal(t, `alfanumrik lesson "Physics" "Electricity"`, actionCommand(recommend.ActionReview, "Physics", "Electricity"))
	assert.Equal(t, "alfanumrik exercise eq", actionCommand(recommend.ActionEQExercise, "", ""))
}
