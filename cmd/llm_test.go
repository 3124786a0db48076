package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/alfanumrik/internal/llm"
)

func TestPrettyBody(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", prettyBody(`{"a":1}`))
	assert.Equal(t, "plain reply", prettyBody("plain reply"))
	assert.Contains(t, prettyBody(""), "not captured")
}

func TestPurposeRank(t *testing.T) {
	order := llm.Purposes()
	assert.Less(t, purposeRank(order, llm.PurposeLesson), purposeRank(order, llm.PurposeReport))
	assert.Equal(t, len(order), purposeRank(order, "question-gen"))
}
