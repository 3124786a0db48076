package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	for in, want := range map[string]int{"85": 85, " 0 ": 0, "100": 100, "68%": 68} {
		got, err := parseScore(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"85abc", "", "-1", "101", "8.5", "abc"} {
		_, err := parseScore(in)
		assert.Error(t, err, in)
	}
}
