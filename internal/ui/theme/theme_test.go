package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	assert.Equal(t, Good.GetForeground(), Score(92).GetForeground())
	assert.Equal(t, Warn.GetForeground(), Score(85).GetForeground())
	assert.Equal(t, Warn.GetForeground(), Score(70).GetForeground())
	assert.Equal(t, Bad.GetForeground(), Score(69).GetForeground())
}
