package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	var w Writer = &Memory{}
	require.NoError(t, w.WriteText("123456"))
	assert.Equal(t, "123456", w.(*Memory).Text)
}

func TestMemoryFailure(t *testing.T) {
	m := &Memory{Err: errors.New("no display")}
	err := m.WriteText("123456")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "no display")
	assert.Empty(t, m.Text)
}
