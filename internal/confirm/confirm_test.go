package confirm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGate struct{}

func (failingGate) Confirm(string) (bool, error) {
	return false, errors.New("stdin closed")
}

func TestPromptAnswers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected State
	}{
		{name: "Exact yes", input: "yes\n", expected: Committed},
		{name: "Yes with surrounding spaces", input: "  yes \r\n", expected: Committed},
		{name: "Yes without newline", input: "yes", expected: Committed},
		{name: "Uppercase", input: "YES\n", expected: Aborted},
		{name: "Short y", input: "y\n", expected: Aborted},
		{name: "No", input: "no\n", expected: Aborted},
		{name: "Empty line", input: "\n", expected: Aborted},
		{name: "EOF", input: "", expected: Aborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			req := NewRequest("Delete everything?")
			assert.Equal(t, Requested, req.State())

			state, err := req.Resolve(NewPrompt(strings.NewReader(tt.input), &out))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
			assert.Equal(t, tt.expected, req.State())
			assert.Equal(t, "Delete everything? (yes/[no]): ", out.String())
		})
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	req := NewRequest("q")
	state, err := req.Resolve(Always{})
	require.NoError(t, err)
	assert.Equal(t, Committed, state)

	state, err = req.Resolve(Always{})
	assert.Error(t, err)
	assert.Equal(t, Committed, state)
}

func TestGateErrorAborts(t *testing.T) {
	req := NewRequest("q")
	state, err := req.Resolve(failingGate{})
	assert.Error(t, err)
	assert.Equal(t, Aborted, state)
}

func TestPromptReusesReader(t *testing.T) {
	p := NewPrompt(strings.NewReader("no\nyes\n"), &bytes.Buffer{})
	ok, err := p.Confirm("first")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Confirm("second")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting confirmation", AwaitingConfirmation.String())
	assert.Equal(t, "state(9)", State(9).String())
}
