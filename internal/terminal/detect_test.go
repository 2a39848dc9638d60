package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminalRejectsRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}

func TestIsInteractiveFalseWhenRedirected(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	origIn, origErr := stdin, stderr
	t.Cleanup(func() {
		stdin = origIn
		stderr = origErr
	})
	stdin, stderr = f, f

	assert.False(t, IsInteractive())
}
