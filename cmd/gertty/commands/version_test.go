package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gertty/cmd"
)

func TestVersionCommand_Output(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "gertty version "+cmd.Version, lines[0])
	assert.Contains(t, lines[1], "commit:    "+cmd.Commit)
	assert.Contains(t, lines[2], "built:     "+cmd.Date)
	assert.Contains(t, lines[3], runtime.Version())
}

func TestVersionCommand_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, "version", "extra")
	assert.Error(t, err)
}
