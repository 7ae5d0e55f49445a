package commands

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gertty/internal/cli/prompt"
	"github.com/thoreinstein/gertty/internal/errors"
)

func TestServersList(t *testing.T) {
	path := writeConfig(t, twoServers, 0o600)

	tests := []struct {
		name     string
		args     []string
		selected string
	}{
		{"first server by default", []string{"--config", path, "servers", "list"}, "review"},
		{"named server", []string{"--config", path, "-s", "staging", "servers"}, "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 3)
			assert.Contains(t, lines[0], "NAME")
			for _, line := range lines[1:] {
				if strings.Contains(line, tt.selected) {
					assert.True(t, strings.HasPrefix(line, "*"), "selected line %q", line)
				} else {
					assert.True(t, strings.HasPrefix(line, " "), "line %q", line)
				}
			}
		})
	}
}

func TestServersList_JSON(t *testing.T) {
	path := writeConfig(t, twoServers, 0o600)

	out, err := executeCommand(t, "--config", path, "servers", "list", "--json")
	require.NoError(t, err)
	assert.NotContains(t, out, "hunter2")

	var entries []serverEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "review", entries[0].Name)
	assert.True(t, entries[0].Selected)
	assert.False(t, entries[0].Password)

	assert.Equal(t, "staging", entries[1].Name)
	assert.False(t, entries[1].Selected)
	assert.True(t, entries[1].Password)
}

func TestServersList_UnknownServer(t *testing.T) {
	path := writeConfig(t, twoServers, 0o600)

	_, err := executeCommand(t, "--config", path, "-s", "missing", "servers", "list")
	assert.True(t, errors.Is(err, errors.ErrServerNotFound))
}

func TestServersPick(t *testing.T) {
	path := writeConfig(t, twoServers, 0o600)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "by number", input: "2\n", want: "staging"},
		{name: "by name", input: "review\n", want: "review"},
		{name: "default", input: "\n", want: "review"},
		{name: "out of range", input: "9\n", wantErr: true},
	}

	orig := selector
	defer func() { selector = orig }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector = func() *prompt.Selector {
				return prompt.NewSelectorWithIO(strings.NewReader(tt.input), io.Discard)
			}

			out, err := executeCommand(t, "--config", path, "servers", "pick")
			if tt.wantErr {
				var exitErr *errors.ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, errors.ExitUser, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}
