package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gertty/internal/errors"
)

type doctorJSONReport struct {
	Results []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"results"`
	Summary struct {
		Errors int `json:"errors"`
	} `json:"summary"`
}

func (r doctorJSONReport) status(name string) string {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Status
		}
	}
	return ""
}

func TestDoctor_FlagsMutuallyExclusive(t *testing.T) {
	path := writeConfig(t, twoServers, 0o600)

	_, err := executeCommand(t, "--config", path, "doctor", "--json", "--quiet")
	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, errors.ExitUser, exitErr.Code)
}

func TestDoctor_MissingFile(t *testing.T) {
	home := isolateHome(t)

	out, err := executeCommand(t, "--config", filepath.Join(home, "absent.yaml"), "doctor", "--json")

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, errors.ExitSystem, exitErr.Code)
	assert.Nil(t, exitErr.Err)

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "error", report.status("document-syntax"))
	assert.Positive(t, report.Summary.Errors)
}

func TestDoctor_Quiet(t *testing.T) {
	home := isolateHome(t)

	out, err := executeCommand(t, "--config", filepath.Join(home, "absent.yaml"), "doctor", "--quiet")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestDoctor_TextShowsHints(t *testing.T) {
	path := writeConfig(t, twoServers, 0o644)

	out, err := executeCommand(t, "--config", path, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "✗ [document] document-permissions")
	assert.Contains(t, out, "hint:")
	assert.Contains(t, out, "Summary:")
}

func TestDoctor_FixPermissions(t *testing.T) {
	path := writeConfig(t, twoServers, 0o644)

	out, _ := executeCommand(t, "--config", path, "doctor", "--fix")
	assert.Contains(t, out, "fix "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.NotContains(t, out, "document-permissions")

	out, err = executeCommand(t, "--config", path, "config", "backups")
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestDoctor_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a/config/server/version" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, ")]}'\n\"3.9.1\"")
	}))
	defer srv.Close()

	content := fmt.Sprintf("servers:\n  - name: local\n    url: %s/\n    username: alice\n    git-root: ~/git/\n", srv.URL)
	path := writeConfig(t, content, 0o600)

	out, _ := executeCommand(t, "--config", path, "doctor", "--online", "--json")

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "info", report.status("server-reachable"))
	assert.Equal(t, "pass", report.status("server-resolve"))
}
