package document

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/paths"
)

// MissingError reports that the configuration file does not exist.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// Unwrap lets errors.Is match ErrMissingDocument.
func (e *MissingError) Unwrap() error {
	return errors.ErrMissingDocument
}

// Guidance explains how to create the missing file.
func (e *MissingError) Guidance() string {
	return Guidance(e.Path, paths.FindSampleDir())
}

// Guidance returns the help text shown when no configuration file exists
// at path. sampleDir names where example files were installed.
func Guidance(path, sampleDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "gertty needs a configuration file at %s\n", path)
	b.WriteString("A file that stores a password must have permissions 0600.\n\n")
	fmt.Fprintf(&b, "Example configurations are installed in %s\n", sampleDir)
	b.WriteString("To start from a minimal file, run: gertty config sample --write\n")
	return b.String()
}

// Sample is a minimal document accepted by the schema.
const Sample = `# gertty configuration
#
# Each server needs a name, the base URL of its Gerrit web UI, your
# username and the directory where repositories are cloned. Add
# "password:" to skip the prompt at startup; the file must then be 0600.
servers:
  - name: review
    url: https://review.example.org/
    username: USERNAME
    git-root: ~/git/

# palette: default
# keymap: default

# dashboards:
#   - name: "My changes"
#     query: "owner:self status:open"
#     key: "f2"

# size-column:
#   type: graph
`
