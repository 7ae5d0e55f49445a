// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/logging"
)

// Sentinel errors for server selection.
var (
	ErrNoServers          = errors.New("no servers to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive server selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	fuzzy  bool
}

// NewSelector creates a Selector on stdin and stdout. It uses the fuzzy
// finder when both are terminals and a numbered prompt otherwise.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
		fuzzy:  logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout),
	}
}

// NewSelectorWithIO creates a numbered-prompt Selector with custom reader
// and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectServer prompts the user to choose one of servers.
//
// Returns:
//   - ErrNoServers if the list is empty
//   - The server if only one exists (auto-selects without prompting)
//   - The selected server based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled on EOF (e.g., Ctrl+D) or when the finder is aborted
func (s *Selector) SelectServer(servers []document.Server) (*document.Server, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}
	if len(servers) == 1 {
		return &servers[0], nil
	}
	if s.fuzzy {
		return s.find(servers)
	}
	return s.ask(servers)
}

func (s *Selector) find(servers []document.Server) (*document.Server, error) {
	idx, err := fuzzyfinder.Find(
		servers,
		func(i int) string {
			return servers[i].Name
		},
		fuzzyfinder.WithPromptString("server> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return Describe(servers[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "selecting server")
	}
	return &servers[idx], nil
}

func (s *Selector) ask(servers []document.Server) (*document.Server, error) {
	fmt.Fprintln(s.writer, "Servers:")
	for i, srv := range servers {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, srv.Name, srv.URL)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &servers[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		// Accept a server name as well as its number.
		for i := range servers {
			if servers[i].Name == input {
				return &servers[i], nil
			}
		}
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number or server name", input)
	}

	if selection < 1 || selection > len(servers) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(servers))
	}
	return &servers[selection-1], nil
}

// Describe renders a server record for the finder preview.
func Describe(srv document.Server) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", srv.Name)
	fmt.Fprintf(&sb, "URL:      %s\n", srv.URL)
	fmt.Fprintf(&sb, "Username: %s\n", srv.Username)
	if srv.AuthType != "" {
		fmt.Fprintf(&sb, "Auth:     %s\n", srv.AuthType)
	}
	fmt.Fprintf(&sb, "Git root: %s\n", srv.GitRoot)
	if srv.HasPassword() {
		sb.WriteString("Password: stored\n")
	}
	return sb.String()
}
