package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gertty/internal/cli/prompt"
	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
)

var serversJSON bool

// selector is replaced in tests.
var selector = prompt.NewSelector

func init() {
	serversListCmd.Flags().BoolVar(&serversJSON, "json", false, "output as JSON")
	serversCmd.AddCommand(serversListCmd)
	serversCmd.AddCommand(serversPickCmd)
	rootCmd.AddCommand(serversCmd)
}

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List the servers in the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runServersList,
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the servers in the configuration file",
	Long: `List every server record in the configuration file. The server that
gertty would select is marked with "*".`,
	Args: cobra.NoArgs,
	RunE: runServersList,
}

var serversPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a server interactively and print its name",
	Long: `Choose a server with a fuzzy finder, or a numbered prompt when the
terminal is not interactive, and print its name.`,
	Example: `  export GERTTY_SERVER=$(gertty servers pick)`,
	Args:    cobra.NoArgs,
	RunE:    runServersPick,
}

// serverEntry is the listing form of a server record.
type serverEntry struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
	AuthType string `json:"auth_type,omitempty"`
	Password bool   `json:"stores_password"`
	Selected bool   `json:"selected"`
}

func loadDocument(cmd *cobra.Command) (*document.Document, error) {
	path, err := resolveOptions(cmd).DocumentPath()
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(path)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return doc, nil
}

func runServersList(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	selected, err := config.SelectServer(doc, resolveOptions(cmd).Server)
	if err != nil {
		return errors.NewConfigError(err)
	}

	entries := make([]serverEntry, 0, len(doc.Servers))
	for i, srv := range doc.Servers {
		entries = append(entries, serverEntry{
			Name:     srv.Name,
			URL:      srv.URL,
			Username: srv.Username,
			AuthType: srv.AuthType,
			Password: srv.HasPassword(),
			Selected: &doc.Servers[i] == selected,
		})
	}

	out := cmd.OutOrStdout()
	if serversJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding JSON")
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tURL\tUSERNAME")
	for _, e := range entries {
		mark := " "
		name := e.Name
		if e.Selected {
			mark = "*"
			name = color.New(color.Bold).Sprint(name)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, name, e.URL, e.Username)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

func runServersPick(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	srv, err := selector().SelectServer(doc.Servers)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return errors.NewExitError(nil, errors.ExitUser)
		}
		return errors.NewUserError(err, "enter the number or name of a listed server")
	}
	fmt.Fprintln(cmd.OutOrStdout(), srv.Name)
	return nil
}
