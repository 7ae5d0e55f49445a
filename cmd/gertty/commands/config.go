package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gertty/internal/backup"
	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/editor"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/logging"
	"github.com/thoreinstein/gertty/internal/paths"
	"github.com/thoreinstein/gertty/internal/schema"
	"github.com/thoreinstein/gertty/internal/validator"
	"github.com/thoreinstein/gertty/pkg/fileutil"
)

var (
	showFormat     string
	showOutput     string
	showPrompt     bool
	validateFormat string
	sampleWrite    bool
	schemaOutput   string
)

func init() {
	configShowCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "output format: yaml, json")
	configShowCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write to this file (mode 0600) instead of stdout")
	configShowCmd.Flags().BoolVar(&showPrompt, "prompt", false, "prompt for the password when the file has none")
	configValidateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "output format: text, json")
	configSampleCmd.Flags().BoolVar(&sampleWrite, "write", false, "write a starter file to the configuration path")
	configSchemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write to this file instead of stdout")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSampleCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configBackupsCmd)
	configCmd.AddCommand(configRestoreCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the gertty configuration file",
	Long: `Inspect, validate and edit the gertty configuration file.

The file is ~/.gertty.yaml unless --config or GERTTY_CONFIG names another.
Files ending in .toml are read as TOML.`,
	Example: `  # Print the resolved settings of the first server
  gertty config show

  # Validate every server in the file
  gertty config validate

See Also: gertty servers, gertty doctor`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Long: `Resolve the selected server and print the result with the password
masked. Without --prompt a missing password is left empty.`,
	Example: `  gertty config show
  gertty -s staging config show --format json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Check the file against the schema and resolve every server in it
without prompting. Exits non-zero when any error is found.`,
	Example: `  gertty config validate
  gertty config validate --format json`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print or write a starter configuration",
	Long: `Print a minimal configuration file. With --write, create it at the
configuration path with mode 0600; an existing file is never replaced.`,
	Example: `  gertty config sample
  gertty config sample --write`,
	Args: cobra.NoArgs,
	RunE: runConfigSample,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the configuration file in $VISUAL or $EDITOR, then validate it.

If no configuration file exists, a starter file is created first.`,
	Example: `  gertty config edit
  EDITOR="code --wait" gertty config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Long: `Print the JSON Schema the configuration file is validated against.
Editors with YAML language servers can use it for completion.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

var configBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List snapshots of the configuration file",
	Long: `List the snapshots taken before "gertty config edit" and
"gertty doctor --fix" changed the configuration file, newest first.`,
	Args: cobra.NoArgs,
	RunE: runConfigBackups,
}

var configRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore the configuration file from a snapshot",
	Long: `Write a snapshot back to the path it was taken from, with its
original permissions. Without an id the newest snapshot is restored.`,
	Example: `  gertty config restore
  gertty config restore 20260123T100712`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigRestore,
}

// newBackupManager is replaced in tests.
var newBackupManager = func() *backup.Manager { return backup.NewManager() }

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, !showPrompt)
	if err != nil {
		return err
	}
	view := cfg.View()

	if showOutput != "" {
		switch showFormat {
		case "json":
			err = fileutil.AtomicWriteJSON(showOutput, view, config.RequiredMode)
		default:
			err = fileutil.AtomicWriteYAML(showOutput, view, config.RequiredMode)
		}
		return errors.Wrapf(err, "writing %s", showOutput)
	}
	return writeView(cmd.OutOrStdout(), view, showFormat)
}

func writeView(w io.Writer, view *config.View, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(view), "encoding JSON")
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "use --format yaml or --format json")
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	format := validator.Format(validateFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown format %q", validateFormat), "use --format text or --format json")
	}

	result := validator.ValidateDocument(cmd.Context(), resolveOptions(cmd))
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := resolveOptions(cmd).DocumentPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigSample(cmd *cobra.Command, _ []string) error {
	if !sampleWrite {
		fmt.Fprint(cmd.OutOrStdout(), document.Sample)
		return nil
	}

	path, err := resolveOptions(cmd).DocumentPath()
	if err != nil {
		return err
	}
	if err := writeSample(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func writeSample(path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	err := fileutil.AtomicCreateFile(path, []byte(document.Sample), config.RequiredMode)
	if errors.Is(err, fileutil.ErrExists) {
		return errors.NewUserError(err, "edit the existing file with: gertty config edit")
	}
	return errors.Wrapf(err, "writing %s", path)
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	opts := resolveOptions(cmd)
	path, err := opts.DocumentPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeSample(path); err != nil {
			return err
		}
	} else if err := snapshot(cmd, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	session := &editor.Session{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	if err := session.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "set $EDITOR to your editor command")
	}

	result := validator.ValidateDocument(cmd.Context(), opts)
	if err := validator.NewReporter(cmd.OutOrStdout(), validator.FormatText).Report(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if schemaOutput != "" {
		return errors.Wrapf(fileutil.AtomicWriteJSON(schemaOutput, schema.Document(), 0o644), "writing %s", schemaOutput)
	}

	data, err := schema.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// snapshot backs up the file at path before a command changes it.
func snapshot(cmd *cobra.Command, path string) error {
	manifest, err := newBackupManager().Backup(path)
	if err != nil {
		return errors.NewSystemError(err, "the file was not changed")
	}
	logging.FromContext(cmd.Context()).Info("configuration backed up", "id", manifest.ID, "path", path)
	return nil
}

func runConfigBackups(cmd *cobra.Command, _ []string) error {
	manifests, err := newBackupManager().List()
	if errors.Is(err, backup.ErrNoBackupsFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No backups.")
		return nil
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tPATH")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.CreatedAt.Local().Format(time.DateTime), m.OriginalPath)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

func runConfigRestore(cmd *cobra.Command, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	}

	manifest, err := newBackupManager().Restore(id)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run: gertty config backups")
		}
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", manifest.OriginalPath, manifest.ID)
	return nil
}
