// Package document reads the configuration document from disk.
//
// Loading happens in three stages: the file is parsed into generic JSON
// values, the values are checked against the schema, and the checked
// values are decoded into a Document. A Document is validated but not
// resolved: defaults, path expansion and collection merging are the
// resolver's job.
package document

import (
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Document is a validated configuration document.
type Document struct {
	Servers      []Server         `yaml:"servers"`
	Palettes     []map[string]any `yaml:"palettes,omitempty"`
	Palette      string           `yaml:"palette,omitempty"`
	Keymaps      []map[string]any `yaml:"keymaps,omitempty"`
	Keymap       string           `yaml:"keymap,omitempty"`
	CommentLinks []CommentLink    `yaml:"commentlinks,omitempty"`
	Dashboards   []Dashboard      `yaml:"dashboards,omitempty"`
	ReviewKeys   []ReviewKey      `yaml:"reviewkeys,omitempty"`
	HideComments []HideComment    `yaml:"hide-comments,omitempty"`

	ChangeListQuery     *string            `yaml:"change-list-query,omitempty"`
	DiffView            *string            `yaml:"diff-view,omitempty"`
	ThreadChanges       *bool              `yaml:"thread-changes,omitempty"`
	DisplayTimesInUTC   *bool              `yaml:"display-times-in-utc,omitempty"`
	HandleMouse         *bool              `yaml:"handle-mouse,omitempty"`
	Breadcrumbs         *bool              `yaml:"breadcrumbs,omitempty"`
	CloseChangeOnReview *bool              `yaml:"close-change-on-review,omitempty"`
	ChangeListOptions   *ChangeListOptions `yaml:"change-list-options,omitempty"`
	ExpireAge           *string            `yaml:"expire-age,omitempty"`
	SizeColumn          *SizeColumn        `yaml:"size-column,omitempty"`

	// Path is the file the document was read from.
	Path string `yaml:"-"`

	// Mode holds the permission bits of the file at load time.
	Mode fs.FileMode `yaml:"-"`
}

// Server is one backend server record.
type Server struct {
	Name      string  `yaml:"name"`
	URL       string  `yaml:"url"`
	Username  string  `yaml:"username"`
	Password  *string `yaml:"password,omitempty"`
	VerifySSL *bool   `yaml:"verify-ssl,omitempty"`
	SSLCAPath string  `yaml:"ssl-ca-path,omitempty"`
	DBURI     string  `yaml:"dburi,omitempty"`
	GitRoot   string  `yaml:"git-root"`
	GitURL    string  `yaml:"git-url,omitempty"`
	LogFile   string  `yaml:"log-file,omitempty"`
	LockFile  string  `yaml:"lock-file,omitempty"`
	Socket    string  `yaml:"socket,omitempty"`
	AuthType  string  `yaml:"auth-type,omitempty"`
}

// HasPassword reports whether the record stores a password.
func (s Server) HasPassword() bool {
	return s.Password != nil
}

// CommentLink is an undecorated comment link rule.
type CommentLink struct {
	Match        string        `yaml:"match"`
	Replacements []Replacement `yaml:"replacements"`
	TestResult   string        `yaml:"test-result,omitempty"`
}

// Replacement holds exactly one of its fields.
type Replacement struct {
	Text   *TextReplacement   `yaml:"text,omitempty"`
	Link   *LinkReplacement   `yaml:"link,omitempty"`
	Search *SearchReplacement `yaml:"search,omitempty"`
}

// TextReplacement is written either as a bare string or as a mapping with
// text and color.
type TextReplacement struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color,omitempty"`
}

// UnmarshalYAML accepts the bare string form.
func (t *TextReplacement) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Text = node.Value
		t.Color = ""
		return nil
	}
	type plain TextReplacement
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TextReplacement(p)
	return nil
}

// LinkReplacement renders a hyperlink.
type LinkReplacement struct {
	URL  string `yaml:"url"`
	Text string `yaml:"text"`
}

// SearchReplacement renders a search shortcut.
type SearchReplacement struct {
	Query string `yaml:"query"`
	Text  string `yaml:"text"`
}

// SortBy is written either as a single key or as a list of keys.
type SortBy []string

// UnmarshalYAML accepts a scalar or a sequence.
func (s *SortBy) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = SortBy{node.Value}
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := node.Decode(&keys); err != nil {
			return err
		}
		*s = keys
		return nil
	default:
		return errors.Newf("line %d: sort-by must be a string or a list", node.Line)
	}
}

// Dashboard is a saved query bound to a key.
type Dashboard struct {
	Name    string `yaml:"name"`
	Query   string `yaml:"query"`
	SortBy  SortBy `yaml:"sort-by,omitempty"`
	Reverse *bool  `yaml:"reverse,omitempty"`
	Key     string `yaml:"key"`
}

// Approval is one label vote.
type Approval struct {
	Category string `yaml:"category"`
	Value    int    `yaml:"value"`
}

// ReviewKey is a set of votes applied with one key.
type ReviewKey struct {
	Approvals []Approval `yaml:"approvals"`
	Message   string     `yaml:"message,omitempty"`
	Submit    bool       `yaml:"submit,omitempty"`
	Key       string     `yaml:"key"`
}

// HideComment hides comments from matching authors.
type HideComment struct {
	Author string `yaml:"author"`
}

// ChangeListOptions controls the initial change list ordering.
type ChangeListOptions struct {
	SortBy  SortBy `yaml:"sort-by,omitempty"`
	Reverse *bool  `yaml:"reverse,omitempty"`
}

// SizeColumn configures the change size column. A nil Type means the
// document set type to null.
type SizeColumn struct {
	Type       *string `yaml:"type"`
	Thresholds []int   `yaml:"thresholds,omitempty"`
}
