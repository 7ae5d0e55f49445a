package config

import (
	"regexp"
	"slices"

	"github.com/thoreinstein/gertty/internal/commentlink"
	"github.com/thoreinstein/gertty/internal/keymap"
	"github.com/thoreinstein/gertty/internal/netpolicy"
	"github.com/thoreinstein/gertty/internal/ordered"
	"github.com/thoreinstein/gertty/internal/palette"
)

// Defaults applied when the document leaves a field out.
const (
	DefaultAuthType        = "digest"
	DefaultChangeListQuery = "status:open"
	DefaultDiffView        = "side-by-side"
	DefaultExpireAge       = "2 months"
	DefaultSortBy          = "number"
)

// Default size-column thresholds. The graph column draws four bands; every
// other type uses eight.
var (
	GraphThresholds   = []int{1, 10, 100, 1000}
	DefaultThresholds = []int{1, 10, 100, 200, 400, 600, 800, 1000}
)

// Config is the resolved configuration for one server. It is built once by
// Resolve and must be treated as read-only afterwards; it is then safe for
// concurrent use.
type Config struct {
	// Path is the document the configuration was resolved from.
	Path string `validate:"required"`

	// Server is the name of the selected server record.
	Server   string `validate:"required"`
	URL      string `validate:"required,url,endswith=/"`
	Hostname string `validate:"required"`
	Username string `validate:"required"`
	Password string
	AuthType string `validate:"oneof=basic digest form"`

	// Network is the TLS policy for HTTP and Git traffic to the server.
	Network netpolicy.Policy

	GitRoot  string `validate:"required"`
	GitURL   string `validate:"required,endswith=/"`
	DBURI    string `validate:"required"`
	Socket   string `validate:"required"`
	LogFile  string `validate:"required"`
	LockFile string `validate:"required"`

	PaletteName string `validate:"required"`
	KeymapName  string `validate:"required"`

	ChangeListQuery     string
	DiffView            string
	ThreadChanges       bool
	DisplayTimesInUTC   bool
	Breadcrumbs         bool
	CloseChangeOnReview bool
	HandleMouse         bool
	ChangeListOptions   ChangeListOptions
	ExpireAge           string
	SizeColumn          SizeColumn

	palettes     *ordered.Map[string, *palette.Palette]
	keymaps      *ordered.Map[string, *keymap.KeyMap]
	commentLinks []*commentlink.Rule
	dashboards   *ordered.Map[string, Dashboard]
	reviewKeys   *ordered.Map[string, ReviewKey]
	hideComments []*regexp.Regexp
}

// Palette returns the active palette.
func (c *Config) Palette() *palette.Palette {
	p, _ := c.palettes.Get(c.PaletteName)
	return p
}

// PaletteNames returns every known palette name, built-ins first.
func (c *Config) PaletteNames() []string {
	return c.palettes.Keys()
}

// KeyMap returns the active keymap.
func (c *Config) KeyMap() *keymap.KeyMap {
	km, _ := c.keymaps.Get(c.KeymapName)
	return km
}

// KeymapNames returns every known keymap name, built-ins first.
func (c *Config) KeymapNames() []string {
	return c.keymaps.Keys()
}

// CommentLinks returns the comment link rules in the order they apply.
// The URL rule is always last.
func (c *Config) CommentLinks() []*commentlink.Rule {
	return slices.Clone(c.commentLinks)
}

// Dashboards returns the dashboards in document order.
func (c *Config) Dashboards() []Dashboard {
	out := make([]Dashboard, 0, c.dashboards.Len())
	for _, d := range c.dashboards.All() {
		out = append(out, d.clone())
	}
	return out
}

// Dashboard returns the dashboard bound to key.
func (c *Config) Dashboard(key string) (Dashboard, bool) {
	d, ok := c.dashboards.Get(key)
	return d.clone(), ok
}

// ReviewKeys returns the review keys in document order.
func (c *Config) ReviewKeys() []ReviewKey {
	out := make([]ReviewKey, 0, c.reviewKeys.Len())
	for _, k := range c.reviewKeys.All() {
		out = append(out, k.clone())
	}
	return out
}

// ReviewKey returns the review key bound to key.
func (c *Config) ReviewKey(key string) (ReviewKey, bool) {
	k, ok := c.reviewKeys.Get(key)
	return k.clone(), ok
}

// HideComments returns the compiled author patterns.
func (c *Config) HideComments() []*regexp.Regexp {
	return slices.Clone(c.hideComments)
}

// HidesAuthor reports whether comments by author are hidden.
func (c *Config) HidesAuthor(author string) bool {
	for _, re := range c.hideComments {
		if re.MatchString(author) {
			return true
		}
	}
	return false
}
