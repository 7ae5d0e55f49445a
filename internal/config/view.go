package config

import (
	"github.com/thoreinstein/gertty/internal/netpolicy"
	"github.com/thoreinstein/gertty/internal/redact"
)

// View is a printable snapshot of a Config with the password masked.
type View struct {
	Path     string           `json:"path" yaml:"path"`
	Server   string           `json:"server" yaml:"server"`
	URL      string           `json:"url" yaml:"url"`
	Hostname string           `json:"hostname" yaml:"hostname"`
	Username string           `json:"username" yaml:"username"`
	Password string           `json:"password,omitempty" yaml:"password,omitempty"`
	AuthType string           `json:"auth_type" yaml:"auth-type"`
	Network  netpolicy.Policy `json:"network" yaml:"network"`
	GitRoot  string           `json:"git_root" yaml:"git-root"`
	GitURL   string           `json:"git_url" yaml:"git-url"`
	DBURI    string           `json:"dburi" yaml:"dburi"`
	Socket   string           `json:"socket" yaml:"socket"`
	LogFile  string           `json:"log_file" yaml:"log-file"`
	LockFile string           `json:"lock_file" yaml:"lock-file"`

	Palette      string   `json:"palette" yaml:"palette"`
	Palettes     []string `json:"palettes" yaml:"palettes"`
	Keymap       string   `json:"keymap" yaml:"keymap"`
	Keymaps      []string `json:"keymaps" yaml:"keymaps"`
	CommentLinks []string `json:"commentlinks" yaml:"commentlinks"`

	Dashboards   []Dashboard `json:"dashboards,omitempty" yaml:"dashboards,omitempty"`
	ReviewKeys   []ReviewKey `json:"reviewkeys,omitempty" yaml:"reviewkeys,omitempty"`
	HideComments []string    `json:"hide_comments,omitempty" yaml:"hide-comments,omitempty"`

	ChangeListQuery     string            `json:"change_list_query" yaml:"change-list-query"`
	DiffView            string            `json:"diff_view" yaml:"diff-view"`
	ThreadChanges       bool              `json:"thread_changes" yaml:"thread-changes"`
	DisplayTimesInUTC   bool              `json:"display_times_in_utc" yaml:"display-times-in-utc"`
	Breadcrumbs         bool              `json:"breadcrumbs" yaml:"breadcrumbs"`
	CloseChangeOnReview bool              `json:"close_change_on_review" yaml:"close-change-on-review"`
	HandleMouse         bool              `json:"handle_mouse" yaml:"handle-mouse"`
	ChangeListOptions   ChangeListOptions `json:"change_list_options" yaml:"change-list-options"`
	ExpireAge           string            `json:"expire_age" yaml:"expire-age"`
	SizeColumn          SizeColumn        `json:"size_column" yaml:"size-column"`
}

// View returns a printable snapshot of c.
func (c *Config) View() *View {
	v := &View{
		Path:     c.Path,
		Server:   c.Server,
		URL:      c.URL,
		Hostname: c.Hostname,
		Username: c.Username,
		AuthType: c.AuthType,
		Network:  c.Network,
		GitRoot:  c.GitRoot,
		GitURL:   c.GitURL,
		DBURI:    redact.URL(c.DBURI),
		Socket:   c.Socket,
		LogFile:  c.LogFile,
		LockFile: c.LockFile,

		Palette:  c.PaletteName,
		Palettes: c.PaletteNames(),
		Keymap:   c.KeymapName,
		Keymaps:  c.KeymapNames(),

		Dashboards: c.Dashboards(),
		ReviewKeys: c.ReviewKeys(),

		ChangeListQuery:     c.ChangeListQuery,
		DiffView:            c.DiffView,
		ThreadChanges:       c.ThreadChanges,
		DisplayTimesInUTC:   c.DisplayTimesInUTC,
		Breadcrumbs:         c.Breadcrumbs,
		CloseChangeOnReview: c.CloseChangeOnReview,
		HandleMouse:         c.HandleMouse,
		ChangeListOptions:   c.ChangeListOptions,
		ExpireAge:           c.ExpireAge,
		SizeColumn:          c.SizeColumn,
	}
	if c.Password != "" {
		v.Password = redact.Mask
	}
	for _, rule := range c.commentLinks {
		v.CommentLinks = append(v.CommentLinks, rule.Pattern)
	}
	for _, re := range c.hideComments {
		v.HideComments = append(v.HideComments, re.String())
	}
	return v
}
