package config

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/thoreinstein/gertty/internal/commentlink"
	"github.com/thoreinstein/gertty/internal/credential"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/keymap"
	"github.com/thoreinstein/gertty/internal/logging"
	"github.com/thoreinstein/gertty/internal/netpolicy"
	"github.com/thoreinstein/gertty/internal/ordered"
	"github.com/thoreinstein/gertty/internal/palette"
	"github.com/thoreinstein/gertty/internal/paths"
)

// Options are the construction parameters of a resolution.
type Options struct {
	// Path is the document path; "~" is expanded. Empty means ~/.gertty.yaml.
	Path string

	// Server selects the server record by name. Empty selects the first.
	Server string

	// Palette and Keymap override the names declared in the document.
	Palette string
	Keymap  string

	// Credentials is asked for the password when the document has none.
	// Nil means prompt on the terminal.
	Credentials credential.Provider

	// NoPrompt leaves Password empty instead of asking for it. The file
	// permission check still applies to stored passwords.
	NoPrompt bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.NewDiscard()
}

// DocumentPath returns the expanded document path.
func (o Options) DocumentPath() (string, error) {
	path := o.Path
	if path == "" {
		path = paths.DefaultConfigPath
	}
	return paths.ExpandUser(path)
}

// Load reads the document named by opts and resolves it.
func Load(ctx context.Context, opts Options) (*Config, error) {
	path, err := opts.DocumentPath()
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(ctx, doc, opts)
}

// Resolve builds the Config for the server selected by opts.
func Resolve(ctx context.Context, doc *document.Document, opts Options) (*Config, error) {
	srv, err := SelectServer(doc, opts.Server)
	if err != nil {
		return nil, err
	}

	logger := opts.logger().With("server", srv.Name)
	logger.Debug("resolving configuration", "path", doc.Path)

	r := &resolver{doc: doc, srv: srv, opts: opts, logger: logger}
	cfg := &Config{Path: doc.Path, Server: srv.Name, Username: srv.Username}

	steps := []struct {
		name string
		run  func(context.Context, *Config) error
	}{
		{"url", r.resolveURL},
		{"credentials", r.resolveCredentials},
		{"network", r.resolveNetwork},
		{"paths", r.resolvePaths},
		{"palettes", r.resolvePalettes},
		{"keymaps", r.resolveKeymaps},
		{"comment links", r.resolveCommentLinks},
		{"collections", r.resolveCollections},
		{"hide comments", r.resolveHideComments},
		{"options", r.resolveOptions},
		{"size column", r.resolveSizeColumn},
	}
	for _, step := range steps {
		if err := step.run(ctx, cfg); err != nil {
			return nil, err
		}
		logger.Log(ctx, logging.LevelTrace, "resolved", "step", step.name)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved", "url", cfg.URL, "palette", cfg.PaletteName, "keymap", cfg.KeymapName)
	return cfg, nil
}

type resolver struct {
	doc    *document.Document
	srv    *document.Server
	opts   Options
	logger *slog.Logger
}

// withTrailingSlash returns s ending in exactly one slash.
func withTrailingSlash(s string) string {
	return strings.TrimRight(s, "/") + "/"
}

func (r *resolver) resolveURL(_ context.Context, cfg *Config) error {
	cfg.URL = withTrailingSlash(r.srv.URL)
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "server %q: url", r.srv.Name), errors.ErrInvalidConfig)
	}
	// Host only: userinfo in the URL is not part of the hostname.
	cfg.Hostname = u.Host
	return nil
}

func (r *resolver) resolveCredentials(ctx context.Context, cfg *Config) error {
	cfg.AuthType = DefaultAuthType
	if r.srv.AuthType != "" {
		cfg.AuthType = r.srv.AuthType
	}

	if r.srv.Password != nil {
		if err := CheckPermissions(r.doc.Path, r.doc.Mode); err != nil {
			return err
		}
		cfg.Password = *r.srv.Password
		return nil
	}
	if r.opts.NoPrompt {
		return nil
	}

	provider := r.opts.Credentials
	if provider == nil {
		provider = credential.NewTerminal()
	}
	password, err := provider.Password(ctx, cfg.URL, cfg.Username)
	if err != nil {
		return errors.Wrapf(err, "reading password for %s", cfg.URL)
	}
	cfg.Password = password
	return nil
}

func (r *resolver) resolveNetwork(_ context.Context, cfg *Config) error {
	policy := netpolicy.Default()
	if r.srv.VerifySSL != nil {
		policy.VerifySSL = *r.srv.VerifySSL
	}
	if r.srv.SSLCAPath != "" {
		ca, err := paths.ExpandUser(r.srv.SSLCAPath)
		if err != nil {
			return errors.Wrap(err, "ssl-ca-path")
		}
		policy.CABundle = ca
	}
	if !policy.VerifySSL {
		r.logger.Warn("TLS certificate verification disabled")
	}
	cfg.Network = policy
	return nil
}

func (r *resolver) resolvePaths(_ context.Context, cfg *Config) error {
	expand := func(field, value, fallback string) (string, error) {
		if value == "" {
			value = fallback
		}
		expanded, err := paths.ExpandUser(value)
		if err != nil {
			return "", errors.Wrap(err, field)
		}
		return expanded, nil
	}

	var err error
	if cfg.GitRoot, err = expand("git-root", r.srv.GitRoot, ""); err != nil {
		return err
	}
	if cfg.Socket, err = expand("socket", r.srv.Socket, paths.DefaultSocket); err != nil {
		return err
	}
	if cfg.LogFile, err = expand("log-file", r.srv.LogFile, paths.DefaultLogFile); err != nil {
		return err
	}
	if cfg.LockFile, err = expand("lock-file", r.srv.LockFile, paths.DefaultLockFile(r.srv.Name)); err != nil {
		return err
	}

	cfg.GitURL = cfg.URL + "p/"
	if r.srv.GitURL != "" {
		cfg.GitURL = withTrailingSlash(r.srv.GitURL)
	}

	cfg.DBURI = r.srv.DBURI
	if cfg.DBURI == "" {
		db, err := paths.ExpandUser(paths.DefaultDBFile)
		if err != nil {
			return errors.Wrap(err, "dburi")
		}
		cfg.DBURI = "sqlite:///" + db
	}
	return nil
}

// activeName picks the explicit override, then the document's choice,
// then the built-in default.
func activeName(override, declared, fallback string) string {
	switch {
	case override != "":
		return override
	case declared != "":
		return declared
	default:
		return fallback
	}
}

func (r *resolver) resolvePalettes(_ context.Context, cfg *Config) error {
	palettes := ordered.New[string, *palette.Palette](len(r.doc.Palettes) + 2)
	for _, b := range palette.Builtins() {
		palettes.Set(b.Name, b.Palette)
	}

	for i, entry := range r.doc.Palettes {
		name, attrs, err := palette.FromEntry(entry)
		if err != nil {
			return errors.Wrapf(err, "palettes[%d]", i)
		}
		fresh, err := palette.New(attrs)
		if err != nil {
			return errors.Wrapf(err, "palette %q", name)
		}
		var mergeErr error
		added := palettes.Upsert(name, fresh, func(existing, _ *palette.Palette) *palette.Palette {
			mergeErr = existing.Update(attrs)
			return existing
		})
		if mergeErr != nil {
			return errors.Wrapf(mergeErr, "palette %q", name)
		}
		r.logger.Debug("palette layered", "name", name, "new", added, "attributes", len(attrs))
	}

	cfg.PaletteName = activeName(r.opts.Palette, r.doc.Palette, palette.Default)
	if !palettes.Has(cfg.PaletteName) {
		return errors.Wrapf(errors.ErrPaletteNotFound, "%q (known: %s)",
			cfg.PaletteName, strings.Join(palettes.Keys(), ", "))
	}
	cfg.palettes = palettes
	return nil
}

func (r *resolver) resolveKeymaps(_ context.Context, cfg *Config) error {
	keymaps := ordered.New[string, *keymap.KeyMap](len(r.doc.Keymaps) + 2)
	for _, b := range keymap.Builtins() {
		keymaps.Set(b.Name, b.KeyMap)
	}

	for i, entry := range r.doc.Keymaps {
		name, bindings, err := keymap.FromEntry(entry)
		if err != nil {
			return errors.Wrapf(err, "keymaps[%d]", i)
		}
		fresh, err := keymap.New(bindings)
		if err != nil {
			return errors.Wrapf(err, "keymap %q", name)
		}
		var mergeErr error
		added := keymaps.Upsert(name, fresh, func(existing, _ *keymap.KeyMap) *keymap.KeyMap {
			mergeErr = existing.Update(bindings)
			return existing
		})
		if mergeErr != nil {
			return errors.Wrapf(mergeErr, "keymap %q", name)
		}
		r.logger.Debug("keymap layered", "name", name, "new", added, "commands", len(bindings))
	}

	cfg.KeymapName = activeName(r.opts.Keymap, r.doc.Keymap, keymap.Default)
	if !keymaps.Has(cfg.KeymapName) {
		return errors.Wrapf(errors.ErrKeymapNotFound, "%q (known: %s)",
			cfg.KeymapName, strings.Join(keymaps.Keys(), ", "))
	}
	cfg.keymaps = keymaps
	return nil
}

func (r *resolver) resolveCommentLinks(_ context.Context, cfg *Config) error {
	rules := make([]*commentlink.Rule, 0, len(r.doc.CommentLinks)+1)
	for i, cl := range r.doc.CommentLinks {
		reps := make([]commentlink.Replacement, 0, len(cl.Replacements))
		for _, rep := range cl.Replacements {
			reps = append(reps, convertReplacement(rep))
		}
		rule, err := commentlink.New(cl.Match, reps, cl.TestResult)
		if err != nil {
			return errors.Wrapf(err, "commentlinks[%d]", i)
		}
		rules = append(rules, rule)
	}
	cfg.commentLinks = append(rules, commentlink.URLRule())
	return nil
}

func convertReplacement(rep document.Replacement) commentlink.Replacement {
	var out commentlink.Replacement
	switch {
	case rep.Text != nil:
		out.Text = &commentlink.TextReplacement{Text: rep.Text.Text, Color: rep.Text.Color}
	case rep.Link != nil:
		out.Link = &commentlink.LinkReplacement{URL: rep.Link.URL, Text: rep.Link.Text}
	case rep.Search != nil:
		out.Search = &commentlink.SearchReplacement{Query: rep.Search.Query, Text: rep.Search.Text}
	}
	return out
}

func (r *resolver) resolveCollections(_ context.Context, cfg *Config) error {
	dashboards := ordered.New[string, Dashboard](len(r.doc.Dashboards))
	for _, d := range r.doc.Dashboards {
		dashboards.Set(d.Key, Dashboard{
			Name:    d.Name,
			Query:   d.Query,
			SortBy:  []string(d.SortBy),
			Reverse: d.Reverse != nil && *d.Reverse,
			Key:     d.Key,
		})
	}

	reviewKeys := ordered.New[string, ReviewKey](len(r.doc.ReviewKeys))
	for _, k := range r.doc.ReviewKeys {
		approvals := make([]Approval, len(k.Approvals))
		for i, a := range k.Approvals {
			approvals[i] = Approval{Category: a.Category, Value: a.Value}
		}
		reviewKeys.Set(k.Key, ReviewKey{
			Approvals: approvals,
			Message:   k.Message,
			Submit:    k.Submit,
			Key:       k.Key,
		})
	}

	cfg.dashboards = dashboards
	cfg.reviewKeys = reviewKeys
	return nil
}

func (r *resolver) resolveHideComments(_ context.Context, cfg *Config) error {
	patterns := make([]*regexp.Regexp, 0, len(r.doc.HideComments))
	for i, h := range r.doc.HideComments {
		re, err := regexp.Compile(h.Author)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "hide-comments[%d]: author %q", i, h.Author), errors.ErrPatternCompile)
		}
		patterns = append(patterns, re)
	}
	cfg.hideComments = patterns
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func (r *resolver) resolveOptions(_ context.Context, cfg *Config) error {
	d := r.doc
	cfg.ChangeListQuery = stringOr(d.ChangeListQuery, DefaultChangeListQuery)
	cfg.DiffView = stringOr(d.DiffView, DefaultDiffView)
	cfg.ThreadChanges = boolOr(d.ThreadChanges, true)
	cfg.DisplayTimesInUTC = boolOr(d.DisplayTimesInUTC, false)
	cfg.Breadcrumbs = boolOr(d.Breadcrumbs, true)
	cfg.CloseChangeOnReview = boolOr(d.CloseChangeOnReview, false)
	cfg.HandleMouse = boolOr(d.HandleMouse, true)
	cfg.ExpireAge = stringOr(d.ExpireAge, DefaultExpireAge)

	cfg.ChangeListOptions = ChangeListOptions{SortBy: []string{DefaultSortBy}}
	if opts := d.ChangeListOptions; opts != nil {
		if len(opts.SortBy) > 0 {
			cfg.ChangeListOptions.SortBy = []string(opts.SortBy)
		}
		cfg.ChangeListOptions.Reverse = boolOr(opts.Reverse, false)
	}
	return nil
}

func (r *resolver) resolveSizeColumn(_ context.Context, cfg *Config) error {
	sc := SizeColumn{Type: SizeGraph}
	if d := r.doc.SizeColumn; d != nil {
		sc.Type = stringOr(d.Type, SizeDisabled)
		sc.Thresholds = d.Thresholds
	}
	if len(sc.Thresholds) == 0 {
		if sc.Type == SizeGraph {
			sc.Thresholds = GraphThresholds
		} else {
			sc.Thresholds = DefaultThresholds
		}
	}
	sc.Thresholds = append([]int(nil), sc.Thresholds...)
	cfg.SizeColumn = sc
	return nil
}
