package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gertty/internal/commentlink"
	"github.com/thoreinstein/gertty/internal/credential"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/keymap"
	"github.com/thoreinstein/gertty/internal/logging"
	"github.com/thoreinstein/gertty/internal/palette"
)

const serverBlock = `
servers:
  - name: prod
    url: https://review.example.org
    username: alice
    git-root: ~/git
`

// fakeHome points the home directory at a temp dir and returns it.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// writeConfig writes content to a document in a temp dir with the given mode.
func writeConfig(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gertty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

// mustLoad resolves content with a static password provider.
func mustLoad(t *testing.T, content string, opts Options) *Config {
	t.Helper()
	cfg, err := load(t, content, opts)
	require.NoError(t, err)
	return cfg
}

func load(t *testing.T, content string, opts Options) (*Config, error) {
	t.Helper()
	if opts.Path == "" {
		opts.Path = writeConfig(t, content, 0o600)
	}
	if opts.Credentials == nil {
		opts.Credentials = credential.Static("prompted")
	}
	opts.Logger = logging.ForTest(t)
	return Load(context.Background(), opts)
}

func TestLoad_Defaults(t *testing.T) {
	home := fakeHome(t)

	cfg := mustLoad(t, serverBlock, Options{})

	assert.Equal(t, "prod", cfg.Server)
	assert.Equal(t, "https://review.example.org/", cfg.URL)
	assert.Equal(t, "review.example.org", cfg.Hostname)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "prompted", cfg.Password)
	assert.Equal(t, DefaultAuthType, cfg.AuthType)
	assert.True(t, cfg.Network.VerifySSL)
	assert.Empty(t, cfg.Network.CABundle)

	assert.Equal(t, filepath.Join(home, "git"), cfg.GitRoot)
	assert.Equal(t, "https://review.example.org/p/", cfg.GitURL)
	assert.Equal(t, "sqlite:///"+filepath.Join(home, ".gertty.db"), cfg.DBURI)
	assert.Equal(t, filepath.Join(home, ".gertty.sock"), cfg.Socket)
	assert.Equal(t, filepath.Join(home, ".gertty.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join(home, ".gertty.prod.lock"), cfg.LockFile)

	assert.Equal(t, palette.Default, cfg.PaletteName)
	assert.Equal(t, []string{palette.Default, palette.Light}, cfg.PaletteNames())
	assert.Equal(t, keymap.Default, cfg.KeymapName)
	assert.Equal(t, []string{keymap.Default, keymap.Vi}, cfg.KeymapNames())
	require.NotNil(t, cfg.Palette())
	require.NotNil(t, cfg.KeyMap())

	assert.Equal(t, "status:open", cfg.ChangeListQuery)
	assert.Equal(t, "side-by-side", cfg.DiffView)
	assert.True(t, cfg.ThreadChanges)
	assert.False(t, cfg.DisplayTimesInUTC)
	assert.True(t, cfg.Breadcrumbs)
	assert.False(t, cfg.CloseChangeOnReview)
	assert.True(t, cfg.HandleMouse)
	assert.Equal(t, ChangeListOptions{SortBy: []string{"number"}}, cfg.ChangeListOptions)
	assert.Equal(t, "2 months", cfg.ExpireAge)
	assert.Equal(t, SizeColumn{Type: SizeGraph, Thresholds: []int{1, 10, 100, 1000}}, cfg.SizeColumn)

	assert.Empty(t, cfg.Dashboards())
	assert.Empty(t, cfg.ReviewKeys())
	assert.Empty(t, cfg.HideComments())
	require.Len(t, cfg.CommentLinks(), 1)
	assert.Equal(t, commentlink.URLPattern, cfg.CommentLinks()[0].Pattern)
}

func TestLoad_TrailingSlashes(t *testing.T) {
	fakeHome(t)

	tests := []struct {
		name       string
		url        string
		gitURL     string
		wantURL    string
		wantGitURL string
	}{
		{name: "no slash", url: "https://r.example.org", wantURL: "https://r.example.org/", wantGitURL: "https://r.example.org/p/"},
		{name: "one slash", url: "https://r.example.org/", wantURL: "https://r.example.org/", wantGitURL: "https://r.example.org/p/"},
		{name: "many slashes", url: "https://r.example.org/gerrit//", wantURL: "https://r.example.org/gerrit/", wantGitURL: "https://r.example.org/gerrit/p/"},
		{name: "git url without slash", url: "https://r.example.org", gitURL: "ssh://r.example.org:29418", wantURL: "https://r.example.org/", wantGitURL: "ssh://r.example.org:29418/"},
		{name: "git url with slash", url: "https://r.example.org", gitURL: "ssh://r.example.org:29418/", wantURL: "https://r.example.org/", wantGitURL: "ssh://r.example.org:29418/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "servers:\n  - name: prod\n    url: " + tt.url + "\n    username: alice\n    git-root: /srv/git\n"
			if tt.gitURL != "" {
				doc += "    git-url: " + tt.gitURL + "\n"
			}
			cfg := mustLoad(t, doc, Options{})
			assert.Equal(t, tt.wantURL, cfg.URL)
			assert.Equal(t, tt.wantGitURL, cfg.GitURL)
			assert.True(t, strings.HasSuffix(cfg.URL, "/") && !strings.HasSuffix(cfg.URL, "//"))
			assert.True(t, strings.HasSuffix(cfg.GitURL, "/") && !strings.HasSuffix(cfg.GitURL, "//"))
		})
	}
}

func TestLoad_HostnameKeepsPort(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, strings.Replace(serverBlock, "https://review.example.org", "http://localhost:8080/gerrit", 1), Options{})
	assert.Equal(t, "localhost:8080", cfg.Hostname)
}

func TestLoad_HostnameOmitsUserinfo(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, strings.Replace(serverBlock, "https://review.example.org", "https://alice@review.example.org:8443", 1), Options{})
	assert.Equal(t, "review.example.org:8443", cfg.Hostname)
}

func TestLoad_ExplicitServerFields(t *testing.T) {
	home := fakeHome(t)
	cfg := mustLoad(t, `
servers:
  - name: prod
    url: https://review.example.org/
    username: alice
    git-root: /srv/git
    dburi: postgresql://gertty:pw@db.example.org/gertty
    socket: ~/run/g.sock
    log-file: /var/log/gertty.log
    lock-file: ~/locks/prod.lock
    auth-type: basic
    verify-ssl: false
    ssl-ca-path: ~/ca.pem
`, Options{})

	assert.Equal(t, "postgresql://gertty:pw@db.example.org/gertty", cfg.DBURI, "explicit dburi is used verbatim")
	assert.Equal(t, filepath.Join(home, "run/g.sock"), cfg.Socket)
	assert.Equal(t, "/var/log/gertty.log", cfg.LogFile)
	assert.Equal(t, filepath.Join(home, "locks/prod.lock"), cfg.LockFile)
	assert.Equal(t, "basic", cfg.AuthType)
	assert.False(t, cfg.Network.VerifySSL)
	assert.Equal(t, filepath.Join(home, "ca.pem"), cfg.Network.CABundle)
	assert.Equal(t, []string{"GIT_SSL_NO_VERIFY=true", "GIT_SSL_CAINFO=" + filepath.Join(home, "ca.pem")}, cfg.Network.GitEnv())
}

func TestLoad_DefaultLockFileIsServerScoped(t *testing.T) {
	home := fakeHome(t)
	doc := serverBlock + `  - name: staging
    url: https://staging.example.org
    username: alice
    git-root: ~/git
`
	prod := mustLoad(t, doc, Options{Server: "prod"})
	staging := mustLoad(t, doc, Options{Server: "staging"})

	assert.Equal(t, filepath.Join(home, ".gertty.prod.lock"), prod.LockFile)
	assert.Equal(t, filepath.Join(home, ".gertty.staging.lock"), staging.LockFile)
	assert.Equal(t, "https://staging.example.org/", staging.URL)
}

func TestSelectServer(t *testing.T) {
	doc := &document.Document{Servers: []document.Server{{Name: "a"}, {Name: "b"}, {Name: "b", URL: "second"}}}

	got, err := SelectServer(doc, "")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	got, err = SelectServer(doc, "b")
	require.NoError(t, err)
	assert.Empty(t, got.URL, "first matching record wins")

	_, err = SelectServer(doc, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrServerNotFound))
	assert.Contains(t, err.Error(), "a, b, b")

	_, err = SelectServer(&document.Document{}, "")
	assert.True(t, errors.Is(err, errors.ErrSchemaViolation))
}

func TestLoad_UnknownServer(t *testing.T) {
	fakeHome(t)
	_, err := load(t, serverBlock, Options{Server: "nope"})
	assert.True(t, errors.Is(err, errors.ErrServerNotFound))
}

func TestLoad_MissingServers(t *testing.T) {
	fakeHome(t)
	cfg, err := load(t, "palette: default\n", Options{})
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, errors.ErrSchemaViolation))
}

func TestLoad_MissingDocument(t *testing.T) {
	fakeHome(t)
	_, err := load(t, "", Options{Path: filepath.Join(t.TempDir(), "none.yaml")})
	assert.True(t, errors.Is(err, errors.ErrMissingDocument))
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gertty.yaml"), []byte(serverBlock), 0o644))

	cfg, err := Load(context.Background(), Options{Credentials: credential.Static("pw")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gertty.yaml"), cfg.Path)
}

const passwordBlock = `
servers:
  - name: prod
    url: https://review.example.org
    username: alice
    password: hunter2
    git-root: ~/git
`

func TestLoad_StoredPassword(t *testing.T) {
	fakeHome(t)
	prompted := false
	provider := credential.ProviderFunc(func(context.Context, string, string) (string, error) {
		prompted = true
		return "prompted", nil
	})

	cfg := mustLoad(t, passwordBlock, Options{Credentials: provider})
	assert.Equal(t, "hunter2", cfg.Password)
	assert.False(t, prompted)
}

func TestLoad_InsecurePermissions(t *testing.T) {
	fakeHome(t)

	for _, mode := range []os.FileMode{0o644, 0o640, 0o700, 0o400} {
		t.Run(mode.String(), func(t *testing.T) {
			path := writeConfig(t, passwordBlock, mode)
			_, err := load(t, "", Options{Path: path})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInsecurePermissions))

			var perr *InsecurePermissionsError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, path, perr.Path)
			assert.Equal(t, mode, perr.Mode)
			assert.Equal(t, os.FileMode(0o600), perr.Expected)
			assert.NotContains(t, err.Error(), "hunter2")
		})
	}
}

func TestResolve_InsecurePermissionsBeforePasswordUse(t *testing.T) {
	raw, err := document.Parse([]byte(passwordBlock), document.FormatYAML)
	require.NoError(t, err)
	doc, err := document.Decode(raw)
	require.NoError(t, err)
	doc.Path = "/tmp/gertty.yaml"
	doc.Mode = 0o664

	_, err = Resolve(context.Background(), doc, Options{
		Credentials: credential.ProviderFunc(func(context.Context, string, string) (string, error) {
			t.Fatal("provider must not be called")
			return "", nil
		}),
	})
	assert.True(t, errors.Is(err, errors.ErrInsecurePermissions))
}

func TestLoad_NoPasswordIgnoresPermissions(t *testing.T) {
	fakeHome(t)
	path := writeConfig(t, serverBlock, 0o644)

	cfg, err := load(t, "", Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "prompted", cfg.Password)
}

func TestLoad_PromptReceivesURLAndUser(t *testing.T) {
	fakeHome(t)
	var gotURL, gotUser string
	provider := credential.ProviderFunc(func(_ context.Context, url, user string) (string, error) {
		gotURL, gotUser = url, user
		return "pw", nil
	})

	mustLoad(t, serverBlock, Options{Credentials: provider})
	assert.Equal(t, "https://review.example.org/", gotURL)
	assert.Equal(t, "alice", gotUser)
}

func TestLoad_PromptFailure(t *testing.T) {
	fakeHome(t)
	provider := credential.ProviderFunc(func(context.Context, string, string) (string, error) {
		return "", credential.ErrNoTerminal
	})

	_, err := load(t, serverBlock, Options{Credentials: provider})
	assert.True(t, errors.Is(err, credential.ErrNoTerminal))
}

func TestLoad_NoPrompt(t *testing.T) {
	fakeHome(t)
	provider := credential.ProviderFunc(func(context.Context, string, string) (string, error) {
		t.Fatal("provider must not be called")
		return "", nil
	})

	cfg := mustLoad(t, serverBlock, Options{Credentials: provider, NoPrompt: true})
	assert.Empty(t, cfg.Password)
}

func attr(p *palette.Palette, name string) []string {
	specs, _ := p.Attribute(name)
	return specs
}

func TestLoad_PaletteMergesIntoBuiltin(t *testing.T) {
	fakeHome(t)
	base, err := palette.New(nil)
	require.NoError(t, err)

	cfg := mustLoad(t, serverBlock+`
palettes:
  - name: default
    added-line: ['light green', '']
    my-attribute: ['red', 'black']
  - name: custom
    added-line: ['yellow', '']
palette: custom
`, Options{})

	def, ok := cfg.palettes.Get(palette.Default)
	require.True(t, ok)
	assert.Equal(t, []string{"light green", ""}, attr(def, "added-line"))
	assert.Equal(t, []string{"red", "black"}, attr(def, "my-attribute"))
	assert.Equal(t, attr(base, "removed-line"), attr(def, "removed-line"), "built-in fields survive the merge")
	_, hasName := def.Attribute("name")
	assert.False(t, hasName)

	assert.Equal(t, "custom", cfg.PaletteName)
	assert.Equal(t, []string{"yellow", ""}, attr(cfg.Palette(), "added-line"))
	assert.Equal(t, attr(base, "removed-line"), attr(cfg.Palette(), "removed-line"), "new palettes start from the base table")
	assert.Equal(t, []string{palette.Default, palette.Light, "custom"}, cfg.PaletteNames())
}

func TestLoad_PaletteSelection(t *testing.T) {
	fakeHome(t)

	tests := []struct {
		name     string
		doc      string
		override string
		want     string
	}{
		{name: "default", doc: serverBlock, want: palette.Default},
		{name: "document", doc: serverBlock + "palette: light\n", want: palette.Light},
		{name: "override beats document", doc: serverBlock + "palette: light\n", override: palette.Default, want: palette.Default},
		{name: "override only", doc: serverBlock, override: palette.Light, want: palette.Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustLoad(t, tt.doc, Options{Palette: tt.override})
			assert.Equal(t, tt.want, cfg.PaletteName)
		})
	}
}

func TestLoad_UnknownPalette(t *testing.T) {
	fakeHome(t)
	_, err := load(t, serverBlock+"palette: neon\n", Options{})
	assert.True(t, errors.Is(err, errors.ErrPaletteNotFound))

	_, err = load(t, serverBlock, Options{Palette: "neon"})
	assert.True(t, errors.Is(err, errors.ErrPaletteNotFound))
}

func TestLoad_KeymapMergesIntoBuiltin(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
keymaps:
  - name: vi
    quit: 'ctrl c'
  - name: emacs
    quit: [['ctrl x', 'ctrl c']]
keymap: vi
`, Options{})

	km := cfg.KeyMap()
	assert.Equal(t, keymap.Vi, cfg.KeymapName)
	assert.Equal(t, []keymap.Sequence{{"ctrl c"}}, km.Bindings(keymap.Quit))
	assert.Equal(t, []keymap.Sequence{{"j"}, {"down"}}, km.Bindings(keymap.CursorDown), "vi bindings survive the merge")

	emacs, ok := cfg.keymaps.Get("emacs")
	require.True(t, ok)
	assert.Equal(t, []keymap.Sequence{{"ctrl x", "ctrl c"}}, emacs.Bindings(keymap.Quit))
	assert.Equal(t, []keymap.Sequence{{"f1"}, {"?"}}, emacs.Bindings(keymap.Help))
}

func TestLoad_KeymapHyphenatedCommands(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
keymaps:
  - name: default
    cursor-down: 'x'
    previous-screen: 'q'
`, Options{})

	km := cfg.KeyMap()
	assert.Equal(t, []keymap.Sequence{{"x"}}, km.Bindings(keymap.CursorDown))
	assert.Equal(t, []keymap.Sequence{{"q"}}, km.Bindings(keymap.PrevScreen))
	assert.Empty(t, km.Bindings("cursor-down"))
}

func TestLoad_KeymapOverride(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+"keymap: vi\n", Options{Keymap: keymap.Default})
	assert.Equal(t, keymap.Default, cfg.KeymapName)

	_, err := load(t, serverBlock, Options{Keymap: "dvorak"})
	assert.True(t, errors.Is(err, errors.ErrKeymapNotFound))
}

func TestLoad_CommentLinks(t *testing.T) {
	fakeHome(t)

	tests := []struct {
		name  string
		extra string
		want  int
	}{
		{name: "none", extra: "", want: 1},
		{name: "two", extra: `
commentlinks:
  - match: "#(?P<n>\\d+)"
    replacements:
      - link: {url: "https://bugs/{n}", text: "#{n}"}
  - match: "^- (?P<job>\\S+)"
    test-result: "{job}"
    replacements:
      - text: "{job}"
`, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustLoad(t, serverBlock+tt.extra, Options{})
			rules := cfg.CommentLinks()
			require.Len(t, rules, tt.want)
			assert.Equal(t, commentlink.URLPattern, rules[len(rules)-1].Pattern, "URL rule is always last")
		})
	}
}

func TestLoad_CommentLinksApplyInOrder(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
commentlinks:
  - match: "https://bugs\\.example\\.org/(?P<n>\\d+)"
    replacements:
      - search: {query: "bug:{n}", text: "bug {n}"}
`, Options{})

	chunks := commentlink.Apply(cfg.CommentLinks(), "https://bugs.example.org/5 and https://x.example.org")
	require.Len(t, chunks, 3)
	assert.Equal(t, commentlink.KindSearch, chunks[0].Kind)
	assert.Equal(t, "bug:5", chunks[0].Query)
	assert.Equal(t, commentlink.KindLink, chunks[2].Kind)
}

func TestLoad_BadCommentLinkPattern(t *testing.T) {
	fakeHome(t)
	_, err := load(t, serverBlock+`
commentlinks:
  - match: "(?P<broken"
    replacements:
      - text: x
`, Options{})
	assert.True(t, errors.Is(err, errors.ErrPatternCompile))
}

func TestLoad_KeyedListsLaterDuplicateWins(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
dashboards:
  - {name: First, query: "owner:self", key: f2}
  - {name: Other, query: "is:starred", key: f3, sort-by: updated, reverse: true}
  - {name: Second, query: "reviewer:self", key: f2}
reviewkeys:
  - key: meta 1
    approvals: [{category: Code-Review, value: 1}]
  - key: meta 2
    approvals: [{category: Code-Review, value: 2}]
    submit: true
  - key: meta 1
    approvals: [{category: Code-Review, value: -1}]
    message: "needs work"
`, Options{})

	dashboards := cfg.Dashboards()
	require.Len(t, dashboards, 2)
	assert.Equal(t, "f2", dashboards[0].Key, "first-seen position is kept")
	assert.Equal(t, "Second", dashboards[0].Name)
	assert.Equal(t, Dashboard{Name: "Other", Query: "is:starred", Key: "f3", SortBy: []string{"updated"}, Reverse: true}, dashboards[1])

	d, ok := cfg.Dashboard("f2")
	require.True(t, ok)
	assert.Equal(t, "reviewer:self", d.Query)

	keys := cfg.ReviewKeys()
	require.Len(t, keys, 2)
	assert.Equal(t, "meta 1", keys[0].Key)
	assert.Equal(t, []Approval{{Category: "Code-Review", Value: -1}}, keys[0].Approvals)
	assert.Equal(t, "needs work", keys[0].Message)
	assert.True(t, keys[1].Submit)

	_, ok = cfg.ReviewKey("meta 9")
	assert.False(t, ok)
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
dashboards:
  - {name: Mine, query: "owner:self", key: f2, sort-by: [number]}
`, Options{})

	ds := cfg.Dashboards()
	ds[0].SortBy[0] = "mutated"
	ds[0].Name = "mutated"

	again, _ := cfg.Dashboard("f2")
	assert.Equal(t, "Mine", again.Name)
	assert.Equal(t, []string{"number"}, again.SortBy)

	rules := cfg.CommentLinks()
	rules[0] = nil
	assert.NotNil(t, cfg.CommentLinks()[0])
}

func TestLoad_HideComments(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
hide-comments:
  - author: "^(.*CI|Zuul)$"
`, Options{})

	require.Len(t, cfg.HideComments(), 1)
	assert.True(t, cfg.HidesAuthor("Zuul"))
	assert.True(t, cfg.HidesAuthor("Third Party CI"))
	assert.False(t, cfg.HidesAuthor("Alice"))
}

func TestLoad_BadHideCommentPattern(t *testing.T) {
	fakeHome(t)
	cfg, err := load(t, serverBlock+`
hide-comments:
  - author: "[unterminated"
`, Options{})
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, errors.ErrPatternCompile))
}

func TestLoad_ScalarOptions(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+`
change-list-query: "status:open is:reviewer"
diff-view: unified
thread-changes: false
display-times-in-utc: true
breadcrumbs: false
close-change-on-review: true
handle-mouse: false
change-list-options:
  sort-by: [updated, project]
  reverse: true
expire-age: "1 week"
`, Options{})

	assert.Equal(t, "status:open is:reviewer", cfg.ChangeListQuery)
	assert.Equal(t, "unified", cfg.DiffView)
	assert.False(t, cfg.ThreadChanges)
	assert.True(t, cfg.DisplayTimesInUTC)
	assert.False(t, cfg.Breadcrumbs)
	assert.True(t, cfg.CloseChangeOnReview)
	assert.False(t, cfg.HandleMouse)
	assert.Equal(t, ChangeListOptions{SortBy: []string{"updated", "project"}, Reverse: true}, cfg.ChangeListOptions)
	assert.Equal(t, "1 week", cfg.ExpireAge)
}

func TestLoad_SortByScalarIsNormalized(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock+"change-list-options:\n  sort-by: last-seen\n", Options{})
	assert.Equal(t, []string{"last-seen"}, cfg.ChangeListOptions.SortBy)
	assert.False(t, cfg.ChangeListOptions.Reverse)
}

func TestLoad_SizeColumn(t *testing.T) {
	fakeHome(t)
	eight := []int{1, 10, 100, 200, 400, 600, 800, 1000}

	tests := []struct {
		name  string
		extra string
		want  SizeColumn
	}{
		{name: "absent", want: SizeColumn{Type: SizeGraph, Thresholds: []int{1, 10, 100, 1000}}},
		{name: "graph", extra: "size-column:\n  type: graph\n", want: SizeColumn{Type: SizeGraph, Thresholds: []int{1, 10, 100, 1000}}},
		{name: "split graph", extra: "size-column:\n  type: split-graph\n", want: SizeColumn{Type: SizeSplitGraph, Thresholds: eight}},
		{name: "number", extra: "size-column:\n  type: number\n", want: SizeColumn{Type: SizeNumber, Thresholds: eight}},
		{name: "disabled", extra: "size-column:\n  type: disabled\n", want: SizeColumn{Type: SizeDisabled, Thresholds: eight}},
		{name: "null type", extra: "size-column:\n  type: null\n", want: SizeColumn{Type: SizeDisabled, Thresholds: eight}},
		{
			name:  "explicit thresholds on graph are kept as-is",
			extra: "size-column:\n  type: graph\n  thresholds: [2, 4, 8, 16, 32, 64, 128, 256]\n",
			want:  SizeColumn{Type: SizeGraph, Thresholds: []int{2, 4, 8, 16, 32, 64, 128, 256}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustLoad(t, serverBlock+tt.extra, Options{})
			assert.Equal(t, tt.want, cfg.SizeColumn)
		})
	}
}

func TestLoad_DefaultThresholdsAreNotShared(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, serverBlock, Options{})
	cfg.SizeColumn.Thresholds[0] = 99
	assert.Equal(t, 1, GraphThresholds[0])
}

func TestLoad_SchemalessURLFailsValidation(t *testing.T) {
	fakeHome(t)
	_, err := load(t, strings.Replace(serverBlock, "https://review.example.org", "review.example.org", 1), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestView_MasksPassword(t *testing.T) {
	fakeHome(t)
	cfg := mustLoad(t, passwordBlock, Options{})

	v := cfg.View()
	assert.Equal(t, "********", v.Password)
	assert.Equal(t, []string{commentlink.URLPattern}, v.CommentLinks)
	assert.Equal(t, cfg.URL, v.URL)
	assert.Equal(t, []string{palette.Default, palette.Light}, v.Palettes)
}

func TestValidate_Nil(t *testing.T) {
	assert.True(t, errors.Is(Validate(nil), errors.ErrInvalidConfig))
}

func TestCheckPermissions(t *testing.T) {
	assert.NoError(t, CheckPermissions("/x", 0o600))
	err := CheckPermissions("/x", 0o644)
	assert.EqualError(t, err, "/x contains a password and has permissions 0644, expected 0600")
}
