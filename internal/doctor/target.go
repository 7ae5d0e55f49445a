package doctor

import (
	"context"
	"io/fs"
	"sync"

	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/document"
)

// Target is the configuration under diagnosis. The document is read and
// the server resolved at most once; checks share the outcome.
type Target struct {
	opts config.Options

	rawOnce sync.Once
	path    string
	raw     map[string]any
	info    fs.FileInfo
	rawErr  error

	cfgOnce sync.Once
	cfg     *config.Config
	cfgErr  error
}

// NewTarget returns a target for opts. Diagnosis never prompts for a
// password.
func NewTarget(opts config.Options) *Target {
	opts.NoPrompt = true
	opts.Credentials = nil
	return &Target{opts: opts}
}

// Path returns the expanded document path, or "" if it cannot be expanded.
func (t *Target) Path() string {
	t.read()
	return t.path
}

// Raw returns the parsed, unvalidated document and its file info.
func (t *Target) Raw() (map[string]any, fs.FileInfo, error) {
	t.read()
	return t.raw, t.info, t.rawErr
}

func (t *Target) read() {
	t.rawOnce.Do(func() {
		t.path, t.rawErr = t.opts.DocumentPath()
		if t.rawErr != nil {
			return
		}
		t.raw, t.info, t.rawErr = document.ReadRaw(t.path)
	})
}

// Config returns the resolved configuration of the selected server.
func (t *Target) Config(ctx context.Context) (*config.Config, error) {
	t.cfgOnce.Do(func() {
		t.cfg, t.cfgErr = config.Load(ctx, t.opts)
	})
	return t.cfg, t.cfgErr
}

// storesPassword reports whether any server record in raw carries a password.
func storesPassword(raw map[string]any) bool {
	servers, _ := raw["servers"].([]any)
	for _, s := range servers {
		m, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["password"]; ok {
			return true
		}
	}
	return false
}
