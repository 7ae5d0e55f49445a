package backup

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/thoreinstein/gertty/cmd"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/paths"
	"github.com/thoreinstein/gertty/pkg/fileutil"
)

const manifestName = "manifest.json"

// idFormat sorts lexically in creation order.
const idFormat = "20060102T150405"

// Manager creates, lists and restores snapshots.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root snapshot directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets how many snapshots Backup keeps.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager returns a Manager rooted at paths.BackupDir unless
// WithBackupDir says otherwise.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root snapshot directory.
func (m *Manager) Dir() string {
	return m.rootDir
}

// Backup copies the file at path into a new snapshot and prunes the
// oldest snapshots beyond the retention count.
func (m *Manager) Backup(path string) (*Manifest, error) {
	expanded, err := paths.ExpandUser(path)
	if err != nil {
		return nil, err
	}
	src, err := filepath.Abs(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	if err := os.MkdirAll(m.rootDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}
	id, dir, err := m.newSnapshotDir()
	if err != nil {
		return nil, err
	}

	name := filepath.Base(src)
	hash, mode, err := copyFile(src, filepath.Join(dir, name))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "backing up %s", src)
	}

	manifest := &Manifest{
		Version:       ManifestVersion,
		CreatedAt:     m.now().UTC(),
		OriginalPath:  src,
		Name:          name,
		SHA256:        hash,
		Mode:          mode.Perm(),
		GerttyVersion: cmd.Version,
		ID:            id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest, 0o600); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(m.retentionCount); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// newSnapshotDir creates a fresh snapshot directory. Snapshots taken in
// the same second get a numeric suffix.
func (m *Manager) newSnapshotDir() (string, string, error) {
	base := m.now().UTC().Format(idFormat)
	for i := 0; i < 100; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%02d", base, i)
		}
		dir := filepath.Join(m.rootDir, id)
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating snapshot directory")
		}
	}
	return "", "", errors.Newf("too many backups at %s", base)
}

// Restore writes the snapshot id back to its original path with its
// original mode. An empty id restores the newest snapshot.
func (m *Manager) Restore(id string) (*Manifest, error) {
	manifest, err := m.resolve(id)
	if err != nil {
		return nil, err
	}

	src := filepath.Join(m.rootDir, manifest.ID, manifest.Name)
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", manifest.ID)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != manifest.SHA256 {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s", manifest.ID)
	}

	if err := os.MkdirAll(filepath.Dir(manifest.OriginalPath), 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", manifest.OriginalPath)
	}
	if err := fileutil.AtomicWriteFile(manifest.OriginalPath, data, manifest.Mode); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", manifest.OriginalPath)
	}
	return manifest, nil
}

func (m *Manager) resolve(id string) (*Manifest, error) {
	if id != "" {
		return m.Get(id)
	}
	manifests, err := m.List()
	if err != nil {
		return nil, err
	}
	return &manifests[0], nil
}

// List returns every snapshot, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes all but the newest keep snapshots.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(filepath.Join(m.rootDir, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of snapshot id.
func (m *Manager) Get(id string) (*Manifest, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, errors.Newf("invalid backup ID %q", id)
	}

	data, err := os.ReadFile(filepath.Join(m.rootDir, id, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// copyFile copies src to dst and returns the SHA256 and mode of src.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode().Perm()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	// The umask may have narrowed the mode given to OpenFile.
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
