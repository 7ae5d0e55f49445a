package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/gertty/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of snapshots kept by default.
const DefaultRetentionCount = 5

var (
	// ErrNoBackupsFound indicates no snapshot exists.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a copy does not match its recorded hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one snapshot. It is stored as manifest.json in the
// snapshot directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// OriginalPath is the absolute path of the configuration file.
	OriginalPath string `json:"original_path"`

	// Name is the copy's file name inside the snapshot directory.
	Name string `json:"name"`

	SHA256 string      `json:"sha256"`
	Mode   fs.FileMode `json:"mode"`

	// GerttyVersion is the version of gertty that took the snapshot.
	GerttyVersion string `json:"gertty_version"`

	// ID is the snapshot directory name. It is not stored in the manifest.
	ID string `json:"-"`
}
