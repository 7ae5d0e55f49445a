package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the application name used for file naming.
const AppName = "gertty"

// Built-in locations, all relative to the user's home directory.
const (
	DefaultConfigPath = "~/.gertty.yaml"
	DefaultDBFile     = "~/.gertty.db"
	DefaultSocket     = "~/.gertty.sock"
	DefaultLogFile    = "~/.gertty.log"
)

// SampleSubdir is where packaged sample documents are installed, relative
// to an XDG data directory or an installation prefix.
const SampleSubdir = "gertty/examples"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandUser replaces a leading "~" path element with the user's home
// directory. Paths without one are returned unchanged, including "~user"
// forms, which are left for the shell.
func ExpandUser(path string) (string, error) {
	if strings.ContainsRune(path, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// MustExpandUser is ExpandUser for paths that are known to be well formed,
// such as the built-in defaults. It falls back to the unexpanded path.
func MustExpandUser(path string) string {
	expanded, err := ExpandUser(path)
	if err != nil {
		return path
	}
	return expanded
}

// DefaultLockFile returns the unexpanded default lock path for a server.
// The name is part of the file so several servers never share a lock.
func DefaultLockFile(server string) string {
	return "~/." + AppName + "." + server + ".lock"
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// BackupDir returns where configuration snapshots are kept.
func BackupDir() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// SampleDirs returns the candidate directories holding packaged sample
// documents, most specific first.
func SampleDirs() []string {
	dirs := make([]string, 0, len(xdg.DataDirs)+1)
	dirs = append(dirs, filepath.Join(xdg.DataHome, SampleSubdir))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, SampleSubdir))
	}
	return dirs
}

// FindSampleDir returns the first existing sample directory. When none is
// installed it returns the installation-relative "share/gertty/examples".
func FindSampleDir() string {
	for _, dir := range SampleDirs() {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join("share", SampleSubdir)
}
