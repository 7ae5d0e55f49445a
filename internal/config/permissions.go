package config

import (
	"fmt"
	"io/fs"

	"github.com/thoreinstein/gertty/internal/errors"
)

// RequiredMode is the only file mode accepted for a document that stores a
// password.
const RequiredMode fs.FileMode = 0o600

// InsecurePermissionsError reports a password stored in a file that others
// can read or write.
type InsecurePermissionsError struct {
	Path     string
	Mode     fs.FileMode
	Expected fs.FileMode
}

func (e *InsecurePermissionsError) Error() string {
	return fmt.Sprintf("%s contains a password and has permissions %#o, expected %#o",
		e.Path, uint32(e.Mode), uint32(e.Expected))
}

// Unwrap lets errors.Is match ErrInsecurePermissions.
func (e *InsecurePermissionsError) Unwrap() error {
	return errors.ErrInsecurePermissions
}

// CheckPermissions verifies that mode is exactly RequiredMode.
func CheckPermissions(path string, mode fs.FileMode) error {
	if mode.Perm() != RequiredMode {
		return &InsecurePermissionsError{Path: path, Mode: mode.Perm(), Expected: RequiredMode}
	}
	return nil
}
