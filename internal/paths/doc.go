// Package paths resolves the filesystem locations gertty reads and writes.
//
// Every user-supplied path in the configuration document may start with a
// home-directory reference ("~" or "~/..."); [ExpandUser] turns it into an
// absolute path the same way a POSIX shell would. The package also owns the
// built-in defaults for the document, database, socket, log and lock files:
//
//	paths.DefaultConfigPath      // ~/.gertty.yaml
//	paths.DefaultLockFile("prod") // ~/.gertty.prod.lock
//
// # XDG Base Directory Compliance
//
// Sample configuration files installed with gertty are looked up through
// github.com/adrg/xdg in the XDG data directories (share/gertty/examples).
package paths
