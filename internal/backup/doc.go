// Package backup keeps snapshots of the gertty configuration file so a
// change made by "gertty config edit" or "gertty doctor --fix" can be
// undone.
//
// Each snapshot is a directory under the XDG data home:
//
//	$XDG_DATA_HOME/gertty/backups/
//	└── {timestamp}/
//	    ├── manifest.json
//	    └── {file name}
//
// The manifest records the original path, mode and SHA256 of the copy.
// Snapshot directories are 0700 and copies keep the source mode, so a
// file holding a password stays readable by its owner only.
//
// Restoring verifies the hash before writing the file back:
//
//	mgr := backup.NewManager()
//	m, err := mgr.Backup("~/.gertty.yaml")
//	...
//	err = mgr.Restore(m.ID)
package backup
