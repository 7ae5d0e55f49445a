// Package config resolves a configuration document into the runtime
// configuration of one server.
//
// # Pipeline
//
// [Load] reads and validates the document, [SelectServer] picks the server
// record, and [Resolve] turns that record plus the rest of the document into
// a [Config]:
//
//	cfg, err := config.Load(ctx, config.Options{
//	    Path:   "~/.gertty.yaml",
//	    Server: "review",
//	})
//	if err != nil {
//	    return err
//	}
//
// Resolution is all-or-nothing. Any failure, from an unknown server name to
// a hide-comments pattern that does not compile, returns an error and no
// Config.
//
// # Passwords
//
// A password stored in the document is only accepted when the file mode is
// exactly 0600; anything else fails with [*InsecurePermissionsError] before
// the password is read. Without a stored password the [credential.Provider]
// in [Options] is asked for one.
//
// # Settings
//
// The CLI's own settings (which document, server, palette and keymap to
// use) come from flags and GERTTY_* environment variables through Viper;
// see [Init] and [SettingsOptions].
package config
