package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/gertty/internal/paths"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "GERTTY"

// Setting keys.
const (
	KeyConfig    = "config"
	KeyServer    = "server"
	KeyPalette   = "palette"
	KeyKeymap    = "keymap"
	KeyLogFormat = "log-format"
)

// Init registers the settings defaults and environment binding on the
// global Viper instance. Call it once before reading settings.
func Init() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyConfig, paths.DefaultConfigPath)
	viper.SetDefault(KeyServer, "")
	viper.SetDefault(KeyPalette, "")
	viper.SetDefault(KeyKeymap, "")
	viper.SetDefault(KeyLogFormat, "text")
}

// SettingsOptions builds resolver options from the current settings.
// Credentials and logger are left for the caller to fill in.
func SettingsOptions() Options {
	return Options{
		Path:    viper.GetString(KeyConfig),
		Server:  viper.GetString(KeyServer),
		Palette: viper.GetString(KeyPalette),
		Keymap:  viper.GetString(KeyKeymap),
	}
}
