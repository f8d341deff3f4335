package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds the runtime preferences read from config.yaml and the environment.
// Command line flags take precedence over these values.
type Settings struct {
	DefaultVersion string
	Language       string
	ServerPort     string
	QRLevel        string
	CountryCode    string
	User           string
}

// DefaultSettingsDir returns <user config dir>/<AppID>.
func DefaultSettingsDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID), nil
}

// LoadSettings reads config.yaml from dir (when present) and VCFEDIT_* environment
// variables. A missing file is not an error.
func LoadSettings(dir string) (Settings, error) {
	v := viper.New()
	v.SetDefault(SetKeyDefaultVersion, VCardVersion40)
	v.SetDefault(SetKeyLanguage, DefaultLanguage)
	v.SetDefault(SetKeyServerPort, DefaultPort)
	v.SetDefault(SetKeyQRLevel, DefaultQRLevel)
	v.SetDefault(SetKeyCountryCode, "")
	v.SetDefault(SetKeyUser, "")

	v.SetEnvPrefix(SettingsEnvPref)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if dir != "" {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType(SettingsFileType)
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
			}
			slog.Debug(MsgSettingsNone,
				LogKeyComponent, CompSettings,
				LogKeyFile, dir)
		}
	}

	return Settings{
		DefaultVersion: v.GetString(SetKeyDefaultVersion),
		Language:       v.GetString(SetKeyLanguage),
		ServerPort:     v.GetString(SetKeyServerPort),
		QRLevel:        strings.ToUpper(v.GetString(SetKeyQRLevel)),
		CountryCode:    v.GetString(SetKeyCountryCode),
		User:           v.GetString(SetKeyUser),
	}, nil
}
