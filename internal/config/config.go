package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/session"
	"github.com/papapumpkin/vcustomizer/internal/staging"
	"github.com/papapumpkin/vcustomizer/internal/studiomdl"
	"github.com/papapumpkin/vcustomizer/internal/workarea"
)

// Config holds all runtime configuration for a vcustomizer invocation.
// Values are populated from .vcustomizer.yaml, VCUSTOMIZER_* env vars, and CLI flags.
type Config struct {
	InstallDir        string `mapstructure:"install_dir"`
	LibraryDir        string `mapstructure:"library_dir"`
	StagingDir        string `mapstructure:"staging_dir"`
	ContentRoot       string `mapstructure:"content_root"`
	CompilerPath      string `mapstructure:"compiler_path"`
	PackagerName      string `mapstructure:"packager_name"`
	CompilerFlags     string `mapstructure:"compiler_flags"`
	ScriptExt         string `mapstructure:"script_ext"`
	Directive         string `mapstructure:"directive"`
	LiveFolder        string `mapstructure:"live_folder"`
	DivertedFolder    string `mapstructure:"diverted_folder"`
	PackageFolder     string `mapstructure:"package_folder"`
	DestinationFolder string `mapstructure:"destination_folder"`
	OnlyModified      bool   `mapstructure:"only_modified"`
	SessionFile       string `mapstructure:"session_file"`
	HistoryDB         string `mapstructure:"history_db"`
	TelemetryPath     string `mapstructure:"telemetry_path"`
	LogFile           string `mapstructure:"log_file"`
	Verbose           bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("install_dir", "")
	viper.SetDefault("library_dir", "SCA")
	viper.SetDefault("staging_dir", workarea.DefaultStagingFolder)
	viper.SetDefault("content_root", "")
	viper.SetDefault("compiler_path", "")
	viper.SetDefault("packager_name", studiomdl.DefaultPackagerName)
	viper.SetDefault("compiler_flags", studiomdl.DefaultFlags)
	viper.SetDefault("script_ext", staging.DefaultScriptExt)
	viper.SetDefault("directive", sca.DefaultDirective)
	viper.SetDefault("live_folder", workarea.DefaultLiveFolder)
	viper.SetDefault("diverted_folder", workarea.DefaultDivertedFolder)
	viper.SetDefault("package_folder", studiomdl.DefaultPackageFolder)
	viper.SetDefault("destination_folder", studiomdl.DefaultDestination)
	viper.SetDefault("only_modified", false)
	viper.SetDefault("session_file", session.DefaultFileName)
	viper.SetDefault("history_db", "v_customizer.history.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Path resolves p against InstallDir. Absolute and empty paths are
// returned unchanged.
func (c Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.InstallDir == "" {
		return p
	}
	return filepath.Join(c.InstallDir, p)
}
