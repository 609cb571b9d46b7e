package config

const (
	defaultConfigPath        = "~/.config/seriesclean/config.toml"
	defaultDataDir           = "~/.local/share/seriesclean"
	defaultLogDir            = "~/.local/share/seriesclean/logs"
	defaultDatabaseName      = "library.db"
	defaultPreviewLimit      = 20
	defaultNotifyEachRemoval = true
	defaultRequestTimeout    = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Cleanup: Cleanup{
			PreviewLimit:      defaultPreviewLimit,
			NotifyEachRemoval: defaultNotifyEachRemoval,
		},
		Notifications: Notifications{
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
