package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      5000,
			StaticDir: "",
		},
		Storage: StorageConfig{
			Path:       "~/.config/tabscope",
			SQLiteFile: "tabscope.db",
		},
		Suggest: SuggestConfig{
			Limit: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
