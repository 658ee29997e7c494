package config

// Default returns the configuration used when no file overrides it
func Default() Config {
	return Config{
		Core: Core{
			HomeTrashDir:       "",
			HomeFallback:       true,
			ForceHomeTrash:     false,
			SkipMountPointFind: false,
			Restore: Restore{
				Verbose: true,
			},
		},
		List: List{
			Exclude: Exclude{
				Files: []string{
					// In macOS, .DS_Store is a file that stores custom attributes of its
					// containing folder, such as folder view options and icon positions
					".DS_Store",
				},
				Globs:    []string{},
				Patterns: []string{},
			},
			Period: 0,
		},
		Logging: Logging{
			Enabled: false,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
