package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Phases: Phases{
			Caches:     true,
			Packages:   true,
			Logs:       true,
			LargeFiles: true,
		},
		Duplicates: Duplicates{
			MinFileSize:  1024, // skip trivially-equal tiny files
			ChunkSizeKB:  64,
			MaxScanFiles: 10000,
		},
		AgeThresholds: AgeThresholds{
			TempFiles:    30,
			OldDownloads: 90,
			Logs:         30,
		},
		SizeThresholds: SizeThresholds{
			LargeFile:    100 * 1024 * 1024,
			HugeFile:     1024 * 1024 * 1024,
			LogFile:      10 * 1024 * 1024,
			BrowserCache: 10 * 1024 * 1024,
		},
		Limits: Limits{
			MaxFiles:       50000,
			MaxDepth:       10,
			MaxMemoryMB:    500,
			TimeoutSeconds: 300,
		},
		Trash: Trash{
			RetentionDays: 3,
		},
		CacheTTL: CacheTTL{
			DirSizeSeconds:    300,
			ScanResultSeconds: 600,
		},
		LogLevel: "info",
		Verbose:  false,
	}
}
