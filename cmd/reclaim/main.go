package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenilsonani/reclaim/internal/cleaner"
	"github.com/fenilsonani/reclaim/internal/config"
	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/internal/platform"
	"github.com/fenilsonani/reclaim/internal/reporter"
	"github.com/fenilsonani/reclaim/internal/scanner"
	"github.com/fenilsonani/reclaim/internal/security"
	"github.com/fenilsonani/reclaim/internal/trash"
	"github.com/fenilsonani/reclaim/internal/watch"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	outputFmt  string

	scanCaches     bool
	scanPackages   bool
	scanLogs       bool
	scanLargeFiles bool
	maxFiles       int
	maxDepth       int
	maxMemoryMB    int
	timeoutSecs    int

	minLargeSize string

	useTrash      bool
	retentionDays int

	watchInterval int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Disk space recovery with reversible deletion",
	Long: `Reclaim finds space you can safely get back and deletes it reversibly:
  - Application, browser, and package manager caches
  - Oversized logs, large files, and stale downloads
  - Duplicate files found by sampled fingerprinting
  - Filesystem hygiene issues (empty dirs, broken symlinks, orphaned temp files)

Deleted items go to a journaled trash and can be restored until they expire.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		verb := verbose
		if cfg, err := loadConfig(); err == nil {
			level = cfg.LogLevel
			verb = verb || cfg.Verbose
		}
		logging.Init(level, verb)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for reclaimable space",
	Long:  `Scans the enabled categories and reports what could be cleaned, without changing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		opts := scanOptions(cmd, cfg)
		timeout := cfg.ScanTimeout()
		if cmd.Flags().Changed("timeout") {
			timeout = time.Duration(timeoutSecs) * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		scn := scanner.New(cfg, info)
		results, err := scn.Run(ctx, opts)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		rptr := reporter.New(os.Stdout, reporter.OutputFormat(outputFmt))
		return rptr.Report(results)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Scan for filesystem hygiene issues",
	Long:  `Finds empty directories, broken symlinks, and orphaned temporary files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ScanTimeout())
		defer cancel()

		results, err := scanner.New(cfg, info).RunHealth(ctx)
		if err != nil {
			return fmt.Errorf("health scan failed: %w", err)
		}

		fmt.Printf("Empty directories:    %d\n", len(results.EmptyDirs))
		fmt.Printf("Broken symlinks:      %d\n", len(results.BrokenSymlinks))
		fmt.Printf("Orphaned temp files:  %d (%s)\n", len(results.OrphanedTemp), utils.FormatBytes(results.TotalSize))
		return nil
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Deep scan for recoverable storage",
	Long:  `Finds duplicate files, very large files, and stale downloads, with recoverable size totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		if cmd.Flags().Changed("min-large-size") {
			floor, err := utils.ParseSize(minLargeSize)
			if err != nil {
				return fmt.Errorf("invalid --min-large-size: %w", err)
			}
			cfg.SizeThresholds.LargeFile = floor
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ScanTimeout())
		defer cancel()

		results, err := scanner.New(cfg, info).RunStorageRecovery(ctx)
		if err != nil {
			return fmt.Errorf("storage recovery scan failed: %w", err)
		}

		fmt.Printf("Duplicate groups: %d (%s recoverable)\n",
			len(results.DuplicateGroups), utils.FormatBytes(results.TotalDuplicateSize))
		fmt.Printf("Very large files: %d (%s)\n",
			len(results.LargeFiles), utils.FormatBytes(results.TotalLargeFileSize))
		fmt.Printf("Old downloads:    %d (%s)\n",
			len(results.OldDownloads), utils.FormatBytes(results.TotalOldDownloadSize))
		fmt.Printf("\nTotal recoverable: %s\n", utils.FormatBytes(results.TotalRecoverableSize))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [paths...]",
	Short: "Remove the given paths",
	Long: `Validates each path and removes it. By default items move to the trash and
can be restored until they expire; --use-trash=false deletes permanently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		validator, err := security.NewValidator()
		if err != nil {
			return fmt.Errorf("failed to init path validation: %w", err)
		}

		if !useTrash && security.CurrentUserIsRoot() {
			logging.L().Warn("deleting permanently as root; system paths outside the home are still refused")
		}

		var tr *trash.Trash
		if useTrash {
			tr, err = trash.Open(info.TrashRoot)
			if err != nil {
				return fmt.Errorf("failed to open trash: %w", err)
			}
			if _, err := tr.CleanupExpired(); err != nil {
				logging.L().WithError(err).Warn("trash expiry sweep incomplete")
			}
		}

		retention := cfg.Trash.RetentionDays
		if cmd.Flags().Changed("retention-days") {
			retention = retentionDays
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ScanTimeout())
		defer cancel()

		result, err := cleaner.New(validator, tr).Clean(ctx, cleaner.Request{
			Paths:         args,
			UseTrash:      useTrash,
			RetentionDays: retention,
		})
		if result != nil {
			fmt.Printf("Cleaned: %d (%s)\n", result.Cleaned, utils.FormatBytes(result.TotalSize))
			if result.Failed > 0 {
				fmt.Printf("Failed:  %d\n", result.Failed)
				for _, f := range result.Failures {
					fmt.Printf("  %s: %s\n", f.Path, f.Error)
				}
			}
		}
		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run background maintenance",
	Long: `Runs the trash expiry sweeper and a filesystem watcher over the cache
directories until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		tr, err := trash.Open(info.TrashRoot)
		if err != nil {
			return fmt.Errorf("failed to open trash: %w", err)
		}

		log := &watch.Log{}
		sweeper := watch.NewSweeper(tr, scanner.New(cfg, info),
			time.Duration(watchInterval)*time.Second, log)

		var roots []string
		for _, dir := range info.CacheDirs {
			roots = append(roots, dir.Path)
		}
		watcher, err := watch.NewWatcher(roots, log)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		ctx := cmd.Context()
		go sweeper.Run(ctx)
		fmt.Println("Watching for changes. Ctrl-C to stop.")
		return watcher.Run(ctx)
	},
}

func scanOptions(cmd *cobra.Command, cfg *config.Config) scanner.Options {
	opts := scanner.Options{
		Caches:      cfg.Phases.Caches,
		Packages:    cfg.Phases.Packages,
		Logs:        cfg.Phases.Logs,
		LargeFiles:  cfg.Phases.LargeFiles,
		MaxFiles:    cfg.Limits.MaxFiles,
		MaxDepth:    cfg.Limits.MaxDepth,
		MaxMemoryMB: cfg.Limits.MaxMemoryMB,
	}

	if cmd.Flags().Changed("caches") {
		opts.Caches = scanCaches
	}
	if cmd.Flags().Changed("packages") {
		opts.Packages = scanPackages
	}
	if cmd.Flags().Changed("logs") {
		opts.Logs = scanLogs
	}
	if cmd.Flags().Changed("large-files") {
		opts.LargeFiles = scanLargeFiles
	}
	if cmd.Flags().Changed("max-files") {
		opts.MaxFiles = maxFiles
	}
	if cmd.Flags().Changed("max-depth") {
		opts.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("max-memory-mb") {
		opts.MaxMemoryMB = maxMemoryMB
	}
	return opts
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	scanCmd.Flags().StringVarP(&outputFmt, "output", "o", "summary", "output format (summary, table, json, yaml)")
	scanCmd.Flags().BoolVar(&scanCaches, "caches", true, "scan application caches")
	scanCmd.Flags().BoolVar(&scanPackages, "packages", true, "scan package manager caches")
	scanCmd.Flags().BoolVar(&scanLogs, "logs", true, "scan log files")
	scanCmd.Flags().BoolVar(&scanLargeFiles, "large-files", true, "scan for large files")
	scanCmd.Flags().IntVar(&maxFiles, "max-files", 0, "maximum entries to visit per category")
	scanCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum directory depth")
	scanCmd.Flags().IntVar(&maxMemoryMB, "max-memory-mb", 0, "abort scan past this resident memory")
	scanCmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "scan timeout in seconds")

	recoverCmd.Flags().StringVar(&minLargeSize, "min-large-size", "", "large file floor, e.g. 500MB or 2GB")

	cleanCmd.Flags().BoolVar(&useTrash, "use-trash", true, "move items to trash instead of deleting")
	cleanCmd.Flags().IntVar(&retentionDays, "retention-days", 0, "days before trashed items expire")

	watchCmd.Flags().IntVar(&watchInterval, "interval", 300, "sweep interval in seconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(watchCmd)
}
