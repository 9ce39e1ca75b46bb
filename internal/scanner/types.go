package scanner

// Item kinds.
const (
	KindFile      = "file"
	KindDirectory = "directory"
	KindSymlink   = "symlink"
)

// Categories assigned to scan items.
const (
	CategoryCache         = "cache"
	CategoryBrowser       = "browser_cache"
	CategoryPackage       = "package_cache"
	CategoryLogs          = "logs"
	CategoryLargeFile     = "large_file"
	CategoryOldDownload   = "old_download"
	CategoryDuplicate     = "duplicate"
	CategoryEmptyDir      = "empty_directory"
	CategoryBrokenSymlink = "broken_symlink"
	CategoryOrphanedTemp  = "orphaned_temp"
)

// Risk levels, ordered from safe to high risk.
const (
	RiskSafe   = 0
	RiskLow    = 1
	RiskMedium = 2
	RiskHigh   = 3
)

// Item is one discovered cleanup candidate. Items are immutable once
// produced; the cleanup layer re-validates paths instead of trusting the
// metadata captured here, since time passes between scan and clean.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Size         int64    `json:"size"`
	Kind         string   `json:"type"`
	Category     string   `json:"category"`
	RiskLevel    int      `json:"risk_level"`
	Description  string   `json:"description"`
	Children     []Item   `json:"children,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty"`
}

// DuplicateGroup is a set of files believed byte-identical: every member
// has the same size and the same sampled fingerprint, and a group always
// holds at least two members.
type DuplicateGroup struct {
	ID        string `json:"id"`
	Files     []Item `json:"files"`
	TotalSize int64  `json:"total_size"`
	Count     int    `json:"group_size"`
}

// FailedCategory records one phase that failed without aborting the run.
type FailedCategory struct {
	Category string `json:"category"`
	Error    string `json:"error"`
}

// Results is the best-effort outcome of one scan run.
type Results struct {
	Items            []Item           `json:"items"`
	TotalSize        int64            `json:"total_size"`
	TotalItems       int              `json:"total_items"`
	ElapsedMS        int64            `json:"scan_time_ms"`
	FailedCategories []FailedCategory `json:"failed_categories"`
}

// HealthResults groups the filesystem health findings.
type HealthResults struct {
	EmptyDirs      []Item `json:"empty_directories"`
	BrokenSymlinks []Item `json:"broken_symlinks"`
	OrphanedTemp   []Item `json:"orphaned_temp_files"`
	TotalSize      int64  `json:"total_size"`
	TotalItems     int    `json:"total_items"`
}

// RecoveryResults groups the storage-recovery findings.
type RecoveryResults struct {
	DuplicateGroups      []DuplicateGroup `json:"duplicates"`
	LargeFiles           []Item           `json:"large_files"`
	OldDownloads         []Item           `json:"old_downloads"`
	TotalDuplicateSize   int64            `json:"total_duplicate_size"`
	TotalLargeFileSize   int64            `json:"total_large_files_size"`
	TotalOldDownloadSize int64            `json:"total_old_downloads_size"`
	TotalRecoverableSize int64            `json:"total_recoverable_size"`
}

// Options selects phases and overrides run limits for one scan.
type Options struct {
	Caches     bool
	Packages   bool
	Logs       bool
	LargeFiles bool

	MaxFiles    int // 0 scans nothing and returns immediately
	MaxDepth    int
	MaxMemoryMB int
}
