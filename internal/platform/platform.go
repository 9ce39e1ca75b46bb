// Package platform resolves the well-known filesystem locations scans and
// the trash subsystem operate on. Paths follow the XDG layout on Linux and
// degrade gracefully on other POSIX systems.
package platform

import (
	"os"
	"os/user"
	"path/filepath"
)

// NamedDir pairs a display name with an absolute directory path.
type NamedDir struct {
	Name string
	Path string
}

// Info contains the per-user locations scanning operates over.
type Info struct {
	HomeDir      string
	Username     string
	CacheDirs    []NamedDir // user-level cache roots
	BrowserDirs  []NamedDir // browser cache roots
	PackageDirs  []NamedDir // package-manager cache roots
	TempDirs     []string
	LogDirs      []string
	DownloadsDir string
	DocumentsDir string
	TrashRoot    string // private trash root for reversible deletes
}

// GetInfo resolves locations for the invoking user.
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	return ForHome(currentUser.HomeDir, currentUser.Username), nil
}

// ForHome builds an Info rooted at an explicit home directory. Tests use it
// to point every scan at a temp tree.
func ForHome(homeDir, username string) *Info {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(homeDir, ".cache")
	}

	return &Info{
		HomeDir:  homeDir,
		Username: username,
		CacheDirs: []NamedDir{
			{Name: "User Cache", Path: cacheHome},
			{Name: "User Trash", Path: filepath.Join(homeDir, ".local/share/Trash")},
			{Name: "Thumbnails", Path: filepath.Join(homeDir, ".thumbnails")},
		},
		BrowserDirs: []NamedDir{
			{Name: "Chrome Cache", Path: filepath.Join(cacheHome, "google-chrome")},
			{Name: "Chromium Cache", Path: filepath.Join(cacheHome, "chromium")},
			{Name: "Firefox Cache", Path: filepath.Join(cacheHome, "mozilla/firefox")},
		},
		PackageDirs: []NamedDir{
			{Name: "APT Package Cache", Path: "/var/cache/apt/archives"},
			{Name: "pip Cache", Path: filepath.Join(cacheHome, "pip")},
			{Name: "npm Cache", Path: filepath.Join(homeDir, ".npm/_cacache")},
			{Name: "Go Build Cache", Path: filepath.Join(cacheHome, "go-build")},
			{Name: "Cargo Registry Cache", Path: filepath.Join(homeDir, ".cargo/registry/cache")},
		},
		TempDirs: []string{
			filepath.Join(homeDir, "tmp"),
			filepath.Join(homeDir, ".tmp"),
			filepath.Join(homeDir, "temp"),
		},
		LogDirs: []string{
			filepath.Join(homeDir, ".local/share"),
			"/var/log",
		},
		DownloadsDir: filepath.Join(homeDir, "Downloads"),
		DocumentsDir: filepath.Join(homeDir, "Documents"),
		TrashRoot:    filepath.Join(homeDir, ".local/share/reclaim/trash"),
	}
}
