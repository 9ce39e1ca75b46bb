package utils

import "os"

// DirSize returns the recursive byte size of a directory tree. Entries that
// cannot be read are skipped; symlinks are not followed.
func DirSize(path string) int64 {
	var size int64

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}

	for _, entry := range entries {
		sub := path + "/" + entry.Name()
		if entry.IsDir() {
			size += DirSize(sub)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}

	return size
}
