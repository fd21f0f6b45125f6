package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// BackupLabel separates the original stem from the timestamp
	BackupLabel = "backup"

	// BackupTimeLayout formats backup timestamps as 14 UTC digits
	BackupTimeLayout = "20060102150405"
)

// BackupPath returns where target is moved when it is backed up at now
func BackupPath(target string, now time.Time) string {
	return backupPathN(target, now, 0)
}

// backupPathN returns the nth candidate backup path; n == 0 has no counter
func backupPathN(target string, now time.Time, n int) string {
	dir, name := filepath.Split(target)
	stem, ext := splitExt(name)

	stamp := now.UTC().Format(BackupTimeLayout)
	if n > 0 {
		stamp = fmt.Sprintf("%s-%d", stamp, n)
	}

	return filepath.Join(dir, stem+"."+BackupLabel+"."+stamp+ext)
}

// splitExt splits name into stem and extension. A leading dot belongs to the
// stem, so ".vimrc" has no extension while ".config.toml" has ".toml".
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name || strings.TrimLeft(name, ".") == strings.TrimLeft(ext, ".") {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
