package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileChecksum returns the "sha256:<hex>" checksum of a file's content
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// StringKey returns a hex sha256 of s, usable as a file name
func StringKey(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}
