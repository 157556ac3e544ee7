package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SanitizeFileName removes path separators, collapses whitespace to
// underscores, and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// StorageFileName builds the on-disk name for an upload: a timestamp prefix
// to avoid collisions, then the sanitized original name. The original name is
// kept separately as document metadata.
func StorageFileName(now time.Time, original string) (string, error) {
	sanitized, err := SanitizeFileName(original)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", now.UTC().Format("20060102T150405.000000000"), sanitized), nil
}
