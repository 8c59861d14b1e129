// filepath: internal/filesystem/paths.go
package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Within joins elems onto root and rejects results that leave root.
// The root itself is a valid result.
func Within(root string, elems ...string) (string, error) {
	cleanedRoot := filepath.Clean(root)
	joined := filepath.Join(append([]string{cleanedRoot}, elems...)...)

	// --- SECURITY: Prevent Path Traversal ---
	rel, err := filepath.Rel(cleanedRoot, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, filepath.Join(elems...))
	}
	return joined, nil
}

// Contains reports whether path is dir itself or lies below it.
func Contains(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
