package mrpack

import (
	"path"
	"path/filepath"
	"strings"

	"instanceforge/internal/ierr"
)

// SafeJoin joins root with rel after validating that rel is a relative,
// non-escaping path: no absolute paths, no ".." segments. This is the
// security invariant from spec.md §9 - every path derived from a
// MrpackFile.Path or a ZIP entry name must be checked before any write.
func SafeJoin(root, rel string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if path.IsAbs(cleaned) {
		return "", ierr.New(ierr.KindValidation, "path escapes root: %s", rel)
	}
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return "", ierr.New(ierr.KindValidation, "path escapes root: %s", rel)
		}
	}
	return filepath.Join(root, filepath.FromSlash(cleaned)), nil
}
