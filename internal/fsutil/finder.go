// Package fsutil holds small filesystem helpers for manifest discovery.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindByExt walks root and returns the path of every regular file whose name
// ends in ext. WalkDir visits entries in lexical order, so the result is
// deterministic and manifest load order is stable.
func FindByExt(root, ext string) ([]string, error) {
	if ext == "" {
		panic("ext must not be empty")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
