package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var documentExtensions = map[string]bool{".yml": true, ".yaml": true, ".json": true}

// DocumentFiles walks path and returns every YAML or JSON file below it, sorted.
func DocumentFiles(path string) ([]string, error) {
	files := make([]string, 0)
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if documentExtensions[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
