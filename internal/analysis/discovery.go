package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Discover expands the given paths into the list of signalset files to
// analyze. Directories are walked recursively for .json and .jsonc
// files; explicitly named files are taken as-is regardless of
// extension. Order is stable: arguments keep their order, directory
// walks are lexical.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if fi.IsDir() || !IsSignalsetFile(fi.Name()) {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

// IsSignalsetFile reports whether name looks like a signalset source
// by extension.
func IsSignalsetFile(name string) bool {
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".jsonc")
}
