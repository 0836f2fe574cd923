package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides GDScript file collection utilities. It implements
// domain.FileReader.
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectGDFiles collects GDScript files from the given paths. Exclude
// patterns use gitignore syntax and are matched against the full path.
func (h *FileHelper) CollectGDFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	excluded := gitignore.CompileIgnoreLines(excludePatterns...)

	var included *gitignore.GitIgnore
	if len(includePatterns) > 0 {
		included = gitignore.CompileIgnoreLines(includePatterns...)
	}

	accepts := func(p string) bool {
		if !h.isGDFile(p) || excluded.MatchesPath(p) {
			return false
		}
		return included == nil || included.MatchesPath(p)
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if accepts(path) {
				files = append(files, path)
			}
			continue
		}

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					if filePath != path && excluded.MatchesPath(filePath) {
						return filepath.SkipDir
					}
					return nil
				}
				if accepts(filePath) {
					files = append(files, filePath)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			filePath := filepath.Join(path, entry.Name())
			if accepts(filePath) {
				files = append(files, filePath)
			}
		}
	}

	return files, nil
}

// IsValidGDFile checks if a file is a GDScript file
func (h *FileHelper) IsValidGDFile(path string) bool {
	return h.isGDFile(path)
}

// FileExists checks if a regular file exists at the path
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (h *FileHelper) isGDFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".gd"
}

// ResolveFilePaths expands the request paths into a concrete file list.
// Paths that are already existing files pass through untouched.
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}
	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectGDFiles(paths, recursive, includePatterns, excludePatterns)
}
