package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// FS defines an interface for file system operations to improve testability.
type FS interface {
	Open(name string) (File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
}

// File defines an interface for file operations, mirroring os.File methods we use.
type File interface {
	io.ReadCloser
}

// OSFS implements the FS interface using the standard os package.
type OSFS struct{}

func (OSFS) Open(name string) (File, error) {
	return os.Open(name)
}

func (OSFS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// FileSystem is a global variable for the FS interface.
// This allows for easy swapping of the implementation in tests.
var FileSystem FS = OSFS{}

// isSymlinkFn is a variable holding the function to check if a file is a
// symbolic link. This allows for easy swapping of the implementation in
// tests.
var isSymlinkFn = func(filePath string) bool {
	info, err := os.Lstat(filePath)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

func isSymlink(filePath string) bool {
	return isSymlinkFn(filePath)
}

// isBinaryFile checks if a file is likely a binary file by looking for
// null bytes in the first 16 kBytes.
func isBinaryFile(fs FS, filePath string) bool {
	file, err := fs.Open(filePath)
	if err != nil {
		return false
	}
	defer file.Close()

	buffer := make([]byte, 16384)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false
	}

	for i := 0; i < n; i++ {
		if buffer[i] == 0 {
			return true
		}
	}
	return false
}

// Detector groups the source files of a project tree by language.
type Detector struct {
	fs   FS
	cfg  *Config
	log  *zap.Logger
	only map[Language]bool // nil means every enabled language
}

func NewDetector(fs FS, cfg *Config, only map[Language]bool, log *zap.Logger) *Detector {
	return &Detector{fs: fs, cfg: cfg, log: log, only: only}
}

// Detect walks root and returns the detected source files, grouped by
// language, as sorted root-relative paths. Hidden entries, symlinks,
// binary files and ignored paths are skipped.
func (d *Detector) Detect(root string) (map[Language][]string, error) {
	groups := make(map[Language][]string)
	if err := d.walk(root, "", groups); err != nil {
		return nil, err
	}
	for _, files := range groups {
		sort.Strings(files)
	}
	for lang, files := range groups {
		d.log.Debug("detected source files",
			zap.String("language", lang.Name()),
			zap.Int("files", len(files)))
	}
	return groups, nil
}

func (d *Detector) walk(root, rel string, groups map[Language][]string) error {
	dir := filepath.Join(root, rel)
	entries, err := d.fs.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("error reading directory: %w", err)
		}
		d.log.Warn("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entryRel := name
		if rel != "" {
			entryRel = rel + "/" + name
		}
		if entry.IsDir() {
			if d.cfg.ignored(entryRel) {
				continue
			}
			if err := d.walk(root, entryRel, groups); err != nil {
				return err
			}
			continue
		}

		if d.cfg.shouldIgnore(entryRel) {
			continue
		}

		lang, ok := languageForFile(name)
		if !ok {
			continue
		}
		if !d.cfg.enabled(lang) {
			continue
		}
		if d.only != nil && !d.only[lang] {
			continue
		}

		fullPath := filepath.Join(root, entryRel)
		if isSymlink(fullPath) {
			d.log.Debug("skipping symlink", zap.String("path", entryRel))
			continue
		}
		if isBinaryFile(d.fs, fullPath) {
			d.log.Debug("skipping binary file", zap.String("path", entryRel))
			continue
		}

		groups[lang] = append(groups[lang], entryRel)
	}
	return nil
}

// sortedLanguages returns the group keys ordered by display name, for
// deterministic output.
func sortedLanguages(groups map[Language][]string) []Language {
	langs := make([]Language, 0, len(groups))
	for lang := range groups {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].Name() < langs[j].Name()
	})
	return langs
}
