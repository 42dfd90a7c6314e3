package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/perbu/polyc/tokens"
	"go.uber.org/zap"
)

// runExport writes a directory tree and the contents of the detected
// source files to w, then reports how many model tokens the dump weighs.
// The dump is meant to be pasted into an LLM context when debugging a
// build, so the count uses the encoding named by model; a positive
// budget draws a warning when the dump exceeds it.
func runExport(fs FS, w io.Writer, root string, groups map[Language][]string, model string, budget int, log *zap.Logger) (int, error) {
	included := make(map[string]bool)
	for _, files := range groups {
		for _, f := range files {
			included[f] = true
		}
	}

	var dump strings.Builder

	fmt.Fprintln(&dump, "Directory Structure:")
	fmt.Fprintln(&dump, "-------------------")
	tree, err := directoryTree(fs, root, included)
	if err != nil {
		return 0, err
	}
	dump.WriteString(tree)

	fmt.Fprintln(&dump, "\n\nFile Contents:")
	fmt.Fprintln(&dump, "--------------")
	for _, lang := range sortedLanguages(groups) {
		for _, rel := range groups[lang] {
			if err := dumpFile(fs, &dump, filepath.Join(root, rel), rel); err != nil {
				log.Warn("error exporting file", zap.String("file", rel), zap.Error(err))
			}
		}
	}

	counter, err := tokens.New(model)
	if err != nil {
		return 0, fmt.Errorf("error creating token counter: %w", err)
	}
	fits, count, err := counter.Fits(dump.String(), budget)
	if err != nil {
		return 0, fmt.Errorf("error counting tokens: %w", err)
	}
	if !fits {
		log.Warn("export exceeds token budget",
			zap.Int("tokens", count),
			zap.Int("budget", budget),
			zap.String("model", counter.Model()))
	}

	if _, err := io.WriteString(w, dump.String()); err != nil {
		return 0, fmt.Errorf("error writing export: %w", err)
	}
	return count, nil
}

// directoryTree renders the project tree, limited to directories and the
// detected files.
func directoryTree(fs FS, root string, included map[string]bool) (string, error) {
	var tree strings.Builder

	var generate func(rel, prefix string) error
	generate = func(rel, prefix string) error {
		entries, err := fs.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return fmt.Errorf("error reading directory: %w", err)
		}

		// Directories first, then alphabetically.
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})

		type node struct {
			name  string
			rel   string
			isDir bool
		}
		var kept []node
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
				if containsIncluded(entryRel, included) {
					kept = append(kept, node{name: name, rel: entryRel, isDir: true})
				}
				continue
			}
			if included[entryRel] {
				kept = append(kept, node{name: name, rel: entryRel})
			}
		}

		for i, n := range kept {
			connector, newPrefix := "├── ", prefix+"│   "
			if i == len(kept)-1 {
				connector, newPrefix = "└── ", prefix+"    "
			}
			if n.isDir {
				fmt.Fprintf(&tree, "%s%s%s/\n", prefix, connector, n.name)
				if err := generate(n.rel, newPrefix); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(&tree, "%s%s%s\n", prefix, connector, n.name)
			}
		}
		return nil
	}

	fmt.Fprintf(&tree, "/ \n")
	if err := generate("", ""); err != nil {
		return "", err
	}
	return tree.String(), nil
}

func containsIncluded(dirRel string, included map[string]bool) bool {
	prefix := dirRel + "/"
	for rel := range included {
		if strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	return false
}

// dumpFile writes one file's contents in the export format. Symlinks and
// binaries are annotated and skipped; detection normally filters them
// out already, but the export stays safe against races on disk.
func dumpFile(fs FS, w io.Writer, fullPath, relPath string) error {
	if isSymlink(fullPath) {
		fmt.Fprintf(w, "File: %s (Symlink - skipped content)\n", relPath)
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "Content of %s: (Skipped - Symlink)\n\n\n", relPath)
		return nil
	}
	if isBinaryFile(fs, fullPath) {
		fmt.Fprintf(w, "File: %s (Binary - skipped content)\n", relPath)
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "Content of %s: (Skipped - Binary File)\n\n\n", relPath)
		return nil
	}

	content, err := fs.ReadFile(fullPath)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %s. Content skipped.\n", err)
		return fmt.Errorf("error reading file %s: %w", relPath, err)
	}

	fmt.Fprintf(w, "File: %s\n", relPath)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Content of %s:\n", relPath)
	w.Write(content)
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	return nil
}
