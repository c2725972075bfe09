// Package scanner walks directory trees and returns the files eligible for
// indexing: supported extensions only, size-bounded, excluded folders pruned.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"findmyfile/internal/contextutil"
)

// Scanner filters a directory tree down to indexable files.
type Scanner struct {
	imageExtensions    map[string]bool
	documentExtensions map[string]bool
	videoExtensions    map[string]bool
	excludedFolders    map[string]bool
	maxFileSize        int64
}

// New creates a scanner from the configured extension and exclusion sets.
func New(imageExts, documentExts, videoExts, excludedFolders map[string]bool, maxFileSize int64) *Scanner {
	return &Scanner{
		imageExtensions:    imageExts,
		documentExtensions: documentExts,
		videoExtensions:    videoExts,
		excludedFolders:    excludedFolders,
		maxFileSize:        maxFileSize,
	}
}

// Scan walks root recursively and returns the absolute paths of all supported
// files, sorted for determinism. Directories whose name is excluded or starts
// with a dot are pruned entirely. Unreadable entries are skipped, never fatal.
// Video extensions are rejected before the include sets are consulted, so a
// video extension that leaks into an include set still loses.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var files []string
	skippedVideos := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// Unreadable entry: skip the subtree if it's a directory, otherwise
			// just move on.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if s.excludedFolders[name] || strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))

		// Exclusion wins over any include set
		if s.videoExtensions[ext] {
			skippedVideos++
			return nil
		}
		if !s.imageExtensions[ext] && !s.documentExtensions[ext] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() == 0 || info.Size() > s.maxFileSize {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		files = append(files, abs)
		return nil
	})
	if err != nil {
		if err == context.Canceled || err == context.DeadlineExceeded || ctx.Err() != nil {
			return nil, err
		}
		// A failed walk root is the only hard error; everything below is skipped
		if _, statErr := os.Stat(root); statErr != nil {
			return nil, statErr
		}
	}

	sort.Strings(files)

	logger.InfoContext(ctx, "scan completed", "root", root, "files", len(files), "skipped_videos", skippedVideos)
	return files, nil
}

// FileType classifies an extension against the configured sets.
func (s *Scanner) FileType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case s.imageExtensions[ext]:
		return "image"
	case s.documentExtensions[ext]:
		return "document"
	default:
		return "other"
	}
}
