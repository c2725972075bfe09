package index

import (
	"os"
	"sort"

	"findmyfile/internal/vectorstore"
)

// Changes classifies a scanned file list against the previously indexed state.
// The three lists are disjoint; Unchanged is implied (scanned minus new minus
// modified).
type Changes struct {
	New      []string
	Modified []string
	Deleted  []string
}

// DetectChanges compares the current scan (set A) against the indexed records
// (set B, keyed by path).
//
//   - new: present in A, absent from B.
//   - modified: present in both with a filesystem mtime newer than the stored
//     one. A stat failure here means the file vanished between scan and check;
//     that race resolves to deleted, never to an error.
//   - deleted: present in B, absent from A, plus the race-deleted files above.
func DetectChanges(current []string, indexed map[string]vectorstore.FileRecord) Changes {
	var changes Changes

	currentSet := make(map[string]bool, len(current))
	for _, path := range current {
		currentSet[path] = true
	}

	for _, path := range current {
		rec, ok := indexed[path]
		if !ok {
			changes.New = append(changes.New, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			changes.Deleted = append(changes.Deleted, path)
			continue
		}
		if info.ModTime().Unix() > rec.LastModified {
			changes.Modified = append(changes.Modified, path)
		}
	}

	for path := range indexed {
		if !currentSet[path] {
			changes.Deleted = append(changes.Deleted, path)
		}
	}
	sort.Strings(changes.Deleted)

	return changes
}
