package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sync compares candidateName (the freshly rendered sync filename
// template result) against currentName, the file's name on disk in
// dir. If they match, it is a no-op. Otherwise it picks candidateName
// if no file in dir has that name, else the lowest free copy-counter
// variant "(n)", n >= 1, atomically renames currentName to it, and
// returns the final name.
//
// Idempotence: calling Sync again with the same candidateName and the
// name it just returned as currentName returns that name unchanged,
// even when some other, unrelated file still occupies candidateName —
// the loop recognizes a colliding path that is actually the file being
// renamed and stops there instead of continuing to climb counters.
func Sync(dir, candidateName, currentName string) (string, error) {
	if candidateName == currentName {
		return currentName, nil
	}

	ext := filepath.Ext(candidateName)
	base := strings.TrimSuffix(candidateName, ext)

	target := candidateName
	for n := 1; ; n++ {
		if target == currentName {
			return currentName, nil
		}

		_, err := os.Lstat(filepath.Join(dir, target))
		if err == nil {
			target = fmt.Sprintf("%s(%d)%s", base, n, ext)
			continue
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("syncer: stat %q: %w", target, err)
		}
		break
	}

	oldPath := filepath.Join(dir, currentName)
	newPath := filepath.Join(dir, target)
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("syncer: rename %q to %q: %w", oldPath, newPath, err)
	}

	return target, nil
}
