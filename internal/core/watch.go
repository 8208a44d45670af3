package core

import (
	"os"
	"path/filepath"
	"time"
)

// ChangeTracker remembers file modification times across polls so the watch
// loop only re-syncs when the registry or a declared config actually changed.
type ChangeTracker struct {
	dir    string
	mtimes map[string]time.Time
}

// NewChangeTracker creates a tracker for the given project directory.
func NewChangeTracker(dir string) *ChangeTracker {
	return &ChangeTracker{dir: dir, mtimes: make(map[string]time.Time)}
}

// Prime records current modification times without reporting changes, so the
// first real poll only reacts to edits made after watching started.
func (t *ChangeTracker) Prime() {
	t.poll()
}

// Changed polls the registry file and every declared config file, returning
// the paths whose modification time changed since the last poll. A registry
// that is missing or unparsable contributes nothing; the next successful
// parse picks its agents back up.
func (t *ChangeTracker) Changed() []string {
	return t.poll()
}

func (t *ChangeTracker) poll() []string {
	var changed []string

	regPath := RegistryPath(t.dir)
	if t.check(regPath) {
		changed = append(changed, regPath)
	}

	reg, err := ReadRegistry(t.dir)
	if err != nil {
		return changed
	}
	for _, def := range reg.Agents {
		path := filepath.Join(t.dir, filepath.FromSlash(def.Config))
		if t.check(path) {
			changed = append(changed, path)
		}
	}

	return changed
}

// check updates the stored mtime for path and reports whether it moved.
// Missing files record a zero time, so deletion and re-creation both count
// as changes.
func (t *ChangeTracker) check(path string) bool {
	var mtime time.Time
	if info, err := os.Stat(path); err == nil {
		mtime = info.ModTime()
	}

	prev, seen := t.mtimes[path]
	t.mtimes[path] = mtime
	return seen && !prev.Equal(mtime)
}
