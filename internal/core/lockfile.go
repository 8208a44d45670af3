package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "agentdeck.lock.json"

// LockFilePath returns the full path to the lock file in the given directory.
func LockFilePath(dir string) string {
	return filepath.Join(dir, lockFileName)
}

// NewLockFile returns an empty lock file.
func NewLockFile() *LockFile {
	return &LockFile{Agents: map[string]map[string]LockRecord{}}
}

// ReadLockFile reads and parses the lock file from the given directory.
// An absent, unreadable, or structurally malformed file yields a fresh empty
// lock file rather than an error: a corrupt ledger must never block syncing,
// it only costs one re-sync of everything.
func ReadLockFile(dir string) *LockFile {
	data, err := os.ReadFile(LockFilePath(dir))
	if err != nil {
		return NewLockFile()
	}

	var lf LockFile
	if err := json.Unmarshal(data, &lf); err != nil || lf.Agents == nil {
		return NewLockFile()
	}
	return &lf
}

// WriteLockFile writes the lock file to the given directory atomically
// (temp file + rename), so a crash mid-write cannot corrupt a valid file.
func WriteLockFile(dir string, lf *LockFile) error {
	if lf.Agents == nil {
		lf.Agents = map[string]map[string]LockRecord{}
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	// Ensure trailing newline.
	data = append(data, '\n')

	path := LockFilePath(dir)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving lock file: %w", err)
	}

	return nil
}

// Get looks up the lock record for an agent under an environment.
func (lf *LockFile) Get(agent, env string) (LockRecord, bool) {
	envs, ok := lf.Agents[agent]
	if !ok {
		return LockRecord{}, false
	}
	rec, ok := envs[env]
	return rec, ok
}

// Upsert inserts or overwrites the lock record for (agent, env), creating
// the intermediate map as needed.
func (lf *LockFile) Upsert(agent, env, id, hash string) {
	if lf.Agents == nil {
		lf.Agents = map[string]map[string]LockRecord{}
	}
	envs, ok := lf.Agents[agent]
	if !ok {
		envs = map[string]LockRecord{}
		lf.Agents[agent] = envs
	}
	envs[env] = LockRecord{ID: id, Hash: hash}
}
