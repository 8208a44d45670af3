package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// configDirDefault is the directory scaffolded for per-agent config files.
const configDirDefault = "agent_configs"

// InitProject scaffolds a project directory: an empty agents.json registry,
// an empty lock file, and the agent_configs directory. Existing files are
// left untouched, so init is safe to re-run. Returns the names of the files
// it created, relative to dir.
func InitProject(dir string) ([]string, error) {
	var created []string

	configDir := filepath.Join(dir, configDirDefault)
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		created = append(created, configDirDefault+"/")
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s directory: %w", configDirDefault, err)
	}

	if _, err := os.Stat(RegistryPath(dir)); os.IsNotExist(err) {
		if err := WriteRegistry(dir, &Registry{}); err != nil {
			return created, err
		}
		created = append(created, registryFileName)
	}

	if _, err := os.Stat(LockFilePath(dir)); os.IsNotExist(err) {
		if err := WriteLockFile(dir, NewLockFile()); err != nil {
			return created, err
		}
		created = append(created, lockFileName)
	}

	return created, nil
}
