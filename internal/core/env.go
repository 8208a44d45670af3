package core

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envFileName = ".env.agentdeck"

// EnvAPIKey is the environment variable holding the remote API key.
const EnvAPIKey = "ELEVENLABS_API_KEY"

// EnvAPIURL optionally overrides the remote API base URL.
const EnvAPIURL = "AGENTDECK_API_URL"

// EnvResolver resolves credential values for the remote API.
// Precedence: process env > project .env.agentdeck > global ~/.agentdeck/.env.agentdeck.
type EnvResolver struct {
	projectDir string
	globalDir  string
}

// NewEnvResolver creates an EnvResolver for the given project directory.
// globalDir defaults to ~/.agentdeck/ if empty.
func NewEnvResolver(projectDir, globalDir string) *EnvResolver {
	if globalDir == "" {
		home, _ := os.UserHomeDir()
		globalDir = filepath.Join(home, configDirName)
	}
	return &EnvResolver{projectDir: projectDir, globalDir: globalDir}
}

// Lookup resolves one variable, reporting whether any source defined it.
func (r *EnvResolver) Lookup(name string) (string, bool) {
	if val, ok := os.LookupEnv(name); ok {
		return val, true
	}
	if val, ok := parseEnvFile(filepath.Join(r.projectDir, envFileName))[name]; ok {
		return val, true
	}
	if val, ok := parseEnvFile(filepath.Join(r.globalDir, envFileName))[name]; ok {
		return val, true
	}
	return "", false
}

// APIKey resolves the remote API key. A missing key is a fatal precondition
// for any command that talks to the remote service.
func (r *EnvResolver) APIKey() (string, error) {
	key, ok := r.Lookup(EnvAPIKey)
	if !ok || key == "" {
		return "", fmt.Errorf("%s is not set (export it or add it to %s)", EnvAPIKey, envFileName)
	}
	return key, nil
}

// parseEnvFile parses a .env file and returns key-value pairs.
// Missing or unreadable files yield an empty map.
func parseEnvFile(path string) map[string]string {
	vars := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return vars
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip matching surrounding quotes.
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		if key != "" {
			vars[key] = value
		}
	}

	return vars
}
