package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tailscale/hujson"
)

const registryFileName = "agents.json"

// ErrRegistryNotFound is returned when agents.json does not exist; callers
// use it to suggest running init first.
var ErrRegistryNotFound = errors.New("agents.json not found (run 'agentdeck init' first)")

// ErrAgentExists is returned when adding a declaration whose name is taken.
var ErrAgentExists = errors.New("agent already declared")

// RegistryPath returns the full path to the registry file in the given directory.
func RegistryPath(dir string) string {
	return filepath.Join(dir, registryFileName)
}

// ReadRegistry reads and parses agents.json from the given directory.
// The file is human-edited, so comments and trailing commas are accepted.
func ReadRegistry(dir string) (*Registry, error) {
	data, err := os.ReadFile(RegistryPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRegistryNotFound
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(std, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if reg.Agents == nil {
		reg.Agents = []AgentDef{}
	}
	return &reg, nil
}

// WriteRegistry writes agents.json to the given directory atomically.
func WriteRegistry(dir string, reg *Registry) error {
	if reg.Agents == nil {
		reg.Agents = []AgentDef{}
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	data = append(data, '\n')

	path := RegistryPath(dir)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving registry: %w", err)
	}

	return nil
}

// Find returns a pointer to the declaration with the given name, so callers
// can mutate it in place (e.g. to record a newly assigned remote id).
func (r *Registry) Find(name string) (*AgentDef, bool) {
	for i := range r.Agents {
		if r.Agents[i].Name == name {
			return &r.Agents[i], true
		}
	}
	return nil, false
}

// Add appends a declaration, refusing duplicate names.
func (r *Registry) Add(def AgentDef) error {
	if _, ok := r.Find(def.Name); ok {
		return fmt.Errorf("%w: %q", ErrAgentExists, def.Name)
	}
	r.Agents = append(r.Agents, def)
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[\[\]]`)

// DeriveConfigPath builds the default config file location for an agent
// name: lowercased, spaces replaced with underscores, brackets stripped.
func DeriveConfigPath(name string) string {
	safe := strings.ToLower(name)
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = unsafeNameChars.ReplaceAllString(safe, "")
	return filepath.ToSlash(filepath.Join("agent_configs", safe+".json"))
}
