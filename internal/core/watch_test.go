package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func watchProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "agent_configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "agent_configs", "alice.json"), []byte(`{"conversation_config": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := &Registry{Agents: []AgentDef{{Name: "Alice", Config: "agent_configs/alice.json"}}}
	if err := WriteRegistry(dir, reg); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestChangeTracker_NoChangeAfterPrime(t *testing.T) {
	dir := watchProject(t)
	tracker := NewChangeTracker(dir)
	tracker.Prime()

	if changed := tracker.Changed(); len(changed) != 0 {
		t.Errorf("changed = %v, want none", changed)
	}
}

func TestChangeTracker_DetectsConfigEdit(t *testing.T) {
	dir := watchProject(t)
	tracker := NewChangeTracker(dir)
	tracker.Prime()

	path := filepath.Join(dir, "agent_configs", "alice.json")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	changed := tracker.Changed()
	if len(changed) != 1 || changed[0] != path {
		t.Fatalf("changed = %v, want [%s]", changed, path)
	}

	// Second poll sees nothing new.
	if changed := tracker.Changed(); len(changed) != 0 {
		t.Errorf("changed = %v, want none", changed)
	}
}

func TestChangeTracker_DetectsRegistryEdit(t *testing.T) {
	dir := watchProject(t)
	tracker := NewChangeTracker(dir)
	tracker.Prime()

	regPath := RegistryPath(dir)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(regPath, future, future); err != nil {
		t.Fatal(err)
	}

	changed := tracker.Changed()
	if len(changed) != 1 || changed[0] != regPath {
		t.Fatalf("changed = %v, want [%s]", changed, regPath)
	}
}

func TestChangeTracker_DetectsDeletion(t *testing.T) {
	dir := watchProject(t)
	tracker := NewChangeTracker(dir)
	tracker.Prime()

	path := filepath.Join(dir, "agent_configs", "alice.json")
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if changed := tracker.Changed(); len(changed) != 1 {
		t.Errorf("changed = %v, want the deleted config", changed)
	}
}

func TestChangeTracker_MissingRegistry(t *testing.T) {
	tracker := NewChangeTracker(t.TempDir())
	tracker.Prime()
	if changed := tracker.Changed(); len(changed) != 0 {
		t.Errorf("changed = %v, want none for empty project", changed)
	}
}
