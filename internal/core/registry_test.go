package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadRegistry_NotExists(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadRegistry(dir)
	if !errors.Is(err, ErrRegistryNotFound) {
		t.Fatalf("err = %v, want ErrRegistryNotFound", err)
	}
}

func TestReadRegistry_Valid(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "agents": [
    {"name": "Alice", "config": "agent_configs/alice.json", "id": "agent_1"},
    {"name": "Bob", "config": "agent_configs/bob.json"}
  ]
}`
	if err := os.WriteFile(filepath.Join(dir, registryFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := ReadRegistry(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Agents) != 2 {
		t.Fatalf("len(agents) = %d, want 2", len(reg.Agents))
	}
	if reg.Agents[0].Name != "Alice" || reg.Agents[0].ID != "agent_1" {
		t.Errorf("agents[0] = %+v", reg.Agents[0])
	}
	if reg.Agents[1].ID != "" {
		t.Errorf("agents[1].ID = %q, want empty", reg.Agents[1].ID)
	}
}

func TestReadRegistry_AcceptsJSONC(t *testing.T) {
	dir := t.TempDir()
	content := `{
  // Declared agents.
  "agents": [
    {"name": "Alice", "config": "agent_configs/alice.json"}, // trailing comma next
  ],
}`
	if err := os.WriteFile(filepath.Join(dir, registryFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := ReadRegistry(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.Agents) != 1 || reg.Agents[0].Name != "Alice" {
		t.Errorf("agents = %+v", reg.Agents)
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	reg := &Registry{}
	if err := reg.Add(AgentDef{Name: "Alice", Config: "agent_configs/alice.json"}); err != nil {
		t.Fatal(err)
	}
	if err := WriteRegistry(dir, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadRegistry(dir)
	if err != nil {
		t.Fatalf("read back error: %v", err)
	}
	if len(got.Agents) != 1 || got.Agents[0].Name != "Alice" {
		t.Errorf("agents = %+v", got.Agents)
	}
}

func TestRegistry_AddDuplicate(t *testing.T) {
	reg := &Registry{}
	if err := reg.Add(AgentDef{Name: "Alice", Config: "a.json"}); err != nil {
		t.Fatal(err)
	}
	err := reg.Add(AgentDef{Name: "Alice", Config: "b.json"})
	if !errors.Is(err, ErrAgentExists) {
		t.Fatalf("err = %v, want ErrAgentExists", err)
	}
}

func TestRegistry_FindMutatesInPlace(t *testing.T) {
	reg := &Registry{Agents: []AgentDef{{Name: "Alice", Config: "a.json"}}}

	def, ok := reg.Find("Alice")
	if !ok {
		t.Fatal("expected to find Alice")
	}
	def.ID = "agent_9"

	if reg.Agents[0].ID != "agent_9" {
		t.Errorf("registry not mutated: %+v", reg.Agents[0])
	}

	if _, ok := reg.Find("Bob"); ok {
		t.Error("expected Bob to be absent")
	}
}

func TestDeriveConfigPath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alice", "agent_configs/alice.json"},
		{"Support Bot", "agent_configs/support_bot.json"},
		{"[Staging] Helper", "agent_configs/staging_helper.json"},
	}
	for _, tc := range tests {
		if got := DeriveConfigPath(tc.name); got != tc.want {
			t.Errorf("DeriveConfigPath(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
