package core

import (
	"strings"
	"testing"
)

func TestTemplates(t *testing.T) {
	infos, err := Templates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) < 2 {
		t.Fatalf("len(templates) = %d, want at least 2", len(infos))
	}

	names := make(map[string]bool, len(infos))
	for i, info := range infos {
		names[info.Name] = true
		if info.Description == "" {
			t.Errorf("template %q has no description", info.Name)
		}
		if i > 0 && infos[i-1].Name > info.Name {
			t.Error("templates not sorted by name")
		}
	}
	if !names["default"] {
		t.Error("catalog must include a 'default' template")
	}
}

func TestRenderTemplate_Default(t *testing.T) {
	doc, err := RenderTemplate("default", "Support Bot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc["name"] != "Support Bot" {
		t.Errorf("name = %v, want Support Bot", doc["name"])
	}
	cc, ok := doc["conversation_config"].(map[string]any)
	if !ok {
		t.Fatalf("conversation_config = %T, want map", doc["conversation_config"])
	}
	prompt, _ := cc["prompt_template"].(string)
	if !strings.Contains(prompt, "Support Bot") {
		t.Errorf("prompt %q does not substitute the agent name", prompt)
	}
	if strings.Contains(prompt, "{{name}}") {
		t.Errorf("prompt %q still contains the placeholder", prompt)
	}

	if issues := ValidateDocument(doc); len(issues) != 0 {
		t.Errorf("rendered template is invalid: %v", issues)
	}
}

func TestRenderTemplate_Unknown(t *testing.T) {
	_, err := RenderTemplate("nope", "Alice")
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "default") {
		t.Errorf("error %q should list available templates", err)
	}
}

func TestRenderTemplate_IndependentCopies(t *testing.T) {
	a, err := RenderTemplate("default", "A")
	if err != nil {
		t.Fatal(err)
	}
	a["conversation_config"].(map[string]any)["model_id"] = "mutated"

	b, err := RenderTemplate("default", "B")
	if err != nil {
		t.Fatal(err)
	}
	if b["conversation_config"].(map[string]any)["model_id"] == "mutated" {
		t.Error("rendered documents share state")
	}
}
