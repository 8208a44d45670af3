package core

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplatesYAML []byte

// TemplateInfo describes one entry of the embedded template catalog.
type TemplateInfo struct {
	Name        string
	Description string
}

type templateCatalog struct {
	Templates map[string]templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Description string         `yaml:"description"`
	Config      map[string]any `yaml:"config"`
}

func loadTemplates() (*templateCatalog, error) {
	var cat templateCatalog
	if err := yaml.Unmarshal(embeddedTemplatesYAML, &cat); err != nil {
		return nil, fmt.Errorf("parsing template catalog: %w", err)
	}
	return &cat, nil
}

// Templates lists the embedded config templates, sorted by name.
func Templates() ([]TemplateInfo, error) {
	cat, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	infos := make([]TemplateInfo, 0, len(cat.Templates))
	for name, entry := range cat.Templates {
		infos = append(infos, TemplateInfo{Name: name, Description: entry.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// RenderTemplate builds a config document for a new agent from the named
// template, substituting the agent name into every "{{name}}" placeholder
// and setting the document's top-level name.
func RenderTemplate(template, agentName string) (Document, error) {
	cat, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	entry, ok := cat.Templates[template]
	if !ok {
		var names []string
		for name := range cat.Templates {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown template %q; available: %s", template, strings.Join(names, ", "))
	}

	doc, _ := substitute(entry.Config, agentName).(map[string]any)
	if doc == nil {
		doc = Document{}
	}
	doc["name"] = agentName
	return doc, nil
}

// substitute deep-copies a template value, replacing "{{name}}" in strings.
func substitute(v any, name string) any {
	switch val := v.(type) {
	case string:
		return strings.ReplaceAll(val, "{{name}}", name)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = substitute(child, name)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = substitute(child, name)
		}
		return out
	default:
		return val
	}
}
