package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ReadDocument reads and parses one agent configuration document. Documents
// are human-edited, so JSONC (comments, trailing commas) is accepted and
// standardized before unmarshaling.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent config: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses raw JSONC bytes into a Document.
func ParseDocument(data []byte) (Document, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing agent config: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("parsing agent config: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing agent config: document is null")
	}
	return doc, nil
}

// WriteDocument writes a document as indented JSON, creating parent
// directories as needed.
func WriteDocument(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling agent config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing agent config: %w", err)
	}
	return nil
}

// ExtractSections pulls the four recognized top-level sections out of a
// document. fallbackName is used when the document carries no name of its
// own. Sections of the wrong type are treated as absent; ValidateDocument
// is the place that complains about them.
func ExtractSections(doc Document, fallbackName string) Sections {
	s := Sections{Name: fallbackName}

	if name, ok := doc["name"].(string); ok && name != "" {
		s.Name = name
	}
	if cc, ok := doc["conversation_config"].(map[string]any); ok {
		s.ConversationConfig = cc
	}
	if ps, ok := doc["platform_settings"].(map[string]any); ok {
		s.PlatformSettings = ps
	}
	if raw, ok := doc["tags"].([]any); ok {
		tags := make([]string, 0, len(raw))
		for _, t := range raw {
			if str, ok := t.(string); ok {
				tags = append(tags, str)
			}
		}
		s.Tags = tags
	}

	return s
}

// ValidateDocument checks the recognized sections for shape problems and
// returns one message per issue. An empty slice means the document is valid.
// Unrecognized top-level keys are deliberately not flagged: the remote
// schema is large and evolving, so the document is otherwise opaque.
func ValidateDocument(doc Document) []string {
	var issues []string

	if v, ok := doc["name"]; ok {
		if _, isStr := v.(string); !isStr {
			issues = append(issues, "name must be a string")
		}
	}

	v, ok := doc["conversation_config"]
	if !ok {
		issues = append(issues, "missing conversation_config section")
	} else if _, isMap := v.(map[string]any); !isMap {
		issues = append(issues, "conversation_config must be an object")
	}

	if v, ok := doc["platform_settings"]; ok {
		if _, isMap := v.(map[string]any); !isMap {
			issues = append(issues, "platform_settings must be an object")
		}
	}

	if v, ok := doc["tags"]; ok {
		raw, isList := v.([]any)
		if !isList {
			issues = append(issues, "tags must be an array of strings")
		} else {
			for i, t := range raw {
				if _, isStr := t.(string); !isStr {
					issues = append(issues, fmt.Sprintf("tags[%d] must be a string", i))
				}
			}
		}
	}

	return issues
}
