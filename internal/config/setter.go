package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned for an empty configuration key.
var ErrEmptyKeyPath = errors.New("configuration key cannot be empty")

// ParseKeyPath splits a dotted key path into its segments.
func ParseKeyPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyKeyPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key path %q: empty segment", path)
		}
	}
	return parts, nil
}

// SetValue validates value against the schema for key and writes it into the
// YAML config file at configPath, creating the file if needed. Comments and
// unrelated keys in an existing file are preserved.
func SetValue(configPath, key, value string) (ParsedValue, error) {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return ParsedValue{}, err
	}
	segments, err := ParseKeyPath(key)
	if err != nil {
		return ParsedValue{}, err
	}

	doc, err := readYAMLDocument(configPath)
	if err != nil {
		return ParsedValue{}, err
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(parsed.Parsed); err != nil {
		return ParsedValue{}, fmt.Errorf("encoding value for %s: %w", key, err)
	}
	setNode(doc.Content[0], segments, &valueNode)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return ParsedValue{}, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return ParsedValue{}, fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ParsedValue{}, fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := renameio.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return ParsedValue{}, fmt.Errorf("writing config %s: %w", configPath, err)
	}
	return parsed, nil
}

// readYAMLDocument returns the document node of path, or an empty mapping
// document when the file does not exist or is empty.
func readYAMLDocument(path string) (*yaml.Node, error) {
	empty := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := ValidateYAMLSyntaxFromBytes(data, path); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return empty, nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, &ValidationError{FilePath: path, Message: "top level must be a mapping"}
	}
	return &doc, nil
}

// setNode assigns value at the key path below mapping, creating
// intermediate mappings as needed.
func setNode(mapping *yaml.Node, segments []string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value != segments[0] {
			continue
		}
		if len(segments) == 1 {
			value.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = value
			return
		}
		child := mapping.Content[i+1]
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			mapping.Content[i+1] = child
		}
		child.Style &^= yaml.FlowStyle
		setNode(child, segments[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: segments[0]}
	if len(segments) == 1 {
		mapping.Content = append(mapping.Content, keyNode, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	mapping.Content = append(mapping.Content, keyNode, child)
	setNode(child, segments[1:], value)
}
