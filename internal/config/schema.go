package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeFloat
	TypeDuration
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "rules.title")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"file": {
		Path:        "file",
		Type:        TypeString,
		Description: "Changelog linted when no path is given",
		Default:     "CHANGELOG.md",
	},
	"change_types": {
		Path:        "change_types",
		Type:        TypeList,
		Description: "Change-type vocabulary in required group order (comma separated)",
		Default:     "Added,Changed,Deprecated,Removed,Fixed",
	},
	"placeholder_dates": {
		Path:        "placeholder_dates",
		Type:        TypeList,
		Description: "Strings accepted instead of a date (comma separated)",
		Default:     "YYYY-MM-DD,202Y-MM-DD",
	},
	"unreleased_label": {
		Path:          "unreleased_label",
		Type:          TypeEnum,
		AllowedValues: []string{"", "Unreleased", "unreleased", "UNRELEASED"},
		Description:   "Spelling of the unreleased heading written by fmt and promote",
		Default:       "",
	},
	"require_references": {
		Path:        "require_references",
		Type:        TypeBool,
		Description: "Every entry must cite an issue or pull request",
		Default:     false,
	},
	"require_reference_urls": {
		Path:        "require_reference_urls",
		Type:        TypeBool,
		Description: "Every reference must be a Markdown link",
		Default:     false,
	},
	"output_format": {
		Path:          "output_format",
		Type:          TypeEnum,
		AllowedValues: []string{"text", "json"},
		Description:   "Output format of lint results",
		Default:       "text",
	},
	"tag_prefix": {
		Path:        "tag_prefix",
		Type:        TypeString,
		Description: "Prefix of release tags in git",
		Default:     "v",
	},
	"watch_debounce": {
		Path:        "watch_debounce",
		Type:        TypeDuration,
		Description: "Delay before re-linting after a change in watch mode",
		Default:     "300ms",
	},
	"remote_timeout": {
		Path:        "remote_timeout",
		Type:        TypeDuration,
		Description: "Timeout for fetching a remote changelog",
		Default:     "10s",
	},
	"max_workers": {
		Path:        "max_workers",
		Type:        TypeInt,
		Description: "Number of files linted concurrently (1-64)",
		Default:     4,
	},
	"keep_empty_groups": {
		Path:        "keep_empty_groups",
		Type:        TypeBool,
		Description: "Keep empty change-type groups as placeholders when formatting",
		Default:     true,
	},
}

// IsRuleKey reports whether path addresses a rule severity, e.g. "rules.title".
func IsRuleKey(path string) bool {
	return strings.HasPrefix(path, "rules.") && len(path) > len("rules.")
}

var ruleSeveritySchema = ConfigKeySchema{
	Type:          TypeEnum,
	AllowedValues: []string{"error", "warning", "off"},
	Description:   "Severity of a lint rule",
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	if IsRuleKey(path) {
		schema := ruleSeveritySchema
		schema.Path = path
		return schema, nil
	}
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// InferType determines the ConfigValueType from a string value.
// Order of inference: bool literals -> integers -> durations -> string fallback.
func InferType(value string) ConfigValueType {
	if value == "true" || value == "false" {
		return TypeBool
	}
	if _, err := strconv.Atoi(value); err == nil {
		return TypeInt
	}
	if _, err := time.ParseDuration(value); err == nil {
		return TypeDuration
	}
	return TypeString
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeFloat:
		return parseFloatValue(value)
	case TypeDuration:
		return parseDurationValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	case TypeList:
		return ParsedValue{Raw: value, Parsed: splitList(value), Type: TypeList}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseBoolValue parses and validates a boolean value.
func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

// parseIntValue parses and validates an integer value.
func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parseFloatValue parses and validates a float value.
func parseFloatValue(value string) (ParsedValue, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid float: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: f, Type: TypeFloat}, nil
}

// parseDurationValue parses and validates a duration value.
func parseDurationValue(value string) (ParsedValue, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid duration: %q (examples: 5m, 1h30m, 10s)", value)
	}
	return ParsedValue{Raw: value, Parsed: d.String(), Type: TypeDuration}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
