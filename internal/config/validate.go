package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a configuration problem tied to a file and, when
// known, a position or key.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// ValidateYAMLSyntax checks the YAML syntax of filePath. A missing file is
// not an error; defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case errors.Is(err, os.ErrPermission):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks data as YAML, reporting the failing
// line and column when yaml.v3 provides them.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}

	line, column := extractLineColumn(err.Error())
	return &ValidationError{
		FilePath: filePath,
		Line:     line,
		Column:   column,
		Message:  cleanYAMLError(err.Error()),
	}
}

var configValidator = newConfigValidator()

// newConfigValidator reports fields by their config key instead of the Go
// field name.
func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateConfigValues checks the struct-tag constraints of cfg, then the
// rules that depend on the changelog vocabulary.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if err := configValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				FilePath: filePath,
				Field:    fieldErrs[0].Field(),
				Message:  describeFieldError(fieldErrs[0]),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	seen := make(map[changelog.ChangeType]bool, len(cfg.ChangeTypes))
	for _, name := range cfg.ChangeTypes {
		t, ok := changelog.ParseChangeType(name)
		if !ok {
			return &ValidationError{FilePath: filePath, Field: "change_types", Message: fmt.Sprintf("unknown change type %q", name)}
		}
		if seen[t] {
			return &ValidationError{FilePath: filePath, Field: "change_types", Message: fmt.Sprintf("change type %q listed twice", name)}
		}
		seen[t] = true
	}

	if cfg.UnreleasedLabel != "" && !strings.EqualFold(cfg.UnreleasedLabel, changelog.UnreleasedLabel) {
		return &ValidationError{FilePath: filePath, Field: "unreleased_label", Message: `must be a spelling of "unreleased"`}
	}
	return nil
}

var yamlPosition = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)?`)

// extractLineColumn reads the position from a yaml.v3 error such as
// "yaml: line 5: could not find expected ':'". The column defaults to 1.
func extractLineColumn(msg string) (line, column int) {
	m := yamlPosition.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0
	}
	line, _ = strconv.Atoi(m[1])
	column = 1
	if m[2] != "" {
		column, _ = strconv.Atoi(m[2])
	}
	return line, column
}

// cleanYAMLError drops the "yaml: line N:" prefix.
func cleanYAMLError(msg string) string {
	if !strings.HasPrefix(msg, "yaml:") {
		return msg
	}
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[idx+2:]
	}
	return msg
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed validation: " + fe.Tag()
	}
}
