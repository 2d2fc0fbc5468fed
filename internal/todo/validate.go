package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snapshot.schema.json
var builtinSchema []byte

const builtinSchemaURL = "snapshot.schema.json"

// BuiltinSchema returns the embedded snapshot schema.
func BuiltinSchema() []byte {
	return append([]byte(nil), builtinSchema...)
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // location in the snapshot, e.g. "[2].text"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema. Empty uses the built-in one.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
	Records    int
}

// Validate checks raw snapshot bytes.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		result.Warnings = append(result.Warnings, "snapshot is empty")
		return result
	}

	var doc interface{}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)})
		return result
	}
	if arr, ok := doc.([]interface{}); ok {
		result.Records = len(arr)
	}

	schema, warn := compileSchema(opts.SchemaPath)
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}
	if schema == nil {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		validateMinimal(doc, result)
		return result
	}

	result.UsedSchema = true
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// compileSchema compiles the schema at path, or the embedded schema when path
// is empty. A nil schema with a warning means validation must fall back.
func compileSchema(path string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if path == "" {
		if err := compiler.AddResource(builtinSchemaURL, bytes.NewReader(builtinSchema)); err != nil {
			return nil, fmt.Sprintf("invalid built-in schema: %v", err)
		}
		schema, err := compiler.Compile(builtinSchemaURL)
		if err != nil {
			return nil, fmt.Sprintf("invalid built-in schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

// validateMinimal performs structural checks without JSON Schema.
func validateMinimal(doc interface{}, result *ValidationResult) {
	arr, ok := doc.([]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: errors.New("expected an array of records")})
		return
	}
	for i, v := range arr {
		path := fmt.Sprintf("[%d]", i)
		rec, ok := v.(map[string]interface{})
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path, Err: errors.New("expected an object")})
			continue
		}
		if _, ok := rec["text"].(string); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".text", Err: errors.New("must be a string")})
		}
		if _, ok := rec["completed"].(bool); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".completed", Err: errors.New("must be a boolean")})
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/2/text" into "[2].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
