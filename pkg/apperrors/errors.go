package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingDatabaseDefinition = errors.New("database definition is missing")
	ErrInvalidIdentifier         = errors.New("invalid identifier")
	ErrSchemaGeneration          = errors.New("schema generation failed")
	ErrRender                    = errors.New("template render failed")
	ErrTargetExists              = errors.New("target file already exists")
)

// GenerationErrorCode is the fixed code every failed generation run reports.
const GenerationErrorCode = 1

// GenerationError is the single error shape surfaced to callers of a generation run.
// Callers are not expected to branch on the failure kind; the wrapped error is kept
// for logs and for errors.Is checks in tests.
type GenerationError struct {
	Code    int
	Message string
	Err     error
}

// NewGenerationError wraps err in a GenerationError carrying the fixed error code.
func NewGenerationError(message string, err error) *GenerationError {
	return &GenerationError{Code: GenerationErrorCode, Message: message, Err: err}
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// RenderError reports a failed template render for one target file.
type RenderError struct {
	TemplateID string
	TargetFile string
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render template %q to %s: %v", e.TemplateID, e.TargetFile, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRender) true for every RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// SchemaGenerationError reports a failed schema-driven generation for one table.
// Err is nil when the generator ran cleanly but produced no artifacts.
type SchemaGenerationError struct {
	Table    string
	Warnings []string
	Err      error
}

func (e *SchemaGenerationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "generate model and mapper for table %q", e.Table)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	} else {
		b.WriteString(": no artifacts produced")
	}
	if len(e.Warnings) > 0 {
		fmt.Fprintf(&b, " (warnings: %s)", strings.Join(e.Warnings, "; "))
	}
	return b.String()
}

func (e *SchemaGenerationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSchemaGeneration) true for every SchemaGenerationError.
func (e *SchemaGenerationError) Is(target error) bool {
	return target == ErrSchemaGeneration
}
