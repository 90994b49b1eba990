// Package render writes template output to files of the generated project.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/bindings"
)

// Renderer renders a named template against a binding set into a target file.
// It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	templates *TemplateSet
	overwrite bool
	logger    *zap.Logger
}

// NewRenderer creates a Renderer. With overwrite false an existing target file
// fails the render with apperrors.ErrTargetExists.
func NewRenderer(templates *TemplateSet, overwrite bool, logger *zap.Logger) *Renderer {
	return &Renderer{
		templates: templates,
		overwrite: overwrite,
		logger:    logger.Named("render"),
	}
}

// Render writes template templateID executed with b to targetFile. The parent
// directory is created first. A failed render may leave a partial file behind.
func (r *Renderer) Render(b bindings.Bindings, targetFile, templateID string) error {
	fail := func(err error) error {
		return &apperrors.RenderError{TemplateID: templateID, TargetFile: targetFile, Err: err}
	}

	tmpl, err := r.templates.Lookup(templateID)
	if err != nil {
		return fail(err)
	}

	if err := EnsureDir(filepath.Dir(targetFile)); err != nil {
		return fail(err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !r.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(targetFile, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fail(apperrors.ErrTargetExists)
		}
		return fail(err)
	}

	w := bufio.NewWriter(f)
	execErr := tmpl.Execute(w, map[string]any(b))
	flushErr := w.Flush()
	closeErr := f.Close()
	if err := errors.Join(execErr, flushErr, closeErr); err != nil {
		return fail(err)
	}

	r.logger.Debug("Rendered template",
		zap.String("template", templateID),
		zap.String("target", targetFile))
	return nil
}

// EnsureDir creates path and its parents. It is a no-op when path exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}
