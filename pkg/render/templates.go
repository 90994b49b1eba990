package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Template identifiers rendered by the orchestrator.
const (
	TemplateApplicationDev      = "application-dev"
	TemplateApplication         = "application"
	TemplateMybatisConfigurator = "mybatis-configurator"
	TemplateController          = "controller"
	TemplateService             = "service"
	TemplateServiceImpl         = "service-impl"
)

const templateExt = ".tmpl"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateSet resolves template ids against one or more filesystems and caches
// parsed templates. Earlier sources shadow later ones.
type TemplateSet struct {
	sources []fs.FS
	cache   sync.Map
}

// NewTemplateSet returns a set that looks up "<id>.tmpl" at the root of each source in order.
func NewTemplateSet(sources ...fs.FS) *TemplateSet {
	return &TemplateSet{sources: sources}
}

// DefaultTemplates returns the built-in layer and configuration templates,
// shadowed by files in overrideDir when it is set.
func DefaultTemplates(overrideDir string) (*TemplateSet, error) {
	builtin, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("open embedded templates: %w", err)
	}
	if overrideDir == "" {
		return NewTemplateSet(builtin), nil
	}
	info, err := os.Stat(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", overrideDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", overrideDir)
	}
	return NewTemplateSet(os.DirFS(overrideDir), builtin), nil
}

// Lookup returns the parsed template for id. Templates fail on missing keys so
// an incomplete binding set surfaces as a render failure.
func (s *TemplateSet) Lookup(id string) (*template.Template, error) {
	if value, ok := s.cache.Load(id); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", id)
		}
		return cached, nil
	}

	name := id + templateExt
	for _, source := range s.sources {
		content, err := fs.ReadFile(source, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		tmpl, err := template.New(name).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		actual, _ := s.cache.LoadOrStore(id, tmpl)
		return actual.(*template.Template), nil
	}
	return nil, fmt.Errorf("template %q not found", id)
}
