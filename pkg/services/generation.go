package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/bindings"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/layout"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/naming"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/render"
)

// Generated file names that do not depend on a table.
const (
	DevConfigFile          = "application-dev.yml"
	MainConfigFile         = "application.yml"
	PersistenceConfigClass = "MybatisConfigurator"
)

// GenerationService runs the config and code phases of a scaffolding run.
// Every call is independent; nothing is kept between calls.
type GenerationService interface {
	// GenerateConfig writes the environment configuration files and the
	// persistence configuration class.
	GenerateConfig(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error)

	// GenerateBase writes model, mapper, mapper XML, controller, service and
	// service implementation for every table of detail.TableList, in order,
	// stopping at the first failing table.
	GenerateBase(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error)

	// Generate runs the phases named by phase (config, code or all).
	Generate(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition, phase string) (*models.GenerationReport, error)

	// PreviewNames returns the names a table would be generated under without
	// touching the database or the filesystem.
	PreviewNames(detail *models.CodeDefinitionDetail, table string) (*NamePreview, error)
}

// NamePreview lists the names derived for one table.
type NamePreview struct {
	Table              string `json:"table"`
	ModelName          string `json:"model_name"`
	VariableName       string `json:"variable_name"`
	BaseRequestMapping string `json:"base_request_mapping"`
	ControllerFile     string `json:"controller_file"`
	ServiceFile        string `json:"service_file"`
	ServiceImplFile    string `json:"service_impl_file"`
	ModelFile          string `json:"model_file"`
	MapperFile         string `json:"mapper_file"`
}

type generationService struct {
	schema    SchemaCodeGenerator
	renderer  *render.Renderer
	resolver  *layout.Resolver
	converter *naming.Converter
	logger    *zap.Logger
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(
	schema SchemaCodeGenerator,
	renderer *render.Renderer,
	resolver *layout.Resolver,
	converter *naming.Converter,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		schema:    schema,
		renderer:  renderer,
		resolver:  resolver,
		converter: converter,
		logger:    logger.Named("generation"),
	}
}

// errNoTables rejects a code run that would write nothing.
var errNoTables = errors.New("table_list is empty")

// run tracks one phase: its id, its report and the phase-scoped logger.
// Both phases of an "all" run share one id.
type run struct {
	report *models.GenerationReport
	logger *zap.Logger
}

func (s *generationService) newRun(id uuid.UUID, phase string, tables []string) *run {
	return &run{
		report: &models.GenerationReport{RunID: id, Phase: phase, Tables: tables, Targets: []models.GenerationTarget{}},
		logger: s.logger.With(zap.String("run_id", id.String()), zap.String("phase", phase)),
	}
}

func (r *run) add(target models.GenerationTarget) {
	r.report.Targets = append(r.report.Targets, target)
}

// fail logs err and wraps it in the uniform GenerationError.
func (r *run) fail(message string, err error) error {
	r.logger.Error("Generation failed",
		zap.String("message", message),
		zap.Int("written", len(r.report.Targets)),
		zap.Error(err))
	return apperrors.NewGenerationError(message, err)
}

func (s *generationService) GenerateConfig(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	return s.generateConfig(ctx, s.newRun(uuid.New(), models.PhaseConfig, nil), detail, db)
}

func (s *generationService) GenerateBase(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	return s.generateBase(ctx, s.newRun(uuid.New(), models.PhaseCode, detail.TableList), detail, db)
}

func (s *generationService) generateConfig(ctx context.Context, r *run, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	if db == nil {
		return r.report, r.fail("config generation failed", apperrors.ErrMissingDatabaseDefinition)
	}
	if err := db.Validate(); err != nil {
		return r.report, r.fail("config generation failed", err)
	}

	b, err := bindings.BuildConfig(detail, db)
	if err != nil {
		return r.report, r.fail("config generation failed", err)
	}

	webRoot := s.resolver.Resolve(detail, layout.ModuleWeb)
	coreRoot := s.resolver.Resolve(detail, layout.ModuleCore)
	files := []struct {
		templateID string
		path       string
	}{
		{render.TemplateApplicationDev, layout.ResourceFile(webRoot, DevConfigFile)},
		{render.TemplateApplication, layout.ResourceFile(webRoot, MainConfigFile)},
		{render.TemplateMybatisConfigurator, layout.JavaFile(coreRoot, detail.CorePackage, PersistenceConfigClass+".java")},
	}
	for _, f := range files {
		if err := s.renderer.Render(b, f.path, f.templateID); err != nil {
			return r.report, r.fail("config generation failed", err)
		}
		r.add(models.GenerationTarget{Path: f.path, Strategy: models.StrategyTemplate})
	}

	r.logger.Info("Config generation complete", zap.Int("files", len(r.report.Targets)))
	return r.report, nil
}

func (s *generationService) generateBase(ctx context.Context, r *run, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	if db == nil {
		return r.report, r.fail("code generation failed", apperrors.ErrMissingDatabaseDefinition)
	}
	if len(detail.TableList) == 0 {
		return r.report, r.fail("code generation failed", errNoTables)
	}
	// Overrides become file names; reject them all before the first write.
	for _, table := range detail.TableList {
		if override := detail.ModelNameFor(table); override != "" {
			if err := naming.ValidateModelName(override); err != nil {
				return r.report, r.fail(fmt.Sprintf("code generation failed for table %s", table), err)
			}
		}
	}

	daoRoot := s.resolver.Resolve(detail, layout.ModuleDAO)
	webRoot := s.resolver.Resolve(detail, layout.ModuleWeb)
	serviceRoot := s.resolver.Resolve(detail, layout.ModuleService)

	cc, err := s.schema.NewContext(detail, db, daoRoot)
	if err != nil {
		return r.report, r.fail("code generation failed", err)
	}

	seen := make(map[string]string, len(detail.TableList))
	for _, table := range detail.TableList {
		tableLog := r.logger.With(zap.String("table", table))
		message := fmt.Sprintf("code generation failed for table %s", table)

		override := detail.ModelNameFor(table)
		modelName := override
		if modelName == "" {
			if modelName, err = s.converter.TableToUpperCamel(table); err != nil {
				return r.report, r.fail(message, err)
			}
		}
		if prev, ok := seen[modelName]; ok {
			return r.report, r.fail(message, fmt.Errorf("%w: model %s is already generated for table %s",
				apperrors.ErrInvalidIdentifier, modelName, prev))
		}
		seen[modelName] = table

		result, err := s.schema.Generate(ctx, cc, table, override)
		if err != nil {
			return r.report, r.fail(message, err)
		}
		for _, a := range result.Artifacts() {
			r.add(models.GenerationTarget{Table: table, ModelName: result.DomainName, Path: a.Path, Strategy: models.StrategySchema})
		}

		// Layer names follow the model name the persistence layer was generated with.
		modelName = result.DomainName
		b, err := bindings.BuildLayer(modelName, table, detail)
		if err != nil {
			return r.report, r.fail(message, err)
		}
		files := []struct {
			templateID string
			path       string
		}{
			{render.TemplateController, layout.JavaFile(webRoot, detail.ControllerPackage, modelName+"Controller.java")},
			{render.TemplateService, layout.JavaFile(serviceRoot, detail.ServicePackage, modelName+"Service.java")},
			{render.TemplateServiceImpl, layout.JavaFile(serviceRoot, detail.ServiceImplPackage, modelName+"ServiceImpl.java")},
		}
		for _, f := range files {
			if err := s.renderer.Render(b, f.path, f.templateID); err != nil {
				return r.report, r.fail(message, err)
			}
			r.add(models.GenerationTarget{Table: table, ModelName: modelName, Path: f.path, Strategy: models.StrategyTemplate})
		}
		tableLog.Info("Table generated", zap.String("model", modelName))
	}

	r.logger.Info("Code generation complete",
		zap.Int("tables", len(detail.TableList)),
		zap.Int("files", len(r.report.Targets)))
	return r.report, nil
}

func (s *generationService) Generate(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition, phase string) (*models.GenerationReport, error) {
	switch phase {
	case models.PhaseConfig:
		return s.GenerateConfig(ctx, detail, db)
	case models.PhaseCode:
		return s.GenerateBase(ctx, detail, db)
	case models.PhaseAll, "":
		id := uuid.New()
		if len(detail.TableList) == 0 {
			r := s.newRun(id, models.PhaseAll, nil)
			return r.report, r.fail("generation failed", errNoTables)
		}
		cfgReport, err := s.generateConfig(ctx, s.newRun(id, models.PhaseConfig, nil), detail, db)
		if err != nil {
			cfgReport.Phase = models.PhaseAll
			return cfgReport, err
		}
		codeReport, err := s.generateBase(ctx, s.newRun(id, models.PhaseCode, detail.TableList), detail, db)
		codeReport.Phase = models.PhaseAll
		codeReport.Targets = append(cfgReport.Targets, codeReport.Targets...)
		return codeReport, err
	default:
		return nil, apperrors.NewGenerationError("generation failed", fmt.Errorf("unknown phase %q", phase))
	}
}

func (s *generationService) PreviewNames(detail *models.CodeDefinitionDetail, table string) (*NamePreview, error) {
	modelName := detail.ModelNameFor(table)
	if modelName != "" {
		if err := naming.ValidateModelName(modelName); err != nil {
			return nil, err
		}
	} else {
		var err error
		if modelName, err = s.converter.TableToUpperCamel(table); err != nil {
			return nil, err
		}
	}
	daoRoot := s.resolver.Resolve(detail, layout.ModuleDAO)
	webRoot := s.resolver.Resolve(detail, layout.ModuleWeb)
	serviceRoot := s.resolver.Resolve(detail, layout.ModuleService)
	return &NamePreview{
		Table:              table,
		ModelName:          modelName,
		VariableName:       naming.LowerFirst(modelName),
		BaseRequestMapping: naming.ModelToMappingPath(modelName),
		ControllerFile:     layout.JavaFile(webRoot, detail.ControllerPackage, modelName+"Controller.java"),
		ServiceFile:        layout.JavaFile(serviceRoot, detail.ServicePackage, modelName+"Service.java"),
		ServiceImplFile:    layout.JavaFile(serviceRoot, detail.ServiceImplPackage, modelName+"ServiceImpl.java"),
		ModelFile:          layout.JavaFile(daoRoot, detail.ModulePackage, modelName+".java"),
		MapperFile:         layout.JavaFile(daoRoot, detail.MapperPackage, modelName+"Mapper.java"),
	}, nil
}

var _ GenerationService = (*generationService)(nil)
