package tools

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
)

type mockGenerationService struct {
	err    error
	detail *models.CodeDefinitionDetail
	db     *models.DBDefinition
	phase  string
	calls  int
}

func (m *mockGenerationService) GenerateConfig(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	return m.Generate(ctx, detail, db, models.PhaseConfig)
}

func (m *mockGenerationService) GenerateBase(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition) (*models.GenerationReport, error) {
	return m.Generate(ctx, detail, db, models.PhaseCode)
}

func (m *mockGenerationService) Generate(ctx context.Context, detail *models.CodeDefinitionDetail, db *models.DBDefinition, phase string) (*models.GenerationReport, error) {
	m.calls++
	m.detail, m.db, m.phase = detail, db, phase
	report := &models.GenerationReport{RunID: uuid.New(), Phase: phase, Tables: detail.TableList, Targets: []models.GenerationTarget{}}
	if m.err != nil {
		return report, m.err
	}
	for _, table := range detail.TableList {
		report.Targets = append(report.Targets, models.GenerationTarget{Table: table, Path: "/work/" + table, Strategy: models.StrategySchema})
	}
	return report, nil
}

func (m *mockGenerationService) PreviewNames(detail *models.CodeDefinitionDetail, table string) (*services.NamePreview, error) {
	m.detail = detail
	if m.err != nil {
		return nil, m.err
	}
	return &services.NamePreview{Table: table, ModelName: "UserDetail", BaseRequestMapping: "/user-detail"}, nil
}

type mockDatasourceService struct {
	err    error
	tested *models.DBDefinition
}

func (m *mockDatasourceService) TestConnection(ctx context.Context, db *models.DBDefinition) error {
	m.tested = db
	if m.err != nil {
		return m.err
	}
	return db.Validate()
}

func (m *mockDatasourceService) ListTypes() []datasource.DatasourceAdapterInfo {
	return nil
}
