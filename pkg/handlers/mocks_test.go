package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/session"
)

// mockDatasourceService is a configurable mock for datasource handler tests.
type mockDatasourceService struct {
	testErr error
	tested  *models.DBDefinition
	types   []datasource.DatasourceAdapterInfo
}

func (m *mockDatasourceService) TestConnection(ctx context.Context, db *models.DBDefinition) error {
	m.tested = db
	return m.testErr
}

func (m *mockDatasourceService) ListTypes() []datasource.DatasourceAdapterInfo {
	return m.types
}

// mockGenerationService records the last run it was asked for.
type mockGenerationService struct {
	err     error
	detail  *models.CodeDefinitionDetail
	db      *models.DBDefinition
	phase   string
	calls   int
	preview *services.NamePreview
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
	report.Targets = append(report.Targets, models.GenerationTarget{Path: "/tmp/out/App.java", Strategy: models.StrategyTemplate})
	return report, nil
}

func (m *mockGenerationService) PreviewNames(detail *models.CodeDefinitionDetail, table string) (*services.NamePreview, error) {
	m.detail = detail
	if m.err != nil {
		return nil, m.err
	}
	if m.preview != nil {
		return m.preview, nil
	}
	return &services.NamePreview{Table: table, ModelName: "UserDetail"}, nil
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore("test-secret", session.Options{Name: "scaffold_test", MaxAge: 3600})
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return store
}

func testDBDefinition() models.DBDefinition {
	return models.DBDefinition{
		DriverClass: "com.mysql.cj.jdbc.Driver",
		URL:         "jdbc:mysql://localhost:3306/shop",
		Username:    "root",
		Password:    "secret",
	}
}

// sessionCookies stores db through store and returns the resulting cookies.
func sessionCookies(t *testing.T, store *session.Store, db models.DBDefinition) []*http.Cookie {
	t.Helper()
	rec := newRecorder()
	if err := store.SaveDBDefinition(rec, newRequest(http.MethodGet, "/", ""), db); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
	return rec.Result().Cookies()
}
