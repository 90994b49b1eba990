package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func newRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	return httptest.NewRequest(method, target, strings.NewReader(body))
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestDatasourcesHandler_PutThenGet(t *testing.T) {
	store := newTestStore(t)
	handler := NewDatasourcesHandler(&mockDatasourceService{}, store, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	body, _ := json.Marshal(testDBDefinition())
	rec := newRecorder()
	mux.ServeHTTP(rec, newRequest(http.MethodPut, "/api/session/datasource", string(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	rec = newRecorder()
	mux.ServeHTTP(rec, withCookies(newRequest(http.MethodGet, "/api/session/datasource", ""), cookies))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    models.DBDefinition `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.URL != "jdbc:mysql://localhost:3306/shop" {
		t.Errorf("expected stored url, got %q", resp.Data.URL)
	}
	if resp.Data.Password != "********" {
		t.Errorf("expected password masked as '********', got %q", resp.Data.Password)
	}
}

func TestDatasourcesHandler_PutRejectsIncompleteDescriptor(t *testing.T) {
	handler := NewDatasourcesHandler(&mockDatasourceService{}, newTestStore(t), zap.NewNop())

	rec := newRecorder()
	handler.Put(rec, newRequest(http.MethodPut, "/api/session/datasource", `{"url":"jdbc:mysql://localhost/shop"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no session cookie for a rejected descriptor")
	}
}

func TestDatasourcesHandler_PutInvalidJSON(t *testing.T) {
	handler := NewDatasourcesHandler(&mockDatasourceService{}, newTestStore(t), zap.NewNop())

	rec := newRecorder()
	handler.Put(rec, newRequest(http.MethodPut, "/api/session/datasource", `{`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestDatasourcesHandler_GetWithoutSession(t *testing.T) {
	handler := NewDatasourcesHandler(&mockDatasourceService{}, newTestStore(t), zap.NewNop())

	rec := newRecorder()
	handler.Get(rec, newRequest(http.MethodGet, "/api/session/datasource", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestDatasourcesHandler_Delete(t *testing.T) {
	store := newTestStore(t)
	handler := NewDatasourcesHandler(&mockDatasourceService{}, store, zap.NewNop())
	cookies := sessionCookies(t, store, testDBDefinition())

	rec := newRecorder()
	handler.Delete(rec, withCookies(newRequest(http.MethodDelete, "/api/session/datasource", ""), cookies))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	expired := rec.Result().Cookies()
	if len(expired) == 0 || expired[0].MaxAge >= 0 {
		t.Errorf("expected an expired cookie, got %+v", expired)
	}
}

func TestDatasourcesHandler_TestConnection(t *testing.T) {
	store := newTestStore(t)
	service := &mockDatasourceService{}
	handler := NewDatasourcesHandler(service, store, zap.NewNop())
	cookies := sessionCookies(t, store, testDBDefinition())

	rec := newRecorder()
	handler.TestConnection(rec, withCookies(newRequest(http.MethodPost, "/api/session/datasource/test", ""), cookies))

	var resp TestConnectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success, got %+v", resp)
	}
	if service.tested == nil || service.tested.Username != "root" {
		t.Errorf("expected the session descriptor to be tested, got %+v", service.tested)
	}
}

func TestDatasourcesHandler_TestConnectionFailure(t *testing.T) {
	store := newTestStore(t)
	handler := NewDatasourcesHandler(&mockDatasourceService{testErr: errors.New("connection refused")}, store, zap.NewNop())
	cookies := sessionCookies(t, store, testDBDefinition())

	rec := newRecorder()
	handler.TestConnection(rec, withCookies(newRequest(http.MethodPost, "/api/session/datasource/test", ""), cookies))

	var resp TestConnectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Success || !strings.Contains(resp.Message, "connection refused") {
		t.Errorf("expected failed test with cause, got %+v", resp)
	}
}

func TestDatasourcesHandler_TestConnectionWithoutSession(t *testing.T) {
	handler := NewDatasourcesHandler(&mockDatasourceService{}, newTestStore(t), zap.NewNop())

	rec := newRecorder()
	handler.TestConnection(rec, newRequest(http.MethodPost, "/api/session/datasource/test", ""))

	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("expected status 412, got %d", rec.Code)
	}
}

func TestDatasourcesHandler_ListTypes(t *testing.T) {
	service := &mockDatasourceService{types: []datasource.DatasourceAdapterInfo{{Type: "mysql", DisplayName: "MySQL"}}}
	handler := NewDatasourcesHandler(service, newTestStore(t), zap.NewNop())

	rec := newRecorder()
	handler.ListTypes(rec, newRequest(http.MethodGet, "/api/datasource/types", ""))

	var resp ListTypesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Types) != 1 || resp.Types[0].Type != "mysql" {
		t.Errorf("unexpected types: %+v", resp.Types)
	}
}
