package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
)

// DescriptorStore keeps the database descriptor of a client between requests.
// *session.Store implements it.
type DescriptorStore interface {
	DBDefinition(r *http.Request) (*models.DBDefinition, error)
	SaveDBDefinition(w http.ResponseWriter, r *http.Request, db models.DBDefinition) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// TestConnectionResponse for connection test result.
type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListTypesResponse lists the database types this build can introspect.
type ListTypesResponse struct {
	Types []datasource.DatasourceAdapterInfo `json:"types"`
}

// DatasourcesHandler manages the database descriptor held in the client session.
type DatasourcesHandler struct {
	datasourceService services.DatasourceService
	store             DescriptorStore
	logger            *zap.Logger
}

// NewDatasourcesHandler creates a new datasources handler.
func NewDatasourcesHandler(datasourceService services.DatasourceService, store DescriptorStore, logger *zap.Logger) *DatasourcesHandler {
	return &DatasourcesHandler{
		datasourceService: datasourceService,
		store:             store,
		logger:            logger,
	}
}

// RegisterRoutes registers the datasources handler's routes on the given mux.
func (h *DatasourcesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/datasource/types", h.ListTypes)
	mux.HandleFunc("GET /api/session/datasource", h.Get)
	mux.HandleFunc("PUT /api/session/datasource", h.Put)
	mux.HandleFunc("DELETE /api/session/datasource", h.Delete)
	mux.HandleFunc("POST /api/session/datasource/test", h.TestConnection)
}

// ListTypes handles GET /api/datasource/types
func (h *DatasourcesHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := h.datasourceService.ListTypes()
	if types == nil {
		types = []datasource.DatasourceAdapterInfo{}
	}
	if err := WriteJSON(w, http.StatusOK, ListTypesResponse{Types: types}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Get handles GET /api/session/datasource
// Returns the stored descriptor with the password masked.
func (h *DatasourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	db, err := h.store.DBDefinition(r)
	if err != nil {
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "No database definition in session"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: db.Masked()}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Put handles PUT /api/session/datasource
// Validates the descriptor and stores it in the session cookie.
func (h *DatasourcesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var db models.DBDefinition
	if err := json.NewDecoder(r.Body).Decode(&db); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if err := db.Validate(); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.store.SaveDBDefinition(w, r, db); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to save database definition"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: db.Masked()}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Delete handles DELETE /api/session/datasource
func (h *DatasourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Error("Failed to clear session", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to clear database definition"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// TestConnection handles POST /api/session/datasource/test
// Tests the descriptor stored in the session.
func (h *DatasourcesHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	db, err := h.store.DBDefinition(r)
	if err != nil {
		if err := GenerationErrorResponse(w, err); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	resp := TestConnectionResponse{Success: true, Message: "Connection successful"}
	if err := h.datasourceService.TestConnection(r.Context(), db); err != nil {
		resp = TestConnectionResponse{Success: false, Message: err.Error()}
		if errors.Is(err, apperrors.ErrMissingDatabaseDefinition) {
			resp.Message = "Database definition is incomplete: " + err.Error()
		}
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
