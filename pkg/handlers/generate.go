package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
)

// PreviewNamesRequest is the body of POST /api/generate/preview.
type PreviewNamesRequest struct {
	models.CodeDefinitionRequest
	Table string `json:"table"`
}

// GenerateHandler starts generation runs for the descriptor in the client session.
type GenerateHandler struct {
	generationService services.GenerationService
	store             DescriptorStore
	now               func() time.Time
	logger            *zap.Logger
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(generationService services.GenerationService, store DescriptorStore, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		store:             store,
		now:               time.Now,
		logger:            logger,
	}
}

// RegisterRoutes registers the generate handler's routes on the given mux.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate/config", h.phase(models.PhaseConfig))
	mux.HandleFunc("POST /api/generate/code", h.phase(models.PhaseCode))
	mux.HandleFunc("POST /api/generate", h.phase(models.PhaseAll))
	mux.HandleFunc("POST /api/generate/preview", h.PreviewNames)
}

func (h *GenerateHandler) phase(phase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Generate(w, r, phase)
	}
}

// Generate runs phase for the code definition in the request body.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request, phase string) {
	var req models.CodeDefinitionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.ValidateFor(phase); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	// A missing descriptor is left to the service so every phase fails the same way.
	db, err := h.store.DBDefinition(r)
	if err != nil {
		db = nil
	}

	report, err := h.generationService.Generate(r.Context(), req.Detail(h.now()), db, phase)
	if err != nil {
		h.logger.Info("Generation run failed",
			zap.String("phase", phase),
			zap.String("artifact_id", req.ArtifactID),
			zap.Error(err))
		if err := GenerationErrorResponse(w, err); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// PreviewNames handles POST /api/generate/preview
func (h *GenerateHandler) PreviewNames(w http.ResponseWriter, r *http.Request) {
	var req PreviewNamesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	preview, err := h.generationService.PreviewNames(req.Detail(h.now()), req.Table)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, preview); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *GenerateHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.badRequest(w, "Invalid request body")
		return false
	}
	return true
}

func (h *GenerateHandler) badRequest(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
