package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/rfp-responder/internal/pipeline"
)

const (
	msgInvalidRequest = "Invalid request"
	msgProcessFailed  = "Failed to process RFP"
	msgSKUNotFound    = "SKU not found"
)

type processRequest struct {
	RFPText *string `json:"rfpText"`
}

type processResponse struct {
	Success bool `json:"success"`
	*pipeline.Result
}

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

func failure(msg string) errorResponse {
	success := false
	return errorResponse{Success: &success, Error: msg}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.pipeline.Catalog().Items())
}

func (s *Server) handleCatalogItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.pipeline.Catalog().FindBySKU(chi.URLParam(r, "sku"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgSKUNotFound})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleProcessRFP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestSize)

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure(msgInvalidRequest))
		return
	}

	if req.RFPText == nil || *req.RFPText == "" {
		writeJSON(w, http.StatusBadRequest, failure(pipeline.ErrEmptyText.Error()))
		return
	}

	result, err := s.pipeline.Process(r.Context(), *req.RFPText)
	if err != nil {
		status := http.StatusInternalServerError
		msg := msgProcessFailed
		if errors.Is(err, pipeline.ErrEmptyText) {
			status = http.StatusBadRequest
			msg = err.Error()
		}

		s.logger.Error("rfp processing failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, status, failure(msg))
		return
	}

	writeJSON(w, http.StatusOK, processResponse{Success: true, Result: result})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
