package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"gitlab.com/ingwane/api/enquiry-service/pkg/utils"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeServiceError maps service errors to HTTP responses. Internal
// detail is only exposed in development mode.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case apperrors.IsValidationError(err) || apperrors.IsBadRequestError(err):
		utils.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperrors.IsNotFoundError(err):
		utils.WriteJSONResponse(w, http.StatusNotFound, errorResponse{Error: "Enquiry not found"})
	case apperrors.IsDuplicateError(err):
		utils.WriteJSONResponse(w, http.StatusConflict, errorResponse{Error: "Duplicate submission detected"})
	default:
		logger.FromContext(r.Context()).Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		resp := errorResponse{Error: fallback}
		if s.cfg.IsDevelopment() {
			resp.Details = err.Error()
		}
		utils.WriteJSONResponse(w, http.StatusInternalServerError, resp)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitEnquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.WriteJSONResponse(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		utils.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload"})
		return
	}

	enquiry, err := s.svc.Submit(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to submit enquiry")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"message":   "Enquiry submitted successfully",
		"enquiryId": enquiry.ID,
		"timestamp": utils.FormatISO8601(enquiry.CreatedAt),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := query.Get("status")
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	enquiries, pagination, err := s.svc.List(r.Context(), status, page, limit)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch enquiries")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"enquiries":  enquiries,
		"pagination": pagination,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch statistics")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"statistics": stats,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "Invalid enquiry ID"})
		return
	}

	enquiry, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch enquiry")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"enquiry": enquiry,
	})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "Invalid enquiry ID"})
		return
	}

	var req model.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload"})
		return
	}

	enquiry, err := s.svc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to update enquiry")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Enquiry status updated",
		"enquiry": enquiry,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": utils.FormatISO8601(utils.Now()),
		"service":   "Ingwane Enquiry Service",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusNotFound, errorResponse{Error: "Route not found"})
}
