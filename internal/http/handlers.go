package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mediapack/internal/logger"
	"mediapack/internal/models"
	"mediapack/internal/quote"

	"github.com/gorilla/mux"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	quoteService quote.QuoteService
	logger       logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	quoteService quote.QuoteService,
	logger logger.Service,
) *Handler {
	return &Handler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	// Extract LogEvent from context to get ProcessID for X-Request-ID header
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// GetPublication handles GET /api/publications/{id}
func (h *Handler) GetPublication(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	// Extract publication ID from URL path parameters
	vars := mux.Vars(r)
	publicationID := vars["id"]
	if publicationID == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "publication id is required", "")
		return
	}

	h.logger.LogInfo(ctx, logger.OpPublicationLoad, fmt.Sprintf("Loading publication: %s", publicationID), map[string]interface{}{
		"publication_id": publicationID,
	})

	pub, err := h.quoteService.GetPublication(ctx, publicationID)
	if err != nil {
		h.logger.LogError(ctx, logger.OpPublicationLoad, publicationID, "Publication load failed", err, models.LogSeverityMedium, nil)

		statusCode := h.getStatusCodeForError(err)
		h.writeErrorResponse(w, r, statusCode, "publication load failed", err.Error())
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, pub); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpPublicationLoad, publicationID, "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpPublicationLoad, publicationID, "Successfully served publication", nil)
}

// QuotePackage handles POST /api/quote
func (h *Handler) QuotePackage(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	var request models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpQuote, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(request.Selection.Publications) == 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "selection cannot be empty", "")
		return
	}

	h.logger.LogInfo(ctx, logger.OpQuote, fmt.Sprintf("Starting quote for package: %s", request.PackageName), map[string]interface{}{
		"package_name":       request.PackageName,
		"publications_count": len(request.Selection.Publications),
	})

	packageQuote, err := h.quoteService.QuotePackage(ctx, &request)
	if err != nil {
		h.logger.LogError(ctx, logger.OpQuote, request.PackageName, "Package quote failed", err, models.LogSeverityMedium, nil)

		statusCode := h.getStatusCodeForError(err)
		h.writeErrorResponse(w, r, statusCode, "quote failed", err.Error())
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, packageQuote); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpQuote, request.PackageName, "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpQuote, request.PackageName, "Successfully quoted package", nil)
}

// BatchQuote handles POST /api/batch-quote
func (h *Handler) BatchQuote(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	var request models.BatchQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpBatchQuote, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(request.Scenarios) == 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "scenarios array cannot be empty", "")
		return
	}

	if len(request.Scenarios) > 50 { // Limit batch size
		h.writeErrorResponse(w, r, http.StatusBadRequest, "too many scenarios", "Maximum 50 scenarios per batch")
		return
	}

	h.logger.LogInfo(ctx, logger.OpBatchQuote, fmt.Sprintf("Starting batch quote for %d scenarios", len(request.Scenarios)), map[string]interface{}{
		"scenarios_count": len(request.Scenarios),
	})

	response, err := h.quoteService.QuoteScenarios(ctx, request.Scenarios)
	if err != nil {
		h.logger.LogError(ctx, logger.OpBatchQuote, "", "Batch quote failed", err, models.LogSeverityMedium, nil)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "batch quote failed", err.Error())
		return
	}

	// Determine status code based on results
	statusCode := h.getBatchStatusCode(response)

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		// Response already sent with status code, but log the encoding error
		h.logger.LogError(ctx, logger.OpBatchQuote, "", "Failed to encode batch response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpBatchQuote, "", fmt.Sprintf("Completed batch quote: %d succeeded, %d failed", response.Summary.Succeeded, response.Summary.Failed), map[string]interface{}{
		"total":     response.Summary.Total,
		"succeeded": response.Summary.Succeeded,
		"failed":    response.Summary.Failed,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		// Encoding failed - response already sent with status code, but log the error
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// getStatusCodeForError determines the appropriate HTTP status code for an error
func (h *Handler) getStatusCodeForError(err error) int {
	switch {
	case errors.Is(err, models.ErrPublicationNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrFetchTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, models.ErrInvalidSnapshot),
		errors.Is(err, models.ErrUnknownChannel),
		errors.Is(err, models.ErrUnknownPricingModel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// getBatchStatusCode determines the status code for batch responses
func (h *Handler) getBatchStatusCode(response *models.BatchQuoteResponse) int {
	if response.Summary.Failed == 0 {
		// All succeeded
		return http.StatusOK
	} else if response.Summary.Succeeded == 0 {
		// All failed
		return http.StatusBadRequest
	} else {
		// Partial success - use 207 Multi-Status
		return http.StatusMultiStatus
	}
}
