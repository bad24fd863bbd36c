package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

const streamKeepalive = 30 * time.Second

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	GetMyScans(w http.ResponseWriter, r *http.Request)
	GetWallet(w http.ResponseWriter, r *http.Request)
	GetWorkLogs(w http.ResponseWriter, r *http.Request)
	AddSampleEntries(w http.ResponseWriter, r *http.Request)
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService wallet.AttendanceService
	jwtService        jwt.Service
	keepalive         time.Duration
}

func NewAttendanceHandler(attendanceService wallet.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		keepalive:         streamKeepalive,
	}
}

// Scan implements AttendanceHandler.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req wallet.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordScan(r.Context(), req)
	if err != nil {
		slog.Error("Scan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Scan recorded as %s", result.LastScanType), result)
}

// GetMyScans implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyScans(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMyScans(r.Context())
	if err != nil {
		slog.Error("GetMyScans service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWallet implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetWallet(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetWallet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWorkLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetWorkLogs(w http.ResponseWriter, r *http.Request) {
	req := wallet.WorkLogRequest{EmployeeID: chi.URLParam(r, "id")}

	if raw := r.URL.Query().Get("hourly_rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "hourlyRate",
				Message: "hourlyRate must be a number",
			}})
			return
		}
		req.HourlyRate = &rate
	}

	result, err := h.attendanceService.GetWorkLogs(r.Context(), req)
	if err != nil {
		slog.Error("GetWorkLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddSampleEntries implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddSampleEntries(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.AddSampleEntries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("AddSampleEntries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sample entries added", result)
}

// GetStreamToken issues a short-lived token for the scan stream, since
// EventSource cannot send an Authorization header.
func (h *attendanceHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		slog.Error("GenerateSSEToken error", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, wallet.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes scan events to the caller over server-sent events.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	events, cleanup, err := h.attendanceService.Subscribe(r.Context(), userID)
	if err != nil {
		slog.Error("Subscribe service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream encode error", "error", err, "event", event.Name)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
