package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	SubmitReport(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Warn("Failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.ClockIn(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "出勤時間を記録しました")
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.ClockOut(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "退勤時間を記録しました")
}

// GetMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := attendance.NewMonthRequest(query.Get("uid"), query.Get("year"), query.Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.SubmitReport(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "勤務報告を登録しました")
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req attendance.StatusActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.Approve(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "承認しました")
}

// Reject implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req attendance.StatusActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.Reject(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "却下しました")
}

// Revoke implements AttendanceHandler.
func (h *attendanceHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	var req attendance.StatusActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.attendanceService.Revoke(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "承認を取り消しました")
}
