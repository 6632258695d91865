package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/user"
	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, user.ErrUnknownRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Requested records are outside your scope")
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, "Your account is not linked to an employee")
	case errors.Is(err, user.ErrDepartmentIDRequired):
		Forbidden(w, "Your account is not linked to a department")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMalformedShiftTime),
		errors.Is(err, attendance.ErrMalformedDate),
		errors.Is(err, attendance.ErrMalformedPayload):
		slog.Error("HRIS API returned malformed attendance data", "error", err)
		BadGateway(w, "Attendance service returned malformed data")
	case errors.Is(err, attendance.ErrUpstreamRejected):
		slog.Error("HRIS API rejected the request", "error", err)
		BadGateway(w, "Attendance service rejected the request")
	case errors.Is(err, attendance.ErrUpstreamUnavailable):
		slog.Error("HRIS API unavailable", "error", err)
		BadGateway(w, "Attendance service is unavailable")

	// Report domain errors
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No attendance data found for the requested period")
	case errors.Is(err, report.ErrInvalidExportFormat):
		BadRequest(w, err.Error(), nil)

	// Snapshot domain errors
	case errors.Is(err, snapshot.ErrSnapshotStoreDisabled):
		ServiceUnavailable(w, "Snapshot store is not configured")
	case errors.Is(err, snapshot.ErrSyncInProgress):
		Conflict(w, "A snapshot sync is already running")

	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("Request timed out", "error", err)
		ServiceUnavailable(w, "Request timed out")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
