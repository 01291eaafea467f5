package report

import (
	"errors"
)

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrNotOwner           = errors.New("report belongs to another user")
	ErrNotCompleted       = errors.New("report is not completed")
	ErrInvalidFormat      = errors.New("unsupported export format")
	ErrInvalidReportType  = errors.New("invalid report type")
	ErrGenerationFailed   = errors.New("report generation failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrReportNotFound):
		return 404
	case errors.Is(err, ErrNotOwner):
		return 403
	case errors.Is(err, ErrNotCompleted),
		errors.Is(err, ErrInvalidFormat),
		errors.Is(err, ErrInvalidReportType):
		return 400
	default:
		return 500
	}
}

// GetErrorMessage returns a user-facing message without internal details.
func GetErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrReportNotFound):
		return "Report not found"
	case errors.Is(err, ErrNotOwner):
		return "You do not have access to this report"
	case errors.Is(err, ErrNotCompleted):
		return "Report is not completed yet"
	case errors.Is(err, ErrInvalidFormat):
		return "Export format must be one of: pdf, csv, xlsx"
	case errors.Is(err, ErrInvalidReportType):
		return "Report type is invalid"
	default:
		return "Internal server error"
	}
}
