package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInsufficientRole     = errors.New("insufficient role for this action")
	ErrInvalidPeriod        = errors.New("period start must not be after period end")
	ErrInvalidReportType    = errors.New("invalid report type")
	ErrInvalidExportFormat  = errors.New("invalid export format")
	ErrInvalidScope         = errors.New("scope must be 1, 2 or 3")
	ErrValidation           = errors.New("validation failed")
	ErrStorageFailed        = errors.New("artifact storage failed")
	ErrRenderFailed         = errors.New("document rendering failed")
	ErrReportNotReady       = errors.New("report is not completed yet")
	ErrReportFileMissing    = errors.New("report file no longer exists")
	ErrCategoryScopeInvalid = errors.New("category does not belong to the given scope")
)
