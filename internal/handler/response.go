package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbex/internal/domain"
	"carbex/internal/middleware"
)

const dateLayout = "2006-01-02"

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 response for queued work.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "insufficient role for this action"
	case errors.Is(err, domain.ErrValidation):
		msg := err.Error()
		if i := strings.Index(msg, domain.ErrValidation.Error()); i > 0 {
			msg = msg[i:]
		}
		return http.StatusBadRequest, "VALIDATION_ERROR", msg
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD", "start date must not be after end date"
	case errors.Is(err, domain.ErrInvalidReportType):
		return http.StatusBadRequest, "INVALID_REPORT_TYPE", "report type must be one of summary, detailed, methodology"
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return http.StatusBadRequest, "INVALID_EXPORT_FORMAT", "format must be one of pdf, ademe, ghg, docx"
	case errors.Is(err, domain.ErrInvalidScope):
		return http.StatusBadRequest, "INVALID_SCOPE", "scope must be 1, 2 or 3"
	case errors.Is(err, domain.ErrCategoryScopeInvalid):
		return http.StatusBadRequest, "CATEGORY_SCOPE_MISMATCH", "category does not belong to the given scope"
	case errors.Is(err, domain.ErrReportNotReady):
		return http.StatusConflict, "REPORT_NOT_READY", "report is not completed yet"
	case errors.Is(err, domain.ErrReportFileMissing):
		return http.StatusGone, "REPORT_FILE_MISSING", "report file no longer exists"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusBadGateway, "RENDER_FAILED", "document rendering failed"
	case errors.Is(err, domain.ErrStorageFailed):
		return http.StatusBadGateway, "STORAGE_FAILED", "artifact storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("handler: request failed",
			zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

// extractAuthContext extracts organization ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (organizationID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	organizationID, err = middleware.GetOrganizationID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing organization context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return organizationID, userID, role, true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// parsePaging reads page and page_size. Bounds are applied by the services.
func parsePaging(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'page': must be an integer")
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "0"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'page_size': must be an integer")
		return 0, 0, false
	}
	return page, pageSize, true
}

// parseQueryWindow reads start_date, end_date and site_id into an
// EmissionQuery. A missing window defaults to the current calendar year,
// or to the year given by the year parameter.
func parseQueryWindow(c *gin.Context, organizationID uuid.UUID) (domain.EmissionQuery, bool) {
	q := domain.EmissionQuery{OrganizationID: organizationID}

	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 2000 || v > 2100 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'year'")
			return q, false
		}
		year = v
	}
	q.Start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	q.End = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'start_date': must be YYYY-MM-DD")
			return q, false
		}
		q.Start = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'end_date': must be YYYY-MM-DD")
			return q, false
		}
		q.End = t
	}
	if q.Start.After(q.End) {
		RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "start date must not be after end date")
		return q, false
	}

	if s := c.Query("site_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'site_id': must be a valid UUID")
			return q, false
		}
		q.SiteID = &id
	}
	if s := c.Query("scope"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 3 {
			RespondError(c, http.StatusBadRequest, "INVALID_SCOPE", "scope must be 1, 2 or 3")
			return q, false
		}
		q.Scope = &v
	}
	return q, true
}

// sendAttachment writes data as a file download.
func sendAttachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
