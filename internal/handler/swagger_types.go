package handler

import (
	"github.com/google/uuid"

	"carbex/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateReportRequest represents the generate report request body.
type CreateReportRequest struct {
	Format      domain.ExportFormat `json:"format" binding:"required" example:"pdf"`
	Type        domain.ReportType   `json:"type" example:"detailed"`
	Year        int                 `json:"year" binding:"required" example:"2024"`
	SiteID      *uuid.UUID          `json:"site_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Async       bool                `json:"async" example:"true"`
	NotifyEmail *string             `json:"notify_email" example:"rse@acme.fr"`
}

// QuickReportRequest represents the unstored PDF request body.
type QuickReportRequest struct {
	Type      domain.ReportType `json:"type" binding:"required" example:"summary"`
	StartDate string            `json:"start_date" binding:"required" example:"2024-01-01"`
	EndDate   string            `json:"end_date" binding:"required" example:"2024-06-30"`
	SiteID    *uuid.UUID        `json:"site_id"`
}

// ExportRequest represents the ADEME, GHG and Word export request body.
type ExportRequest struct {
	Year   int        `json:"year" binding:"required" example:"2024"`
	SiteID *uuid.UUID `json:"site_id"`
}

// UpdateSettingRequest represents the setting update request body.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required" example:"Carbex"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"report deleted"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
