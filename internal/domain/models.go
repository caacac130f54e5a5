package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant root.
type Organization struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	LegalName      *string   `db:"legal_name" json:"legal_name,omitempty"`
	Country        string    `db:"country" json:"country"`
	Sector         *string   `db:"sector" json:"sector,omitempty"`
	EmployeeCount  *int      `db:"employee_count" json:"employee_count,omitempty"`
	BusinessID     *string   `db:"business_id" json:"business_id,omitempty"`
	NAFCode        *string   `db:"naf_code" json:"naf_code,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	PostalCode     *string   `db:"postal_code" json:"postal_code,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	AnnualTurnover *float64  `db:"annual_turnover" json:"annual_turnover,omitempty"`
	Plan           string    `db:"plan" json:"plan"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Site is a physical location of an organization.
type Site struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	Address        *string   `db:"address" json:"address,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	Country        string    `db:"country" json:"country"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Category is an entry of the emission taxonomy.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Scope       int       `db:"scope" json:"scope"`
	GHGCategory *int      `db:"ghg_category" json:"ghg_category,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EmissionRecord is one measured or estimated emission event.
type EmissionRecord struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	OrganizationID uuid.UUID     `db:"organization_id" json:"organization_id"`
	SiteID         *uuid.UUID    `db:"site_id" json:"site_id,omitempty"`
	CategoryID     uuid.UUID     `db:"category_id" json:"category_id"`
	Scope          int           `db:"scope" json:"scope"`
	Date           time.Time     `db:"date" json:"date"`
	SourceName     string        `db:"source_name" json:"source_name"`
	Quantity       float64       `db:"quantity" json:"quantity"`
	Unit           string        `db:"unit" json:"unit"`
	FactorValue    float64       `db:"factor_value" json:"factor_value"`
	FactorSource   *string       `db:"factor_source" json:"factor_source,omitempty"`
	CO2eKg         float64       `db:"co2e_kg" json:"co2e_kg"`
	Scope2Method   *Scope2Method `db:"scope_2_method" json:"scope_2_method,omitempty"`
	IsEstimated    bool          `db:"is_estimated" json:"is_estimated"`
	CreatedBy      uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// EmissionDetail is an emission record joined with its category.
type EmissionDetail struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Scope        int           `db:"scope" json:"scope"`
	Date         time.Time     `db:"date" json:"date"`
	SourceName   string        `db:"source_name" json:"source_name"`
	Quantity     float64       `db:"quantity" json:"quantity"`
	Unit         string        `db:"unit" json:"unit"`
	FactorValue  float64       `db:"factor_value" json:"factor_value"`
	CO2eKg       float64       `db:"co2e_kg" json:"co2e_kg"`
	Scope2Method *Scope2Method `db:"scope_2_method" json:"scope_2_method,omitempty"`
	IsEstimated  bool          `db:"is_estimated" json:"is_estimated"`
	CategoryCode string        `db:"category_code" json:"category_code"`
	CategoryName string        `db:"category_name" json:"category_name"`
	GHGCategory  *int          `db:"ghg_category" json:"ghg_category,omitempty"`
}

// Action is a planned emission reduction measure.
type Action struct {
	ID                  uuid.UUID    `db:"id" json:"id"`
	OrganizationID      uuid.UUID    `db:"organization_id" json:"organization_id"`
	Title               string       `db:"title" json:"title"`
	Description         *string      `db:"description" json:"description,omitempty"`
	Status              ActionStatus `db:"status" json:"status"`
	DueDate             *time.Time   `db:"due_date" json:"due_date,omitempty"`
	CO2ReductionPercent *float64     `db:"co2_reduction_percent" json:"co2_reduction_percent,omitempty"`
	Difficulty          *string      `db:"difficulty" json:"difficulty,omitempty"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// Report is the persisted record of a generated export.
type Report struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	OrganizationID   uuid.UUID    `db:"organization_id" json:"organization_id"`
	SiteID           *uuid.UUID   `db:"site_id" json:"site_id,omitempty"`
	GeneratedBy      uuid.UUID    `db:"generated_by" json:"generated_by"`
	NotifyEmail      *string      `db:"notify_email" json:"-"`
	Type             ReportType   `db:"type" json:"type"`
	Format           ExportFormat `db:"format" json:"format"`
	Title            string       `db:"title" json:"title"`
	Year             int          `db:"year" json:"year"`
	PeriodStart      time.Time    `db:"period_start" json:"period_start"`
	PeriodEnd        time.Time    `db:"period_end" json:"period_end"`
	Status           ReportStatus `db:"status" json:"status"`
	FilePath         *string      `db:"file_path" json:"file_path,omitempty"`
	FileSize         *int64       `db:"file_size" json:"file_size,omitempty"`
	TotalEmissionsKg *float64     `db:"total_emissions_kg" json:"total_emissions_kg,omitempty"`
	ErrorMessage     *string      `db:"error_message" json:"error_message,omitempty"`
	GeneratedAt      *time.Time   `db:"generated_at" json:"generated_at,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// Setting is a key/value configuration row.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Branding holds the labels printed on generated documents.
type Branding struct {
	ToolName string `json:"tool_name"`
	Company  string `json:"company"`
	Website  string `json:"website"`
}
