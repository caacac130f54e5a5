package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmissionQuery filters emission records for aggregation.
// Start and End are inclusive calendar dates.
type EmissionQuery struct {
	OrganizationID uuid.UUID
	SiteID         *uuid.UUID
	Start          time.Time
	End            time.Time
	Scope          *int
}

// ScopeTotal is a per-scope aggregate row.
type ScopeTotal struct {
	Scope   int     `db:"scope"`
	TotalKg float64 `db:"total_kg"`
	Count   int     `db:"record_count"`
}

// CategoryTotal is a per-category aggregate row.
type CategoryTotal struct {
	CategoryID  uuid.UUID `db:"category_id"`
	Code        string    `db:"code"`
	Name        string    `db:"name"`
	Scope       int       `db:"scope"`
	GHGCategory *int      `db:"ghg_category"`
	TotalKg     float64   `db:"total_kg"`
	Count       int       `db:"record_count"`
}

// MonthTotal is a per-month, per-scope aggregate row.
type MonthTotal struct {
	Month   time.Time `db:"month"`
	Scope   int       `db:"scope"`
	TotalKg float64   `db:"total_kg"`
}

// SiteTotal is a per-site aggregate row.
type SiteTotal struct {
	SiteID  uuid.UUID `db:"site_id"`
	Name    string    `db:"name"`
	City    *string   `db:"city"`
	TotalKg float64   `db:"total_kg"`
}

// ScopeAmount holds one scope's share of the total.
type ScopeAmount struct {
	Kg      float64 `json:"kg"`
	Tonnes  float64 `json:"tonnes"`
	Percent float64 `json:"percent"`
}

// Summary holds emission totals for a window.
type Summary struct {
	TotalKg     float64     `json:"total_emissions_kg"`
	TotalTonnes float64     `json:"total_emissions_tonnes"`
	Scope1      ScopeAmount `json:"scope_1"`
	Scope2      ScopeAmount `json:"scope_2"`
	Scope3      ScopeAmount `json:"scope_3"`
	RecordCount int         `json:"record_count"`
}

// PeriodTotal is the total of one comparison window.
type PeriodTotal struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	TotalKg     float64   `json:"total_kg"`
	TotalTonnes float64   `json:"total_tonnes"`
}

// Comparison compares a window to the preceding window of equal length.
type Comparison struct {
	Current       PeriodTotal     `json:"current_period"`
	Previous      PeriodTotal     `json:"previous_period"`
	ChangePercent float64         `json:"change_percent"`
	Direction     ChangeDirection `json:"change_direction"`
}

// Kpis is the headline figure set of the dashboard.
type Kpis struct {
	Summary    Summary    `json:"summary"`
	Comparison Comparison `json:"trend"`
}

// ScopeBreakdownEntry is one scope slice of the total.
type ScopeBreakdownEntry struct {
	Scope   int     `json:"scope"`
	Label   string  `json:"label"`
	Kg      float64 `json:"kg"`
	Tonnes  float64 `json:"value"`
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
	Color   string  `json:"color"`
}

// CategoryBreakdownEntry is one category's contribution within its scope.
type CategoryBreakdownEntry struct {
	CategoryID      uuid.UUID `json:"category_id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Scope           int       `json:"scope"`
	GHGCategory     *int      `json:"ghg_category,omitempty"`
	EmissionsKg     float64   `json:"emissions_kg"`
	EmissionsTonnes float64   `json:"emissions_tonnes"`
	Percent         float64   `json:"percent"`
	Count           int       `json:"count"`
}

// MonthlyTrendPoint holds the tonnes of one calendar month.
type MonthlyTrendPoint struct {
	Month  time.Time `json:"month"`
	Label  string    `json:"label"`
	Scope1 float64   `json:"scope_1"`
	Scope2 float64   `json:"scope_2"`
	Scope3 float64   `json:"scope_3"`
	Total  float64   `json:"total"`
}

// SiteComparisonEntry is one site's total.
type SiteComparisonEntry struct {
	SiteID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	City   string    `json:"city"`
	Kg     float64   `json:"kg"`
	Tonnes float64   `json:"value"`
}

// Methodology describes the emission factor reference used.
type Methodology struct {
	Standard     string   `json:"standard"`
	FactorSource string   `json:"emission_factors"`
	Version      string   `json:"version"`
	GWPSource    string   `json:"gwp_source"`
	URLs         []string `json:"urls"`
}

// PeriodInfo is the reporting window with its display label.
type PeriodInfo struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// ReportMeta identifies a built report.
type ReportMeta struct {
	Type        ReportType `json:"type"`
	GeneratedAt time.Time  `json:"generated_at"`
	Period      PeriodInfo `json:"period"`
}

// OrganizationInfo is the organization block printed on reports.
type OrganizationInfo struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Country       string    `json:"country"`
	Sector        string    `json:"sector"`
	EmployeeCount *int      `json:"employee_count,omitempty"`
}

// SiteInfo is the site block of a site-filtered report.
type SiteInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Country string    `json:"country"`
}

// ReportData is the transient aggregate consumed by exporters.
type ReportData struct {
	Report            ReportMeta               `json:"report"`
	Organization      OrganizationInfo         `json:"organization"`
	Summary           Summary                  `json:"summary"`
	Comparison        Comparison               `json:"comparison"`
	ScopeBreakdown    []ScopeBreakdownEntry    `json:"scope_breakdown"`
	CategoryBreakdown []CategoryBreakdownEntry `json:"category_breakdown"`
	MonthlyTrend      []MonthlyTrendPoint      `json:"monthly_trend"`
	Methodology       Methodology              `json:"methodology"`
	Site              *SiteInfo                `json:"site,omitempty"`
	Sites             []SiteComparisonEntry    `json:"sites,omitempty"`
}

// DashboardData is the cached dashboard payload.
type DashboardData struct {
	Kpis           Kpis                     `json:"kpis"`
	ScopeBreakdown []ScopeBreakdownEntry    `json:"scope_breakdown"`
	MonthlyTrend   []MonthlyTrendPoint      `json:"monthly_trend"`
	TopCategories  []CategoryBreakdownEntry `json:"top_categories"`
	Sites          []SiteComparisonEntry    `json:"sites"`
}
