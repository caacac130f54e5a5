package domain

// UserRole defines the role hierarchy within an organization.
type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
	RoleViewer UserRole = "viewer"
)

// ValidUserRoles is the set of accepted role values.
var ValidUserRoles = map[UserRole]bool{
	RoleOwner:  true,
	RoleAdmin:  true,
	RoleMember: true,
	RoleViewer: true,
}

// ReportType selects the content depth of a report.
type ReportType string

const (
	ReportTypeSummary     ReportType = "summary"
	ReportTypeDetailed    ReportType = "detailed"
	ReportTypeMethodology ReportType = "methodology"
)

// ValidReportTypes is the set of accepted report types.
var ValidReportTypes = map[ReportType]bool{
	ReportTypeSummary:     true,
	ReportTypeDetailed:    true,
	ReportTypeMethodology: true,
}

// ReportTypeLabels are the French titles used for report records.
var ReportTypeLabels = map[ReportType]string{
	ReportTypeSummary:     "Rapport de synthèse",
	ReportTypeDetailed:    "Rapport détaillé",
	ReportTypeMethodology: "Note méthodologique",
}

// ExportFormat is the artifact format of a report.
type ExportFormat string

const (
	ExportFormatPDF   ExportFormat = "pdf"
	ExportFormatAdeme ExportFormat = "ademe"
	ExportFormatGHG   ExportFormat = "ghg"
	ExportFormatDocx  ExportFormat = "docx"
)

// ValidExportFormats is the set of accepted export formats.
var ValidExportFormats = map[ExportFormat]bool{
	ExportFormatPDF:   true,
	ExportFormatAdeme: true,
	ExportFormatGHG:   true,
	ExportFormatDocx:  true,
}

// ReportStatus tracks the lifecycle of a persisted report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// ActionStatus tracks progress of a reduction action.
type ActionStatus string

const (
	ActionStatusTodo       ActionStatus = "todo"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
)

// ActionStatusLabels are the French labels for action statuses.
var ActionStatusLabels = map[ActionStatus]string{
	ActionStatusTodo:       "À faire",
	ActionStatusInProgress: "En cours",
	ActionStatusCompleted:  "Terminé",
}

// Scope2Method is the Scope 2 accounting method of a record.
type Scope2Method string

const (
	Scope2LocationBased Scope2Method = "location_based"
	Scope2MarketBased   Scope2Method = "market_based"
)

// ChangeDirection describes a period-over-period movement.
type ChangeDirection string

const (
	DirectionIncrease ChangeDirection = "increase"
	DirectionDecrease ChangeDirection = "decrease"
	DirectionStable   ChangeDirection = "stable"
)
