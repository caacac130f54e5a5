package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
	"carbex/internal/spreadsheet"
	"carbex/internal/taxonomy"
)

const (
	sheetIdentification = "Identification"
	sheetEmissions      = "Émissions GES"
	sheetMethodologie   = "Méthodologie"
	sheetActions        = "Actions de réduction"

	ademeMaxActions  = 20
	notProvided      = "Non renseigné"
	emissionsHeadRow = 10
	colorTotalRow    = "E2EFDA"
)

// AdemeExporter produces the ADEME BEGES workbook for one calendar year.
type AdemeExporter interface {
	Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error)
}

// PosteLine is one row of the BEGES emissions table.
type PosteLine struct {
	Poste  taxonomy.Poste
	Tonnes float64
}

type ademeExporter struct {
	builder    ReportBuilder
	orgRepo    port.OrganizationRepository
	actionRepo port.ActionRepository
	settings   SettingsService
	artifacts  *ArtifactStore
	now        func() time.Time
}

// NewAdemeExporter creates a new AdemeExporter.
func NewAdemeExporter(builder ReportBuilder, orgRepo port.OrganizationRepository, actionRepo port.ActionRepository, settings SettingsService, artifacts *ArtifactStore) AdemeExporter {
	return &ademeExporter{
		builder:    builder,
		orgRepo:    orgRepo,
		actionRepo: actionRepo,
		settings:   settings,
		artifacts:  artifacts,
		now:        time.Now,
	}
}

// PosteLines maps a category breakdown onto the 22 postes. Categories whose
// code has no poste are dropped; postes without data read zero.
func PosteLines(categories []domain.CategoryBreakdownEntry) []PosteLine {
	kgByCode := make(map[string]float64, len(categories))
	for _, c := range categories {
		if _, ok := taxonomy.PosteByCode(c.Code); ok {
			kgByCode[c.Code] += c.EmissionsKg
		}
	}
	postes := taxonomy.Postes()
	out := make([]PosteLine, 0, len(postes))
	for _, p := range postes {
		out = append(out, PosteLine{Poste: p, Tonnes: locale.Tonnes(kgByCode[p.Code], 2)})
	}
	return out
}

func (e *ademeExporter) Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	org, err := e.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return "", fmt.Errorf("ademeExporter.Export: %w", err)
	}

	start, end := YearPeriod(year)
	data, err := e.builder.Build(ctx, organizationID, start, end, domain.ReportTypeDetailed, siteID)
	if err != nil {
		return "", fmt.Errorf("ademeExporter.Export: %w", err)
	}

	actions, err := e.actionRepo.ListRecent(ctx, organizationID, ademeMaxActions)
	if err != nil {
		return "", fmt.Errorf("ademeExporter.Export: actions: %w", err)
	}
	branding := e.settings.Branding(ctx)

	key := e.artifacts.Key(organizationID, ArtifactAdeme, year, "xlsx")
	return e.artifacts.Save(ctx, key, contentTypeXLSX, func(w io.Writer) error {
		wb, err := spreadsheet.New()
		if err != nil {
			return err
		}
		defer func() { _ = wb.Close() }()

		if err := e.identificationSheet(wb, org, year, branding); err != nil {
			return fmt.Errorf("identification sheet: %w", err)
		}
		if err := e.emissionsSheet(wb, data.Summary, PosteLines(data.CategoryBreakdown)); err != nil {
			return fmt.Errorf("emissions sheet: %w", err)
		}
		if err := e.methodologySheet(wb); err != nil {
			return fmt.Errorf("methodology sheet: %w", err)
		}
		if err := e.actionsSheet(wb, actions); err != nil {
			return fmt.Errorf("actions sheet: %w", err)
		}
		_, err = wb.WriteTo(w)
		return err
	})
}

func orNotProvided(s *string) string {
	if s == nil || *s == "" {
		return notProvided
	}
	return *s
}

func (e *ademeExporter) identificationSheet(wb *spreadsheet.Workbook, org *domain.Organization, year int, b domain.Branding) error {
	const sheet = sheetIdentification
	if err := wb.AddSheet(sheet); err != nil {
		return err
	}
	if err := wb.Title(sheet, "BILAN GES - IDENTIFICATION DE L'ORGANISATION", "D"); err != nil {
		return err
	}

	employees := notProvided
	if org.EmployeeCount != nil {
		employees = strconv.Itoa(*org.EmployeeCount)
	}
	turnover := notProvided
	if org.AnnualTurnover != nil {
		turnover = locale.Number(*org.AnnualTurnover, 0) + " €"
	}
	address := "Non renseignée"
	if org.Address != nil && *org.Address != "" {
		address = *org.Address
	}
	country := org.Country
	if country == "" {
		country = "FR"
	}

	rows := [][2]string{
		{"Raison sociale", org.Name},
		{"SIREN/SIRET", orNotProvided(org.BusinessID)},
		{"Code APE/NAF", orNotProvided(org.NAFCode)},
		{"Secteur d'activité", orNotProvided(org.Sector)},
		{"", ""},
		{"Adresse", address},
		{"Code postal", deref(org.PostalCode)},
		{"Ville", deref(org.City)},
		{"Pays", country},
		{"", ""},
		{"Effectif", employees},
		{"Chiffre d'affaires", turnover},
		{"", ""},
		{"Année de reporting", strconv.Itoa(year)},
		{"Date de génération", locale.Date(e.now())},
		{"Outil utilisé", fmt.Sprintf("%s (%s)", b.ToolName, b.Website)},
	}
	for i, r := range rows {
		row := 3 + i
		if err := wb.SetRow(sheet, row, r[0], r[1]); err != nil {
			return err
		}
		if r[0] != "" {
			if err := wb.Bold(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(1, row)); err != nil {
				return err
			}
		}
	}
	return wb.Widths(sheet, map[string]float64{"A": 25, "B": 40})
}

func (e *ademeExporter) emissionsSheet(wb *spreadsheet.Workbook, summary domain.Summary, lines []PosteLine) error {
	const sheet = sheetEmissions
	if err := wb.AddSheet(sheet); err != nil {
		return err
	}
	if err := wb.Title(sheet, "BILAN DES ÉMISSIONS DE GAZ À EFFET DE SERRE", "E"); err != nil {
		return err
	}

	if err := wb.Set(sheet, "A3", "SYNTHÈSE"); err != nil {
		return err
	}
	if err := wb.Bold(sheet, "A3", "A3"); err != nil {
		return err
	}
	synth := []struct {
		label  string
		tonnes float64
	}{
		{"Total des émissions", summary.TotalTonnes},
		{"Scope 1", summary.Scope1.Tonnes},
		{"Scope 2", summary.Scope2.Tonnes},
		{"Scope 3", summary.Scope3.Tonnes},
	}
	for i, s := range synth {
		if err := wb.SetRow(sheet, 4+i, s.label, locale.Number(s.tonnes, 2), "tCO₂e"); err != nil {
			return err
		}
	}

	if err := wb.TableHeader(sheet, emissionsHeadRow,
		"N° Poste", "Catégorie d'émission", "Code", "Émissions (tCO₂e)", "Incertitude (%)"); err != nil {
		return err
	}

	var scopeTotals [4]float64
	row := emissionsHeadRow + 1
	for _, l := range lines {
		uncertainty := "-"
		if l.Tonnes > 0 {
			uncertainty = "20%"
		}
		if err := wb.SetRow(sheet, row, l.Poste.Number, l.Poste.Label, l.Poste.Code, l.Tonnes, uncertainty); err != nil {
			return err
		}
		scopeTotals[l.Poste.Scope()] += l.Tonnes
		row++
	}
	lastData := row - 1

	row++
	grand := 0.0
	for scope := 1; scope <= 3; scope++ {
		total := locale.Round(scopeTotals[scope], 2)
		grand += total
		if err := wb.SetRow(sheet, row, nil, fmt.Sprintf("TOTAL SCOPE %d", scope), nil, total); err != nil {
			return err
		}
		if err := wb.Bold(sheet, spreadsheet.Cell(2, row), spreadsheet.Cell(4, row)); err != nil {
			return err
		}
		row++
	}
	if err := wb.SetRow(sheet, row, nil, "TOTAL GÉNÉRAL", nil, locale.Round(grand, 2)); err != nil {
		return err
	}
	if err := wb.Number(sheet, spreadsheet.Cell(4, emissionsHeadRow+1), spreadsheet.Cell(4, lastData)); err != nil {
		return err
	}
	if err := wb.Fill(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(5, row), colorTotalRow); err != nil {
		return err
	}
	return wb.Widths(sheet, map[string]float64{"A": 12, "B": 50, "C": 10, "D": 20, "E": 15})
}

var ademeMethodology = [][2]string{
	{"Référentiel utilisé", "Méthode Bilan Carbone® / GHG Protocol Corporate Standard"},
	{"Version", "2024"},
	{"", ""},
	{"Sources des facteurs d'émission", ""},
	{"", "Base Empreinte ADEME (https://base-empreinte.ademe.fr/)"},
	{"", "DEFRA UK (pour certains facteurs transport)"},
	{"", "IEA (facteurs d'émission électricité par pays)"},
	{"", ""},
	{"Périmètre organisationnel", "Approche contrôle opérationnel"},
	{"Périmètre opérationnel", "Scopes 1, 2 et 3"},
	{"", ""},
	{"Incertitudes", ""},
	{"", "Scope 1 : ±10% (données mesurées)"},
	{"", "Scope 2 : ±15% (facteurs moyens)"},
	{"", "Scope 3 : ±30% (estimations et facteurs monétaires)"},
	{"", ""},
	{"Exclusions", "Aucune exclusion significative"},
	{"", ""},
	{"Vérification", "Ce bilan n'a pas fait l'objet d'une vérification externe"},
}

func (e *ademeExporter) methodologySheet(wb *spreadsheet.Workbook) error {
	const sheet = sheetMethodologie
	if err := wb.AddSheet(sheet); err != nil {
		return err
	}
	if err := wb.Title(sheet, "MÉTHODOLOGIE ET RÉFÉRENCES", "C"); err != nil {
		return err
	}
	for i, r := range ademeMethodology {
		row := 3 + i
		if err := wb.SetRow(sheet, row, r[0], r[1]); err != nil {
			return err
		}
		if r[0] != "" && r[1] != "" {
			if err := wb.Bold(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(1, row)); err != nil {
				return err
			}
		}
	}
	return wb.Widths(sheet, map[string]float64{"A": 30, "B": 60})
}

func (e *ademeExporter) actionsSheet(wb *spreadsheet.Workbook, actions []domain.Action) error {
	const sheet = sheetActions
	if err := wb.AddSheet(sheet); err != nil {
		return err
	}
	if err := wb.Title(sheet, "PLAN D'ACTIONS DE RÉDUCTION", "E"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 3,
		"Action", "Description", "Réduction estimée (%)", "Échéance", "Statut"); err != nil {
		return err
	}

	if len(actions) == 0 {
		if err := wb.Set(sheet, "A4", "Aucune action définie"); err != nil {
			return err
		}
		if err := wb.Merge(sheet, "A4", "E4"); err != nil {
			return err
		}
	}
	for i, a := range actions {
		if i == ademeMaxActions {
			break
		}
		var reduction interface{} = "-"
		if a.CO2ReductionPercent != nil {
			reduction = *a.CO2ReductionPercent
		}
		due := "-"
		if a.DueDate != nil {
			due = locale.Date(*a.DueDate)
		}
		status, ok := domain.ActionStatusLabels[a.Status]
		if !ok {
			status = "-"
		}
		description := "-"
		if a.Description != nil && *a.Description != "" {
			description = *a.Description
		}
		if err := wb.SetRow(sheet, 4+i, a.Title, description, reduction, due, status); err != nil {
			return err
		}
	}
	return wb.Widths(sheet, map[string]float64{"A": 30, "B": 40, "C": 20, "D": 15, "E": 15})
}
