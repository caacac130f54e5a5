package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
	"carbex/internal/spreadsheet"
	"carbex/internal/taxonomy"
)

const (
	ghgHistoryYears = 5

	colorScope1Total = "FDE9D9"
	colorScope2Total = "FCE4D6"
	colorScope3Total = "DDEBF7"
	colorSection     = "D9E1F2"
)

// GhgExporter produces the GHG Protocol Corporate Standard workbook.
type GhgExporter interface {
	Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error)
}

// Scope2Totals splits Scope 2 emissions by accounting method. Records
// without a method are counted as location-based.
type Scope2Totals struct {
	LocationKg float64
	MarketKg   float64
}

// ReportedKg is the Scope 2 figure carried into the inventory total: the
// larger of the two methods.
func (s Scope2Totals) ReportedKg() float64 {
	return math.Max(s.LocationKg, s.MarketKg)
}

// SplitScope2 sums Scope 2 records per method.
func SplitScope2(records []domain.EmissionDetail) Scope2Totals {
	var t Scope2Totals
	for _, r := range records {
		if r.Scope2Method != nil && *r.Scope2Method == domain.Scope2MarketBased {
			t.MarketKg += r.CO2eKg
		} else {
			t.LocationKg += r.CO2eKg
		}
	}
	return t
}

type ghgInventory struct {
	org       *domain.Organization
	year      int
	scope1    []domain.EmissionDetail
	scope2    []domain.EmissionDetail
	scope3    map[int]float64
	history   []domain.Report
	s1Tonnes  float64
	s2Tonnes  float64
	s3Tonnes  float64
	s2Split   Scope2Totals
	allTonnes float64
}

type ghgExporter struct {
	orgRepo      port.OrganizationRepository
	emissionRepo port.EmissionRepository
	reportRepo   port.ReportRepository
	artifacts    *ArtifactStore
}

// NewGhgExporter creates a new GhgExporter.
func NewGhgExporter(orgRepo port.OrganizationRepository, emissionRepo port.EmissionRepository, reportRepo port.ReportRepository, artifacts *ArtifactStore) GhgExporter {
	return &ghgExporter{
		orgRepo:      orgRepo,
		emissionRepo: emissionRepo,
		reportRepo:   reportRepo,
		artifacts:    artifacts,
	}
}

func (e *ghgExporter) Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	org, err := e.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return "", fmt.Errorf("ghgExporter.Export: %w", err)
	}

	inv, err := e.collect(ctx, org, year, siteID)
	if err != nil {
		return "", fmt.Errorf("ghgExporter.Export: %w", err)
	}

	key := e.artifacts.Key(organizationID, ArtifactGHG, year, "xlsx")
	return e.artifacts.Save(ctx, key, contentTypeXLSX, func(w io.Writer) error {
		wb, err := spreadsheet.New()
		if err != nil {
			return err
		}
		defer func() { _ = wb.Close() }()

		sheets := []struct {
			name  string
			write func(*spreadsheet.Workbook, *ghgInventory) error
		}{
			{"Summary", ghgSummarySheet},
			{"Scope 1", ghgScope1Sheet},
			{"Scope 2", ghgScope2Sheet},
			{"Scope 3", ghgScope3Sheet},
			{"Methodology", ghgMethodologySheet},
			{"Historical Data", ghgHistorySheet},
		}
		for _, s := range sheets {
			if err := wb.AddSheet(s.name); err != nil {
				return err
			}
			if err := s.write(wb, inv); err != nil {
				return fmt.Errorf("%s sheet: %w", s.name, err)
			}
		}
		_, err = wb.WriteTo(w)
		return err
	})
}

func (e *ghgExporter) collect(ctx context.Context, org *domain.Organization, year int, siteID *uuid.UUID) (*ghgInventory, error) {
	start, end := YearPeriod(year)
	base := domain.EmissionQuery{OrganizationID: org.ID, SiteID: siteID, Start: start, End: end}
	scoped := func(scope int) domain.EmissionQuery {
		q := base
		q.Scope = &scope
		return q
	}

	inv := &ghgInventory{org: org, year: year, scope3: map[int]float64{}}
	var categories []domain.CategoryTotal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		inv.scope1, err = e.emissionRepo.ListDetailed(gctx, scoped(1))
		return err
	})
	g.Go(func() (err error) {
		inv.scope2, err = e.emissionRepo.ListDetailed(gctx, scoped(2))
		return err
	})
	g.Go(func() (err error) {
		categories, err = e.emissionRepo.TotalsByCategory(gctx, scoped(3))
		return err
	})
	g.Go(func() (err error) {
		inv.history, err = e.reportRepo.ListCompleted(gctx, org.ID, ghgHistoryYears)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var s1Kg, s3Kg float64
	for _, r := range inv.scope1 {
		s1Kg += r.CO2eKg
	}
	for _, c := range categories {
		s3Kg += c.TotalKg
		if c.GHGCategory != nil {
			inv.scope3[*c.GHGCategory] += c.TotalKg
		}
	}
	inv.s2Split = SplitScope2(inv.scope2)
	inv.s1Tonnes = locale.Tonnes(s1Kg, 2)
	inv.s2Tonnes = locale.Tonnes(inv.s2Split.ReportedKg(), 2)
	inv.s3Tonnes = locale.Tonnes(s3Kg, 2)
	inv.allTonnes = locale.Round(inv.s1Tonnes+inv.s2Tonnes+inv.s3Tonnes, 2)
	return inv, nil
}

func ghgSummarySheet(wb *spreadsheet.Workbook, inv *ghgInventory) error {
	const sheet = "Summary"
	if err := wb.Title(sheet, "GHG EMISSIONS INVENTORY - SUMMARY", "E"); err != nil {
		return err
	}

	info := [][2]string{
		{"Organization:", inv.org.Name},
		{"Reporting Year:", strconv.Itoa(inv.year)},
		{"Reporting Period:", fmt.Sprintf("January 1, %d - December 31, %d", inv.year, inv.year)},
		{"Consolidation Approach:", "Operational Control"},
	}
	for i, r := range info {
		if err := wb.SetRow(sheet, 3+i, r[0], r[1]); err != nil {
			return err
		}
	}
	if err := wb.Bold(sheet, "A3", "A6"); err != nil {
		return err
	}

	if err := wb.Set(sheet, "A8", "EMISSIONS SUMMARY"); err != nil {
		return err
	}
	if err := wb.Bold(sheet, "A8", "A8"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 10, "Scope", "Description", "Emissions (tCO₂e)", "% of Total"); err != nil {
		return err
	}

	scopes := []struct {
		label, description string
		tonnes             float64
	}{
		{"Scope 1", "Direct GHG emissions", inv.s1Tonnes},
		{"Scope 2", "Indirect GHG emissions from electricity", inv.s2Tonnes},
		{"Scope 3", "Other indirect GHG emissions", inv.s3Tonnes},
	}
	for i, s := range scopes {
		share := locale.Percent(s.tonnes, inv.allTonnes, 1)
		if err := wb.SetRow(sheet, 11+i, s.label, s.description, s.tonnes, strconv.FormatFloat(share, 'f', -1, 64)+"%"); err != nil {
			return err
		}
	}
	if err := wb.Number(sheet, "C11", "C13"); err != nil {
		return err
	}
	if err := wb.SetRow(sheet, 14, "TOTAL", "All scopes", inv.allTonnes, "100%"); err != nil {
		return err
	}
	if err := wb.Fill(sheet, "A14", "D14", "E2EFDA"); err != nil {
		return err
	}

	if err := wb.SetRow(sheet, 17, "Prepared in accordance with:", "GHG Protocol Corporate Accounting and Reporting Standard"); err != nil {
		return err
	}
	if err := wb.SetRow(sheet, 18, "Reference:", "https://ghgprotocol.org/corporate-standard"); err != nil {
		return err
	}
	return wb.Widths(sheet, map[string]float64{"A": 28, "B": 45, "C": 20, "D": 12, "E": 12})
}

func ghgScope1Sheet(wb *spreadsheet.Workbook, inv *ghgInventory) error {
	const sheet = "Scope 1"
	if err := wb.Title(sheet, "SCOPE 1 - DIRECT GHG EMISSIONS", "F"); err != nil {
		return err
	}
	if err := wb.Set(sheet, "A3", "Direct emissions from sources owned or controlled by the organization."); err != nil {
		return err
	}
	if err := wb.Merge(sheet, "A3", "F3"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 5,
		"Category", "Source", "Activity Data", "Unit", "Emission Factor", "Emissions (tCO₂e)"); err != nil {
		return err
	}

	byCode := map[string][]domain.EmissionDetail{}
	for _, r := range inv.scope1 {
		byCode[r.CategoryCode] = append(byCode[r.CategoryCode], r)
	}

	row := 6
	for _, cat := range taxonomy.Scope1Categories() {
		label := cat.Code + " - " + cat.Name
		records := byCode[cat.Code]
		if len(records) == 0 {
			if err := wb.SetRow(sheet, row, label, "No data", nil, nil, nil, 0); err != nil {
				return err
			}
			row++
			continue
		}
		for _, r := range records {
			if err := wb.SetRow(sheet, row, label, r.SourceName, r.Quantity, r.Unit, r.FactorValue,
				locale.Tonnes(r.CO2eKg, 4)); err != nil {
				return err
			}
			row++
		}
	}

	row++
	if err := wb.SetRow(sheet, row, nil, nil, nil, nil, "TOTAL SCOPE 1:", inv.s1Tonnes); err != nil {
		return err
	}
	if err := wb.Fill(sheet, spreadsheet.Cell(5, row), spreadsheet.Cell(6, row), colorScope1Total); err != nil {
		return err
	}
	return wb.Widths(sheet, map[string]float64{"A": 30, "B": 30, "C": 15, "D": 10, "E": 18, "F": 18})
}

func ghgScope2Sheet(wb *spreadsheet.Workbook, inv *ghgInventory) error {
	const sheet = "Scope 2"
	if err := wb.Title(sheet, "SCOPE 2 - INDIRECT GHG EMISSIONS FROM ELECTRICITY", "F"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 3,
		"Category", "Source", "Consumption (kWh)", "Method", "Emission Factor", "Emissions (tCO₂e)"); err != nil {
		return err
	}

	var location, market []domain.EmissionDetail
	for _, r := range inv.scope2 {
		if r.Scope2Method != nil && *r.Scope2Method == domain.Scope2MarketBased {
			market = append(market, r)
		} else {
			location = append(location, r)
		}
	}

	sections := []struct {
		title, method, defaultSource string
		records                      []domain.EmissionDetail
	}{
		{"2.1 - Electricity (Location-based)", "Location-based", "Grid", location},
		{"2.1 - Electricity (Market-based)", "Market-based", "Contract", market},
	}
	row := 4
	for _, s := range sections {
		if err := wb.Set(sheet, spreadsheet.Cell(1, row), s.title); err != nil {
			return err
		}
		if err := wb.Merge(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(6, row)); err != nil {
			return err
		}
		if err := wb.Bold(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(1, row)); err != nil {
			return err
		}
		row++
		if len(s.records) == 0 {
			if err := wb.SetRow(sheet, row, "Electricity", "No data", nil, s.method, nil, 0); err != nil {
				return err
			}
			row++
		}
		for _, r := range s.records {
			source := r.SourceName
			if source == "" {
				source = s.defaultSource
			}
			if err := wb.SetRow(sheet, row, "Electricity", source, r.Quantity, s.method, r.FactorValue,
				locale.Tonnes(r.CO2eKg, 4)); err != nil {
				return err
			}
			row++
		}
		row++
	}

	totals := []struct {
		label string
		kg    float64
	}{
		{"Location-based total:", inv.s2Split.LocationKg},
		{"Market-based total:", inv.s2Split.MarketKg},
	}
	for _, t := range totals {
		if err := wb.SetRow(sheet, row, nil, nil, nil, t.label, nil, locale.Tonnes(t.kg, 2)); err != nil {
			return err
		}
		if err := wb.Bold(sheet, spreadsheet.Cell(4, row), spreadsheet.Cell(4, row)); err != nil {
			return err
		}
		row++
	}
	row++
	if err := wb.SetRow(sheet, row, nil, nil, nil, nil, "TOTAL SCOPE 2:", inv.s2Tonnes); err != nil {
		return err
	}
	if err := wb.Fill(sheet, spreadsheet.Cell(5, row), spreadsheet.Cell(6, row), colorScope2Total); err != nil {
		return err
	}
	if err := wb.Set(sheet, spreadsheet.Cell(1, row+2),
		"Scope 2 is reported as the higher of the location-based and market-based totals."); err != nil {
		return err
	}
	return wb.Widths(sheet, map[string]float64{"A": 30, "B": 25, "C": 18, "D": 22, "E": 18, "F": 18})
}

func ghgScope3Sheet(wb *spreadsheet.Workbook, inv *ghgInventory) error {
	const sheet = "Scope 3"
	if err := wb.Title(sheet, "SCOPE 3 - OTHER INDIRECT GHG EMISSIONS", "E"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 3, "Category", "Description", "Included", "Emissions (tCO₂e)", "Data Quality"); err != nil {
		return err
	}

	row := 4
	for n := 1; n <= taxonomy.Scope3CategoryCount; n++ {
		kg, ok := inv.scope3[n]
		included, quality := "Not relevant", "-"
		if ok && kg > 0 {
			included, quality = "Yes", "Estimated"
		}
		if err := wb.SetRow(sheet, row, "Category "+strconv.Itoa(n), taxonomy.Scope3CategoryName(n),
			included, locale.Tonnes(kg, 2), quality); err != nil {
			return err
		}
		row++
	}
	if err := wb.Number(sheet, "D4", spreadsheet.Cell(4, row-1)); err != nil {
		return err
	}

	row++
	if err := wb.SetRow(sheet, row, nil, nil, "TOTAL SCOPE 3:", inv.s3Tonnes); err != nil {
		return err
	}
	if err := wb.Fill(sheet, spreadsheet.Cell(3, row), spreadsheet.Cell(4, row), colorScope3Total); err != nil {
		return err
	}
	return wb.Widths(sheet, map[string]float64{"A": 14, "B": 45, "C": 14, "D": 18, "E": 14})
}

var ghgMethodology = []struct {
	section string
	lines   []string
}{
	{"ORGANIZATIONAL BOUNDARY", []string{
		"Consolidation approach: Operational Control",
		"All facilities under operational control are included.",
	}},
	{"OPERATIONAL BOUNDARY", []string{
		"Scope 1: Direct emissions from owned or controlled sources",
		"Scope 2: Indirect emissions from purchased electricity, steam, heating and cooling",
		"Scope 3: Other indirect emissions in the value chain",
	}},
	{"EMISSION FACTORS", []string{
		"Primary source: ADEME Base Empreinte (France)",
		"Electricity: country-specific grid factors",
		"Global Warming Potentials: IPCC AR6 (100-year)",
	}},
	{"SCOPE 2 REPORTING", []string{
		"Both location-based and market-based totals are calculated.",
		"The higher of the two is carried into the inventory total.",
	}},
	{"DATA QUALITY", []string{
		"Activity data is collected from invoices, meters and accounting records.",
		"Scope 3 figures rely on spend-based estimates where activity data is missing.",
	}},
	{"VERIFICATION", []string{
		"This inventory has not been externally verified.",
	}},
}

func ghgMethodologySheet(wb *spreadsheet.Workbook, _ *ghgInventory) error {
	const sheet = "Methodology"
	if err := wb.Title(sheet, "METHODOLOGY AND VERIFICATION", "D"); err != nil {
		return err
	}
	row := 3
	for _, s := range ghgMethodology {
		if err := wb.Set(sheet, spreadsheet.Cell(1, row), s.section); err != nil {
			return err
		}
		if err := wb.BoldFill(sheet, spreadsheet.Cell(1, row), spreadsheet.Cell(4, row), colorSection); err != nil {
			return err
		}
		row++
		for _, line := range s.lines {
			if err := wb.Set(sheet, spreadsheet.Cell(1, row), line); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return wb.Widths(sheet, map[string]float64{"A": 90})
}

func ghgHistorySheet(wb *spreadsheet.Workbook, inv *ghgInventory) error {
	const sheet = "Historical Data"
	if err := wb.Title(sheet, "HISTORICAL EMISSIONS DATA", "E"); err != nil {
		return err
	}
	if err := wb.TableHeader(sheet, 3,
		"Year", "Scope 1 (tCO₂e)", "Scope 2 (tCO₂e)", "Scope 3 (tCO₂e)", "Total (tCO₂e)"); err != nil {
		return err
	}
	if len(inv.history) == 0 {
		if err := wb.Set(sheet, "A4", "No historical data available"); err != nil {
			return err
		}
		return wb.Merge(sheet, "A4", "E4")
	}
	for i, r := range inv.history {
		var total interface{} = "-"
		if r.TotalEmissionsKg != nil {
			total = locale.Tonnes(*r.TotalEmissionsKg, 2)
		}
		if err := wb.SetRow(sheet, 4+i, r.Year, "-", "-", "-", total); err != nil {
			return err
		}
	}
	return wb.Widths(sheet, map[string]float64{"A": 10, "B": 18, "C": 18, "D": 18, "E": 18})
}
