package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/docx"
	"carbex/internal/domain"
	"carbex/internal/service"
)

func (d *exporterDeps) word() service.WordReportGenerator {
	return service.NewWordReportGenerator(d.builder, d.actionRepo, d.settings, d.artifacts)
}

func headings(blocks []docx.Block, style string) []string {
	var out []string
	for _, b := range blocks {
		if b.Style == style {
			out = append(out, b.Text)
		}
	}
	return out
}

func bodyText(blocks []docx.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestWordReportGenerator_Generate_SectionOrder(t *testing.T) {
	d := newExporterDeps(t)
	org := testOrganization("FR")
	data := emptyReportData(org)
	data.Methodology.FactorSource = "ADEME Base Empreinte"
	data.Summary = domain.Summary{TotalTonnes: 12.5, Scope1: domain.ScopeAmount{Tonnes: 12.5, Percent: 100}}
	data.CategoryBreakdown = []domain.CategoryBreakdownEntry{
		{Name: "Combustion fixe", Code: "1.1", Scope: 1, EmissionsTonnes: 12.5, Percent: 100},
	}
	reduction := 15.0
	actions := []domain.Action{{Title: "Isolation des bâtiments", Status: domain.ActionStatusTodo, CO2ReductionPercent: &reduction}}

	d.builder.On("Build", mock.Anything, org.ID, mock.Anything, mock.Anything, domain.ReportTypeDetailed, (*uuid.UUID)(nil)).Return(data, nil)
	d.actionRepo.On("ListOpenByReduction", mock.Anything, org.ID, 10).Return(actions, nil)
	uploads := captureUploads(d.storage)

	key, err := d.word().Generate(context.Background(), org.ID, 2024, nil)
	require.NoError(t, err)
	assert.Regexp(t, `/bilan-carbone_2024_.*\.docx$`, key)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", uploads.types[key])

	blocks, err := docx.ReadBlocks(uploads.get(key))
	require.NoError(t, err)

	assert.Equal(t, []string{"BILAN CARBONE"}, headings(blocks, "Title"))
	assert.Equal(t, []string{
		"Sommaire",
		"1. Introduction",
		"2. Méthodologie",
		"3. Résultats",
		"4. Analyse par catégorie",
		"5. Évolution mensuelle",
		"6. Plan d'action",
		"7. Annexes",
	}, headings(blocks, "Heading1"))
	assert.Equal(t, []string{
		"Scope 1 - Émissions directes",
		"Scope 2 - Émissions indirectes liées à l'énergie",
		"Scope 3 - Autres émissions indirectes",
	}, headings(blocks, "Heading3"))

	text := bodyText(blocks)
	assert.Contains(t, text, "Acme SAS")
	assert.Contains(t, text, "Année 2024")
	assert.Contains(t, text, "Généré par Carbex - www.carbex.fr")
	assert.Contains(t, text, "Combustion fixe")
	assert.Contains(t, text, "Isolation des bâtiments")
	assert.NotContains(t, text, "Graphique")
	assert.NotContains(t, text, "Aucune donnée disponible")
}

func TestWordReportGenerator_Generate_EmptyData(t *testing.T) {
	d := newExporterDeps(t)
	org := testOrganization("FR")
	d.builder.On("Build", mock.Anything, org.ID, mock.Anything, mock.Anything, domain.ReportTypeDetailed, mock.Anything).
		Return(emptyReportData(org), nil)
	d.actionRepo.On("ListOpenByReduction", mock.Anything, org.ID, 10).Return([]domain.Action{}, nil)
	uploads := captureUploads(d.storage)

	key, err := d.word().Generate(context.Background(), org.ID, 2024, nil)
	require.NoError(t, err)

	blocks, err := docx.ReadBlocks(uploads.get(key))
	require.NoError(t, err)
	text := bodyText(blocks)
	assert.Contains(t, text, "Aucune donnée disponible pour cette période.")
	assert.Contains(t, text, "Aucune action de réduction n'a encore été définie. Utilisez la plateforme Carbex pour créer votre plan de transition.")
}

func TestWordReportGenerator_Generate_NotFound(t *testing.T) {
	d := newExporterDeps(t)
	orgID := uuid.New()
	d.builder.On("Build", mock.Anything, orgID, mock.Anything, mock.Anything, domain.ReportTypeDetailed, mock.Anything).
		Return(nil, domain.ErrNotFound)

	_, err := d.word().Generate(context.Background(), orgID, 2024, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}
