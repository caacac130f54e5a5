package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"carbex/internal/docx"
	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
)

const (
	wordTopCategories = 15
	wordTopActions    = 10
	noDataSentence    = "Aucune donnée disponible pour cette période."
)

// WordReportGenerator produces the narrative Bilan Carbone document.
type WordReportGenerator interface {
	Generate(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error)
}

type wordReportGenerator struct {
	builder    ReportBuilder
	actionRepo port.ActionRepository
	settings   SettingsService
	artifacts  *ArtifactStore
	now        func() time.Time
}

// NewWordReportGenerator creates a new WordReportGenerator.
func NewWordReportGenerator(builder ReportBuilder, actionRepo port.ActionRepository, settings SettingsService, artifacts *ArtifactStore) WordReportGenerator {
	return &wordReportGenerator{
		builder:    builder,
		actionRepo: actionRepo,
		settings:   settings,
		artifacts:  artifacts,
		now:        time.Now,
	}
}

func (g *wordReportGenerator) Generate(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	start, end := YearPeriod(year)
	data, err := g.builder.Build(ctx, organizationID, start, end, domain.ReportTypeDetailed, siteID)
	if err != nil {
		return "", fmt.Errorf("wordReportGenerator.Generate: %w", err)
	}
	actions, err := g.actionRepo.ListOpenByReduction(ctx, organizationID, wordTopActions)
	if err != nil {
		return "", fmt.Errorf("wordReportGenerator.Generate: actions: %w", err)
	}
	branding := g.settings.Branding(ctx)

	key := g.artifacts.Key(organizationID, ArtifactWord, year, "docx")
	return g.artifacts.Save(ctx, key, contentTypeDOCX, func(w io.Writer) error {
		doc := docx.New(docx.Properties{
			Title:   "Bilan Carbone " + strconv.Itoa(year),
			Subject: "Bilan Carbone - " + data.Organization.Name,
			Creator: branding.ToolName,
			Company: branding.Company,
			Created: g.now(),
		})
		sec := wordSections{doc: doc, data: data, year: year, branding: branding, now: g.now()}
		sec.cover()
		sec.contents()
		sec.introduction()
		sec.methodology()
		sec.results()
		sec.categories()
		sec.monthly()
		sec.actionPlan(actions)
		sec.appendices()
		_, err := doc.WriteTo(w)
		return err
	})
}

type wordSections struct {
	doc      *docx.Document
	data     *domain.ReportData
	year     int
	branding domain.Branding
	now      time.Time
}

func tonnesLabel(v float64) string {
	return locale.Number(v, 2)
}

func (s wordSections) cover() {
	d := s.doc
	d.Title("BILAN CARBONE")
	d.Paragraph(docx.AlignCenter, docx.Run{Text: s.data.Organization.Name, Bold: true, Size: 40})
	d.Paragraph(docx.AlignCenter, docx.Run{Text: fmt.Sprintf("Année %d", s.year), Size: 32, Color: "2E75B6"})
	if s.data.Site != nil {
		d.Paragraph(docx.AlignCenter, docx.Run{Text: "Site : " + s.data.Site.Name, Size: 24})
	}

	sector := s.data.Organization.Sector
	if sector == "" {
		sector = "Non spécifié"
	}
	employees := "Non spécifié"
	if s.data.Organization.EmployeeCount != nil {
		employees = strconv.Itoa(*s.data.Organization.EmployeeCount) + " salariés"
	}
	d.Table([]string{"Informations", ""}, [][]string{
		{"Secteur", sector},
		{"Pays", s.data.Organization.Country},
		{"Effectif", employees},
	})

	d.Paragraph(docx.AlignCenter, docx.Run{
		Text:   fmt.Sprintf("Rapport généré le %s à %s", locale.Date(s.now), s.now.Format("15:04")),
		Italic: true, Size: 18,
	})
	d.Paragraph(docx.AlignCenter, docx.Run{
		Text: fmt.Sprintf("Généré par %s - %s", s.branding.ToolName, s.branding.Website),
		Size: 18, Color: "808080",
	})
	d.PageBreak()
}

func (s wordSections) contents() {
	s.doc.Heading(1, "Sommaire")
	s.doc.TOC("Clic droit puis « Mettre à jour les champs » pour afficher le sommaire.")
	s.doc.PageBreak()
}

func (s wordSections) introduction() {
	d := s.doc
	d.Heading(1, "1. Introduction")
	d.Heading(2, "1.1 Contexte")
	d.Text(fmt.Sprintf("Ce rapport présente le bilan des émissions de gaz à effet de serre (GES) de %s pour l'année %d. "+
		"Il a été réalisé conformément aux méthodologies reconnues internationalement.", s.data.Organization.Name, s.year))

	d.Heading(2, "1.2 Périmètre")
	d.Text("Le périmètre de ce bilan couvre :")
	d.Bullet(docx.Run{Text: "Scope 1", Bold: true}, docx.Run{Text: " : émissions directes des sources détenues ou contrôlées"})
	d.Bullet(docx.Run{Text: "Scope 2", Bold: true}, docx.Run{Text: " : émissions indirectes liées à la consommation d'énergie"})
	d.Bullet(docx.Run{Text: "Scope 3", Bold: true}, docx.Run{Text: " : autres émissions indirectes de la chaîne de valeur"})

	d.Heading(2, "1.3 Objectifs")
	d.Text("Ce bilan vise à quantifier les émissions, identifier les principaux postes d'émission " +
		"et définir un plan d'action de réduction.")
}

func (s wordSections) methodology() {
	d := s.doc
	m := s.data.Methodology
	d.Heading(1, "2. Méthodologie")

	d.Heading(2, "2.1 Référentiels utilisés")
	for _, ref := range []string{
		"ISO 14064-1 : quantification et déclaration des émissions de GES",
		"ISO 14067 : empreinte carbone des produits",
		"GHG Protocol : standard international de comptabilisation",
		"Bilan Carbone® ADEME : méthode française de référence",
	} {
		d.Bullet(docx.Run{Text: ref})
	}

	d.Heading(2, "2.2 Sources des facteurs d'émission")
	d.Text(fmt.Sprintf("Les facteurs d'émission proviennent de : %s (version %s). Potentiels de réchauffement : %s.",
		m.FactorSource, m.Version, m.GWPSource))

	d.Heading(2, "2.3 Méthodes de calcul")
	d.Table([]string{"Méthode", "Description", "Application"}, [][]string{
		{"Spend-based", "Montant dépensé × facteur monétaire", "Achats, services"},
		{"Distance-based", "Distance parcourue × facteur par km", "Transports, déplacements"},
		{"Energy-based", "Consommation × facteur énergétique", "Électricité, gaz, carburants"},
	})
	d.Paragraph(docx.AlignLeft, docx.Run{
		Text:   "Les incertitudes varient selon la qualité des données : ±10 % pour le Scope 1, ±15 % pour le Scope 2 et ±30 % pour le Scope 3.",
		Italic: true,
	})
}

func (s wordSections) results() {
	d := s.doc
	sum := s.data.Summary
	d.Heading(1, "3. Résultats")

	d.Heading(2, "3.1 Synthèse des émissions")
	d.Table([]string{"Indicateur", "Valeur", "Unité"}, [][]string{
		{"Émissions totales", tonnesLabel(sum.TotalTonnes), "tCO₂e"},
		{"Scope 1", tonnesLabel(sum.Scope1.Tonnes), "tCO₂e"},
		{"Scope 2", tonnesLabel(sum.Scope2.Tonnes), "tCO₂e"},
		{"Scope 3", tonnesLabel(sum.Scope3.Tonnes), "tCO₂e"},
		{"Nombre d'enregistrements", strconv.Itoa(sum.RecordCount), "-"},
	})
	d.Text(fmt.Sprintf("Répartition : Scope 1 = %s, Scope 2 = %s, Scope 3 = %s",
		locale.PercentLabel(sum.Scope1.Percent), locale.PercentLabel(sum.Scope2.Percent), locale.PercentLabel(sum.Scope3.Percent)))

	d.Heading(2, "3.2 Détail par scope")
	titles := map[int]string{
		1: "Scope 1 - Émissions directes",
		2: "Scope 2 - Émissions indirectes liées à l'énergie",
		3: "Scope 3 - Autres émissions indirectes",
	}
	for _, sb := range s.data.ScopeBreakdown {
		title, ok := titles[sb.Scope]
		if !ok {
			continue
		}
		d.Heading(3, title)
		d.Text(fmt.Sprintf("Émissions : %s tCO₂e (%s du total), %d enregistrement(s).",
			tonnesLabel(sb.Tonnes), locale.PercentLabel(sb.Percent), sb.Count))
	}
}

func (s wordSections) categories() {
	d := s.doc
	d.Heading(1, "4. Analyse par catégorie")
	if len(s.data.CategoryBreakdown) == 0 {
		d.Text(noDataSentence)
		return
	}
	d.Text("Principales catégories d'émission :")
	rows := make([][]string, 0, wordTopCategories)
	for i, c := range s.data.CategoryBreakdown {
		if i == wordTopCategories {
			break
		}
		rows = append(rows, []string{
			c.Name,
			"Scope " + strconv.Itoa(c.Scope),
			tonnesLabel(c.EmissionsTonnes),
			locale.Number(c.Percent, 1),
		})
	}
	d.Table([]string{"Catégorie", "Scope", "Émissions (tCO₂e)", "Part (%)"}, rows)
}

func (s wordSections) monthly() {
	d := s.doc
	d.Heading(1, "5. Évolution mensuelle")
	d.Text("L'évolution mensuelle des émissions permet d'identifier les variations saisonnières et les tendances.")
	if len(s.data.MonthlyTrend) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.data.MonthlyTrend))
	for _, m := range s.data.MonthlyTrend {
		rows = append(rows, []string{
			m.Label, tonnesLabel(m.Scope1), tonnesLabel(m.Scope2), tonnesLabel(m.Scope3), tonnesLabel(m.Total),
		})
	}
	d.Table([]string{"Mois", "Scope 1", "Scope 2", "Scope 3", "Total"}, rows)
}

func (s wordSections) actionPlan(actions []domain.Action) {
	d := s.doc
	d.Heading(1, "6. Plan d'action")
	if len(actions) == 0 {
		d.Text(fmt.Sprintf("Aucune action de réduction n'a encore été définie. "+
			"Utilisez la plateforme %s pour créer votre plan de transition.", s.branding.ToolName))
	} else {
		d.Text("Actions de réduction prioritaires :")
		rows := make([][]string, 0, len(actions))
		for i, a := range actions {
			if i == wordTopActions {
				break
			}
			reduction := "-"
			if a.CO2ReductionPercent != nil {
				reduction = locale.Number(*a.CO2ReductionPercent, 1) + " %"
			}
			difficulty := "-"
			if a.Difficulty != nil && *a.Difficulty != "" {
				difficulty = *a.Difficulty
			}
			status := domain.ActionStatusLabels[a.Status]
			if status == "" {
				status = "-"
			}
			rows = append(rows, []string{a.Title, reduction, difficulty, status})
		}
		d.Table([]string{"Action", "Réduction estimée", "Difficulté", "Statut"}, rows)
	}

	d.Heading(2, "6.1 Recommandations générales")
	for _, r := range []string{
		"Fixer des objectifs de réduction alignés sur la trajectoire 1,5 °C (SBTi)",
		"Prioriser les postes les plus émetteurs identifiés dans ce bilan",
		"Impliquer les collaborateurs et les fournisseurs dans la démarche",
		"Mettre à jour le bilan chaque année pour suivre les progrès",
	} {
		d.Bullet(docx.Run{Text: r})
	}
}

func (s wordSections) appendices() {
	d := s.doc
	d.Heading(1, "7. Annexes")

	d.Heading(2, "7.1 Glossaire")
	for _, g := range [][2]string{
		{"GES", "Gaz à effet de serre"},
		{"tCO₂e", "Tonne équivalent CO₂"},
		{"Scope 1", "Émissions directes"},
		{"Scope 2", "Émissions indirectes liées à l'énergie"},
		{"Scope 3", "Autres émissions indirectes"},
		{"SBTi", "Science Based Targets initiative"},
		{"GHG Protocol", "Greenhouse Gas Protocol"},
	} {
		d.Bullet(docx.Run{Text: g[0], Bold: true}, docx.Run{Text: " : " + g[1]})
	}

	d.Heading(2, "7.2 Sources et références")
	refs := append([]string{}, s.data.Methodology.URLs...)
	refs = append(refs,
		"GHG Protocol : https://ghgprotocol.org",
		"ADEME Base Empreinte : https://base-empreinte.ademe.fr",
		"Science Based Targets : https://sciencebasedtargets.org",
	)
	for _, r := range refs {
		d.Bullet(docx.Run{Text: r})
	}
}
