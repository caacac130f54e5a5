package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/service"
	"carbex/mocks"
)

func TestExportOptions_Input(t *testing.T) {
	orgID, userID, siteID := uuid.New(), uuid.New(), uuid.New()
	opts := exportOptions{orgID: orgID.String(), userID: userID.String(), siteID: siteID.String(), year: 2024, kind: "summary"}

	in, err := opts.input("word")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFormatDocx, in.Format)
	assert.Equal(t, domain.ReportTypeSummary, in.Type)
	assert.Equal(t, orgID, in.OrganizationID)
	assert.Equal(t, userID, in.UserID)
	require.NotNil(t, in.SiteID)
	assert.Equal(t, siteID, *in.SiteID)

	_, err = opts.input("xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)

	opts.orgID = "acme"
	_, err = opts.input("pdf")
	assert.ErrorContains(t, err, "--org")
}

func TestRunExport_WritesArtifact(t *testing.T) {
	reports := new(mocks.MockReportService)
	orgID, reportID := uuid.New(), uuid.New()
	in := service.GenerateReportInput{OrganizationID: orgID, Format: domain.ExportFormatAdeme, Year: 2024, Async: true}

	reports.On("Generate", mock.Anything, mock.MatchedBy(func(in service.GenerateReportInput) bool {
		return !in.Async
	})).Return(&domain.Report{ID: reportID, Status: domain.ReportStatusCompleted}, nil)
	reports.On("Open", mock.Anything, orgID, reportID).Return(&service.ReportFile{
		Data:     []byte("xlsx-bytes"),
		Filename: "ademe_2024_20250102_030405_000000.xlsx",
	}, nil)

	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer
	require.NoError(t, runExport(context.Background(), reports, in, dir, &out))

	data, err := os.ReadFile(filepath.Join(dir, "ademe_2024_20250102_030405_000000.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(data))
	assert.Contains(t, out.String(), reportID.String())
	reports.AssertExpectations(t)
}

func TestRunExport_GenerateFailure(t *testing.T) {
	reports := new(mocks.MockReportService)
	reports.On("Generate", mock.Anything, mock.Anything).
		Return(&domain.Report{ID: uuid.New(), Status: domain.ReportStatusFailed}, domain.ErrRenderFailed)

	err := runExport(context.Background(), reports, service.GenerateReportInput{}, t.TempDir(), &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	reports.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeedCategories(t *testing.T) {
	repo := new(mocks.MockCategoryRepo)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool { return c.Code != "bad" })).Return(nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool { return c.Code == "bad" })).
		Return(errors.New("constraint"))

	n, err := seedCategories(context.Background(), repo, []domain.Category{
		{Code: "1.1", Name: "Combustion", Scope: 1},
		{Code: "2.1", Name: "Électricité", Scope: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = seedCategories(context.Background(), repo, []domain.Category{
		{Code: "1.1", Name: "Combustion", Scope: 1},
		{Code: "bad", Name: "Bad", Scope: 1},
	})
	assert.ErrorContains(t, err, "category bad")
	assert.Equal(t, 1, n)
}

func TestLoadCategories(t *testing.T) {
	builtin, err := loadCategories("")
	require.NoError(t, err)
	assert.NotEmpty(t, builtin)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`categories:
  - code: "3.6"
    name: Déplacements professionnels
    scope: 3
    ghg_category: 6
`), 0o600))
	cats, err := loadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 3, cats[0].Scope)

	_, err = loadCategories(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIssueToken_RoundTrips(t *testing.T) {
	auth := service.NewAuthService(config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "carbex"})
	orgID, userID := uuid.New(), uuid.New()

	var out bytes.Buffer
	require.NoError(t, issueToken(auth, tokenOptions{
		orgID: orgID.String(), userID: userID.String(), email: "a@b.fr", role: "member",
	}, &out))

	token := strings.SplitN(out.String(), "\n", 2)[0]
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, orgID, claims.OrganizationID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestIssueToken_RejectsUnknownRole(t *testing.T) {
	auth := service.NewAuthService(config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour})
	err := issueToken(auth, tokenOptions{orgID: uuid.NewString(), role: "superuser"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRootCmd_RejectsUnknownExportKind(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"export", "xlsx", "--org", uuid.NewString(), "--user", uuid.NewString()})
	assert.Error(t, root.Execute())
}
