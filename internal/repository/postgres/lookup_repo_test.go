package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/repository/postgres"
)

func TestOrganizationRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewOrganizationRepo(db)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM organizations WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "sector", "employee_count", "plan", "created_at", "updated_at"}).
			AddRow(id.String(), "Acme", "FR", "Industrie", 120, "premium", now, now))

	org, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)
	require.NotNil(t, org.EmployeeCount)
	assert.Equal(t, 120, *org.EmployeeCount)
}

func TestOrganizationRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewOrganizationRepo(db)

	mock.ExpectQuery("SELECT \\* FROM organizations").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSiteRepo_GetByID_ScopedToOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSiteRepo(db)
	orgID, siteID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sites WHERE id = $1 AND organization_id = $2")).
		WithArgs(siteID, orgID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), orgID, siteID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActionRepo_ListOpenByReduction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewActionRepo(db)
	orgID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY co2_reduction_percent DESC NULLS LAST")).
		WithArgs(orgID, domain.ActionStatusCompleted, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "title", "status", "co2_reduction_percent", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), orgID.String(), "Isolation", "todo", 12.5, now, now))

	actions, err := repo.ListOpenByReduction(context.Background(), orgID, 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionStatusTodo, actions[0].Status)
}

func TestActionRepo_ListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewActionRepo(db)
	orgID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $2")).
		WithArgs(orgID, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	actions, err := repo.ListRecent(context.Background(), orgID, 20)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestCategoryRepo_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCategoryRepo(db)
	existing := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (code) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existing.String()))

	cat := &domain.Category{Code: "1.1", Name: "Sources fixes", Scope: 1}
	require.NoError(t, repo.Upsert(context.Background(), cat))
	assert.Equal(t, existing, cat.ID)
}

func TestSettingRepo_GetUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSettingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE key = $1")).
		WithArgs("branding.tool_name").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("branding.tool_name", "Carbex", time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings")).
		WithArgs("branding.company", "Acme", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := repo.Get(context.Background(), "branding.tool_name")
	require.NoError(t, err)
	assert.Equal(t, "Carbex", s.Value)

	require.NoError(t, repo.Upsert(context.Background(), &domain.Setting{Key: "branding.company", Value: "Acme"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
