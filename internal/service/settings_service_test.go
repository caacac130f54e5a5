package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbex/internal/cache"
	"carbex/internal/domain"
	"carbex/internal/service"
	"carbex/mocks"
)

func newSettingsCache(t *testing.T) *cache.Cache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Hour)
}

func TestSettingsService_Get_CachesValue(t *testing.T) {
	repo := new(mocks.MockSettingRepo)
	svc := service.NewSettingsService(repo, newSettingsCache(t), nil)

	repo.On("Get", mock.Anything, service.SettingToolName).
		Return(&domain.Setting{Key: service.SettingToolName, Value: "GreenCalc"}, nil).Once()

	for i := 0; i < 3; i++ {
		v, err := svc.Get(context.Background(), service.SettingToolName)
		require.NoError(t, err)
		assert.Equal(t, "GreenCalc", v)
	}
	repo.AssertExpectations(t)
}

func TestSettingsService_Set_InvalidatesCache(t *testing.T) {
	repo := new(mocks.MockSettingRepo)
	svc := service.NewSettingsService(repo, newSettingsCache(t), nil)
	ctx := context.Background()

	repo.On("Get", mock.Anything, service.SettingCompany).
		Return(&domain.Setting{Key: service.SettingCompany, Value: "Old SAS"}, nil).Once()
	v, err := svc.Get(ctx, service.SettingCompany)
	require.NoError(t, err)
	assert.Equal(t, "Old SAS", v)

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.Setting) bool {
		return s.Key == service.SettingCompany && s.Value == "New SAS"
	})).Return(nil)
	_, err = svc.Set(ctx, service.SettingCompany, "New SAS")
	require.NoError(t, err)

	repo.On("Get", mock.Anything, service.SettingCompany).
		Return(&domain.Setting{Key: service.SettingCompany, Value: "New SAS"}, nil).Once()
	v, err = svc.Get(ctx, service.SettingCompany)
	require.NoError(t, err)
	assert.Equal(t, "New SAS", v)
	repo.AssertExpectations(t)
}

func TestSettingsService_Set_RejectsEmptyKey(t *testing.T) {
	svc := service.NewSettingsService(new(mocks.MockSettingRepo), nil, nil)
	_, err := svc.Set(context.Background(), "  ", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettingsService_Branding_Defaults(t *testing.T) {
	repo := new(mocks.MockSettingRepo)
	svc := service.NewSettingsService(repo, nil, nil)

	repo.On("Get", mock.Anything, service.SettingToolName).
		Return(&domain.Setting{Key: service.SettingToolName, Value: "GreenCalc"}, nil)
	repo.On("Get", mock.Anything, service.SettingCompany).Return(nil, domain.ErrNotFound)
	repo.On("Get", mock.Anything, service.SettingWebsite).Return(nil, errors.New("timeout"))

	b := svc.Branding(context.Background())
	assert.Equal(t, "GreenCalc", b.ToolName)
	assert.Equal(t, service.DefaultBranding.Company, b.Company)
	assert.Equal(t, service.DefaultBranding.Website, b.Website)
}
