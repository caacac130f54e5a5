package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"carbex/internal/cache"
	"carbex/internal/domain"
	"carbex/internal/port"
)

const settingsNamespace = "settings"

// Branding setting keys.
const (
	SettingToolName = "branding.tool_name"
	SettingCompany  = "branding.company"
	SettingWebsite  = "branding.website"
)

// DefaultBranding is used when no branding settings are stored.
var DefaultBranding = domain.Branding{
	ToolName: "Carbex",
	Company:  "Carbex SAS",
	Website:  "www.carbex.fr",
}

// SettingsService reads key/value settings through a shared cache. Writes
// and Invalidate drop every cached setting.
type SettingsService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) (*domain.Setting, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Branding(ctx context.Context) domain.Branding
	Invalidate(ctx context.Context) error
}

type settingsService struct {
	repo   port.SettingRepository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService. A nil cache disables caching.
func NewSettingsService(repo port.SettingRepository, c *cache.Cache, logger *zap.Logger) SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &settingsService{repo: repo, cache: c, logger: logger}
}

func (s *settingsService) Get(ctx context.Context, key string) (string, error) {
	cacheKey, err := s.cache.BuildKey(ctx, settingsNamespace, key)
	if err != nil {
		s.logger.Warn("settingsService.Get: cache unavailable", zap.String("key", key), zap.Error(err))
		return s.load(ctx, key)
	}

	var value string
	err = s.cache.FetchJSON(ctx, cacheKey, &value, func(ctx context.Context) (interface{}, error) {
		return s.load(ctx, key)
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *settingsService) load(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("settingsService.Get(%s): %w", key, err)
	}
	return setting.Value, nil
}

func (s *settingsService) Set(ctx context.Context, key, value string) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: setting key is required", domain.ErrValidation)
	}
	setting := &domain.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("settingsService.Set: %w", err)
	}
	if err := s.Invalidate(ctx); err != nil {
		s.logger.Warn("settingsService.Set: invalidation failed", zap.String("key", key), zap.Error(err))
	}
	return setting, nil
}

func (s *settingsService) List(ctx context.Context) ([]domain.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("settingsService.List: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Branding(ctx context.Context) domain.Branding {
	b := DefaultBranding
	for key, dst := range map[string]*string{
		SettingToolName: &b.ToolName,
		SettingCompany:  &b.Company,
		SettingWebsite:  &b.Website,
	} {
		v, err := s.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("settingsService.Branding: falling back to default",
					zap.String("key", key), zap.Error(err))
			}
			continue
		}
		if v != "" {
			*dst = v
		}
	}
	return b
}

func (s *settingsService) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx, settingsNamespace)
}
