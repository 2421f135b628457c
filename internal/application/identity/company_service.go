package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/cache"
	"github.com/printdesk/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const brandingCacheKey = "company:branding"

// Logo errors
var (
	ErrStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	ErrLogoTooLarge    = shared.NewDomainError("INVALID_LOGO", "Logo file is too large")
	ErrLogoFormat      = shared.NewDomainError("INVALID_LOGO", "Logo format is not allowed")
	ErrLogoEmpty       = shared.NewDomainError("INVALID_LOGO", "Logo file is empty")
)

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
}

// CompanyServiceConfig holds the company service settings
type CompanyServiceConfig struct {
	DefaultTradeName   string
	BrandingTTL        time.Duration
	LogoURLExpiration  time.Duration
	MaxLogoSize        int64
	AllowedLogoFormats []string
}

// CompanyService manages the singleton company profile.
// The profile is loaded once and kept in memory, writes go through to the repository.
type CompanyService struct {
	repo    identity.CompanyRepository
	storage storage.ObjectStorage
	cache   cache.Cache
	config  CompanyServiceConfig
	logger  *zap.Logger

	mu      sync.RWMutex
	profile *identity.CompanyProfile
}

// NewCompanyService creates a new CompanyService. A nil storage disables logo uploads.
func NewCompanyService(
	repo identity.CompanyRepository,
	objectStorage storage.ObjectStorage,
	c cache.Cache,
	config CompanyServiceConfig,
	logger *zap.Logger,
) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.NewInMemoryCache()
	}
	if config.BrandingTTL <= 0 {
		config.BrandingTTL = 10 * time.Minute
	}
	if config.LogoURLExpiration <= 0 {
		config.LogoURLExpiration = time.Hour
	}
	// cached branding must never outlive its presigned logo URL
	if config.BrandingTTL >= config.LogoURLExpiration {
		config.BrandingTTL = config.LogoURLExpiration / 2
	}
	return &CompanyService{
		repo:    repo,
		storage: objectStorage,
		cache:   c,
		config:  config,
		logger:  logger,
	}
}

// Load reads the profile from the repository, creating the default one on first start
func (s *CompanyService) Load(ctx context.Context) (*identity.CompanyProfile, error) {
	profile, err := s.repo.Get(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		profile = identity.NewDefaultCompanyProfile(s.config.DefaultTradeName)
		if err := s.repo.Save(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create company profile: %w", err)
		}
		s.logger.Info("Company profile created", zap.String("trade_name", profile.TradeName))
	} else if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return cloneProfile(profile), nil
}

// Profile returns a copy of the current profile
func (s *CompanyService) Profile(ctx context.Context) (*identity.CompanyProfile, error) {
	s.mu.RLock()
	profile := s.profile
	s.mu.RUnlock()

	if profile == nil {
		return s.Load(ctx)
	}
	return cloneProfile(profile), nil
}

// Get returns the company profile
func (s *CompanyService) Get(ctx context.Context) (*CompanyResponse, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(profile)
	return &response, nil
}

// Update replaces the editable fields of the profile
func (s *CompanyService) Update(ctx context.Context, req UpdateCompanyRequest) (*CompanyResponse, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	if err := profile.Update(identity.CompanyInput{
		TradeName:      req.TradeName,
		LegalName:      req.LegalName,
		TaxID:          req.TaxID,
		Email:          req.Email,
		Phone:          req.Phone,
		Website:        req.Website,
		Address:        req.Address.ToDomain(),
		PrimaryColor:   req.PrimaryColor,
		DocumentFooter: req.DocumentFooter,
	}); err != nil {
		return nil, err
	}

	if err := s.store(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Company profile updated")
	response := ToCompanyResponse(profile)
	return &response, nil
}

// UploadLogo stores a new logo in object storage and points the profile at it
func (s *CompanyService) UploadLogo(ctx context.Context, input UploadLogoInput) (*CompanyResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if len(input.Data) == 0 {
		return nil, ErrLogoEmpty
	}
	if s.config.MaxLogoSize > 0 && int64(len(input.Data)) > s.config.MaxLogoSize {
		return nil, ErrLogoTooLarge
	}

	contentType := detectLogoType(input)
	if len(s.config.AllowedLogoFormats) > 0 && !slices.Contains(s.config.AllowedLogoFormats, contentType) {
		return nil, ErrLogoFormat
	}
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, ErrLogoFormat
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	previousKey := profile.LogoKey

	key := "company/logo-" + uuid.NewString() + ext
	if err := s.storage.Upload(ctx, key, input.Data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	profile.SetLogo(key)
	if err := s.store(ctx, profile); err != nil {
		return nil, err
	}

	if previousKey != "" {
		if err := s.storage.DeleteObject(ctx, previousKey); err != nil {
			s.logger.Warn("Failed to delete previous logo", zap.String("key", previousKey), zap.Error(err))
		}
	}

	s.logger.Info("Company logo uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(input.Data)))

	response := ToCompanyResponse(profile)
	return &response, nil
}

// Branding returns the public branding block, cached for BrandingTTL
func (s *CompanyService) Branding(ctx context.Context) (*BrandingResponse, error) {
	var cached BrandingResponse
	found, err := s.cache.Get(ctx, brandingCacheKey, &cached)
	if err != nil {
		s.logger.Warn("Branding cache read failed", zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	branding := BrandingResponse{
		TradeName:    profile.TradeName,
		PrimaryColor: profile.PrimaryColor,
		Phone:        profile.Phone,
		Email:        profile.Email,
		Website:      profile.Website,
	}
	branding.LogoURL = s.LogoURL(ctx, profile)

	if err := s.cache.Set(ctx, brandingCacheKey, branding, s.config.BrandingTTL); err != nil {
		s.logger.Warn("Branding cache write failed", zap.Error(err))
	}
	return &branding, nil
}

// LogoURL returns a presigned URL for the profile logo, or an empty string when there is none
func (s *CompanyService) LogoURL(ctx context.Context, profile *identity.CompanyProfile) string {
	if !profile.HasLogo() || s.storage == nil {
		return ""
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, profile.LogoKey, s.config.LogoURLExpiration)
	if err != nil {
		s.logger.Warn("Failed to presign logo URL", zap.String("key", profile.LogoKey), zap.Error(err))
		return ""
	}
	return url
}

func (s *CompanyService) store(ctx context.Context, profile *identity.CompanyProfile) error {
	if err := s.repo.Save(ctx, profile); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = cloneProfile(profile)
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, brandingCacheKey); err != nil {
		s.logger.Warn("Branding cache invalidation failed", zap.Error(err))
	}
	return nil
}

func detectLogoType(input UploadLogoInput) string {
	if strings.EqualFold(path.Ext(input.Filename), ".svg") {
		return "image/svg+xml"
	}
	detected := http.DetectContentType(input.Data)
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	if detected == "application/octet-stream" || detected == "text/plain" || detected == "text/xml" {
		if ct := strings.TrimSpace(input.ContentType); ct != "" {
			return strings.ToLower(ct)
		}
	}
	return detected
}

func cloneProfile(p *identity.CompanyProfile) *identity.CompanyProfile {
	copied := *p
	return &copied
}
