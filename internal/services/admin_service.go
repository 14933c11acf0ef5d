package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hibiscus/internal/models/db_models"
	"hibiscus/internal/models/request_models"
	"hibiscus/internal/repositories"
	"hibiscus/pkg/utils"
)

type AdminServiceInterface interface {
	// Init makes sure the admin singleton exists and carries a version.
	Init(ctx context.Context) error
	Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error)
	// Verify returns the stored version when it equals version.
	Verify(ctx context.Context, version int) (int, error)
	Reset(ctx context.Context) (int, error)
	Exists(ctx context.Context) (bool, error)
	CurrentPasswordVersion(ctx context.Context) (int, error)
}

type LoginResult struct {
	PasswordVersion int
	// Token is only issued when the admin guard is on.
	Token string
}

type AdminSettings struct {
	DefaultUsername string
	DefaultPassword string
	IssueTokens     bool
	TokenSecret     []byte
	TokenTTL        time.Duration
}

type AdminService struct {
	adminRepo repositories.AdminRepository
	settings  AdminSettings
	logger    *zap.Logger
	now       func() time.Time
}

func NewAdminService(adminRepo repositories.AdminRepository, settings AdminSettings, logger *zap.Logger) AdminServiceInterface {
	return &AdminService{
		adminRepo: adminRepo,
		settings:  settings,
		logger:    logger.Named("admin"),
		now:       time.Now,
	}
}

func (s *AdminService) Init(ctx context.Context) error {
	admin, err := s.adminRepo.Get(ctx)
	if err != nil {
		return err
	}

	if admin == nil {
		hashed, err := utils.HashPassword(s.settings.DefaultPassword)
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.adminRepo.Create(ctx, &db_models.AdminCredential{
			Username:        s.settings.DefaultUsername,
			Password:        hashed,
			PasswordVersion: 1,
			CreatedAt:       now,
			UpdatedAt:       now,
		}); err != nil {
			return err
		}
		s.logger.Info("created default admin", zap.String("username", s.settings.DefaultUsername))
		return nil
	}

	if admin.PasswordVersion < 1 {
		if err := s.adminRepo.SetPasswordVersion(ctx, admin.NativeID, 1); err != nil {
			return err
		}
		s.logger.Info("backfilled admin password version")
	}
	return nil
}

// Login reports ErrInvalidCredentials for any mismatch, including a missing
// admin record, and ErrDatabaseError when the store cannot be read.
func (s *AdminService) Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error) {
	admin, err := s.adminRepo.Get(ctx)
	if err != nil {
		s.logger.Error("login lookup", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if admin == nil {
		return nil, utils.ErrInvalidCredentials
	}

	usernameOK := admin.Username == request.Username
	passwordOK := utils.ComparePasswords(admin.Password, request.Password)
	if !usernameOK || !passwordOK {
		return nil, utils.ErrInvalidCredentials
	}

	version := normalizeVersion(admin.PasswordVersion)
	result := &LoginResult{PasswordVersion: version}
	if s.settings.IssueTokens {
		token, err := utils.CreateAdminToken(s.settings.TokenSecret, admin.Username, version, s.settings.TokenTTL)
		if err != nil {
			s.logger.Error("issue admin token", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		result.Token = token
	}
	return result, nil
}

func (s *AdminService) Verify(ctx context.Context, version int) (int, error) {
	current, err := s.CurrentPasswordVersion(ctx)
	if err != nil {
		return 0, err
	}
	if version != current {
		return 0, utils.ErrSessionExpired
	}
	return current, nil
}

func (s *AdminService) Reset(ctx context.Context) (int, error) {
	hashed, err := utils.HashPassword(s.settings.DefaultPassword)
	if err != nil {
		return 0, err
	}

	version, err := s.adminRepo.ResetCredentials(ctx, s.settings.DefaultUsername, hashed, s.now())
	if err != nil {
		s.logger.Error("reset admin", zap.Error(err))
		return 0, utils.ErrDatabaseError
	}
	s.logger.Info("admin credentials reset", zap.Int("password_version", version))
	return version, nil
}

func (s *AdminService) Exists(ctx context.Context) (bool, error) {
	admin, err := s.adminRepo.Get(ctx)
	if err != nil {
		s.logger.Error("admin exists", zap.Error(err))
		return false, utils.ErrDatabaseError
	}
	return admin != nil, nil
}

func (s *AdminService) CurrentPasswordVersion(ctx context.Context) (int, error) {
	admin, err := s.adminRepo.Get(ctx)
	if err != nil {
		s.logger.Error("admin version lookup", zap.Error(err))
		return 0, utils.ErrDatabaseError
	}
	if admin == nil {
		return 0, utils.ErrAdminNotFound
	}
	return normalizeVersion(admin.PasswordVersion), nil
}

// normalizeVersion treats a record written without a version as version 1.
func normalizeVersion(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
