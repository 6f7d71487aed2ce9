package service

import (
	"context"
	"errors"
	"strings"
	"time"

	authModel "masjidku_portal/internals/features/users/auth/model"
	userModel "masjidku_portal/internals/features/users/user/model"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Username/email atau password salah")
	ErrUserInactive       = fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
)

type AuthService struct {
	DB        *gorm.DB
	Secret    string
	AccessTTL time.Duration
	Now       dbtime.Clock
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{DB: db, Secret: secret, AccessTTL: ttl, Now: dbtime.SystemClock}
}

type LoginResult struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        userModel.UserModel `json:"user"`
}

// Login dengan user_name atau email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	var u userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("user_name = ? OR LOWER(email) = LOWER(?)", identifier, identifier).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !CheckPassword(u.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return LoginResult{}, ErrUserInactive
	}

	token, exp, err := IssueAccessToken(u, s.Secret, s.AccessTTL, s.Now())
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccessToken: token, ExpiresAt: exp, User: u}, nil
}

// Logout memasukkan token ke blacklist sampai exp-nya lewat.
func (s *AuthService) Logout(ctx context.Context, raw string, expiresAt time.Time) error {
	row := authModel.TokenBlacklist{Token: raw, ExpiredAt: expiresAt}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (s *AuthService) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ?", raw).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (userModel.UserModel, error) {
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return userModel.UserModel{}, err
	}
	return u, nil
}

// PurgeExpiredBlacklist dipanggil scheduler.
func (s *AuthService) PurgeExpiredBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("expired_at < ?", before).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
