package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"masjidku_portal/internals/constants"
	authService "masjidku_portal/internals/features/users/auth/service"
	"masjidku_portal/internals/features/users/user/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminSeed struct {
	UserName string
	Email    string
	Password string
	FullName string
}

// SeedAdmin membuat akun admin pertama bila email belum terdaftar.
func SeedAdmin(ctx context.Context, db *gorm.DB, in AdminSeed, zl *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		zl.Warn("⚠️ SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD kosong, seed admin dilewati")
		return nil
	}

	var existing model.UserModel
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		zl.Info("ℹ️ Admin sudah ada, dilewati", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// 🔐 Hash password sebelum disimpan
	hashed, err := authService.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password admin: %w", err)
	}
	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		userName = "admin"
	}

	u := model.UserModel{
		UserName: userName,
		Email:    email,
		FullName: strings.TrimSpace(in.FullName),
		Password: hashed,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	zl.Info("✅ Admin dibuat", zap.String("email", email))
	return nil
}
