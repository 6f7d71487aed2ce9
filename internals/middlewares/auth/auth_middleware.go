// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	authService "masjidku_portal/internals/features/users/auth/service"
	userModel "masjidku_portal/internals/features/users/user/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kunci c.Locals yang diisi AuthMiddleware.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalRole     = "userRole"
	LocalRawToken = "raw_token"
	LocalTokenExp = "token_exp"
)

func AuthMiddleware(svc *authService.AuthService, zl *zap.Logger) fiber.Handler {
	if zl == nil {
		zl = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := authService.ParseAccessToken(tokenString, svc.Secret)
		if err != nil {
			zl.Debug("token rejected", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token invalid or expired")
		}

		blacklisted, err := svc.IsBlacklisted(c.Context(), tokenString)
		if err != nil {
			zl.Error("blacklist lookup failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		userID, err := claims.UserID()
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		// role diambil dari DB agar perubahan role/nonaktif langsung berlaku
		var u userModel.UserModel
		if err := svc.DB.WithContext(c.Context()).
			Select("id", "role", "is_active", "user_name").
			First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !u.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		c.Locals(LocalUserID, u.ID.String())
		c.Locals(LocalUserName, u.UserName)
		c.Locals(LocalRole, u.Role)
		c.Locals(LocalRawToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Locals(LocalTokenExp, claims.ExpiresAt.Time)
		} else {
			c.Locals(LocalTokenExp, time.Now().Add(svc.AccessTTL))
		}
		return c.Next()
	}
}
