package route

import (
	"masjidku_portal/internals/features/users/auth/controller"
	"masjidku_portal/internals/features/users/auth/service"
	rateLimiter "masjidku_portal/internals/middlewares"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func AuthRoutes(app *fiber.App, svc *service.AuthService, zl *zap.Logger) {
	authCtrl := controller.NewAuthController(svc)

	auth := app.Group("/api/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authCtrl.Login) // 🔐 Login pengurus

	protected := auth.Group("", authMiddleware.AuthMiddleware(svc, zl))
	protected.Post("/logout", authCtrl.Logout) // 🚪 Logout (blacklist token)
	protected.Get("/me", authCtrl.Me)          // 👤 Profil login
}
