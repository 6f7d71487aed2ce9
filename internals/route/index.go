package routes

import (
	"time"

	"masjidku_portal/internals/middlewares"
	authMiddleware "masjidku_portal/internals/middlewares/auth"
	routeDetails "masjidku_portal/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, d routeDetails.Deps) {
	startTime = time.Now()

	BaseRoutes(app, d)

	// ===================== AUTH =====================
	routeDetails.AuthRoutes(app, d)

	// ===================== PUBLIC =====================
	public := app.Group("/api/public", middlewares.GlobalRateLimiter())
	routeDetails.FinancePublicRoutes(public, d)
	routeDetails.PrayerPublicRoutes(public, d)
	routeDetails.HomePublicRoutes(public, d)

	// ===================== ADMIN (pengurus login) =====================
	admin := app.Group("/api/a",
		middlewares.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(d.Auth, d.Log),
	)
	routeDetails.UserAdminRoutes(admin, d)
	routeDetails.FinanceAdminRoutes(admin, d)
	routeDetails.PrayerAdminRoutes(admin, d)
	routeDetails.HomeAdminRoutes(admin, d)
	routeDetails.TPAAdminRoutes(admin, d)
}
