package route

import (
	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/constants"
	"masjidku_portal/internals/features/settings/site_settings/controller"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SiteSettingsPublicRoutes(public fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewSiteSettingsController(db, store)
	public.Get("/settings/site", ctrl.GetPublic) // 🕌 Identitas masjid & rekening
}

func SiteSettingsAdminRoutes(admin fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewSiteSettingsController(db, store)

	g := admin.Group("/settings/site",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTreasurer("pengaturan situs"), constants.FinanceRoles),
	)
	g.Get("/", ctrl.Get)    // 📄 Pengaturan lengkap (termasuk saldo awal)
	g.Put("/", ctrl.Update) // 🔄 Ubah pengaturan / saldo awal
}
