package route

import (
	"masjidku_portal/internals/constants"
	"masjidku_portal/internals/features/prayer/prayer_times/controller"
	"masjidku_portal/internals/features/prayer/prayer_times/service"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func PrayerTimePublicRoutes(public fiber.Router, svc *service.SyncService, zl *zap.Logger) {
	ctrl := controller.NewPrayerTimeController(svc, zl)

	g := public.Group("/prayer-times")
	g.Get("/today", ctrl.Today)         // 🕌 Jadwal + sholat berikutnya
	g.Get("/today/stream", ctrl.Stream) // ⏱️ Countdown (SSE)
	g.Get("/:date", ctrl.ByDate)        // 📅 Jadwal per tanggal (cache)
}

// 🔐 Admin & editor
func PrayerTimeAdminRoutes(admin fiber.Router, svc *service.SyncService, zl *zap.Logger) {
	ctrl := controller.NewPrayerTimeController(svc, zl)

	g := admin.Group("/prayer-times",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorEditor("jadwal sholat"), constants.ContentRoles),
	)
	g.Post("/sync", ctrl.Sync)              // 🔄 Ambil ulang dari myQuran
	g.Get("/settings", ctrl.GetSettings)    // ⚙️ Kota & penyesuaian hijriah
	g.Put("/settings", ctrl.UpdateSettings) // ⚙️ Simpan pengaturan
	g.Get("/cities", ctrl.Cities)           // 🔎 Cari kode kota
}
