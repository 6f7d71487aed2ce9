package route

import (
	"masjidku_portal/internals/features/finance/donations/controller"
	"masjidku_portal/internals/features/finance/donations/service"
	"masjidku_portal/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func DonationPublicRoutes(public fiber.Router, svc *service.DonationService, zl *zap.Logger) {
	ctrl := controller.NewDonationController(svc, zl)

	g := public.Group("/donations")
	g.Post("/", middlewares.DonationRateLimiter(), ctrl.Create) // 💳 Donasi baru (Snap)
	g.Post("/midtrans/webhook", ctrl.Webhook)                   // 🔔 Notifikasi Midtrans
	g.Get("/:order_id", ctrl.Status)                            // 🔍 Cek status
}

// DonationAdminRoutes: finance sudah dibatasi role admin/bendahara oleh pemanggil.
func DonationAdminRoutes(finance fiber.Router, svc *service.DonationService, zl *zap.Logger) {
	ctrl := controller.NewDonationController(svc, zl)
	finance.Get("/donations", ctrl.List) // 📄 Donasi online
}
