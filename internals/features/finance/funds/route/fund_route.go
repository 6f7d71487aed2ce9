package route

import (
	"masjidku_portal/internals/features/finance/funds/controller"
	"masjidku_portal/internals/features/finance/funds/service"

	"github.com/gofiber/fiber/v2"
)

func FundPublicRoutes(public fiber.Router, svc *service.FundService) {
	ctrl := controller.NewFundController(svc)
	public.Get("/finance/funds", ctrl.ListPublic) // 📄 Dana aktif (form donasi)
}

// FundAdminRoutes: finance sudah dibatasi role admin/bendahara oleh pemanggil.
func FundAdminRoutes(finance fiber.Router, svc *service.FundService) {
	ctrl := controller.NewFundController(svc)

	funds := finance.Group("/funds")
	funds.Get("/", ctrl.List)                       // 📄 Semua dana
	funds.Post("/", ctrl.Create)                    // ➕ Dana baru
	funds.Put("/:id", ctrl.Update)                  // 🔄 Ubah dana
	funds.Patch("/:id/deactivate", ctrl.Deactivate) // ⏸️ Nonaktifkan
	funds.Delete("/:id", ctrl.Delete)               // 🗑️ Hapus (hanya dana tanpa transaksi)
}
