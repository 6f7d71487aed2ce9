package route

import (
	"time"

	"masjidku_portal/internals/features/finance/transactions/controller"
	"masjidku_portal/internals/features/finance/transactions/service"

	"github.com/gofiber/fiber/v2"
)

func FinancePublicRoutes(public fiber.Router, svc *service.FinanceService, loc *time.Location) {
	ctrl := controller.NewFinanceController(svc, loc)
	public.Get("/finance/transactions", ctrl.ListPublic) // 📄 Laporan transaksi (donor anonim disamarkan)
}

// FinanceAdminRoutes: finance sudah dibatasi role admin/bendahara oleh pemanggil.
func FinanceAdminRoutes(finance fiber.Router, svc *service.FinanceService, loc *time.Location) {
	ctrl := controller.NewFinanceController(svc, loc)

	tx := finance.Group("/transactions")
	tx.Get("/", ctrl.List)         // 📄 Semua transaksi
	tx.Post("/", ctrl.Create)      // ➕ Catat transaksi
	tx.Get("/:id", ctrl.Get)       // 🔍 Detail
	tx.Put("/:id", ctrl.Update)    // 🔄 Ubah
	tx.Delete("/:id", ctrl.Delete) // 🗑️ Hapus permanen
}
