package route

import (
	"masjidku_portal/internals/features/tpa/classes/controller"
	"masjidku_portal/internals/features/tpa/classes/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TPAClassRoutes: tpa sudah dibatasi role admin/pengajar oleh pemanggil.
func TPAClassRoutes(tpa fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(service.NewClassService(db))

	g := tpa.Group("/classes")
	g.Get("/", ctrl.List)         // 📄 Kelas + jumlah santri aktif
	g.Post("/", ctrl.Create)      // ➕ Kelas baru
	g.Get("/:id", ctrl.Get)       // 🔍 Detail kelas
	g.Put("/:id", ctrl.Update)    // 🔄 Update kelas
	g.Delete("/:id", ctrl.Delete) // 🗑️ Hapus (ditolak bila masih ada santri aktif)
}
