package route

import (
	"time"

	"masjidku_portal/internals/features/tpa/students/controller"
	"masjidku_portal/internals/features/tpa/students/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TPAStudentRoutes(tpa fiber.Router, db *gorm.DB, loc *time.Location) {
	ctrl := controller.NewStudentController(service.NewStudentService(db), loc)

	tpa.Get("/classes/:id/students", ctrl.ListByClass) // 👥 Santri per kelas

	g := tpa.Group("/students")
	g.Get("/", ctrl.List)         // 📄 Santri (filter kelas, level, q)
	g.Post("/", ctrl.Create)      // ➕ Daftarkan santri
	g.Get("/:id", ctrl.Get)       // 🔍 Detail santri
	g.Put("/:id", ctrl.Update)    // 🔄 Update / pindah kelas
	g.Delete("/:id", ctrl.Delete) // 🗑️ Hapus santri
}
