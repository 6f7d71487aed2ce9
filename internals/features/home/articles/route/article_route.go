package route

import (
	"masjidku_portal/internals/constants"
	"masjidku_portal/internals/features/home/articles/controller"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ArticlePublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewArticleController(db)

	g := public.Group("/articles")
	g.Get("/", ctrl.ListPublished)  // 📄 Artikel & pengumuman terbit
	g.Get("/:slug", ctrl.GetBySlug) // 🔍 Detail by slug
}

// 🔐 Admin & editor (admin sudah login lewat group /api/a)
func ArticleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewArticleController(db)

	g := admin.Group("/articles",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorEditor("mengelola artikel"), constants.ContentRoles),
	)
	g.Get("/", ctrl.List)                      // 📄 Semua artikel (termasuk draft)
	g.Post("/", ctrl.Create)                   // ➕ Buat artikel
	g.Get("/:id", ctrl.Get)                    // 🔍 Detail
	g.Put("/:id", ctrl.Update)                 // 🔄 Update artikel
	g.Patch("/:id/publish", ctrl.SetPublished) // 📢 Terbit / tarik
	g.Delete("/:id", ctrl.Delete)              // 🗑️ Hapus artikel
}
