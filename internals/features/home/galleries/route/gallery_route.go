package route

import (
	"masjidku_portal/internals/constants"
	"masjidku_portal/internals/features/home/galleries/controller"
	authMiddleware "masjidku_portal/internals/middlewares/auth"
	"masjidku_portal/internals/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GalleryPublicRoutes(public fiber.Router, db *gorm.DB, store storage.ObjectStorage, opt storage.PhotoOptions, zl *zap.Logger) {
	ctrl := controller.NewGalleryController(db, store, opt, zl)

	g := public.Group("/galleries")
	g.Get("/", ctrl.List)           // 🖼️ Daftar galeri
	g.Get("/:slug", ctrl.GetBySlug) // 🔍 Detail + foto
}

// 🔐 Admin & editor
func GalleryAdminRoutes(admin fiber.Router, db *gorm.DB, store storage.ObjectStorage, opt storage.PhotoOptions, zl *zap.Logger) {
	ctrl := controller.NewGalleryController(db, store, opt, zl)

	g := admin.Group("/galleries",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorEditor("mengelola galeri"), constants.ContentRoles),
	)
	g.Get("/", ctrl.List)                           // 📄 Semua galeri
	g.Post("/", ctrl.Create)                        // ➕ Buat galeri
	g.Put("/:id", ctrl.Update)                      // 🔄 Update galeri
	g.Delete("/:id", ctrl.Delete)                   // 🗑️ Hapus galeri + foto
	g.Post("/:id/photos", ctrl.UploadPhoto)         // 📤 Upload foto (multipart)
	g.Patch("/photos/:photo_id", ctrl.UpdatePhoto)  // ✏️ Caption / urutan
	g.Delete("/photos/:photo_id", ctrl.DeletePhoto) // 🗑️ Hapus foto
}
