package details

import (
	articleRoute "masjidku_portal/internals/features/home/articles/route"
	galleryRoute "masjidku_portal/internals/features/home/galleries/route"

	"github.com/gofiber/fiber/v2"
)

// ✅ Konten publik: /api/public/articles, /api/public/galleries
func HomePublicRoutes(public fiber.Router, d Deps) {
	articleRoute.ArticlePublicRoutes(public, d.DB)
	galleryRoute.GalleryPublicRoutes(public, d.DB, d.Storage, d.PhotoOptions(), d.Log)
}

// 🔐 Admin & editor
func HomeAdminRoutes(admin fiber.Router, d Deps) {
	articleRoute.ArticleAdminRoutes(admin, d.DB)
	galleryRoute.GalleryAdminRoutes(admin, d.DB, d.Storage, d.PhotoOptions(), d.Log)
}
