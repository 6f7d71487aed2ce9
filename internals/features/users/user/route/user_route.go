package route

import (
	"masjidku_portal/internals/constants"
	"masjidku_portal/internals/features/users/user/controller"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	users := admin.Group("/users",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly),
	)
	users.Get("/", userCtrl.List)                         // 📄 Daftar pengurus
	users.Post("/", userCtrl.Create)                      // ➕ Tambah pengurus
	users.Put("/:id", userCtrl.Update)                    // 🔄 Ubah role / status
	users.Patch("/:id/password", userCtrl.ChangePassword) // 🔑 Reset password
}
