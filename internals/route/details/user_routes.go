package details

import (
	userRoute "masjidku_portal/internals/features/users/user/route"

	"github.com/gofiber/fiber/v2"
)

// 🔐 /api/a/users (admin saja)
func UserAdminRoutes(admin fiber.Router, d Deps) {
	userRoute.UserAdminRoutes(admin, d.DB)
}
