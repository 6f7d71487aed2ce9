package details

import (
	"masjidku_portal/internals/constants"
	tpaClassRoute "masjidku_portal/internals/features/tpa/classes/route"
	tpaStudentRoute "masjidku_portal/internals/features/tpa/students/route"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// 🔐 /api/a/tpa/... (admin & pengajar)
func TPAAdminRoutes(admin fiber.Router, d Deps) {
	tpa := admin.Group("/tpa",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("TPA"), constants.TPARoles),
	)
	tpaClassRoute.TPAClassRoutes(tpa, d.DB)
	tpaStudentRoute.TPAStudentRoutes(tpa, d.DB, d.Loc)
}
