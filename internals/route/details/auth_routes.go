package details

import (
	authRoute "masjidku_portal/internals/features/users/auth/route"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, d Deps) {
	authRoute.AuthRoutes(app, d.Auth, d.Log)
}
