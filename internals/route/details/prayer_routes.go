package details

import (
	prayerRoute "masjidku_portal/internals/features/prayer/prayer_times/route"

	"github.com/gofiber/fiber/v2"
)

func PrayerPublicRoutes(public fiber.Router, d Deps) {
	prayerRoute.PrayerTimePublicRoutes(public, d.Prayer, d.Log)
}

func PrayerAdminRoutes(admin fiber.Router, d Deps) {
	prayerRoute.PrayerTimeAdminRoutes(admin, d.Prayer, d.Log)
}
