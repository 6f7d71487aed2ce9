package route

import (
	"masjidku_portal/internals/features/finance/ledger/controller"
	"masjidku_portal/internals/features/finance/ledger/service"

	"github.com/gofiber/fiber/v2"
)

func SummaryRoutes(public fiber.Router, svc *service.SummaryService) {
	ctrl := controller.NewSummaryController(svc)
	public.Get("/finance/summary", ctrl.GetSummary) // 📊 Saldo per dana & periode
}
