package controller

import (
	"masjidku_portal/internals/features/finance/ledger/dto"
	"masjidku_portal/internals/features/finance/ledger/service"
	helper "masjidku_portal/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validateSummary = validator.New()

type SummaryController struct {
	Svc *service.SummaryService
}

func NewSummaryController(svc *service.SummaryService) *SummaryController {
	return &SummaryController{Svc: svc}
}

// GET /api/public/finance/summary?month=&year=&fund_id=
func (ctrl *SummaryController) GetSummary(c *fiber.Ctx) error {
	var q dto.SummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validateSummary.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month harus 1..12, year 2000..2100, fund_id harus UUID")
	}

	sq := service.SummaryQuery{Year: q.Year, Month: q.Month}
	if q.FundID != "" {
		id, err := uuid.Parse(q.FundID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fund_id tidak valid")
		}
		sq.FundID = &id
	}

	summary, err := ctrl.Svc.Summary(c.Context(), sq)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ringkasan keuangan")
	}
	return helper.JsonOK(c, "Ringkasan keuangan", dto.ToSummaryResponse(summary))
}
