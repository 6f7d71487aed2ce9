package controller

import (
	"masjidku_portal/internals/features/finance/funds/dto"
	"masjidku_portal/internals/features/finance/funds/model"
	"masjidku_portal/internals/features/finance/funds/service"
	helper "masjidku_portal/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validateFund = validator.New()

type FundController struct {
	Svc *service.FundService
}

func NewFundController(svc *service.FundService) *FundController {
	return &FundController{Svc: svc}
}

func parseFundID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "fund id tidak valid")
	}
	return id, nil
}

// GET /api/public/finance/funds (hanya dana aktif)
func (ctrl *FundController) ListPublic(c *fiber.Ctx) error {
	funds, err := ctrl.Svc.List(c.Context(), true)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil dana")
	}
	return helper.JsonOK(c, "Daftar dana", funds)
}

// GET /api/a/finance/funds?active=true
func (ctrl *FundController) List(c *fiber.Ctx) error {
	funds, err := ctrl.Svc.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil dana")
	}
	return helper.JsonOK(c, "Daftar dana", funds)
}

// POST /api/a/finance/funds
func (ctrl *FundController) Create(c *fiber.Ctx) error {
	var body dto.CreateFundRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateFund.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fund, err := ctrl.Svc.Create(c.Context(), body.ToModel())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Dana dibuat", fund)
}

// PUT /api/a/finance/funds/:id
func (ctrl *FundController) Update(c *fiber.Ctx) error {
	id, err := parseFundID(c)
	if err != nil {
		return err
	}
	var body dto.UpdateFundRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateFund.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fund, err := ctrl.Svc.Update(c.Context(), id, func(f *model.FundModel) { body.Apply(f) })
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Dana diperbarui", fund)
}

// PATCH /api/a/finance/funds/:id/deactivate
func (ctrl *FundController) Deactivate(c *fiber.Ctx) error {
	id, err := parseFundID(c)
	if err != nil {
		return err
	}
	fund, err := ctrl.Svc.Deactivate(c.Context(), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Dana dinonaktifkan", fund)
}

// DELETE /api/a/finance/funds/:id
func (ctrl *FundController) Delete(c *fiber.Ctx) error {
	id, err := parseFundID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Dana dihapus", fiber.Map{"fund_id": id})
}
