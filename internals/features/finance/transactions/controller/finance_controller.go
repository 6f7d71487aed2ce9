package controller

import (
	"time"

	ledgerService "masjidku_portal/internals/features/finance/ledger/service"
	"masjidku_portal/internals/features/finance/transactions/dto"
	"masjidku_portal/internals/features/finance/transactions/service"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/dbtime"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validateFinance = validator.New()

type FinanceController struct {
	Svc *service.FinanceService
	Loc *time.Location
}

func NewFinanceController(svc *service.FinanceService, loc *time.Location) *FinanceController {
	return &FinanceController{Svc: svc, Loc: loc}
}

func (ctrl *FinanceController) parseFilter(c *fiber.Ctx) (service.ListFilter, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return service.ListFilter{}, fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validateFinance.Struct(&q); err != nil {
		return service.ListFilter{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f := service.ListFilter{Type: q.Type, Q: q.Q}
	if q.Month != 0 || q.Year != 0 {
		if q.Month == 0 || q.Year == 0 {
			return service.ListFilter{}, fiber.NewError(fiber.StatusBadRequest, "month dan year harus diisi bersamaan")
		}
		f.From, f.To = ledgerService.PeriodWindow(q.Year, q.Month, ctrl.Loc)
	}
	if q.FundID != "" {
		id, err := uuid.Parse(q.FundID)
		if err != nil {
			return service.ListFilter{}, fiber.NewError(fiber.StatusBadRequest, "fund_id tidak valid")
		}
		f.FundID = &id
	}
	return f, nil
}

func toInput(body dto.FinanceRequest) (service.FinanceInput, error) {
	date, err := dbtime.ParseDate(body.FinanceDate, time.UTC)
	if err != nil {
		return service.FinanceInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return service.FinanceInput{
		Type:          body.FinanceType,
		Amount:        body.FinanceAmount,
		Category:      body.FinanceCategory,
		FundID:        body.FinanceFundID,
		Date:          date,
		Description:   body.FinanceDescription,
		DonorName:     body.FinanceDonorName,
		IsAnonymous:   body.FinanceIsAnonymous,
		PaymentMethod: body.FinancePaymentMethod,
	}, nil
}

func parseBody(c *fiber.Ctx) (dto.FinanceRequest, error) {
	var body dto.FinanceRequest
	if err := c.BodyParser(&body); err != nil {
		return body, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateFinance.Struct(&body); err != nil {
		return body, helper.ValidationFailed(err)
	}
	return body, nil
}

func parseFinanceID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "finance id tidak valid")
	}
	return id, nil
}

// GET /api/public/finance/transactions
func (ctrl *FinanceController) ListPublic(c *fiber.Ctx) error {
	f, err := ctrl.parseFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.List(c.Context(), f, p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}

	out := make([]dto.PublicFinance, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToPublicFinance(r, helper.FormatRupiah(r.FinanceAmount)))
	}
	return helper.JsonList(c, "Daftar transaksi", out, helper.BuildPagination(total, p, len(out)))
}

// GET /api/a/finance/transactions
func (ctrl *FinanceController) List(c *fiber.Ctx) error {
	f, err := ctrl.parseFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctrl.Svc.List(c.Context(), f, p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}
	return helper.JsonList(c, "Daftar transaksi", rows, helper.BuildPagination(total, p, len(rows)))
}

// GET /api/a/finance/transactions/:id
func (ctrl *FinanceController) Get(c *fiber.Ctx) error {
	id, err := parseFinanceID(c)
	if err != nil {
		return err
	}
	row, err := ctrl.Svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail transaksi", row)
}

// POST /api/a/finance/transactions
func (ctrl *FinanceController) Create(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	in, err := toInput(body)
	if err != nil {
		return err
	}
	in.CreatedBy = authMiddleware.CurrentUserIDPtr(c)

	row, err := ctrl.Svc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Transaksi dicatat", row)
}

// PUT /api/a/finance/transactions/:id
func (ctrl *FinanceController) Update(c *fiber.Ctx) error {
	id, err := parseFinanceID(c)
	if err != nil {
		return err
	}
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	in, err := toInput(body)
	if err != nil {
		return err
	}

	row, err := ctrl.Svc.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Transaksi diperbarui", row)
}

// DELETE /api/a/finance/transactions/:id
func (ctrl *FinanceController) Delete(c *fiber.Ctx) error {
	id, err := parseFinanceID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Transaksi dihapus", fiber.Map{"finance_id": id})
}
