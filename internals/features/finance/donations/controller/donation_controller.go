package controller

import (
	"masjidku_portal/internals/features/finance/donations/dto"
	"masjidku_portal/internals/features/finance/donations/model"
	"masjidku_portal/internals/features/finance/donations/service"
	helper "masjidku_portal/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validateDonation = validator.New()

type DonationController struct {
	Svc *service.DonationService
	Log *zap.Logger
}

func NewDonationController(svc *service.DonationService, zl *zap.Logger) *DonationController {
	return &DonationController{Svc: svc, Log: zl}
}

// POST /api/public/donations
func (ctrl *DonationController) Create(c *fiber.Ctx) error {
	var body dto.CreateDonationRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateDonation.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}

	res, err := ctrl.Svc.Create(c.Context(), body.ToInput())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Donasi dibuat. Silakan lanjutkan pembayaran.", dto.CreateDonationResponse{
		OrderID:     res.Donation.DonationOrderID,
		Amount:      res.Donation.DonationAmount,
		SnapToken:   res.Donation.DonationSnapToken,
		RedirectURL: res.RedirectURL,
	})
}

// GET /api/public/donations/:order_id
func (ctrl *DonationController) Status(c *fiber.Ctx) error {
	d, err := ctrl.Svc.GetByOrderID(c.Context(), c.Params("order_id"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Status donasi", dto.ToStatusResponse(d))
}

// POST /api/public/donations/midtrans/webhook
// Notifikasi ganda dijawab 200; signature salah 403 agar tercatat di dashboard Midtrans.
func (ctrl *DonationController) Webhook(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil || n.OrderID == "" {
		ctrl.Log.Warn("midtrans webhook bad payload", zap.ByteString("body", c.Body()), zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "payload notifikasi tidak valid")
	}

	out, err := ctrl.Svc.HandleNotification(c.Context(), n)
	if err != nil {
		ctrl.Log.Warn("midtrans webhook rejected",
			zap.String("order_id", n.OrderID), zap.String("status", n.TransactionStatus), zap.Error(err))
		return err
	}
	ctrl.Log.Info("midtrans webhook",
		zap.String("order_id", out.OrderID), zap.String("status", string(out.Status)), zap.Bool("duplicate", out.Duplicate))
	return helper.JsonOK(c, "Notifikasi diproses", out)
}

// GET /api/a/finance/donations?status=&fund_id=&page=&per_page=
func (ctrl *DonationController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validateDonation.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f := service.ListFilter{Status: model.DonationStatus(q.Status)}
	if q.FundID != "" {
		id, err := uuid.Parse(q.FundID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fund_id tidak valid")
		}
		f.FundID = &id
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.List(c.Context(), f, p.Offset, p.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data donasi")
	}
	return helper.JsonList(c, "Data donasi online", rows, helper.BuildPagination(total, p, len(rows)))
}
