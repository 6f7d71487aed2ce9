package controller

import (
	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/features/settings/site_settings/dto"
	"masjidku_portal/internals/features/settings/site_settings/service"
	helper "masjidku_portal/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validateSettings = validator.New()

type SiteSettingsController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewSiteSettingsController(db *gorm.DB, store cache.Store) *SiteSettingsController {
	return &SiteSettingsController{DB: db, Cache: store}
}

// GET /api/public/settings/site
func (ctrl *SiteSettingsController) GetPublic(c *fiber.Ctx) error {
	s, err := service.FetchSiteSettings(c.Context(), ctrl.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengaturan")
	}
	return helper.JsonOK(c, "Pengaturan situs", dto.ToPublic(s))
}

// GET /api/a/settings/site
func (ctrl *SiteSettingsController) Get(c *fiber.Ctx) error {
	s, err := service.FetchSiteSettings(c.Context(), ctrl.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengaturan")
	}
	return helper.JsonOK(c, "Pengaturan situs", s)
}

// PUT /api/a/settings/site
func (ctrl *SiteSettingsController) Update(c *fiber.Ctx) error {
	var body dto.UpdateSiteSettingsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validateSettings.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if body.OpeningBalance.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Saldo awal tidak boleh negatif")
	}

	saved, err := service.SaveSiteSettings(c.Context(), ctrl.DB, ctrl.Cache, body.ToModel())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan pengaturan")
	}
	return helper.JsonUpdated(c, "Pengaturan disimpan", saved)
}
