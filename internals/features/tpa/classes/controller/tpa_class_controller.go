package controller

import (
	"masjidku_portal/internals/features/tpa/classes/dto"
	"masjidku_portal/internals/features/tpa/classes/model"
	"masjidku_portal/internals/features/tpa/classes/service"
	helper "masjidku_portal/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validateClass = validator.New()

type ClassController struct {
	Svc *service.ClassService
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{Svc: svc}
}

func parseClassID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	return id, nil
}

// GET /api/a/tpa/classes?active=true
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kelas TPA")
	}
	return helper.JsonOK(c, "Daftar kelas TPA", rows)
}

func (ctrl *ClassController) Get(c *fiber.Ctx) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}
	m, err := ctrl.Svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail kelas TPA", m)
}

func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var body dto.CreateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateClass.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}
	m, err := ctrl.Svc.Create(c.Context(), body.ToModel())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Kelas TPA dibuat", m)
}

func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}
	var body dto.UpdateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateClass.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}
	m, err := ctrl.Svc.Update(c.Context(), id, func(m *model.TPAClassModel) { body.Apply(m) })
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Kelas TPA diperbarui", m)
}

func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Kelas TPA dihapus", fiber.Map{"tpa_class_id": id})
}
