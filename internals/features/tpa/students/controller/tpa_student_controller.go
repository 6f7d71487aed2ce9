package controller

import (
	"time"

	"masjidku_portal/internals/features/tpa/students/dto"
	"masjidku_portal/internals/features/tpa/students/model"
	"masjidku_portal/internals/features/tpa/students/service"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validateStudent = validator.New()

type StudentController struct {
	Svc *service.StudentService
	Loc *time.Location
	Now func() time.Time
}

func NewStudentController(svc *service.StudentService, loc *time.Location) *StudentController {
	if loc == nil {
		loc = time.UTC
	}
	return &StudentController{Svc: svc, Loc: loc, Now: time.Now}
}

func parseStudentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID santri tidak valid")
	}
	return id, nil
}

// GET /api/a/tpa/students?class_id=&q=&level=&active=all|true|false&page=&per_page=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	return ctrl.list(c, "")
}

// GET /api/a/tpa/classes/:id/students
func (ctrl *StudentController) ListByClass(c *fiber.Ctx) error {
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	return ctrl.list(c, c.Params("id"))
}

func (ctrl *StudentController) list(c *fiber.Ctx, classID string) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validateStudent.Struct(&q); err != nil {
		return helper.ValidationFailed(err)
	}
	if classID != "" {
		q.ClassID = classID
	}

	f := service.ListFilter{Q: q.Q, Level: model.Level(q.Level)}
	if q.ClassID != "" {
		id, err := uuid.Parse(q.ClassID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "class_id tidak valid")
		}
		f.ClassID = &id
	}
	switch q.Active {
	case "", "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.List(c.Context(), f, p.Offset, p.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}
	return helper.JsonList(c, "Daftar santri", rows, helper.BuildPagination(total, p, len(rows)))
}

func (ctrl *StudentController) Get(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return err
	}
	m, err := ctrl.Svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail santri", m)
}

func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var body dto.CreateStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}

	today, _ := dbtime.ParseDate(dbtime.DateKey(ctrl.Now(), ctrl.Loc), time.UTC)
	m, err := ctrl.Svc.Create(c.Context(), body.ToModel(today))
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Santri didaftarkan", m)
}

func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return err
	}
	var body dto.UpdateStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}
	m, err := ctrl.Svc.Update(c.Context(), id, func(m *model.TPAStudentModel) { body.Apply(m) })
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Data santri diperbarui", m)
}

func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Santri dihapus", fiber.Map{"tpa_student_id": id})
}
