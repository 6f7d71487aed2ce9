package service

import (
	"context"
	"errors"
	"strings"

	classModel "masjidku_portal/internals/features/tpa/classes/model"
	"masjidku_portal/internals/features/tpa/students/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStudentNotFound = fiber.NewError(fiber.StatusNotFound, "Santri tidak ditemukan")
	ErrClassNotFound   = fiber.NewError(fiber.StatusUnprocessableEntity, "Kelas TPA tidak ditemukan")
	ErrClassInactive   = fiber.NewError(fiber.StatusUnprocessableEntity, "Kelas TPA sudah tidak aktif")
)

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

type ListFilter struct {
	ClassID *uuid.UUID
	Q       string
	Level   model.Level
	// nil = semua
	Active *bool
}

func (s *StudentService) List(ctx context.Context, f ListFilter, offset, limit int) ([]model.TPAStudentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.TPAStudentModel{})
	if f.ClassID != nil {
		q = q.Where("tpa_student_class_id = ?", *f.ClassID)
	}
	if kw := strings.ToLower(strings.TrimSpace(f.Q)); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(tpa_student_full_name) LIKE ? OR LOWER(tpa_student_guardian_name) LIKE ?", like, like)
	}
	if f.Level != "" {
		q = q.Where("tpa_student_level = ?", f.Level)
	}
	if f.Active != nil {
		q = q.Where("tpa_student_is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.TPAStudentModel
	if err := q.Order("tpa_student_full_name ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (model.TPAStudentModel, error) {
	var m model.TPAStudentModel
	err := s.DB.WithContext(ctx).First(&m, "tpa_student_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TPAStudentModel{}, ErrStudentNotFound
	}
	return m, err
}

// requireActiveClass: santri hanya boleh didaftarkan / dipindah ke kelas aktif.
func requireActiveClass(tx *gorm.DB, id uuid.UUID) error {
	var c classModel.TPAClassModel
	if err := tx.First(&c, "tpa_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if !c.TPAClassIsActive {
		return ErrClassInactive
	}
	return nil
}

func (s *StudentService) Create(ctx context.Context, m model.TPAStudentModel) (model.TPAStudentModel, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveClass(tx, m.TPAStudentClassID); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return model.TPAStudentModel{}, err
	}
	return m, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, apply func(*model.TPAStudentModel)) (model.TPAStudentModel, error) {
	var out model.TPAStudentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.TPAStudentModel
		if err := tx.First(&m, "tpa_student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		prevClass := m.TPAStudentClassID
		apply(&m)
		if m.TPAStudentClassID != prevClass {
			if err := requireActiveClass(tx, m.TPAStudentClassID); err != nil {
				return err
			}
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.TPAStudentModel{}, "tpa_student_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}
