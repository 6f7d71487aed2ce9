package service

import (
	"context"
	"errors"

	"masjidku_portal/internals/features/tpa/classes/dto"
	"masjidku_portal/internals/features/tpa/classes/model"
	studentModel "masjidku_portal/internals/features/tpa/students/model"
	helper "masjidku_portal/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClassNotFound  = fiber.NewError(fiber.StatusNotFound, "Kelas TPA tidak ditemukan")
	ErrClassNameTaken = fiber.NewError(fiber.StatusConflict, "Nama kelas sudah dipakai")
	ErrClassHasActive = fiber.NewError(fiber.StatusConflict,
		"Kelas masih memiliki santri aktif. Pindahkan atau nonaktifkan santri terlebih dahulu.")
)

type ClassService struct {
	DB *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{DB: db}
}

func (s *ClassService) List(ctx context.Context, activeOnly bool) ([]dto.ClassWithCount, error) {
	q := s.DB.WithContext(ctx).Order("tpa_class_name ASC")
	if activeOnly {
		q = q.Where("tpa_class_is_active = ?", true)
	}
	var rows []model.TPAClassModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	var agg []struct {
		ClassID uuid.UUID
		N       int64
	}
	if err := s.DB.WithContext(ctx).Model(&studentModel.TPAStudentModel{}).
		Select("tpa_student_class_id AS class_id, COUNT(*) AS n").
		Where("tpa_student_is_active = ?", true).
		Group("tpa_student_class_id").Scan(&agg).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(agg))
	for _, a := range agg {
		counts[a.ClassID] = a.N
	}

	out := make([]dto.ClassWithCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClassWithCount{TPAClassModel: r, ActiveStudents: counts[r.TPAClassID]})
	}
	return out, nil
}

func (s *ClassService) Get(ctx context.Context, id uuid.UUID) (model.TPAClassModel, error) {
	var m model.TPAClassModel
	err := s.DB.WithContext(ctx).First(&m, "tpa_class_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TPAClassModel{}, ErrClassNotFound
	}
	return m, err
}

func (s *ClassService) Create(ctx context.Context, m model.TPAClassModel) (model.TPAClassModel, error) {
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.TPAClassModel{}, ErrClassNameTaken
		}
		return model.TPAClassModel{}, err
	}
	return m, nil
}

func (s *ClassService) Update(ctx context.Context, id uuid.UUID, apply func(*model.TPAClassModel)) (model.TPAClassModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return model.TPAClassModel{}, err
	}
	apply(&m)
	if err := s.DB.WithContext(ctx).Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.TPAClassModel{}, ErrClassNameTaken
		}
		return model.TPAClassModel{}, err
	}
	return m, nil
}

// Delete ditolak selama kelas masih punya santri aktif; santri nonaktif ikut terhapus.
func (s *ClassService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.TPAClassModel
		if err := tx.First(&m, "tpa_class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&studentModel.TPAStudentModel{}).
			Where("tpa_student_class_id = ? AND tpa_student_is_active = ?", id, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrClassHasActive
		}

		if err := tx.Where("tpa_student_class_id = ?", id).Delete(&studentModel.TPAStudentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}
