package tpa

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	classModel "masjidku_portal/internals/features/tpa/classes/model"
	studentModel "masjidku_portal/internals/features/tpa/students/model"

	"github.com/bxcodec/faker/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var demoClasses = []classModel.TPAClassModel{
	{TPAClassName: "Iqro Pemula", TPAClassSchedule: "Senin & Rabu, 16.00-17.00"},
	{TPAClassName: "Iqro Lanjutan", TPAClassSchedule: "Selasa & Kamis, 16.00-17.00"},
	{TPAClassName: "Tahsin Al-Quran", TPAClassSchedule: "Sabtu, 08.00-10.00"},
}

// SeedDemoRoster mengisi kelas & santri contoh; dilewati bila tabel kelas sudah berisi.
func SeedDemoRoster(ctx context.Context, db *gorm.DB, perClass int, zl *zap.Logger) error {
	var n int64
	if err := db.WithContext(ctx).Model(&classModel.TPAClassModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		zl.Info("ℹ️ Data TPA sudah ada, seed demo dilewati")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, c := range demoClasses {
			c.TPAClassTeacherName = "Ust. " + faker.FirstName()
			c.TPAClassIsActive = true
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed kelas %s: %w", c.TPAClassName, err)
			}

			students := make([]studentModel.TPAStudentModel, 0, perClass)
			for j := 0; j < perClass; j++ {
				gender := studentModel.GenderLaki
				if rng.Intn(2) == 0 {
					gender = studentModel.GenderPerempuan
				}
				birth := time.Date(2012+rng.Intn(8), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
				// kelas ke-i: level Iqro bertahap, kelas terakhir Al-Quran
				level := studentModel.Levels[min(i*2+rng.Intn(2), len(studentModel.Levels)-1)]
				students = append(students, studentModel.TPAStudentModel{
					TPAStudentClassID:       c.TPAClassID,
					TPAStudentFullName:      faker.FirstName() + " " + faker.LastName(),
					TPAStudentGender:        gender,
					TPAStudentBirthDate:     &birth,
					TPAStudentGuardianName:  faker.Name(),
					TPAStudentGuardianPhone: fmt.Sprintf("08%010d", rng.Int63n(1e10)),
					TPAStudentLevel:         level,
					TPAStudentIsActive:      true,
					TPAStudentJoinedAt:      time.Now().UTC().Truncate(24 * time.Hour),
				})
			}
			if err := tx.CreateInBatches(&students, 100).Error; err != nil {
				return fmt.Errorf("seed santri %s: %w", c.TPAClassName, err)
			}
			zl.Info("✅ Kelas TPA demo", zap.String("class", c.TPAClassName), zap.Int("students", len(students)))
		}
		return nil
	})
}
