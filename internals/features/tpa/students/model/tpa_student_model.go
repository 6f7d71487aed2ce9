package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderLaki      Gender = "L"
	GenderPerempuan Gender = "P"
)

// Level bacaan santri: Iqro 1..6 lalu Al-Quran.
type Level string

const (
	LevelIqro1   Level = "IQRO_1"
	LevelIqro2   Level = "IQRO_2"
	LevelIqro3   Level = "IQRO_3"
	LevelIqro4   Level = "IQRO_4"
	LevelIqro5   Level = "IQRO_5"
	LevelIqro6   Level = "IQRO_6"
	LevelAlQuran Level = "AL_QURAN"
)

var Levels = []Level{LevelIqro1, LevelIqro2, LevelIqro3, LevelIqro4, LevelIqro5, LevelIqro6, LevelAlQuran}

type TPAStudentModel struct {
	TPAStudentID            uuid.UUID  `gorm:"column:tpa_student_id;type:uuid;primaryKey" json:"tpa_student_id"`
	TPAStudentClassID       uuid.UUID  `gorm:"column:tpa_student_class_id;type:uuid;not null;index:idx_tpa_students_class" json:"tpa_student_class_id"`
	TPAStudentFullName      string     `gorm:"column:tpa_student_full_name;type:varchar(150);not null" json:"tpa_student_full_name"`
	TPAStudentGender        Gender     `gorm:"column:tpa_student_gender;type:varchar(1);not null" json:"tpa_student_gender"`
	TPAStudentBirthDate     *time.Time `gorm:"column:tpa_student_birth_date;type:date" json:"tpa_student_birth_date,omitempty"`
	TPAStudentGuardianName  string     `gorm:"column:tpa_student_guardian_name;type:varchar(150)" json:"tpa_student_guardian_name"`
	TPAStudentGuardianPhone string     `gorm:"column:tpa_student_guardian_phone;type:varchar(20)" json:"tpa_student_guardian_phone"`
	TPAStudentLevel         Level      `gorm:"column:tpa_student_level;type:varchar(10);not null;default:IQRO_1" json:"tpa_student_level"`
	TPAStudentIsActive      bool       `gorm:"column:tpa_student_is_active;not null;index:idx_tpa_students_class" json:"tpa_student_is_active"`
	TPAStudentJoinedAt      time.Time  `gorm:"column:tpa_student_joined_at;type:date;not null" json:"tpa_student_joined_at"`
	CreatedAt               time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TPAStudentModel) TableName() string {
	return "tpa_students"
}

func (m *TPAStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.TPAStudentID == uuid.Nil {
		m.TPAStudentID = uuid.New()
	}
	return nil
}
