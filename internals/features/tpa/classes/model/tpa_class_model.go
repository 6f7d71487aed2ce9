package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TPAClassModel struct {
	TPAClassID          uuid.UUID `gorm:"column:tpa_class_id;type:uuid;primaryKey" json:"tpa_class_id"`
	TPAClassName        string    `gorm:"column:tpa_class_name;type:varchar(100);not null;uniqueIndex:uq_tpa_classes_name" json:"tpa_class_name"`
	TPAClassTeacherName string    `gorm:"column:tpa_class_teacher_name;type:varchar(150)" json:"tpa_class_teacher_name"`
	// mis. "Senin & Rabu, 16.00-17.30"
	TPAClassSchedule string    `gorm:"column:tpa_class_schedule;type:varchar(255)" json:"tpa_class_schedule"`
	TPAClassIsActive bool      `gorm:"column:tpa_class_is_active;not null" json:"tpa_class_is_active"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TPAClassModel) TableName() string {
	return "tpa_classes"
}

func (m *TPAClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.TPAClassID == uuid.Nil {
		m.TPAClassID = uuid.New()
	}
	return nil
}
