package dto

import (
	"strings"

	"masjidku_portal/internals/features/tpa/classes/model"
)

type CreateClassRequest struct {
	TPAClassName        string `json:"tpa_class_name" validate:"required,min=2,max=100"`
	TPAClassTeacherName string `json:"tpa_class_teacher_name" validate:"omitempty,max=150"`
	TPAClassSchedule    string `json:"tpa_class_schedule" validate:"omitempty,max=255"`
	TPAClassIsActive    *bool  `json:"tpa_class_is_active"`
}

func (r CreateClassRequest) ToModel() model.TPAClassModel {
	active := true
	if r.TPAClassIsActive != nil {
		active = *r.TPAClassIsActive
	}
	return model.TPAClassModel{
		TPAClassName:        strings.TrimSpace(r.TPAClassName),
		TPAClassTeacherName: strings.TrimSpace(r.TPAClassTeacherName),
		TPAClassSchedule:    strings.TrimSpace(r.TPAClassSchedule),
		TPAClassIsActive:    active,
	}
}

type UpdateClassRequest struct {
	TPAClassName        *string `json:"tpa_class_name" validate:"omitempty,min=2,max=100"`
	TPAClassTeacherName *string `json:"tpa_class_teacher_name" validate:"omitempty,max=150"`
	TPAClassSchedule    *string `json:"tpa_class_schedule" validate:"omitempty,max=255"`
	TPAClassIsActive    *bool   `json:"tpa_class_is_active"`
}

func (r UpdateClassRequest) Apply(m *model.TPAClassModel) {
	if r.TPAClassName != nil {
		m.TPAClassName = strings.TrimSpace(*r.TPAClassName)
	}
	if r.TPAClassTeacherName != nil {
		m.TPAClassTeacherName = strings.TrimSpace(*r.TPAClassTeacherName)
	}
	if r.TPAClassSchedule != nil {
		m.TPAClassSchedule = strings.TrimSpace(*r.TPAClassSchedule)
	}
	if r.TPAClassIsActive != nil {
		m.TPAClassIsActive = *r.TPAClassIsActive
	}
}

// ClassWithCount: kelas + jumlah santri aktif.
type ClassWithCount struct {
	model.TPAClassModel
	ActiveStudents int64 `json:"active_students"`
}
