package dto

import (
	"strings"
	"time"

	"masjidku_portal/internals/features/tpa/students/model"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	TPAStudentClassID       uuid.UUID    `json:"tpa_student_class_id" validate:"required"`
	TPAStudentFullName      string       `json:"tpa_student_full_name" validate:"required,min=2,max=150"`
	TPAStudentGender        model.Gender `json:"tpa_student_gender" validate:"required,oneof=L P"`
	TPAStudentBirthDate     string       `json:"tpa_student_birth_date" validate:"omitempty,datetime=2006-01-02"`
	TPAStudentGuardianName  string       `json:"tpa_student_guardian_name" validate:"omitempty,max=150"`
	TPAStudentGuardianPhone string       `json:"tpa_student_guardian_phone" validate:"omitempty,max=20,numeric"`
	TPAStudentLevel         model.Level  `json:"tpa_student_level" validate:"omitempty,oneof=IQRO_1 IQRO_2 IQRO_3 IQRO_4 IQRO_5 IQRO_6 AL_QURAN"`
	// kosong -> hari ini
	TPAStudentJoinedAt string `json:"tpa_student_joined_at" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateStudentRequest) ToModel(today time.Time) model.TPAStudentModel {
	m := model.TPAStudentModel{
		TPAStudentClassID:       r.TPAStudentClassID,
		TPAStudentFullName:      strings.TrimSpace(r.TPAStudentFullName),
		TPAStudentGender:        r.TPAStudentGender,
		TPAStudentBirthDate:     parseDate(r.TPAStudentBirthDate),
		TPAStudentGuardianName:  strings.TrimSpace(r.TPAStudentGuardianName),
		TPAStudentGuardianPhone: strings.TrimSpace(r.TPAStudentGuardianPhone),
		TPAStudentLevel:         r.TPAStudentLevel,
		TPAStudentIsActive:      true,
		TPAStudentJoinedAt:      today,
	}
	if m.TPAStudentLevel == "" {
		m.TPAStudentLevel = model.LevelIqro1
	}
	if j := parseDate(r.TPAStudentJoinedAt); j != nil {
		m.TPAStudentJoinedAt = *j
	}
	return m
}

type UpdateStudentRequest struct {
	TPAStudentClassID       *uuid.UUID    `json:"tpa_student_class_id"`
	TPAStudentFullName      *string       `json:"tpa_student_full_name" validate:"omitempty,min=2,max=150"`
	TPAStudentGender        *model.Gender `json:"tpa_student_gender" validate:"omitempty,oneof=L P"`
	TPAStudentBirthDate     *string       `json:"tpa_student_birth_date" validate:"omitempty,datetime=2006-01-02"`
	TPAStudentGuardianName  *string       `json:"tpa_student_guardian_name" validate:"omitempty,max=150"`
	TPAStudentGuardianPhone *string       `json:"tpa_student_guardian_phone" validate:"omitempty,max=20,numeric"`
	TPAStudentLevel         *model.Level  `json:"tpa_student_level" validate:"omitempty,oneof=IQRO_1 IQRO_2 IQRO_3 IQRO_4 IQRO_5 IQRO_6 AL_QURAN"`
	TPAStudentIsActive      *bool         `json:"tpa_student_is_active"`
}

func (r UpdateStudentRequest) Apply(m *model.TPAStudentModel) {
	if r.TPAStudentClassID != nil {
		m.TPAStudentClassID = *r.TPAStudentClassID
	}
	if r.TPAStudentFullName != nil {
		m.TPAStudentFullName = strings.TrimSpace(*r.TPAStudentFullName)
	}
	if r.TPAStudentGender != nil {
		m.TPAStudentGender = *r.TPAStudentGender
	}
	if r.TPAStudentBirthDate != nil {
		m.TPAStudentBirthDate = parseDate(*r.TPAStudentBirthDate)
	}
	if r.TPAStudentGuardianName != nil {
		m.TPAStudentGuardianName = strings.TrimSpace(*r.TPAStudentGuardianName)
	}
	if r.TPAStudentGuardianPhone != nil {
		m.TPAStudentGuardianPhone = strings.TrimSpace(*r.TPAStudentGuardianPhone)
	}
	if r.TPAStudentLevel != nil {
		m.TPAStudentLevel = *r.TPAStudentLevel
	}
	if r.TPAStudentIsActive != nil {
		m.TPAStudentIsActive = *r.TPAStudentIsActive
	}
}

type ListQuery struct {
	ClassID string `query:"class_id" validate:"omitempty,uuid"`
	Q       string `query:"q" validate:"omitempty,max=100"`
	Level   string `query:"level" validate:"omitempty,oneof=IQRO_1 IQRO_2 IQRO_3 IQRO_4 IQRO_5 IQRO_6 AL_QURAN"`
	// all | true | false (default true)
	Active string `query:"active" validate:"omitempty,oneof=all true false"`
}

func parseDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := dbtime.ParseDate(s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
