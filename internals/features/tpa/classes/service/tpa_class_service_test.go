package service

import (
	"context"
	"testing"
	"time"

	"masjidku_portal/internals/features/tpa/classes/model"
	studentModel "masjidku_portal/internals/features/tpa/students/model"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassService(t *testing.T) *ClassService {
	t.Helper()
	db := testdb.Open(t, &model.TPAClassModel{}, &studentModel.TPAStudentModel{})
	return NewClassService(db)
}

func addStudent(t *testing.T, svc *ClassService, class model.TPAClassModel, name string, active bool) {
	t.Helper()
	require.NoError(t, svc.DB.Create(&studentModel.TPAStudentModel{
		TPAStudentClassID:  class.TPAClassID,
		TPAStudentFullName: name,
		TPAStudentGender:   studentModel.GenderPerempuan,
		TPAStudentLevel:    studentModel.LevelIqro3,
		TPAStudentIsActive: active,
		TPAStudentJoinedAt: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func TestClassService_NameUnique(t *testing.T) {
	svc := newClassService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.TPAClassModel{TPAClassName: "Kelas Iqro A", TPAClassIsActive: true})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.TPAClassModel{TPAClassName: "Kelas Iqro A", TPAClassIsActive: true})
	assert.ErrorIs(t, err, ErrClassNameTaken)
}

func TestClassService_DeleteBlockedByActiveStudents(t *testing.T) {
	svc := newClassService(t)
	ctx := context.Background()

	class, err := svc.Create(ctx, model.TPAClassModel{TPAClassName: "Tahsin Dewasa", TPAClassIsActive: true})
	require.NoError(t, err)
	addStudent(t, svc, class, "Aisyah", true)
	addStudent(t, svc, class, "Fatimah", false)

	err = svc.Delete(ctx, class.TPAClassID)
	require.ErrorIs(t, err, ErrClassHasActive)
	assert.Equal(t, 409, ErrClassHasActive.Code)

	require.NoError(t, svc.DB.Model(&studentModel.TPAStudentModel{}).
		Where("tpa_student_full_name = ?", "Aisyah").
		Update("tpa_student_is_active", false).Error)

	require.NoError(t, svc.Delete(ctx, class.TPAClassID))
	_, err = svc.Get(ctx, class.TPAClassID)
	assert.ErrorIs(t, err, ErrClassNotFound)

	var left int64
	require.NoError(t, svc.DB.Model(&studentModel.TPAStudentModel{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestClassService_ListCountsActiveStudents(t *testing.T) {
	svc := newClassService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.TPAClassModel{TPAClassName: "B - Al-Quran", TPAClassIsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.TPAClassModel{TPAClassName: "A - Iqro", TPAClassIsActive: false})
	require.NoError(t, err)
	addStudent(t, svc, a, "Umar", true)
	addStudent(t, svc, a, "Ali", true)
	addStudent(t, svc, a, "Hasan", false)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A - Iqro", all[0].TPAClassName)
	assert.False(t, all[0].TPAClassIsActive)
	assert.Equal(t, int64(2), all[1].ActiveStudents)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.TPAClassID, active[0].TPAClassID)
}
