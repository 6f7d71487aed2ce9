package seeds

import (
	"context"
	"testing"

	fundModel "masjidku_portal/internals/features/finance/funds/model"
	siteSettingsModel "masjidku_portal/internals/features/settings/site_settings/model"
	classModel "masjidku_portal/internals/features/tpa/classes/model"
	studentModel "masjidku_portal/internals/features/tpa/students/model"
	userModel "masjidku_portal/internals/features/users/user/model"
	"masjidku_portal/internals/helpers/testdb"
	user "masjidku_portal/internals/seeds/users/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := testdb.Open(t,
		&userModel.UserModel{}, &fundModel.FundModel{}, &siteSettingsModel.SiteSettingsModel{},
		&classModel.TPAClassModel{}, &studentModel.TPAStudentModel{},
	)
	opt := Options{
		Admin:                user.AdminSeed{Email: "Admin@Masjid.id", Password: "rahasia123"},
		DemoStudentsPerClass: 4,
	}
	ctx := context.Background()

	require.NoError(t, RunAllSeeds(ctx, db, opt, zap.NewNop()))
	require.NoError(t, RunAllSeeds(ctx, db, opt, zap.NewNop()))

	var users, funds, classes, students, settings int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&fundModel.FundModel{}).Count(&funds).Error)
	require.NoError(t, db.Model(&classModel.TPAClassModel{}).Count(&classes).Error)
	require.NoError(t, db.Model(&studentModel.TPAStudentModel{}).Count(&students).Error)
	require.NoError(t, db.Model(&siteSettingsModel.SiteSettingsModel{}).Count(&settings).Error)

	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 4, funds)
	assert.EqualValues(t, 3, classes)
	assert.EqualValues(t, 12, students)
	assert.EqualValues(t, 1, settings)

	var admin userModel.UserModel
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, "admin@masjid.id", admin.Email)
	assert.Equal(t, "admin", admin.Role)
	assert.NotEqual(t, "rahasia123", admin.Password)
}

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	db := testdb.Open(t, &userModel.UserModel{})
	require.NoError(t, user.SeedAdmin(context.Background(), db, user.AdminSeed{}, zap.NewNop()))

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
