package database

import (
	"context"
	"fmt"
	"time"

	"masjidku_portal/internals/configs"
	donationModel "masjidku_portal/internals/features/finance/donations/model"
	fundModel "masjidku_portal/internals/features/finance/funds/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"
	articleModel "masjidku_portal/internals/features/home/articles/model"
	galleryModel "masjidku_portal/internals/features/home/galleries/model"
	prayerModel "masjidku_portal/internals/features/prayer/prayer_times/model"
	siteSettingsModel "masjidku_portal/internals/features/settings/site_settings/model"
	tpaClassModel "masjidku_portal/internals/features/tpa/classes/model"
	tpaStudentModel "masjidku_portal/internals/features/tpa/students/model"
	authModel "masjidku_portal/internals/features/users/auth/model"
	userModel "masjidku_portal/internals/features/users/user/model"
	"masjidku_portal/internals/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Connect membuka koneksi PostgreSQL (driver pgx) dengan log SQL lewat zap.
func Connect(cfg configs.DatabaseConfig, zl *zap.Logger, debug bool) (*gorm.DB, error) {
	zl.Info("🔌 Koneksi ke PostgreSQL...", zap.String("host", cfg.Host), zap.String("db", cfg.Name))

	level := gormLogger.Warn
	if debug {
		level = gormLogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN() + "&options=-c%20statement_timeout%3D5000",
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         logger.NewGormLogger(zl, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}

	TunePool(db, cfg, zl)
	zl.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DatabaseConfig, zl *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		zl.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// WarmUp: ping ringan supaya pool terisi sebelum request pertama.
func WarmUp(db *gorm.DB, zl *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			zl.Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Models: seluruh tabel aplikasi, urut sesuai foreign key.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&fundModel.FundModel{},
		&financeModel.FinanceModel{},
		&siteSettingsModel.SiteSettingsModel{},
		&donationModel.OnlineDonationModel{},
		&prayerModel.DailyPrayerTimeModel{},
		&prayerModel.PrayerTimeSettingModel{},
		&articleModel.ArticleModel{},
		&galleryModel.GalleryModel{},
		&galleryModel.GalleryPhotoModel{},
		&tpaClassModel.TPAClassModel{},
		&tpaStudentModel.TPAStudentModel{},
	}
}

// AutoMigrate untuk DB lokal / sqlite; produksi memakai migrasi SQL (Migrator).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
