package details

import (
	"time"

	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/configs"
	donationService "masjidku_portal/internals/features/finance/donations/service"
	prayerService "masjidku_portal/internals/features/prayer/prayer_times/service"
	authService "masjidku_portal/internals/features/users/auth/service"
	"masjidku_portal/internals/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps: semua dependensi yang dirakit di main lalu dibagikan ke route.
type Deps struct {
	DB      *gorm.DB
	Config  *configs.Config
	Loc     *time.Location
	Log     *zap.Logger
	Cache   cache.Store
	Idem    cache.IdempotencyStore
	Storage storage.ObjectStorage
	Snap    donationService.SnapGateway
	Auth    *authService.AuthService
	Prayer  *prayerService.SyncService
}

func (d Deps) PhotoOptions() storage.PhotoOptions {
	return storage.PhotoOptions{
		MaxWidth: d.Config.Storage.GalleryMaxW,
		Quality:  d.Config.Storage.GalleryQuality,
	}
}
