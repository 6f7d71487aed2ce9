package scheduler

import (
	"context"
	"time"

	"masjidku_portal/internals/features/users/auth/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RegisterBlacklistCleanup: setiap hari 03:00 hapus token blacklist yang exp-nya sudah lewat.
func RegisterBlacklistCleanup(c *cron.Cron, svc *service.AuthService, zl *zap.Logger) (cron.EntryID, error) {
	return c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.PurgeExpiredBlacklist(ctx, svc.Now())
		if err != nil {
			zl.Error("token blacklist cleanup failed", zap.Error(err))
			return
		}
		zl.Info("token blacklist cleanup", zap.Int64("deleted", n))
	})
}
