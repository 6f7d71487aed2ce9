package scheduler

import (
	"context"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger meneruskan log internal cron ke zap.
type cronLogger struct{ zl *zap.SugaredLogger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.zl.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.zl.Errorw(msg, append(keysAndValues, "error", err)...)
}

func NewCronLogger(zl *zap.Logger) cron.Logger {
	return cronLogger{zl: zl.Sugar()}
}

// SyncDays: ambil ulang jadwal hari ini & besok. Gagal satu tanggal tidak menghentikan yang lain.
func SyncDays(ctx context.Context, svc *service.SyncService, zl *zap.Logger) int {
	today := svc.Now().In(svc.Loc)
	ok := 0
	for _, d := range []time.Time{today, today.AddDate(0, 0, 1)} {
		row, err := svc.Sync(ctx, d)
		if err != nil {
			zl.Warn("prayer sync failed", zap.String("date", d.Format("2006-01-02")), zap.Error(err))
			continue
		}
		ok++
		zl.Info("prayer sync", zap.String("date", row.PrayerDate), zap.String("city", row.CityCode))
	}
	return ok
}

// RegisterPrayerSync mendaftarkan job harian. Run yang masih jalan tidak ditumpuk.
func RegisterPrayerSync(c *cron.Cron, spec string, svc *service.SyncService, zl *zap.Logger) (cron.EntryID, error) {
	job := cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		SyncDays(ctx, svc, zl)
	})
	return c.AddJob(spec, cron.NewChain(cron.SkipIfStillRunning(NewCronLogger(zl))).Then(job))
}
