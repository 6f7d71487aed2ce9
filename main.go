package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/configs"
	database "masjidku_portal/internals/databases"
	donationService "masjidku_portal/internals/features/finance/donations/service"
	prayerClient "masjidku_portal/internals/features/prayer/prayer_times/client"
	prayerScheduler "masjidku_portal/internals/features/prayer/prayer_times/scheduler"
	prayerService "masjidku_portal/internals/features/prayer/prayer_times/service"
	authScheduler "masjidku_portal/internals/features/users/auth/scheduler"
	authService "masjidku_portal/internals/features/users/auth/service"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/logger"
	middlewares "masjidku_portal/internals/middlewares"
	reqLogger "masjidku_portal/internals/middlewares/logger"
	routes "masjidku_portal/internals/route"
	routeDetails "masjidku_portal/internals/route/details"
	"masjidku_portal/internals/seeds"
	seedUser "masjidku_portal/internals/seeds/users/auth"
	"masjidku_portal/internals/storage"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	zl := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = zl.Sync() }()

	cmdApp := cli.NewApp()
	cmdApp.Name = cfg.App.Name
	cmdApp.Usage = "Backend portal masjid: keuangan, jadwal sholat, konten & TPA"
	cmdApp.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "jalankan HTTP server (default)",
			Action: func(c *cli.Context) error {
				return serve(cfg, zl)
			},
		},
		{
			Name:  "db:migrate",
			Usage: "jalankan migrasi SQL (golang-migrate)",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "down", Usage: "mundur satu versi"},
				cli.BoolFlag{Name: "auto", Usage: "gorm AutoMigrate (khusus lokal)"},
			},
			Action: func(c *cli.Context) error {
				if c.Bool("auto") {
					db, err := database.Connect(cfg.Database, zl, false)
					if err != nil {
						return err
					}
					defer database.Close(db)
					return database.AutoMigrate(db)
				}

				m, err := database.NewMigrator(cfg.Database, zl)
				if err != nil {
					return err
				}
				defer m.Close()
				if c.Bool("down") {
					return m.Down()
				}
				return m.Up()
			},
		},
		{
			Name:  "db:seed",
			Usage: "isi admin, dana bawaan & data TPA demo",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "demo-students", Value: 0, Usage: "jumlah santri demo per kelas"},
			},
			Action: func(c *cli.Context) error {
				db, err := database.Connect(cfg.Database, zl, false)
				if err != nil {
					return err
				}
				defer database.Close(db)

				return seeds.RunAllSeeds(context.Background(), db, seeds.Options{
					Admin: seedUser.AdminSeed{
						UserName: configs.GetEnv("SEED_ADMIN_USERNAME", "admin"),
						Email:    configs.GetEnv("SEED_ADMIN_EMAIL"),
						Password: configs.GetEnv("SEED_ADMIN_PASSWORD"),
						FullName: configs.GetEnv("SEED_ADMIN_NAME", "Administrator"),
					},
					DemoStudentsPerClass: c.Int("demo-students"),
				}, zl)
			},
		},
		{
			Name:  "prayer:sync",
			Usage: "sinkron jadwal sholat hari ini & besok dari myQuran",
			Action: func(c *cli.Context) error {
				db, err := database.Connect(cfg.Database, zl, false)
				if err != nil {
					return err
				}
				defer database.Close(db)

				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				defer cancel()
				if ok := prayerScheduler.SyncDays(ctx, newPrayerService(db, cfg, zl), zl); ok == 0 {
					return fmt.Errorf("sinkron jadwal sholat gagal")
				}
				return nil
			},
		},
	}
	// tanpa subcommand -> serve
	cmdApp.Action = func(c *cli.Context) error {
		return serve(cfg, zl)
	}

	if err := cmdApp.Run(os.Args); err != nil {
		zl.Fatal("command failed", zap.Error(err))
	}
}

func newPrayerService(db *gorm.DB, cfg *configs.Config, zl *zap.Logger) *prayerService.SyncService {
	return prayerService.NewSyncService(db,
		prayerClient.NewMyQuranClient(cfg.Prayer.BaseURL, cfg.Prayer.HTTPTimeout),
		cfg.Location(),
		prayerService.Defaults{
			CityCode:        cfg.Prayer.DefaultCityCode,
			HijriAdjustment: cfg.Prayer.HijriAdjustment,
			IncludeImsak:    cfg.Prayer.IncludeImsak,
		},
		zl.Named("prayer"),
	)
}

// newCache: Redis bila REDIS_ENABLED, selain itu cache in-memory (single instance).
func newCache(ctx context.Context, cfg *configs.Config, zl *zap.Logger) (cache.Store, cache.IdempotencyStore, func()) {
	if cfg.Redis.Enabled {
		rs, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			zl.Info("✅ Redis cache aktif", zap.String("addr", cfg.Redis.Addr))
			return rs, rs, func() { _ = rs.Close() }
		}
		zl.Warn("⚠️ Redis tidak tersedia, fallback ke cache memori", zap.Error(err))
	}
	ms := cache.NewMemoryStore()
	return ms, ms, func() {}
}

func serve(cfg *configs.Config, zl *zap.Logger) error {
	ctx := context.Background()
	loc := cfg.Location()

	// 🔌 DB connect + pool + warm-up
	db, err := database.Connect(cfg.Database, zl, cfg.App.Env == "development")
	if err != nil {
		return err
	}
	database.WarmUp(db, zl)

	store, idem, closeCache := newCache(ctx, cfg, zl)
	defer closeCache()

	objects, err := storage.New(ctx, cfg.Storage, zl.Named("storage"))
	if err != nil {
		zl.Warn("⚠️ Object storage belum dikonfigurasi, upload galeri memakai storage memori", zap.Error(err))
		objects = storage.NewMemoryStorage("/uploads")
	}

	// ✅ MIDTRANS
	if cfg.Midtrans.ServerKey == "" {
		zl.Warn("⚠️ MIDTRANS_SERVER_KEY kosong, donasi online akan gagal")
	}
	snapGateway := donationService.NewMidtransSnap(cfg.Midtrans.ServerKey, cfg.Midtrans.Production)

	auth := authService.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.AccessTTL)
	prayer := newPrayerService(db, cfg, zl)

	// ⏱ scheduler setelah DB siap
	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(prayerScheduler.NewCronLogger(zl.Named("cron"))),
	)
	if _, err := prayerScheduler.RegisterPrayerSync(scheduler, cfg.Prayer.SyncCron, prayer, zl.Named("prayer")); err != nil {
		return fmt.Errorf("jadwal sinkron sholat: %w", err)
	}
	if _, err := authScheduler.RegisterBlacklistCleanup(scheduler, auth, zl.Named("auth")); err != nil {
		return fmt.Errorf("jadwal cleanup token: %w", err)
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler(zl),
		BodyLimit:               12 * 1024 * 1024, // upload foto galeri
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(middlewares.RecoveryMiddleware(zl))
	app.Use(reqLogger.LoggerMiddleware(zl.Named("http")))
	app.Use(middlewares.CorsMiddleware(cfg.App.CorsOrigins))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelDefault,
		// SSE tidak boleh di-buffer gzip
		Next: func(c *fiber.Ctx) bool { return c.Get(fiber.HeaderAccept) == "text/event-stream" },
	}))
	app.Use(etag.New()) // 304 caching

	// ✅ Routes
	routes.SetupRoutes(app, routeDetails.Deps{
		DB:      db,
		Config:  cfg,
		Loc:     loc,
		Log:     zl,
		Cache:   store,
		Idem:    idem,
		Storage: objects,
		Snap:    snapGateway,
		Auth:    auth,
		Prayer:  prayer,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := cfg.App.Port
	if _, err := strconv.Atoi(port); err != nil {
		port = "3000"
	}

	// Start server non-blocking
	errCh := make(chan error, 1)
	go func() {
		zl.Info("✅ Listening", zap.String("port", port), zap.String("tz", loc.String()))
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	// graceful shutdown: server, cron, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			zl.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		zl.Warn("cron job masih berjalan saat shutdown")
	}

	if err := database.Close(db); err != nil {
		zl.Warn("close db", zap.Error(err))
	}
	zl.Info("👋 Server berhenti")
	return nil
}
