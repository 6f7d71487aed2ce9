package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/features/prayer/prayer_times/dto"
	"masjidku_portal/internals/features/prayer/prayer_times/service"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validatePrayer = validator.New()

// streamMaxAge: koneksi SSE ditutup berkala, klien EventSource akan menyambung ulang.
const streamMaxAge = 30 * time.Minute

type PrayerTimeController struct {
	Svc *service.SyncService
	Log *zap.Logger
	// StreamInterval = jarak antar event SSE.
	StreamInterval time.Duration
}

func NewPrayerTimeController(svc *service.SyncService, zl *zap.Logger) *PrayerTimeController {
	return &PrayerTimeController{Svc: svc, Log: zl, StreamInterval: time.Second}
}

// GET /api/public/prayer-times/today
func (ctrl *PrayerTimeController) Today(c *fiber.Ctx) error {
	view, err := ctrl.Svc.TodayView(c.Context())
	if err != nil {
		ctrl.Log.Error("prayer today failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat jadwal sholat")
	}
	return helper.JsonOK(c, "Jadwal sholat hari ini", view)
}

// GET /api/public/prayer-times/today/stream (text/event-stream)
func (ctrl *PrayerTimeController) Stream(c *fiber.Ctx) error {
	view, err := ctrl.Svc.TodayView(c.Context())
	if err != nil {
		ctrl.Log.Error("prayer stream failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat jadwal sholat")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	svc, interval, zl := ctrl.Svc, ctrl.StreamInterval, ctrl.Log
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// request ctx fasthttp tidak batal saat klien putus; putusnya terdeteksi dari Flush.
		ctx, cancel := context.WithTimeout(context.Background(), streamMaxAge)
		defer cancel()

		fmt.Fprintf(w, "retry: 3000\n")
		err := countdown.Stream(ctx, svc.Now, svc.Loc, view.Schedule, view.Policy, interval, func(n countdown.Next) error {
			return writeEvent(w, "countdown", n)
		})
		if err != nil {
			zl.Debug("prayer stream closed", zap.Error(err))
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, event string, data any) error {
	b, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return err
	}
	return w.Flush()
}

// GET /api/public/prayer-times/:date
func (ctrl *PrayerTimeController) ByDate(c *fiber.Ctx) error {
	date, err := dbtime.ParseDate(c.Params("date"), ctrl.Svc.Loc)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	row, err := ctrl.Svc.Lookup(c.Context(), date.Format(dbtime.DateLayout))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca jadwal sholat")
	}
	if row == nil {
		return fiber.NewError(fiber.StatusNotFound, "Jadwal tanggal tersebut belum tersedia")
	}
	return helper.JsonOK(c, "Jadwal sholat", dto.ToPrayerTimeResponse(*row))
}

// POST /api/a/prayer-times/sync?date=YYYY-MM-DD
func (ctrl *PrayerTimeController) Sync(c *fiber.Ctx) error {
	date := ctrl.Svc.Now().In(ctrl.Svc.Loc)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := dbtime.ParseDate(raw, ctrl.Svc.Loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date = d
	}

	row, err := ctrl.Svc.Sync(c.Context(), date)
	if errors.Is(err, service.ErrUpstreamUnavailable) {
		return fiber.NewError(fiber.StatusBadGateway, "Sumber jadwal sholat tidak dapat dihubungi")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal sinkronisasi jadwal sholat")
	}
	return helper.JsonOK(c, "Jadwal sholat disinkronkan", dto.ToPrayerTimeResponse(row))
}

// GET /api/a/prayer-times/settings
func (ctrl *PrayerTimeController) GetSettings(c *fiber.Ctx) error {
	s, err := ctrl.Svc.FetchSetting(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengaturan jadwal sholat")
	}
	return helper.JsonOK(c, "Pengaturan jadwal sholat", s)
}

// PUT /api/a/prayer-times/settings
func (ctrl *PrayerTimeController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	req.CityCode = strings.TrimSpace(req.CityCode)
	if err := validatePrayer.Struct(&req); err != nil {
		return helper.ValidationFailed(err)
	}

	current, err := ctrl.Svc.FetchSetting(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengaturan jadwal sholat")
	}
	saved, err := ctrl.Svc.SaveSetting(c.Context(), req.ToModel(current))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan pengaturan jadwal sholat")
	}
	return helper.JsonUpdated(c, "Pengaturan jadwal sholat disimpan", saved)
}

// GET /api/a/prayer-times/cities?q=
func (ctrl *PrayerTimeController) Cities(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 3 {
		return fiber.NewError(fiber.StatusBadRequest, "Kata kunci kota minimal 3 huruf")
	}
	cities, err := ctrl.Svc.SearchCities(c.Context(), q)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Sumber jadwal sholat tidak dapat dihubungi")
	}
	return helper.JsonOK(c, "Daftar kota", cities)
}
