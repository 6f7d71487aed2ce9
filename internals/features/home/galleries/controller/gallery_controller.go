package controller

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"time"

	"masjidku_portal/internals/features/home/galleries/dto"
	"masjidku_portal/internals/features/home/galleries/model"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validateGallery = validator.New()

const maxPhotoUpload = 10 * 1024 * 1024

type GalleryController struct {
	DB      *gorm.DB
	Storage storage.ObjectStorage
	Photo   storage.PhotoOptions
	Log     *zap.Logger
	Now     func() time.Time
}

func NewGalleryController(db *gorm.DB, store storage.ObjectStorage, opt storage.PhotoOptions, zl *zap.Logger) *GalleryController {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &GalleryController{DB: db, Storage: store, Photo: opt, Log: zl, Now: time.Now}
}

func (ctrl *GalleryController) findGallery(c *fiber.Ctx) (model.GalleryModel, error) {
	var g model.GalleryModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return g, fiber.NewError(fiber.StatusBadRequest, "ID galeri tidak valid")
	}
	if err := ctrl.DB.WithContext(c.Context()).First(&g, "gallery_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return g, fiber.NewError(fiber.StatusNotFound, "Galeri tidak ditemukan")
		}
		return g, err
	}
	return g, nil
}

func (ctrl *GalleryController) findPhoto(c *fiber.Ctx) (model.GalleryPhotoModel, error) {
	var p model.GalleryPhotoModel
	id, err := uuid.Parse(c.Params("photo_id"))
	if err != nil {
		return p, fiber.NewError(fiber.StatusBadRequest, "ID foto tidak valid")
	}
	if err := ctrl.DB.WithContext(c.Context()).First(&p, "photo_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, fiber.NewError(fiber.StatusNotFound, "Foto tidak ditemukan")
		}
		return p, err
	}
	return p, nil
}

// removeObjects: best-effort, kegagalan hanya dicatat.
func (ctrl *GalleryController) removeObjects(c *fiber.Ctx, keys ...string) {
	for _, k := range keys {
		if err := ctrl.Storage.Delete(c.Context(), k); err != nil {
			ctrl.Log.Warn("gallery object delete failed", zap.String("key", k), zap.Error(err))
		}
	}
}

// GET /galleries (public & admin)
func (ctrl *GalleryController) List(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	var total int64
	if err := db.Model(&model.GalleryModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil galeri")
	}

	p := helper.ResolvePaging(c, 12, 50)
	var rows []model.GalleryModel
	if err := db.Order("gallery_event_date DESC NULLS LAST").Order("created_at DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil galeri")
	}

	counts := map[uuid.UUID]int64{}
	if len(rows) > 0 {
		ids := make([]uuid.UUID, 0, len(rows))
		for _, g := range rows {
			ids = append(ids, g.GalleryID)
		}
		var agg []struct {
			GalleryID uuid.UUID
			N         int64
		}
		if err := db.Model(&model.GalleryPhotoModel{}).
			Select("photo_gallery_id AS gallery_id, COUNT(*) AS n").
			Where("photo_gallery_id IN ?", ids).
			Group("photo_gallery_id").Scan(&agg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung foto")
		}
		for _, a := range agg {
			counts[a.GalleryID] = a.N
		}
	}

	out := make([]dto.GallerySummary, 0, len(rows))
	for _, g := range rows {
		out = append(out, dto.GallerySummary{GalleryModel: g, PhotoCount: counts[g.GalleryID]})
	}
	return helper.JsonList(c, "Daftar galeri", out, helper.BuildPagination(total, p, len(out)))
}

// GET /galleries/:slug
func (ctrl *GalleryController) GetBySlug(c *fiber.Ctx) error {
	var g model.GalleryModel
	err := ctrl.DB.WithContext(c.Context()).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("photo_order ASC").Order("created_at ASC")
		}).
		First(&g, "gallery_slug = ?", c.Params("slug")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Galeri tidak ditemukan")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil galeri")
	}
	return helper.JsonOK(c, "Detail galeri", g)
}

// POST /galleries
func (ctrl *GalleryController) Create(c *fiber.Ctx) error {
	var body dto.GalleryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGallery.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}

	var g model.GalleryModel
	body.Apply(&g)
	slug, err := helper.EnsureUniqueSlug(c.Context(), ctrl.DB, helper.Slugify(g.GalleryTitle), "galleries", "gallery_slug", "", nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	g.GallerySlug = slug

	if err := ctrl.DB.WithContext(c.Context()).Create(&g).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Slug galeri sudah dipakai")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan galeri")
	}
	return helper.JsonCreated(c, "Galeri dibuat", g)
}

// PUT /galleries/:id (slug tetap)
func (ctrl *GalleryController) Update(c *fiber.Ctx) error {
	var body dto.GalleryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGallery.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}
	g, err := ctrl.findGallery(c)
	if err != nil {
		return err
	}
	body.Apply(&g)
	if err := ctrl.DB.WithContext(c.Context()).Save(&g).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui galeri")
	}
	return helper.JsonUpdated(c, "Galeri diperbarui", g)
}

// DELETE /galleries/:id: baris foto & galeri dihapus dalam satu transaksi, objek menyusul.
func (ctrl *GalleryController) Delete(c *fiber.Ctx) error {
	g, err := ctrl.findGallery(c)
	if err != nil {
		return err
	}

	var keys []string
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.GalleryPhotoModel{}).
			Where("photo_gallery_id = ?", g.GalleryID).
			Pluck("photo_object_key", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_gallery_id = ?", g.GalleryID).Delete(&model.GalleryPhotoModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus galeri")
	}
	ctrl.removeObjects(c, keys...)
	return helper.JsonDeleted(c, "Galeri dihapus", fiber.Map{"gallery_id": g.GalleryID, "photos_deleted": len(keys)})
}

// POST /galleries/:id/photos (multipart: photo, caption)
func (ctrl *GalleryController) UploadPhoto(c *fiber.Ctx) error {
	g, err := ctrl.findGallery(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File 'photo' wajib diunggah")
	}
	if fh.Size > maxPhotoUpload {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran foto maksimal 10MB")
	}
	src, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal membuka file")
	}
	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal membaca file")
	}

	photo, err := storage.ProcessPhoto(raw, ctrl.Photo)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
	}
	if err != nil {
		ctrl.Log.Error("gallery photo processing failed", zap.Error(err))
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Gagal memproses foto")
	}

	key := storage.ObjectKey("galleries/"+g.GallerySlug, ".webp", ctrl.Now())
	if err := ctrl.Storage.Put(c.Context(), key, bytes.NewReader(photo.Data), int64(len(photo.Data)), "image/webp"); err != nil {
		ctrl.Log.Error("gallery photo upload failed", zap.String("key", key), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Gagal mengunggah foto ke storage")
	}

	row := model.GalleryPhotoModel{
		PhotoGalleryID: g.GalleryID,
		PhotoObjectKey: key,
		PhotoURL:       ctrl.Storage.PublicURL(key),
		PhotoCaption:   strings.TrimSpace(c.FormValue("caption")),
		PhotoWidth:     photo.Width,
		PhotoHeight:    photo.Height,
	}
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&model.GalleryPhotoModel{}).
			Where("photo_gallery_id = ?", g.GalleryID).
			Select("COALESCE(MAX(photo_order), -1)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		row.PhotoOrder = maxOrder + 1
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if g.GalleryCoverURL == "" {
			return tx.Model(&g).Update("gallery_cover_url", row.PhotoURL).Error
		}
		return nil
	})
	if err != nil {
		ctrl.removeObjects(c, key)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan foto")
	}
	return helper.JsonCreated(c, "Foto diunggah", row)
}

// PATCH /galleries/photos/:photo_id
func (ctrl *GalleryController) UpdatePhoto(c *fiber.Ctx) error {
	var body dto.UpdatePhotoRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGallery.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}
	p, err := ctrl.findPhoto(c)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if body.PhotoCaption != nil {
		p.PhotoCaption = strings.TrimSpace(*body.PhotoCaption)
		updates["photo_caption"] = p.PhotoCaption
	}
	if body.PhotoOrder != nil {
		p.PhotoOrder = *body.PhotoOrder
		updates["photo_order"] = p.PhotoOrder
	}
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).Model(&p).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui foto")
		}
	}
	return helper.JsonUpdated(c, "Foto diperbarui", p)
}

// DELETE /galleries/photos/:photo_id: cover ikut pindah ke foto berikutnya.
func (ctrl *GalleryController) DeletePhoto(c *fiber.Ctx) error {
	p, err := ctrl.findPhoto(c)
	if err != nil {
		return err
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		var g model.GalleryModel
		if err := tx.First(&g, "gallery_id = ?", p.PhotoGalleryID).Error; err != nil {
			return err
		}
		if g.GalleryCoverURL != p.PhotoURL {
			return nil
		}
		var next model.GalleryPhotoModel
		cover := ""
		err := tx.Where("photo_gallery_id = ?", g.GalleryID).
			Order("photo_order ASC").Order("created_at ASC").First(&next).Error
		switch {
		case err == nil:
			cover = next.PhotoURL
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Model(&g).Update("gallery_cover_url", cover).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus foto")
	}
	ctrl.removeObjects(c, p.PhotoObjectKey)
	return helper.JsonDeleted(c, "Foto dihapus", fiber.Map{"photo_id": p.PhotoID})
}
