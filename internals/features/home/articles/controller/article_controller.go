package controller

import (
	"errors"
	"strings"
	"time"

	"masjidku_portal/internals/features/home/articles/dto"
	"masjidku_portal/internals/features/home/articles/model"
	helper "masjidku_portal/internals/helpers"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validateArticle = validator.New()

type ArticleController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewArticleController(db *gorm.DB) *ArticleController {
	return &ArticleController{DB: db, Now: time.Now}
}

func (ctrl *ArticleController) uniqueSlug(c *fiber.Ctx, source string, exclude any) (string, error) {
	return helper.EnsureUniqueSlug(c.Context(), ctrl.DB, helper.Slugify(source), "articles", "article_slug", "article_id", exclude)
}

func (ctrl *ArticleController) findByID(c *fiber.Ctx) (model.ArticleModel, error) {
	var article model.ArticleModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return article, fiber.NewError(fiber.StatusBadRequest, "ID artikel tidak valid")
	}
	if err := ctrl.DB.WithContext(c.Context()).First(&article, "article_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return article, fiber.NewError(fiber.StatusNotFound, "Artikel tidak ditemukan")
		}
		return article, err
	}
	return article, nil
}

func listQuery(c *fiber.Ctx, db *gorm.DB) (*gorm.DB, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validateArticle.Struct(&q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	tx := db.WithContext(c.Context()).Model(&model.ArticleModel{})
	if q.Kind != "" {
		tx = tx.Where("article_kind = ?", q.Kind)
	}
	if kw := strings.ToLower(strings.TrimSpace(q.Q)); kw != "" {
		like := "%" + kw + "%"
		tx = tx.Where("LOWER(article_title) LIKE ? OR LOWER(article_excerpt) LIKE ?", like, like)
	}
	return tx, nil
}

// =============================
// 📄 Public: artikel terbit
// =============================
func (ctrl *ArticleController) ListPublished(c *fiber.Ctx) error {
	tx, err := listQuery(c, ctrl.DB)
	if err != nil {
		return err
	}
	tx = tx.Where("article_is_published = ?", true)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	p := helper.ResolvePaging(c, 10, 50)
	var rows []model.ArticleModel
	if err := tx.Order("article_published_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	return helper.JsonList(c, "Daftar artikel", dto.ToArticleListDTO(rows), helper.BuildPagination(total, p, len(rows)))
}

// =============================
// 🔍 Public: detail by slug
// =============================
func (ctrl *ArticleController) GetBySlug(c *fiber.Ctx) error {
	var article model.ArticleModel
	err := ctrl.DB.WithContext(c.Context()).
		Where("article_slug = ? AND article_is_published = ?", c.Params("slug"), true).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Artikel tidak ditemukan")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	return helper.JsonOK(c, "Detail artikel", dto.ToArticleDTO(article))
}

// =============================
// 📄 Admin: semua (termasuk draft)
// =============================
func (ctrl *ArticleController) List(c *fiber.Ctx) error {
	tx, err := listQuery(c, ctrl.DB)
	if err != nil {
		return err
	}
	if s := c.Query("published"); s != "" {
		tx = tx.Where("article_is_published = ?", s == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	p := helper.ResolvePaging(c, 20, 100)
	var rows []model.ArticleModel
	if err := tx.Order("article_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	return helper.JsonList(c, "Daftar artikel", dto.ToArticleListDTO(rows), helper.BuildPagination(total, p, len(rows)))
}

func (ctrl *ArticleController) Get(c *fiber.Ctx) error {
	article, err := ctrl.findByID(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail artikel", dto.ToArticleDTO(article))
}

// =============================
// ➕ Create Article
// =============================
func (ctrl *ArticleController) Create(c *fiber.Ctx) error {
	var body dto.CreateArticleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateArticle.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}

	article := body.ToModel()
	article.ArticleAuthorID = authMiddleware.CurrentUserIDPtr(c)
	if article.ArticleIsPublished {
		now := ctrl.Now()
		article.ArticlePublishedAt = &now
	}

	source := body.ArticleSlug
	if strings.TrimSpace(source) == "" {
		source = article.ArticleTitle
	}
	slug, err := ctrl.uniqueSlug(c, source, nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	article.ArticleSlug = slug

	if err := ctrl.DB.WithContext(c.Context()).Create(&article).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Slug artikel sudah dipakai")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan artikel")
	}
	return helper.JsonCreated(c, "Artikel dibuat", dto.ToArticleDTO(article))
}

// =============================
// 🔄 Update Article
// =============================
// Slug hanya berubah bila article_slug dikirim.
func (ctrl *ArticleController) Update(c *fiber.Ctx) error {
	var body dto.UpdateArticleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateArticle.Struct(&body); err != nil {
		return helper.ValidationFailed(err)
	}

	article, err := ctrl.findByID(c)
	if err != nil {
		return err
	}
	body.Apply(&article)

	if body.ArticleSlug != nil && strings.TrimSpace(*body.ArticleSlug) != "" {
		slug, err := ctrl.uniqueSlug(c, *body.ArticleSlug, article.ArticleID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slug")
		}
		article.ArticleSlug = slug
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&article).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Slug artikel sudah dipakai")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui artikel")
	}
	return helper.JsonUpdated(c, "Artikel diperbarui", dto.ToArticleDTO(article))
}

// =============================
// 📢 Publish / Unpublish
// =============================
// published_at diisi saat pertama kali terbit dan tidak direset.
func (ctrl *ArticleController) SetPublished(c *fiber.Ctx) error {
	var body dto.PublishRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	article, err := ctrl.findByID(c)
	if err != nil {
		return err
	}

	updates := map[string]any{"article_is_published": body.IsPublished}
	if body.IsPublished && article.ArticlePublishedAt == nil {
		now := ctrl.Now()
		updates["article_published_at"] = now
		article.ArticlePublishedAt = &now
	}
	if err := ctrl.DB.WithContext(c.Context()).Model(&article).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah status terbit")
	}
	article.ArticleIsPublished = body.IsPublished
	return helper.JsonUpdated(c, "Status terbit diperbarui", dto.ToArticleDTO(article))
}

// =============================
// 🗑️ Delete Article (soft)
// =============================
func (ctrl *ArticleController) Delete(c *fiber.Ctx) error {
	article, err := ctrl.findByID(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.Context()).Delete(&article).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus artikel")
	}
	return helper.JsonDeleted(c, "Artikel dihapus", fiber.Map{"article_id": article.ArticleID})
}
