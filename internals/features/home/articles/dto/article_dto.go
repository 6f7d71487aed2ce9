package dto

import (
	"strings"
	"time"

	"masjidku_portal/internals/features/home/articles/model"

	"github.com/google/uuid"
)

// ============================
// Response DTO
// ============================

type ArticleDTO struct {
	ArticleID          uuid.UUID         `json:"article_id"`
	ArticleTitle       string            `json:"article_title"`
	ArticleSlug        string            `json:"article_slug"`
	ArticleKind        model.ArticleKind `json:"article_kind"`
	ArticleExcerpt     string            `json:"article_excerpt"`
	ArticleContent     string            `json:"article_content,omitempty"`
	ArticleCoverURL    string            `json:"article_cover_url"`
	ArticleIsPublished bool              `json:"article_is_published"`
	ArticlePublishedAt *time.Time        `json:"article_published_at,omitempty"`
	ArticleCreatedAt   time.Time         `json:"article_created_at"`
	ArticleUpdatedAt   time.Time         `json:"article_updated_at"`
}

// ============================
// Create & Update Request DTO
// ============================

type CreateArticleRequest struct {
	ArticleTitle       string            `json:"article_title" validate:"required,min=3,max=255"`
	ArticleSlug        string            `json:"article_slug" validate:"omitempty,max=100"`
	ArticleKind        model.ArticleKind `json:"article_kind" validate:"omitempty,oneof=ARTIKEL PENGUMUMAN"`
	ArticleExcerpt     string            `json:"article_excerpt" validate:"omitempty,max=500"`
	ArticleContent     string            `json:"article_content" validate:"required"`
	ArticleCoverURL    string            `json:"article_cover_url" validate:"omitempty,url"`
	ArticleIsPublished bool              `json:"article_is_published"`
}

// UpdateArticleRequest: field nil = tidak diubah.
type UpdateArticleRequest struct {
	ArticleTitle    *string            `json:"article_title" validate:"omitempty,min=3,max=255"`
	ArticleSlug     *string            `json:"article_slug" validate:"omitempty,max=100"`
	ArticleKind     *model.ArticleKind `json:"article_kind" validate:"omitempty,oneof=ARTIKEL PENGUMUMAN"`
	ArticleExcerpt  *string            `json:"article_excerpt" validate:"omitempty,max=500"`
	ArticleContent  *string            `json:"article_content" validate:"omitempty,min=1"`
	ArticleCoverURL *string            `json:"article_cover_url" validate:"omitempty,url"`
}

type PublishRequest struct {
	IsPublished bool `json:"is_published"`
}

type ListQuery struct {
	Kind string `query:"kind" validate:"omitempty,oneof=ARTIKEL PENGUMUMAN"`
	Q    string `query:"q" validate:"omitempty,max=100"`
}

// ============================
// Converter
// ============================

func (r CreateArticleRequest) ToModel() model.ArticleModel {
	kind := r.ArticleKind
	if kind == "" {
		kind = model.KindArtikel
	}
	return model.ArticleModel{
		ArticleTitle:       strings.TrimSpace(r.ArticleTitle),
		ArticleKind:        kind,
		ArticleExcerpt:     strings.TrimSpace(r.ArticleExcerpt),
		ArticleContent:     r.ArticleContent,
		ArticleCoverURL:    strings.TrimSpace(r.ArticleCoverURL),
		ArticleIsPublished: r.ArticleIsPublished,
	}
}

func (r UpdateArticleRequest) Apply(m *model.ArticleModel) {
	if r.ArticleTitle != nil {
		m.ArticleTitle = strings.TrimSpace(*r.ArticleTitle)
	}
	if r.ArticleKind != nil {
		m.ArticleKind = *r.ArticleKind
	}
	if r.ArticleExcerpt != nil {
		m.ArticleExcerpt = strings.TrimSpace(*r.ArticleExcerpt)
	}
	if r.ArticleContent != nil {
		m.ArticleContent = *r.ArticleContent
	}
	if r.ArticleCoverURL != nil {
		m.ArticleCoverURL = strings.TrimSpace(*r.ArticleCoverURL)
	}
}

func ToArticleDTO(m model.ArticleModel) ArticleDTO {
	return ArticleDTO{
		ArticleID:          m.ArticleID,
		ArticleTitle:       m.ArticleTitle,
		ArticleSlug:        m.ArticleSlug,
		ArticleKind:        m.ArticleKind,
		ArticleExcerpt:     m.ArticleExcerpt,
		ArticleContent:     m.ArticleContent,
		ArticleCoverURL:    m.ArticleCoverURL,
		ArticleIsPublished: m.ArticleIsPublished,
		ArticlePublishedAt: m.ArticlePublishedAt,
		ArticleCreatedAt:   m.ArticleCreatedAt,
		ArticleUpdatedAt:   m.ArticleUpdatedAt,
	}
}

// ToArticleListDTO: listing tanpa konten penuh.
func ToArticleListDTO(rows []model.ArticleModel) []ArticleDTO {
	out := make([]ArticleDTO, 0, len(rows))
	for _, a := range rows {
		d := ToArticleDTO(a)
		d.ArticleContent = ""
		out = append(out, d)
	}
	return out
}
