package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleKind string

const (
	KindArtikel    ArticleKind = "ARTIKEL"
	KindPengumuman ArticleKind = "PENGUMUMAN"
)

// ArticleModel menampung artikel & pengumuman. Konten HTML disimpan apa adanya.
type ArticleModel struct {
	ArticleID          uuid.UUID      `gorm:"column:article_id;type:uuid;primaryKey" json:"article_id"`
	ArticleTitle       string         `gorm:"column:article_title;type:varchar(255);not null" json:"article_title"`
	ArticleSlug        string         `gorm:"column:article_slug;type:varchar(120);not null;uniqueIndex:uq_articles_slug" json:"article_slug"`
	ArticleKind        ArticleKind    `gorm:"column:article_kind;type:varchar(20);not null;index" json:"article_kind"`
	ArticleExcerpt     string         `gorm:"column:article_excerpt;type:text" json:"article_excerpt"`
	ArticleContent     string         `gorm:"column:article_content;type:text;not null" json:"article_content"`
	ArticleCoverURL    string         `gorm:"column:article_cover_url;type:text" json:"article_cover_url"`
	ArticleIsPublished bool           `gorm:"column:article_is_published;not null;index" json:"article_is_published"`
	ArticlePublishedAt *time.Time     `gorm:"column:article_published_at" json:"article_published_at,omitempty"`
	ArticleAuthorID    *uuid.UUID     `gorm:"column:article_author_id;type:uuid" json:"article_author_id,omitempty"`
	ArticleCreatedAt   time.Time      `gorm:"column:article_created_at;autoCreateTime" json:"article_created_at"`
	ArticleUpdatedAt   time.Time      `gorm:"column:article_updated_at;autoUpdateTime" json:"article_updated_at"`
	ArticleDeletedAt   gorm.DeletedAt `gorm:"column:article_deleted_at;index" json:"-"`
}

func (ArticleModel) TableName() string {
	return "articles"
}

func (a *ArticleModel) BeforeCreate(tx *gorm.DB) error {
	if a.ArticleID == uuid.Nil {
		a.ArticleID = uuid.New()
	}
	return nil
}
