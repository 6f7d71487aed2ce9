package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryModel struct {
	GalleryID          uuid.UUID  `gorm:"column:gallery_id;type:uuid;primaryKey" json:"gallery_id"`
	GalleryTitle       string     `gorm:"column:gallery_title;type:varchar(255);not null" json:"gallery_title"`
	GallerySlug        string     `gorm:"column:gallery_slug;type:varchar(120);not null;uniqueIndex:uq_galleries_slug" json:"gallery_slug"`
	GalleryDescription string     `gorm:"column:gallery_description;type:text" json:"gallery_description"`
	GalleryCoverURL    string     `gorm:"column:gallery_cover_url;type:text" json:"gallery_cover_url"`
	GalleryEventDate   *time.Time `gorm:"column:gallery_event_date;type:date" json:"gallery_event_date,omitempty"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Photos []GalleryPhotoModel `gorm:"foreignKey:PhotoGalleryID;references:GalleryID" json:"photos,omitempty"`
}

func (GalleryModel) TableName() string {
	return "galleries"
}

func (g *GalleryModel) BeforeCreate(tx *gorm.DB) error {
	if g.GalleryID == uuid.Nil {
		g.GalleryID = uuid.New()
	}
	return nil
}

// GalleryPhotoModel: satu foto webp di object storage.
type GalleryPhotoModel struct {
	PhotoID        uuid.UUID `gorm:"column:photo_id;type:uuid;primaryKey" json:"photo_id"`
	PhotoGalleryID uuid.UUID `gorm:"column:photo_gallery_id;type:uuid;not null;index" json:"photo_gallery_id"`
	PhotoObjectKey string    `gorm:"column:photo_object_key;type:text;not null" json:"-"`
	PhotoURL       string    `gorm:"column:photo_url;type:text;not null" json:"photo_url"`
	PhotoCaption   string    `gorm:"column:photo_caption;type:varchar(255)" json:"photo_caption"`
	PhotoOrder     int       `gorm:"column:photo_order;not null;default:0" json:"photo_order"`
	PhotoWidth     int       `gorm:"column:photo_width" json:"photo_width"`
	PhotoHeight    int       `gorm:"column:photo_height" json:"photo_height"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GalleryPhotoModel) TableName() string {
	return "gallery_photos"
}

func (p *GalleryPhotoModel) BeforeCreate(tx *gorm.DB) error {
	if p.PhotoID == uuid.Nil {
		p.PhotoID = uuid.New()
	}
	return nil
}
