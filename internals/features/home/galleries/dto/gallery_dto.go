package dto

import (
	"strings"
	"time"

	"masjidku_portal/internals/features/home/galleries/model"
	"masjidku_portal/internals/helpers/dbtime"
)

type GalleryRequest struct {
	GalleryTitle       string `json:"gallery_title" validate:"required,min=3,max=255"`
	GalleryDescription string `json:"gallery_description" validate:"omitempty,max=2000"`
	// YYYY-MM-DD, opsional
	GalleryEventDate string `json:"gallery_event_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r GalleryRequest) Apply(m *model.GalleryModel) {
	m.GalleryTitle = strings.TrimSpace(r.GalleryTitle)
	m.GalleryDescription = strings.TrimSpace(r.GalleryDescription)
	m.GalleryEventDate = nil
	if r.GalleryEventDate != "" {
		if t, err := dbtime.ParseDate(r.GalleryEventDate, time.UTC); err == nil {
			m.GalleryEventDate = &t
		}
	}
}

type UpdatePhotoRequest struct {
	PhotoCaption *string `json:"photo_caption" validate:"omitempty,max=255"`
	PhotoOrder   *int    `json:"photo_order" validate:"omitempty,min=0"`
}

type GallerySummary struct {
	model.GalleryModel
	PhotoCount int64 `json:"photo_count"`
}
