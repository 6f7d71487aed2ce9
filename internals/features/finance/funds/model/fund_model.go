package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FundType string

const (
	FundTypeOperasional FundType = "OPERASIONAL"
	FundTypeSosial      FundType = "SOSIAL"
	FundTypeZakat       FundType = "ZAKAT"
	FundTypeWakaf       FundType = "WAKAF"
	FundTypeQurban      FundType = "QURBAN"
	FundTypePembangunan FundType = "PEMBANGUNAN"
	FundTypeLainnya     FundType = "LAINNYA"
)

var FundTypes = []FundType{
	FundTypeOperasional,
	FundTypeSosial,
	FundTypeZakat,
	FundTypeWakaf,
	FundTypeQurban,
	FundTypePembangunan,
	FundTypeLainnya,
}

func (t FundType) Valid() bool {
	for _, ft := range FundTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// FundModel adalah "kantong" dana. Dana restricted hanya boleh dipakai sesuai akadnya.
type FundModel struct {
	FundID           uuid.UUID `gorm:"column:fund_id;type:uuid;primaryKey" json:"fund_id"`
	FundName         string    `gorm:"column:fund_name;type:varchar(120);not null;uniqueIndex:uq_funds_name" json:"fund_name"`
	FundType         FundType  `gorm:"column:fund_type;type:varchar(20);not null;index" json:"fund_type"`
	FundDescription  string    `gorm:"column:fund_description;type:text" json:"fund_description"`
	FundIsRestricted bool      `gorm:"column:fund_is_restricted;not null" json:"fund_is_restricted"`
	FundIsActive     bool      `gorm:"column:fund_is_active;not null" json:"fund_is_active"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FundModel) TableName() string {
	return "funds"
}

func (f *FundModel) BeforeCreate(tx *gorm.DB) error {
	if f.FundID == uuid.Nil {
		f.FundID = uuid.New()
	}
	return nil
}
