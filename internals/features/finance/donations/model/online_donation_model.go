package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending DonationStatus = "pending"
	DonationPaid    DonationStatus = "paid"
	DonationFailed  DonationStatus = "failed"
	DonationExpired DonationStatus = "expired"
)

// OnlineDonationModel = donasi lewat Midtrans Snap. Setelah settlement,
// FinanceID menunjuk baris INCOME yang dibuat di dana tujuan.
type OnlineDonationModel struct {
	DonationID          uuid.UUID       `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`
	DonationOrderID     string          `gorm:"column:donation_order_id;type:varchar(100);not null;uniqueIndex:uq_online_donations_order" json:"donation_order_id"`
	DonationFundID      uuid.UUID       `gorm:"column:donation_fund_id;type:uuid;not null;index" json:"donation_fund_id"`
	DonationAmount      decimal.Decimal `gorm:"column:donation_amount;type:decimal(20,2);not null" json:"donation_amount"`
	DonationDonorName   string          `gorm:"column:donation_donor_name;type:varchar(120)" json:"donation_donor_name"`
	DonationDonorEmail  string          `gorm:"column:donation_donor_email;type:varchar(255)" json:"donation_donor_email"`
	DonationIsAnonymous bool            `gorm:"column:donation_is_anonymous;not null" json:"donation_is_anonymous"`
	DonationMessage     string          `gorm:"column:donation_message;type:text" json:"donation_message"`
	DonationStatus      DonationStatus  `gorm:"column:donation_status;type:varchar(20);not null;index" json:"donation_status"`
	DonationSnapToken   string          `gorm:"column:donation_snap_token;type:text" json:"donation_snap_token,omitempty"`
	DonationPaymentType string          `gorm:"column:donation_payment_type;type:varchar(50)" json:"donation_payment_type,omitempty"`
	DonationFinanceID   *uuid.UUID      `gorm:"column:donation_finance_id;type:uuid" json:"donation_finance_id,omitempty"`
	DonationPaidAt      *time.Time      `gorm:"column:donation_paid_at" json:"donation_paid_at,omitempty"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OnlineDonationModel) TableName() string {
	return "online_donations"
}

func (d *OnlineDonationModel) BeforeCreate(tx *gorm.DB) error {
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	return nil
}
