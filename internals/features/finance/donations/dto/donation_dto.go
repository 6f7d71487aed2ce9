package dto

import (
	"time"

	"masjidku_portal/internals/features/finance/donations/model"
	"masjidku_portal/internals/features/finance/donations/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateDonationRequest struct {
	FundID      uuid.UUID       `json:"fund_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DonorName   string          `json:"donor_name" validate:"omitempty,max=120"`
	DonorEmail  string          `json:"donor_email" validate:"omitempty,email,max=255"`
	IsAnonymous bool            `json:"is_anonymous"`
	Message     string          `json:"message" validate:"omitempty,max=500"`
}

func (r CreateDonationRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		FundID:      r.FundID,
		Amount:      r.Amount,
		DonorName:   r.DonorName,
		DonorEmail:  r.DonorEmail,
		IsAnonymous: r.IsAnonymous,
		Message:     r.Message,
	}
}

type CreateDonationResponse struct {
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	SnapToken   string          `json:"snap_token"`
	RedirectURL string          `json:"redirect_url"`
}

// DonationStatusResponse = status publik per order_id, tanpa data donatur.
type DonationStatusResponse struct {
	OrderID     string               `json:"order_id"`
	FundID      uuid.UUID            `json:"fund_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Status      model.DonationStatus `json:"status"`
	PaymentType string               `json:"payment_type,omitempty"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
}

func ToStatusResponse(m model.OnlineDonationModel) DonationStatusResponse {
	return DonationStatusResponse{
		OrderID:     m.DonationOrderID,
		FundID:      m.DonationFundID,
		Amount:      m.DonationAmount,
		Status:      m.DonationStatus,
		PaymentType: m.DonationPaymentType,
		PaidAt:      m.DonationPaidAt,
	}
}

type ListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending paid failed expired"`
	FundID string `query:"fund_id" validate:"omitempty,uuid"`
}
