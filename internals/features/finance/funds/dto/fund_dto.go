package dto

import (
	"masjidku_portal/internals/features/finance/funds/model"
)

type CreateFundRequest struct {
	FundName         string         `json:"fund_name" validate:"required,min=2,max=120"`
	FundType         model.FundType `json:"fund_type" validate:"required,oneof=OPERASIONAL SOSIAL ZAKAT WAKAF QURBAN PEMBANGUNAN LAINNYA"`
	FundDescription  string         `json:"fund_description"`
	FundIsRestricted bool           `json:"fund_is_restricted"`
	// nil -> aktif
	FundIsActive *bool `json:"fund_is_active"`
}

func (r CreateFundRequest) ToModel() model.FundModel {
	active := true
	if r.FundIsActive != nil {
		active = *r.FundIsActive
	}
	return model.FundModel{
		FundName:         r.FundName,
		FundType:         r.FundType,
		FundDescription:  r.FundDescription,
		FundIsRestricted: r.FundIsRestricted,
		FundIsActive:     active,
	}
}

type UpdateFundRequest struct {
	FundName         *string         `json:"fund_name" validate:"omitempty,min=2,max=120"`
	FundType         *model.FundType `json:"fund_type" validate:"omitempty,oneof=OPERASIONAL SOSIAL ZAKAT WAKAF QURBAN PEMBANGUNAN LAINNYA"`
	FundDescription  *string         `json:"fund_description"`
	FundIsRestricted *bool           `json:"fund_is_restricted"`
	FundIsActive     *bool           `json:"fund_is_active"`
}

func (r UpdateFundRequest) Apply(m *model.FundModel) {
	if r.FundName != nil {
		m.FundName = *r.FundName
	}
	if r.FundType != nil {
		m.FundType = *r.FundType
	}
	if r.FundDescription != nil {
		m.FundDescription = *r.FundDescription
	}
	if r.FundIsRestricted != nil {
		m.FundIsRestricted = *r.FundIsRestricted
	}
	if r.FundIsActive != nil {
		m.FundIsActive = *r.FundIsActive
	}
}
