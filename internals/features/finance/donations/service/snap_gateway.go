package service

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

type SnapRequest struct {
	OrderID    string
	Amount     decimal.Decimal
	DonorName  string
	DonorEmail string
	ItemName   string
}

type SnapResult struct {
	Token       string
	RedirectURL string
}

// SnapGateway membuat transaksi Snap. Di test diganti fake.
type SnapGateway interface {
	CreateSnap(ctx context.Context, req SnapRequest) (SnapResult, error)
}

type MidtransSnap struct {
	client snap.Client
}

// NewMidtransSnap: production=false -> sandbox.
func NewMidtransSnap(serverKey string, production bool) *MidtransSnap {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransSnap{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransSnap) CreateSnap(ctx context.Context, req SnapRequest) (SnapResult, error) {
	if err := ctx.Err(); err != nil {
		return SnapResult{}, err
	}
	gross := req.Amount.IntPart()
	sr := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.DonorName,
			Email: req.DonorEmail,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.OrderID,
			Name:  req.ItemName,
			Price: gross,
			Qty:   1,
		}},
	}

	resp, merr := g.client.CreateTransaction(sr)
	if merr != nil {
		return SnapResult{}, fmt.Errorf("midtrans snap: %s", merr.Error())
	}
	return SnapResult{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}
