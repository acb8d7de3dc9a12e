package api

import (
	"context"

	sdktypes "github.com/cosmos/cosmos-sdk/types"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/dorcp"
)

type DORCP struct {
	*Code
}

func NewDORCP(client cosmwasmapi.SigningClient, sender string) *DORCP {
	return &DORCP{Code: NewCode(client, sender)}
}

func (d *DORCP) Instantiate(ctx context.Context, codeID uint64, label, admin string) (*DORCPInstance, *cosmwasmapi.InstantiateResult, error) {
	contract, res, err := d.Code.Instantiate(ctx, codeID, &dorcp.InstantiateMsg{}, label, admin, nil)
	if err != nil {
		return nil, nil, err
	}
	return &DORCPInstance{Contract: contract}, res, nil
}

func (d *DORCP) Use(contractAddr string) *DORCPInstance {
	return &DORCPInstance{Contract: d.Code.Use(contractAddr)}
}

type DORCPInstance struct {
	*Contract
}

// Create opens a proposal escrow funded with funds.
func (d *DORCPInstance) Create(ctx context.Context, sender string, create dorcp.Create, funds sdktypes.Coins) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{Create: &create}, funds)
}

func (d *DORCPInstance) Approve(ctx context.Context, sender, id string) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{Approve: &dorcp.Approve{ID: id}}, nil)
}

func (d *DORCPInstance) Refund(ctx context.Context, sender, id string) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{Refund: &dorcp.Refund{ID: id}}, nil)
}

func (d *DORCPInstance) TopUp(ctx context.Context, sender, id string, funds sdktypes.Coins) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{TopUp: &dorcp.TopUp{ID: id}}, funds)
}

func (d *DORCPInstance) SetStatus(ctx context.Context, sender, id string, status dorcp.Status) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{SetStatus: &dorcp.SetStatus{ID: id, Status: status}}, nil)
}

func (d *DORCPInstance) AddValidator(ctx context.Context, sender, id, addr string) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{AddValidator: &dorcp.AddValidator{ID: id, Addr: addr}}, nil)
}

func (d *DORCPInstance) RmValidator(ctx context.Context, sender, id, addr string) (string, error) {
	return d.Execute(ctx, sender, &dorcp.ExecuteMsg{RmValidator: &dorcp.RmValidator{ID: id, Addr: addr}}, nil)
}

func (d *DORCPInstance) Details(ctx context.Context, id string) (*dorcp.DetailsResponse, error) {
	res, err := query[dorcp.DetailsResponse](ctx, d.Contract, &dorcp.QueryMsg{Details: &dorcp.Details{ID: id}})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns the ids of every proposal escrow.
func (d *DORCPInstance) List(ctx context.Context) ([]string, error) {
	res, err := query[dorcp.ListResponse](ctx, d.Contract, &dorcp.QueryMsg{List: &dorcp.List{}})
	if err != nil {
		return nil, err
	}
	return res.Escrows, nil
}
