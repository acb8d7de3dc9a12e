package api

import (
	"context"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/cw20"
)

type CW20 struct {
	*Code
}

func NewCW20(client cosmwasmapi.SigningClient, sender string) *CW20 {
	return &CW20{Code: NewCode(client, sender)}
}

func (c *CW20) Instantiate(ctx context.Context, codeID uint64, initMsg cw20.InstantiateMsg, label, admin string) (*CW20Instance, *cosmwasmapi.InstantiateResult, error) {
	contract, res, err := c.Code.Instantiate(ctx, codeID, &initMsg, label, admin, nil)
	if err != nil {
		return nil, nil, err
	}
	return &CW20Instance{Contract: contract}, res, nil
}

func (c *CW20) Use(contractAddr string) *CW20Instance {
	return &CW20Instance{Contract: c.Code.Use(contractAddr)}
}

type CW20Instance struct {
	*Contract
}

// Balance of address, or of the default sender when address is empty.
func (c *CW20Instance) Balance(ctx context.Context, address string) (string, error) {
	res, err := query[cw20.BalanceResponse](ctx, c.Contract, &cw20.QueryMsg{Balance: &cw20.Balance{Address: c.from(address)}})
	return res.Balance, err
}

func (c *CW20Instance) Allowance(ctx context.Context, owner, spender string) (*cw20.AllowanceResponse, error) {
	res, err := query[cw20.AllowanceResponse](ctx, c.Contract, &cw20.QueryMsg{Allowance: &cw20.Allowance{Owner: owner, Spender: spender}})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *CW20Instance) AllAllowances(ctx context.Context, owner string, startAfter *string, limit *uint32) (*cw20.AllAllowancesResponse, error) {
	msg := &cw20.QueryMsg{AllAllowances: &cw20.AllAllowances{Owner: owner, StartAfter: startAfter, Limit: limit}}
	res, err := query[cw20.AllAllowancesResponse](ctx, c.Contract, msg)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *CW20Instance) AllAccounts(ctx context.Context, startAfter *string, limit *uint32) (*cw20.AllAccountsResponse, error) {
	msg := &cw20.QueryMsg{AllAccounts: &cw20.AllAccounts{StartAfter: startAfter, Limit: limit}}
	res, err := query[cw20.AllAccountsResponse](ctx, c.Contract, msg)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *CW20Instance) TokenInfo(ctx context.Context) (*cw20.TokenInfoResponse, error) {
	res, err := query[cw20.TokenInfoResponse](ctx, c.Contract, &cw20.QueryMsg{TokenInfo: &cw20.TokenInfo{}})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Minter returns nil when the token has no minter.
func (c *CW20Instance) Minter(ctx context.Context) (*cw20.MinterResponse, error) {
	return query[*cw20.MinterResponse](ctx, c.Contract, &cw20.QueryMsg{Minter: &cw20.Minter{}})
}

func (c *CW20Instance) Mint(ctx context.Context, sender, recipient, amount string) (string, error) {
	return c.Execute(ctx, sender, &cw20.ExecuteMsg{Mint: &cw20.Mint{Recipient: recipient, Amount: amount}}, nil)
}

func (c *CW20Instance) Transfer(ctx context.Context, sender, recipient, amount string) (string, error) {
	return c.Execute(ctx, sender, &cw20.ExecuteMsg{Transfer: &cw20.Transfer{Recipient: recipient, Amount: amount}}, nil)
}

func (c *CW20Instance) Burn(ctx context.Context, sender, amount string) (string, error) {
	return c.Execute(ctx, sender, &cw20.ExecuteMsg{Burn: &cw20.Burn{Amount: amount}}, nil)
}

// Send moves amount to a contract and calls its receive hook with msg.
func (c *CW20Instance) Send(ctx context.Context, sender, contract, amount string, msg []byte) (string, error) {
	return c.Execute(ctx, sender, &cw20.ExecuteMsg{Send: &cw20.Send{Contract: contract, Amount: amount, Msg: msg}}, nil)
}

func (c *CW20Instance) IncreaseAllowance(ctx context.Context, sender, spender, amount string, expires *cw20.Expiration) (string, error) {
	msg := &cw20.ExecuteMsg{IncreaseAllowance: &cw20.IncreaseAllowance{Spender: spender, Amount: amount, Expires: expires}}
	return c.Execute(ctx, sender, msg, nil)
}

func (c *CW20Instance) DecreaseAllowance(ctx context.Context, sender, spender, amount string, expires *cw20.Expiration) (string, error) {
	msg := &cw20.ExecuteMsg{DecreaseAllowance: &cw20.DecreaseAllowance{Spender: spender, Amount: amount, Expires: expires}}
	return c.Execute(ctx, sender, msg, nil)
}

func (c *CW20Instance) TransferFrom(ctx context.Context, sender, owner, recipient, amount string) (string, error) {
	msg := &cw20.ExecuteMsg{TransferFrom: &cw20.TransferFrom{Owner: owner, Recipient: recipient, Amount: amount}}
	return c.Execute(ctx, sender, msg, nil)
}
