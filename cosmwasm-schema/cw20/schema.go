// Package cw20 holds the message schema of the cw20-base fungible token contract.
// The contract is in https://github.com/CosmWasm/cw-plus/tree/main/contracts/cw20-base
package cw20

import (
	"encoding/json"

	cosmwasmschema "github.com/dorium/dorium-contracts/cosmwasm-schema"
)

func (r *InstantiateMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *ExecuteMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *QueryMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

type InstantiateMsg struct {
	Decimals        uint8                     `json:"decimals"`
	InitialBalances []Cw20Coin                `json:"initial_balances"`
	Marketing       *InstantiateMarketingInfo `json:"marketing"`
	Mint            *MinterResponse           `json:"mint"`
	Name            string                    `json:"name"`
	Symbol          string                    `json:"symbol"`
}

func (r *InstantiateMsg) Validate() error {
	if err := cosmwasmschema.Require("instantiate", "name", r.Name, "symbol", r.Symbol); err != nil {
		return err
	}
	for _, balance := range r.InitialBalances {
		if err := cosmwasmschema.Require("instantiate.initial_balances", "address", balance.Address, "amount", balance.Amount); err != nil {
			return err
		}
	}
	if r.Mint != nil {
		return cosmwasmschema.Require("instantiate.mint", "minter", r.Mint.Minter)
	}
	return nil
}

type Cw20Coin struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type InstantiateMarketingInfo struct {
	Description *string `json:"description"`
	Marketing   *string `json:"marketing"`
	Project     *string `json:"project"`
}

type MinterResponse struct {
	// cap is a hard cap on total supply that can be achieved by minting. Note that this refers
	// to total_supply. If None, there is unlimited cap.
	Cap    *string `json:"cap"`
	Minter string  `json:"minter"`
}

type ExecuteMsg struct {
	Transfer          *Transfer          `json:"transfer,omitempty"`
	Burn              *Burn              `json:"burn,omitempty"`
	Send              *Send              `json:"send,omitempty"`
	IncreaseAllowance *IncreaseAllowance `json:"increase_allowance,omitempty"`
	DecreaseAllowance *DecreaseAllowance `json:"decrease_allowance,omitempty"`
	TransferFrom      *TransferFrom      `json:"transfer_from,omitempty"`
	SendFrom          *SendFrom          `json:"send_from,omitempty"`
	BurnFrom          *BurnFrom          `json:"burn_from,omitempty"`
	Mint              *Mint              `json:"mint,omitempty"`
}

// Validate checks that exactly one variant is set and that its required fields are present.
func (r *ExecuteMsg) Validate() error {
	selector, err := cosmwasmschema.Variant(r)
	if err != nil {
		return err
	}

	switch {
	case r.Transfer != nil:
		return cosmwasmschema.Require(selector, "recipient", r.Transfer.Recipient, "amount", r.Transfer.Amount)
	case r.Burn != nil:
		return cosmwasmschema.Require(selector, "amount", r.Burn.Amount)
	case r.Send != nil:
		return cosmwasmschema.Require(selector, "contract", r.Send.Contract, "amount", r.Send.Amount)
	case r.IncreaseAllowance != nil:
		return cosmwasmschema.Require(selector, "spender", r.IncreaseAllowance.Spender, "amount", r.IncreaseAllowance.Amount)
	case r.DecreaseAllowance != nil:
		return cosmwasmschema.Require(selector, "spender", r.DecreaseAllowance.Spender, "amount", r.DecreaseAllowance.Amount)
	case r.TransferFrom != nil:
		return cosmwasmschema.Require(selector, "owner", r.TransferFrom.Owner, "recipient", r.TransferFrom.Recipient, "amount", r.TransferFrom.Amount)
	case r.SendFrom != nil:
		return cosmwasmschema.Require(selector, "owner", r.SendFrom.Owner, "contract", r.SendFrom.Contract, "amount", r.SendFrom.Amount)
	case r.BurnFrom != nil:
		return cosmwasmschema.Require(selector, "owner", r.BurnFrom.Owner, "amount", r.BurnFrom.Amount)
	case r.Mint != nil:
		return cosmwasmschema.Require(selector, "recipient", r.Mint.Recipient, "amount", r.Mint.Amount)
	}
	return nil
}

type Burn struct {
	Amount string `json:"amount"`
}

type BurnFrom struct {
	Amount string `json:"amount"`
	Owner  string `json:"owner"`
}

type DecreaseAllowance struct {
	Amount  string      `json:"amount"`
	Expires *Expiration `json:"expires"`
	Spender string      `json:"spender"`
}

type Expiration struct {
	AtHeight *uint64 `json:"at_height,omitempty"`
	AtTime   *string `json:"at_time,omitempty"`
	Never    *Never  `json:"never,omitempty"`
}

type Never struct {
}

type IncreaseAllowance struct {
	Amount  string      `json:"amount"`
	Expires *Expiration `json:"expires"`
	Spender string      `json:"spender"`
}

type Mint struct {
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

// Send moves tokens to a contract and triggers its receive hook with Msg (base64 encoded json).
type Send struct {
	Amount   string `json:"amount"`
	Contract string `json:"contract"`
	Msg      []byte `json:"msg"`
}

type SendFrom struct {
	Amount   string `json:"amount"`
	Contract string `json:"contract"`
	Msg      []byte `json:"msg"`
	Owner    string `json:"owner"`
}

type Transfer struct {
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

type TransferFrom struct {
	Amount    string `json:"amount"`
	Owner     string `json:"owner"`
	Recipient string `json:"recipient"`
}

type QueryMsg struct {
	Balance       *Balance       `json:"balance,omitempty"`
	TokenInfo     *TokenInfo     `json:"token_info,omitempty"`
	Minter        *Minter        `json:"minter,omitempty"`
	Allowance     *Allowance     `json:"allowance,omitempty"`
	AllAllowances *AllAllowances `json:"all_allowances,omitempty"`
	AllAccounts   *AllAccounts   `json:"all_accounts,omitempty"`
	MarketingInfo *MarketingInfo `json:"marketing_info,omitempty"`
}

func (r *QueryMsg) Validate() error {
	selector, err := cosmwasmschema.Variant(r)
	if err != nil {
		return err
	}

	switch {
	case r.Balance != nil:
		return cosmwasmschema.Require(selector, "address", r.Balance.Address)
	case r.Allowance != nil:
		return cosmwasmschema.Require(selector, "owner", r.Allowance.Owner, "spender", r.Allowance.Spender)
	case r.AllAllowances != nil:
		return cosmwasmschema.Require(selector, "owner", r.AllAllowances.Owner)
	}
	return nil
}

type AllAccounts struct {
	Limit      *uint32 `json:"limit"`
	StartAfter *string `json:"start_after"`
}

type AllAllowances struct {
	Limit      *uint32 `json:"limit"`
	Owner      string  `json:"owner"`
	StartAfter *string `json:"start_after"`
}

type Allowance struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type Balance struct {
	Address string `json:"address"`
}

type MarketingInfo struct {
}

type Minter struct {
}

type TokenInfo struct {
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

type TokenInfoResponse struct {
	Decimals    uint8  `json:"decimals"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TotalSupply string `json:"total_supply"`
}

type AllowanceResponse struct {
	Allowance string     `json:"allowance"`
	Expires   Expiration `json:"expires"`
}

type AllowanceInfo struct {
	Allowance string     `json:"allowance"`
	Expires   Expiration `json:"expires"`
	Spender   string     `json:"spender"`
}

type AllAllowancesResponse struct {
	Allowances []AllowanceInfo `json:"allowances"`
}

type AllAccountsResponse struct {
	Accounts []string `json:"accounts"`
}

type MarketingInfoResponse struct {
	Description *string `json:"description"`
	Marketing   *string `json:"marketing"`
	Project     *string `json:"project"`
}
