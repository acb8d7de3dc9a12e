package api

import (
	"context"
	"encoding/json"
	"fmt"

	sdktypes "github.com/cosmos/cosmos-sdk/types"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
)

type validator interface {
	Validate() error
}

// Code uploads bytecode and instantiates contracts on behalf of a default sender.
type Code struct {
	client cosmwasmapi.SigningClient
	sender string
}

func NewCode(client cosmwasmapi.SigningClient, sender string) *Code {
	return &Code{client: client, sender: sender}
}

func (c *Code) Sender() string {
	return c.sender
}

func (c *Code) Upload(ctx context.Context, wasmByteCode []byte) (*cosmwasmapi.UploadResult, error) {
	return c.client.Upload(ctx, c.sender, wasmByteCode, cosmwasmapi.UploadOptions{})
}

// Instantiate creates a contract from codeID. An empty admin leaves the contract immutable.
func (c *Code) Instantiate(ctx context.Context, codeID uint64, initMsg any, label, admin string, funds sdktypes.Coins) (*Contract, *cosmwasmapi.InstantiateResult, error) {
	if label == "" {
		return nil, nil, fmt.Errorf("instantiate code %d: label is empty", codeID)
	}
	msgBytes, err := marshal(initMsg)
	if err != nil {
		return nil, nil, err
	}

	res, err := c.client.Instantiate(ctx, c.sender, codeID, msgBytes, label, cosmwasmapi.InstantiateOptions{
		Admin: admin,
		Funds: funds,
	})
	if err != nil {
		return nil, nil, err
	}
	return c.Use(res.ContractAddress), res, nil
}

func (c *Code) Use(contractAddr string) *Contract {
	return &Contract{client: c.client, Address: contractAddr, sender: c.sender}
}

// Contract is a deployed contract instance. Every method is exactly one remote call.
type Contract struct {
	client  cosmwasmapi.SigningClient
	Address string
	sender  string
}

// query validates msg locally and runs it against c, decoding the response as Response.
func query[Response any](ctx context.Context, c *Contract, msg any) (Response, error) {
	if err := validate(msg); err != nil {
		var zero Response
		return zero, err
	}
	return cosmwasmapi.Query[Response](ctx, c.client, c.Address, msg)
}

// QueryRaw forwards msg verbatim, for selectors the typed schemas do not cover.
func (c *Contract) QueryRaw(ctx context.Context, msg []byte) ([]byte, error) {
	return c.client.QuerySmart(ctx, c.Address, msg)
}

// Execute validates msg locally, sends it from sender (the default sender when empty) and returns
// the transaction hash.
func (c *Contract) Execute(ctx context.Context, sender string, msg any, funds sdktypes.Coins) (string, error) {
	res, err := c.ExecuteResult(ctx, sender, msg, funds)
	if err != nil {
		return "", err
	}
	return res.TransactionHash, nil
}

func (c *Contract) ExecuteResult(ctx context.Context, sender string, msg any, funds sdktypes.Coins) (*cosmwasmapi.ExecuteResult, error) {
	msgBytes, err := marshal(msg)
	if err != nil {
		return nil, err
	}
	return c.client.Execute(ctx, c.from(sender), c.Address, msgBytes, cosmwasmapi.ExecuteOptions{Funds: funds})
}

func (c *Contract) from(sender string) string {
	if sender == "" {
		return c.sender
	}
	return sender
}

func validate(msg any) error {
	if v, ok := msg.(validator); ok {
		return v.Validate()
	}
	return nil
}

func marshal(msg any) ([]byte, error) {
	if err := validate(msg); err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}
