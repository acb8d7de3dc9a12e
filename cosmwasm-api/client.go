package cosmwasmapi

import (
	"context"
	"encoding/json"

	abci "github.com/cometbft/cometbft/abci/types"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
)

// Querier runs smart queries against a deployed contract.
type Querier interface {
	QuerySmart(ctx context.Context, contractAddr string, queryMsg []byte) ([]byte, error)
}

// SigningClient is the chain surface the bindings and the deployment pipeline depend on.
// Every call is a single remote round trip; nothing is retried.
type SigningClient interface {
	Querier
	Upload(ctx context.Context, sender string, wasmByteCode []byte, opts UploadOptions) (*UploadResult, error)
	Instantiate(ctx context.Context, sender string, codeID uint64, initMsg []byte, label string, opts InstantiateOptions) (*InstantiateResult, error)
	Execute(ctx context.Context, sender, contractAddr string, msg []byte, opts ExecuteOptions) (*ExecuteResult, error)
}

type UploadOptions struct {
	Memo string
}

type InstantiateOptions struct {
	Admin string
	Funds sdktypes.Coins
	// Memo defaults to "Init <label>".
	Memo string
}

type ExecuteOptions struct {
	Funds sdktypes.Coins
	Memo  string
}

type UploadResult struct {
	CodeID          uint64
	TransactionHash string
	Checksum        string
	OriginalSize    int
	CompressedSize  int
	Height          int64
	GasUsed         int64
}

type InstantiateResult struct {
	ContractAddress string
	TransactionHash string
	Height          int64
	GasUsed         int64
}

type ExecuteResult struct {
	TransactionHash string
	Height          int64
	GasWanted       int64
	GasUsed         int64
	Events          []abci.Event
}

// Query marshals msg, runs it as a smart query against addr and decodes the response.
func Query[Response interface{}](
	ctx context.Context, client Querier, addr string, msg interface{},
) (Response, error) {
	var result Response

	queryBytes, err := json.Marshal(msg)
	if err != nil {
		return result, err
	}

	response, err := client.QuerySmart(ctx, addr, queryBytes)
	if err != nil {
		return result, err
	}

	err = json.Unmarshal(response, &result)
	return result, err
}
