// Package cosmwasmtest provides an in-memory cosmwasmapi.SigningClient for tests.
package cosmwasmtest

import (
	"context"
	"fmt"
	"sync"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
)

type CallKind string

const (
	KindUpload      CallKind = "upload"
	KindInstantiate CallKind = "instantiate"
	KindExecute     CallKind = "execute"
	KindQuery       CallKind = "query"
)

// Call is one recorded invocation of the fake client.
type Call struct {
	Kind         CallKind
	Sender       string
	ContractAddr string
	CodeID       uint64
	Label        string
	Msg          []byte
	WasmByteCode []byte
	Funds        string
	Memo         string
	Admin        string
}

// Client records every call and answers from queued results. When a queue is empty it
// makes one up: code ids count from 1, addresses are wasm1contract<n>, hashes are TX<n>.
type Client struct {
	mu sync.Mutex

	Calls []Call

	UploadResults      []*cosmwasmapi.UploadResult
	InstantiateResults []*cosmwasmapi.InstantiateResult
	ExecuteResults     []*cosmwasmapi.ExecuteResult
	QueryResponses     [][]byte

	// Errors maps a call kind to the error returned by every call of that kind.
	Errors map[CallKind]error

	seq uint64
}

var _ cosmwasmapi.SigningClient = (*Client)(nil)

func NewClient() *Client {
	return &Client{Errors: map[CallKind]error{}}
}

func (c *Client) FailOn(kind CallKind, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errors[kind] = err
	return c
}

func (c *Client) Upload(_ context.Context, sender string, wasmByteCode []byte, opts cosmwasmapi.UploadOptions) (*cosmwasmapi.UploadResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, Call{Kind: KindUpload, Sender: sender, WasmByteCode: wasmByteCode, Memo: opts.Memo})
	if err := c.Errors[KindUpload]; err != nil {
		return nil, err
	}

	c.seq++
	if len(c.UploadResults) > 0 {
		res := c.UploadResults[0]
		c.UploadResults = c.UploadResults[1:]
		return res, nil
	}
	return &cosmwasmapi.UploadResult{
		CodeID:          c.seq,
		TransactionHash: fmt.Sprintf("TX%d", c.seq),
		OriginalSize:    len(wasmByteCode),
		CompressedSize:  len(wasmByteCode),
	}, nil
}

func (c *Client) Instantiate(_ context.Context, sender string, codeID uint64, initMsg []byte, label string, opts cosmwasmapi.InstantiateOptions) (*cosmwasmapi.InstantiateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, Call{
		Kind:   KindInstantiate,
		Sender: sender,
		CodeID: codeID,
		Label:  label,
		Msg:    initMsg,
		Funds:  opts.Funds.String(),
		Memo:   opts.Memo,
		Admin:  opts.Admin,
	})
	if err := c.Errors[KindInstantiate]; err != nil {
		return nil, err
	}

	c.seq++
	if len(c.InstantiateResults) > 0 {
		res := c.InstantiateResults[0]
		c.InstantiateResults = c.InstantiateResults[1:]
		return res, nil
	}
	return &cosmwasmapi.InstantiateResult{
		ContractAddress: fmt.Sprintf("wasm1contract%d", c.seq),
		TransactionHash: fmt.Sprintf("TX%d", c.seq),
	}, nil
}

func (c *Client) Execute(_ context.Context, sender, contractAddr string, msg []byte, opts cosmwasmapi.ExecuteOptions) (*cosmwasmapi.ExecuteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, Call{
		Kind:         KindExecute,
		Sender:       sender,
		ContractAddr: contractAddr,
		Msg:          msg,
		Funds:        opts.Funds.String(),
		Memo:         opts.Memo,
	})
	if err := c.Errors[KindExecute]; err != nil {
		return nil, err
	}

	c.seq++
	if len(c.ExecuteResults) > 0 {
		res := c.ExecuteResults[0]
		c.ExecuteResults = c.ExecuteResults[1:]
		return res, nil
	}
	return &cosmwasmapi.ExecuteResult{TransactionHash: fmt.Sprintf("TX%d", c.seq)}, nil
}

func (c *Client) QuerySmart(_ context.Context, contractAddr string, queryMsg []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, Call{Kind: KindQuery, ContractAddr: contractAddr, Msg: queryMsg})
	if err := c.Errors[KindQuery]; err != nil {
		return nil, err
	}

	if len(c.QueryResponses) > 0 {
		res := c.QueryResponses[0]
		c.QueryResponses = c.QueryResponses[1:]
		return res, nil
	}
	return []byte(`{}`), nil
}

// CallsOf returns the recorded calls of one kind, in order.
func (c *Client) CallsOf(kind CallKind) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	var calls []Call
	for _, call := range c.Calls {
		if call.Kind == kind {
			calls = append(calls, call)
		}
	}
	return calls
}
