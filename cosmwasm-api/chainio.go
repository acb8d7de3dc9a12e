package cosmwasmapi

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/CosmWasm/wasmd/x/wasm"
	"github.com/CosmWasm/wasmd/x/wasm/ioutils"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/std"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dorium/dorium-contracts/metrics"
)

const defaultPollInterval = 3 * time.Second

type ClientConfig struct {
	ChainID      string
	RPCEndpoint  string
	Bech32Prefix string
}

// Client signs with the accounts of one Wallet and talks to one CometBFT RPC endpoint.
type Client struct {
	clientCtx           client.Context
	wallet              *Wallet
	broadcast           BroadcastOptions
	confirmationTimeout time.Duration
	pollInterval        time.Duration
	limiter             *rate.Limiter
	indicators          metrics.Indicators
}

var _ SigningClient = (*Client)(nil)

type ClientOption func(c *Client)

func WithBroadcastOptions(opts BroadcastOptions) ClientOption {
	return func(c *Client) {
		c.broadcast = opts
	}
}

// WithConfirmationTimeout bounds how long a broadcast transaction is polled for. Zero waits until
// the context is done.
func WithConfirmationTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.confirmationTimeout = timeout
	}
}

func WithPollInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

// WithRateLimit caps rpc round trips per second. Zero or less is unlimited.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithIndicators(indicators metrics.Indicators) ClientOption {
	return func(c *Client) {
		c.indicators = indicators
	}
}

// NewClient builds a Client without contacting the endpoint. Use Connect to fail fast on an
// unreachable node.
func NewClient(cfg ClientConfig, wallet *Wallet, opts ...ClientOption) (*Client, error) {
	if err := setAddressPrefixes(cfg.Bech32Prefix); err != nil {
		return nil, fmt.Errorf("failed to set address prefixes: %w", err)
	}
	interfaceRegistry, marshaler, legacyAmino := initCodec()
	clientCtx := initClientContext(cfg.ChainID, interfaceRegistry, marshaler, legacyAmino)

	rpcClient, err := client.NewClientFromNode(cfg.RPCEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, cfg.RPCEndpoint, err)
	}
	clientCtx = clientCtx.WithClient(rpcClient).WithNodeURI(cfg.RPCEndpoint)

	main := wallet.accounts[0]
	clientCtx = clientCtx.
		WithKeyring(wallet.Keyring()).
		WithFromName(main.Name).
		WithFromAddress(main.AccAddress)

	c := &Client{
		clientCtx:    clientCtx,
		wallet:       wallet,
		broadcast:    DefaultBroadcastOptions(),
		pollInterval: defaultPollInterval,
		indicators:   metrics.NewPromIndicators(prometheus.NewRegistry(), "client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect is NewClient followed by a node status call. An empty cfg.ChainID is taken from the
// node; a configured one must match it.
func Connect(ctx context.Context, cfg ClientConfig, wallet *Wallet, opts ...ClientOption) (*Client, error) {
	c, err := NewClient(cfg, wallet, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.syncChainID(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) syncChainID(ctx context.Context) error {
	status, err := c.QueryNodeStatus(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnection, c.clientCtx.NodeURI, err)
	}

	network := status.NodeInfo.Network
	switch {
	case c.clientCtx.ChainID == "":
		c.clientCtx = c.clientCtx.WithChainID(network)
	case c.clientCtx.ChainID != network:
		return fmt.Errorf("%w: configured %s, node serves %s", ErrChainIDMismatch, c.clientCtx.ChainID, network)
	}
	return nil
}

func (c *Client) Wallet() *Wallet {
	return c.wallet
}

func (c *Client) ChainID() string {
	return c.clientCtx.ChainID
}

func (c *Client) QueryNodeStatus(ctx context.Context) (*coretypes.ResultStatus, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.clientCtx.Client.Status(ctx)
}

func (c *Client) Upload(ctx context.Context, sender string, wasmByteCode []byte, opts UploadOptions) (*UploadResult, error) {
	compressed := wasmByteCode
	if !ioutils.IsGzip(wasmByteCode) {
		var err error
		if compressed, err = ioutils.GzipIt(wasmByteCode); err != nil {
			return nil, err
		}
	}

	msg := &wasmtypes.MsgStoreCode{
		Sender:       sender,
		WASMByteCode: compressed,
	}
	res, err := c.SendTransaction(ctx, "upload", sender, opts.Memo, msg)
	if err != nil {
		return nil, err
	}

	codeID, err := GetCodeId(res)
	if err != nil {
		return nil, err
	}
	checksum, _ := GetChecksum(res)
	return &UploadResult{
		CodeID:          codeID,
		TransactionHash: res.Hash.String(),
		Checksum:        checksum,
		OriginalSize:    len(wasmByteCode),
		CompressedSize:  len(compressed),
		Height:          res.Height,
		GasUsed:         res.TxResult.GasUsed,
	}, nil
}

func (c *Client) Instantiate(ctx context.Context, sender string, codeID uint64, initMsg []byte, label string, opts InstantiateOptions) (*InstantiateResult, error) {
	memo := opts.Memo
	if memo == "" {
		memo = "Init " + label
	}

	msg := &wasmtypes.MsgInstantiateContract{
		Sender: sender,
		Admin:  opts.Admin,
		CodeID: codeID,
		Label:  label,
		Msg:    initMsg,
		Funds:  opts.Funds,
	}
	res, err := c.SendTransaction(ctx, "instantiate", sender, memo, msg)
	if err != nil {
		return nil, err
	}

	addr, err := GetContractAddress(res)
	if err != nil {
		return nil, err
	}
	return &InstantiateResult{
		ContractAddress: addr,
		TransactionHash: res.Hash.String(),
		Height:          res.Height,
		GasUsed:         res.TxResult.GasUsed,
	}, nil
}

func (c *Client) Execute(ctx context.Context, sender, contractAddr string, msg []byte, opts ExecuteOptions) (*ExecuteResult, error) {
	contractMsg := &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contractAddr,
		Msg:      msg,
		Funds:    opts.Funds,
	}
	res, err := c.SendTransaction(ctx, "execute", sender, opts.Memo, contractMsg)
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{
		TransactionHash: res.Hash.String(),
		Height:          res.Height,
		GasWanted:       res.TxResult.GasWanted,
		GasUsed:         res.TxResult.GasUsed,
		Events:          res.TxResult.Events,
	}, nil
}

func (c *Client) QuerySmart(ctx context.Context, contractAddr string, queryMsg []byte) ([]byte, error) {
	start := time.Now()
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	queryClient := wasmtypes.NewQueryClient(c.clientCtx)
	response, err := queryClient.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddr,
		QueryData: queryMsg,
	})
	c.observe("query", start, err)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

// SendTransaction signs msgs as sender, broadcasts them once and waits for the transaction to be
// committed. A non-zero result code at either step is a *RemoteError.
func (c *Client) SendTransaction(ctx context.Context, kind, sender, memo string, msgs ...sdktypes.Msg) (*coretypes.ResultTx, error) {
	start := time.Now()
	c.indicators.IncrementProcessingCallCount()
	defer c.indicators.DecrementProcessingCallCount()

	res, err := c.sendTransaction(ctx, sender, memo, msgs...)
	c.observe(kind, start, err)
	if err != nil {
		return nil, err
	}
	c.indicators.ObserveGasUsed(kind, res.TxResult.GasUsed)
	return res, nil
}

func (c *Client) sendTransaction(ctx context.Context, sender, memo string, msgs ...sdktypes.Msg) (*coretypes.ResultTx, error) {
	account, ok := c.wallet.account(sender)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSender, sender)
	}
	if c.clientCtx.ChainID == "" {
		return nil, ErrNoChainID
	}
	clientCtx := c.clientCtx.
		WithFromName(account.Name).
		WithFromAddress(account.AccAddress).
		WithCmdContext(ctx)

	if memo == "" {
		memo = c.broadcast.Memo
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	txf, err := c.setFactory(clientCtx, memo).Prepare(clientCtx)
	if err != nil {
		return nil, err
	}
	if txf.SimulateAndExecute() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		_, adjusted, err := tx.CalculateGas(clientCtx, txf, msgs...)
		if err != nil {
			return nil, err
		}
		if adjusted > c.broadcast.Gas {
			adjusted = c.broadcast.Gas
		}
		txf = txf.WithGas(adjusted)
	}

	txBuilder, err := txf.BuildUnsignedTx(msgs...)
	if err != nil {
		return nil, err
	}
	if err = tx.Sign(ctx, txf, account.Name, txBuilder, true); err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	txBytes, err := clientCtx.TxConfig.TxEncoder()(txBuilder.GetTx())
	if err != nil {
		return nil, fmt.Errorf("encoding transaction: %w", err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	broadcastAt := time.Now()
	txResp, err := clientCtx.BroadcastTx(txBytes)
	if err != nil {
		return nil, err
	}
	if txResp.Code != 0 {
		return nil, &RemoteError{Code: txResp.Code, Codespace: txResp.Codespace, Log: txResp.RawLog, TxHash: txResp.TxHash}
	}
	zap.L().Debug("Transaction broadcast", zap.String("txHash", txResp.TxHash), zap.String("sender", sender))

	res, err := c.waitForConfirmation(ctx, txResp.TxHash)
	if err != nil {
		return nil, err
	}
	c.indicators.ObserveConfirmationLatencyMs(time.Since(broadcastAt).Milliseconds())
	return res, nil
}

func (c *Client) setFactory(clientCtx client.Context, memo string) tx.Factory {
	return tx.Factory{}.
		WithChainID(clientCtx.ChainID).
		WithKeybase(clientCtx.Keyring).
		WithTxConfig(clientCtx.TxConfig).
		WithAccountRetriever(clientCtx.AccountRetriever).
		WithSimulateAndExecute(c.broadcast.Simulate).
		WithSignMode(signing.SignMode_SIGN_MODE_DIRECT).
		WithGas(c.broadcast.Gas).
		WithGasAdjustment(c.broadcast.GasAdjustment).
		WithGasPrices(c.broadcast.GasPrice.String()).
		WithFromName(clientCtx.FromName).
		WithMemo(memo)
}

func (c *Client) waitForConfirmation(ctx context.Context, txHash string) (*coretypes.ResultTx, error) {
	if c.confirmationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmationTimeout)
		defer cancel()
	}

	hashBytes, err := hex.DecodeString(txHash)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for transaction %s: %w", txHash, ctx.Err())
		case <-ticker.C:
			if err := c.wait(ctx); err != nil {
				return nil, err
			}
			res, err := c.clientCtx.Client.Tx(ctx, hashBytes, false)
			if err != nil {
				zap.L().Debug("Transaction not found yet", zap.String("txHash", txHash), zap.Error(err))
				continue
			}
			if res.TxResult.Code != 0 {
				return nil, &RemoteError{
					Code:      res.TxResult.Code,
					Codespace: res.TxResult.Codespace,
					Log:       res.TxResult.Log,
					TxHash:    txHash,
				}
			}
			return res, nil
		}
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) observe(kind string, start time.Time, err error) {
	c.indicators.ObserveCallLatencyMs(kind, time.Since(start).Milliseconds())
	if err != nil {
		zap.L().Warn("Remote call failed", zap.String("kind", kind), zap.Error(err))
		c.indicators.IncrementProcessedCallsTotal(kind, metrics.StateError)
		return
	}
	c.indicators.IncrementProcessedCallsTotal(kind, metrics.StateSuccess)
}

func setAddressPrefixes(bech32Prefix string) error {
	if bech32Prefix == "" {
		return fmt.Errorf("bech32 prefix is empty")
	}
	config := sdktypes.GetConfig()
	config.SetBech32PrefixForAccount(bech32Prefix, bech32Prefix+"pub")
	config.SetBech32PrefixForValidator(bech32Prefix+"valoper", bech32Prefix+"valoperpub")
	config.SetBech32PrefixForConsensusNode(bech32Prefix+"valcons", bech32Prefix+"valconspub")

	config.SetAddressVerifier(func(bytes []byte) error {
		if len(bytes) == 0 {
			return fmt.Errorf("addresses cannot be empty")
		}
		if len(bytes) > address.MaxAddrLen {
			return fmt.Errorf("address max length is %d, got %d, %x", address.MaxAddrLen, len(bytes), bytes)
		}
		if len(bytes) != 20 && len(bytes) != 32 {
			return fmt.Errorf("address length must be 20 or 32 bytes, got %d, %x", len(bytes), bytes)
		}
		return nil
	})
	return nil
}

func initCodec() (codectypes.InterfaceRegistry, codec.Codec, *codec.LegacyAmino) {
	interfaceRegistry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(interfaceRegistry)
	cryptocodec.RegisterInterfaces(interfaceRegistry)
	std.RegisterInterfaces(interfaceRegistry)

	marshaler := codec.NewProtoCodec(interfaceRegistry)

	legacyAmino := codec.NewLegacyAmino()
	std.RegisterLegacyAminoCodec(legacyAmino)
	module.NewBasicManager(wasm.AppModuleBasic{}).RegisterInterfaces(interfaceRegistry)

	return interfaceRegistry, marshaler, legacyAmino
}

func initClientContext(chainID string, interfaceRegistry codectypes.InterfaceRegistry, marshaler codec.Codec, legacyAmino *codec.LegacyAmino) client.Context {
	txConfig := authtx.NewTxConfig(marshaler, authtx.DefaultSignModes)
	return client.Context{}.
		WithChainID(chainID).
		WithOutputFormat("json").
		WithInterfaceRegistry(interfaceRegistry).
		WithTxConfig(txConfig).
		WithCodec(marshaler).
		WithLegacyAmino(legacyAmino).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithBroadcastMode(flags.BroadcastSync)
}
