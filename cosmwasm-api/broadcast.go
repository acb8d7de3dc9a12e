package cosmwasmapi

import (
	"cosmossdk.io/math"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
)

// BroadcastOptions is the fee policy applied to every transaction a Client signs.
type BroadcastOptions struct {
	GasAdjustment float64          // GasAdjustment: factor applied to the simulated gas amount
	GasPrice      sdktypes.DecCoin // GasPrice: price per unit of gas, e.g. "0.025ucosm"
	Gas           uint64           // Gas: gas limit, also the cap for simulated gas
	Simulate      bool             // Simulate: estimate gas by simulation before signing
	Memo          string           // Memo: default memo when a call does not set one
}

func DefaultBroadcastOptions() BroadcastOptions {
	return BroadcastOptions{
		GasAdjustment: 1.3,
		GasPrice:      sdktypes.NewDecCoinFromDec("ucosm", math.LegacyMustNewDecFromStr("0.025")),
		Gas:           5_000_000,
		Simulate:      true,
	}
}

func (opts BroadcastOptions) WithGasAdjustment(gasAdjustment float64) BroadcastOptions {
	opts.GasAdjustment = gasAdjustment
	return opts
}

func (opts BroadcastOptions) WithGasPrice(gasPrice string) BroadcastOptions {
	coin, err := sdktypes.ParseDecCoin(gasPrice)
	if err != nil {
		panic(err)
	}
	opts.GasPrice = coin
	return opts
}

func (opts BroadcastOptions) WithGas(gas uint64) BroadcastOptions {
	opts.Gas = gas
	return opts
}

func (opts BroadcastOptions) WithSimulate(simulate bool) BroadcastOptions {
	opts.Simulate = simulate
	return opts
}

func (opts BroadcastOptions) WithMemo(memo string) BroadcastOptions {
	opts.Memo = memo
	return opts
}

// ParseFunds parses a coin list such as "1ucosm,10ustake". An empty string is no funds.
func ParseFunds(funds string) (sdktypes.Coins, error) {
	if funds == "" {
		return nil, nil
	}
	return sdktypes.ParseCoinsNormalized(funds)
}
