package cosmwasmapi

import (
	"fmt"
	"strconv"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
)

func GetCodeId(res *coretypes.ResultTx) (uint64, error) {
	value, err := findAttribute(res, wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(value, 10, 64)
}

func GetContractAddress(res *coretypes.ResultTx) (string, error) {
	return findAttribute(res, wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr)
}

func GetChecksum(res *coretypes.ResultTx) (string, error) {
	return findAttribute(res, wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyChecksum)
}

func findAttribute(res *coretypes.ResultTx, eventType, key string) (string, error) {
	if res.TxResult.Code != 0 {
		return "", &RemoteError{
			Code:      res.TxResult.Code,
			Codespace: res.TxResult.Codespace,
			Log:       res.TxResult.Log,
			TxHash:    res.Hash.String(),
		}
	}

	if value, ok := FindAttribute(res.TxResult.Events, eventType, key); ok {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s.%s", ErrEventNotFound, eventType, key)
}

// FindAttribute returns the value of the first attribute key on an event of eventType.
func FindAttribute(events []abci.Event, eventType, key string) (string, bool) {
	for _, event := range events {
		if event.Type != eventType {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}
