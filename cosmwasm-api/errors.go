package cosmwasmapi

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

var (
	ErrConnection      = errors.New("cannot connect to rpc endpoint")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrUnknownSender   = errors.New("sender is not an account of the wallet")
	ErrEventNotFound   = errors.New("event attribute not found")
	ErrChainIDMismatch = errors.New("chain id does not match the node")
	ErrNoChainID       = errors.New("chain id is unknown, connect first or configure it")
)

// RemoteError is a transaction the chain rejected, either at broadcast or once committed.
type RemoteError struct {
	Code      uint32
	Codespace string
	Log       string
	TxHash    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("transaction %s failed with code %d (%s): %s", e.TxHash, e.Code, e.Codespace, e.Log)
}

// Unwrap exposes the registered sdk error so errors.Is matches e.g. sdkerrors.ErrInsufficientFunds.
func (e *RemoteError) Unwrap() error {
	return errorsmod.ABCIError(e.Codespace, e.Code, e.Log)
}
