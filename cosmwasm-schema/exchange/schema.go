// Package exchange holds the message schema of the Dorium exchange contract, which swaps the value
// token for the sobz token. Tokens arrive through the cw20 receive hook.
package exchange

import (
	"encoding/json"

	cosmwasmschema "github.com/dorium/dorium-contracts/cosmwasm-schema"
)

func (r *InstantiateMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *ReceiveMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *QueryMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

type InstantiateMsg struct {
	ValueTokenAddress string `json:"value_token_address"`
	SobzTokenAddress  string `json:"sobz_token_address"`
}

func (r *InstantiateMsg) Validate() error {
	return cosmwasmschema.Require("instantiate",
		"value_token_address", r.ValueTokenAddress,
		"sobz_token_address", r.SobzTokenAddress,
	)
}

// ReceiveMsg is carried base64 encoded in the msg field of a cw20 send.
type ReceiveMsg struct {
	Send *Send `json:"send,omitempty"`
}

func (r *ReceiveMsg) Validate() error {
	_, err := cosmwasmschema.Variant(r)
	return err
}

type Send struct {
}

type QueryMsg struct {
	GetExchanged *GetExchanged `json:"get_exchanged,omitempty"`
}

func (r *QueryMsg) Validate() error {
	_, err := cosmwasmschema.Variant(r)
	return err
}

type GetExchanged struct {
}

type ExchangedResponse struct {
	Exchanged string `json:"exchanged"`
}
