package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cosmwasmschema "github.com/dorium/dorium-contracts/cosmwasm-schema"
)

func TestReceiveMsg(t *testing.T) {
	msg := ReceiveMsg{Send: &Send{}}
	require.NoError(t, msg.Validate())

	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{"send":{}}`, string(data))
}

func TestQueryMsg(t *testing.T) {
	msg := QueryMsg{GetExchanged: &GetExchanged{}}
	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{"get_exchanged":{}}`, string(data))

	assert.ErrorIs(t, (&QueryMsg{}).Validate(), cosmwasmschema.ErrNoVariant)
}

func TestInstantiateMsg(t *testing.T) {
	msg := InstantiateMsg{ValueTokenAddress: "wasm1value"}
	assert.ErrorIs(t, msg.Validate(), cosmwasmschema.ErrMissingField)

	msg.SobzTokenAddress = "wasm1sobz"
	require.NoError(t, msg.Validate())
	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"value_token_address":"wasm1value","sobz_token_address":"wasm1sobz"}`, string(data))
}
