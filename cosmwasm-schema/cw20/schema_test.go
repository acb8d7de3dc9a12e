package cw20

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cosmwasmschema "github.com/dorium/dorium-contracts/cosmwasm-schema"
)

func TestQueryMsg_Selectors(t *testing.T) {
	limit := uint32(10)
	tests := []struct {
		name     string
		msg      QueryMsg
		selector string
		params   string
	}{
		{"balance", QueryMsg{Balance: &Balance{Address: "wasm1owner"}}, "balance", `{"address":"wasm1owner"}`},
		{"token_info", QueryMsg{TokenInfo: &TokenInfo{}}, "token_info", `{}`},
		{"minter", QueryMsg{Minter: &Minter{}}, "minter", `{}`},
		{"allowance", QueryMsg{Allowance: &Allowance{Owner: "wasm1o", Spender: "wasm1s"}}, "allowance", `{"owner":"wasm1o","spender":"wasm1s"}`},
		{"all_allowances", QueryMsg{AllAllowances: &AllAllowances{Owner: "wasm1o", Limit: &limit}}, "all_allowances", `{"limit":10,"owner":"wasm1o","start_after":null}`},
		{"all_accounts", QueryMsg{AllAccounts: &AllAccounts{}}, "all_accounts", `{"limit":null,"start_after":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.msg.Validate())

			data, err := tt.msg.Marshal()
			require.NoError(t, err)

			var top map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &top))
			require.Len(t, top, 1)
			assert.JSONEq(t, tt.params, string(top[tt.selector]))
		})
	}
}

func TestQueryMsg_Validate(t *testing.T) {
	msg := QueryMsg{Balance: &Balance{}}
	assert.ErrorIs(t, msg.Validate(), cosmwasmschema.ErrMissingField)

	msg = QueryMsg{Balance: &Balance{Address: "a"}, Minter: &Minter{}}
	assert.ErrorIs(t, msg.Validate(), cosmwasmschema.ErrMultipleVariants)

	msg = QueryMsg{}
	assert.ErrorIs(t, msg.Validate(), cosmwasmschema.ErrNoVariant)
}

func TestExecuteMsg_Validate(t *testing.T) {
	valid := []ExecuteMsg{
		{Transfer: &Transfer{Recipient: "wasm1r", Amount: "1"}},
		{Burn: &Burn{Amount: "1"}},
		{Send: &Send{Contract: "wasm1c", Amount: "1", Msg: []byte(`{"send":{}}`)}},
		{Mint: &Mint{Recipient: "wasm1r", Amount: "1"}},
		{IncreaseAllowance: &IncreaseAllowance{Spender: "wasm1s", Amount: "1"}},
		{DecreaseAllowance: &DecreaseAllowance{Spender: "wasm1s", Amount: "1"}},
		{TransferFrom: &TransferFrom{Owner: "wasm1o", Recipient: "wasm1r", Amount: "1"}},
	}
	for _, msg := range valid {
		assert.NoError(t, msg.Validate())
	}

	err := (&ExecuteMsg{Transfer: &Transfer{Recipient: "wasm1r"}}).Validate()
	assert.ErrorIs(t, err, cosmwasmschema.ErrMissingField)
	assert.ErrorContains(t, err, "transfer.amount")
}

func TestExecuteMsg_SendEncodesHookAsBase64(t *testing.T) {
	msg := ExecuteMsg{Send: &Send{Contract: "wasm1c", Amount: "5", Msg: []byte(`{"send":{}}`)}}
	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"send":{"amount":"5","contract":"wasm1c","msg":"eyJzZW5kIjp7fX0="}}`, string(data))
}

func TestInstantiateMsg_Validate(t *testing.T) {
	msg := InstantiateMsg{
		Name:            "Dorium Value Token",
		Symbol:          "TREE",
		Decimals:        2,
		InitialBalances: []Cw20Coin{{Address: "wasm1holder", Amount: "3040000000000"}},
		Mint:            &MinterResponse{Minter: "wasm1holder"},
	}
	assert.NoError(t, msg.Validate())

	msg.Mint.Minter = ""
	assert.ErrorIs(t, msg.Validate(), cosmwasmschema.ErrMissingField)
}

func TestFormatAmount(t *testing.T) {
	formatted, err := FormatAmount("3040000000000", 2)
	require.NoError(t, err)
	assert.Equal(t, "30400000000.00", formatted)

	formatted, err = FormatAmount("5", 6)
	require.NoError(t, err)
	assert.Equal(t, "0.000005", formatted)

	_, err = FormatAmount("ten", 2)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	raw, err := ParseAmount("12.34", 2)
	require.NoError(t, err)
	assert.Equal(t, "1234", raw)

	raw, err = ParseAmount("1.5", 2)
	require.NoError(t, err)
	assert.Equal(t, "150", raw)

	raw, err = ParseAmount("30400000000.00", 2)
	require.NoError(t, err)
	assert.Equal(t, "3040000000000", raw)

	for _, bad := range []string{"12.345", "-1", "ten", ""} {
		_, err := ParseAmount(bad, 2)
		assert.ErrorIs(t, err, ErrAmount, bad)
	}
}

func TestValidateRaw(t *testing.T) {
	assert.NoError(t, ValidateRaw("3040000000000"))
	assert.ErrorIs(t, ValidateRaw("30.5"), ErrAmount)
	assert.ErrorIs(t, ValidateRaw("-5"), ErrAmount)
}
