package cosmwasmapi

import (
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/stretchr/testify/suite"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type WalletTestSuite struct {
	suite.Suite
}

func TestWallet(t *testing.T) {
	suite.Run(t, new(WalletTestSuite))
}

func (s *WalletTestSuite) Test_Deterministic() {
	first, err := DeriveWallet(testMnemonic, "wasm", 1)
	s.Require().NoError(err)
	second, err := DeriveWallet(testMnemonic, "wasm", 1)
	s.Require().NoError(err)

	s.Equal(first.Address(), second.Address())
	s.True(strings.HasPrefix(first.Address(), "wasm1"))
	s.Equal("wasm", first.Prefix())
}

func (s *WalletTestSuite) Test_PrefixOnlyChangesEncoding() {
	wasm, err := DeriveWallet(testMnemonic, "wasm", 1)
	s.Require().NoError(err)
	cosmos, err := DeriveWallet(testMnemonic, "cosmos", 1)
	s.Require().NoError(err)

	hrp, wasmBytes, err := bech32.DecodeAndConvert(wasm.Address())
	s.Require().NoError(err)
	s.Equal("wasm", hrp)
	hrp, cosmosBytes, err := bech32.DecodeAndConvert(cosmos.Address())
	s.Require().NoError(err)
	s.Equal("cosmos", hrp)
	s.Equal(wasmBytes, cosmosBytes)
}

func (s *WalletTestSuite) Test_MultipleAccounts() {
	wallet, err := DeriveWallet(testMnemonic, "wasm", 3)
	s.Require().NoError(err)

	accounts := wallet.Accounts()
	s.Len(accounts, 3)
	s.Equal(MainAccount, accounts[0].Name)
	s.Equal("account-2", accounts[2].Name)
	s.Equal(wallet.Address(), accounts[0].Address)
	s.NotEqual(accounts[0].Address, accounts[1].Address)
	s.NotNil(accounts[1].PubKey)

	account, ok := wallet.account(accounts[1].Address)
	s.True(ok)
	s.Equal("account-1", account.Name)
}

func (s *WalletTestSuite) Test_WhitespaceIsNormalized() {
	wallet, err := DeriveWallet("  "+strings.ReplaceAll(testMnemonic, " ", "\n")+"\n", "wasm", 0)
	s.Require().NoError(err)

	expected, err := DeriveWallet(testMnemonic, "wasm", 1)
	s.Require().NoError(err)
	s.Equal(expected.Address(), wallet.Address())
}

func (s *WalletTestSuite) Test_InvalidMnemonic() {
	_, err := DeriveWallet("abandon abandon abandon", "wasm", 1)
	s.ErrorIs(err, ErrInvalidMnemonic)

	_, err = DeriveWallet("", "wasm", 1)
	s.ErrorIs(err, ErrInvalidMnemonic)
}

func (s *WalletTestSuite) Test_EmptyPrefix() {
	_, err := DeriveWallet(testMnemonic, "", 1)
	s.Error(err)
}
