package cosmwasmapi

import (
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/cosmos/go-bip39"
)

const MainAccount = "main"

type AccountData struct {
	Name       string
	Address    string
	PubKey     cryptotypes.PubKey
	AccAddress sdktypes.AccAddress
}

// Wallet is a set of secp256k1 accounts derived from one mnemonic, held in an in-memory keyring.
type Wallet struct {
	keyring  keyring.Keyring
	prefix   string
	accounts []AccountData
}

// DeriveWallet derives n accounts (at least one) along m/44'/118'/0'/0/i and encodes their
// addresses with prefix. The same mnemonic and prefix always give the same addresses.
func DeriveWallet(mnemonic, prefix string, n uint32) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	if prefix == "" {
		return nil, fmt.Errorf("bech32 prefix is empty")
	}
	if n == 0 {
		n = 1
	}

	_, marshaler, _ := initCodec()
	kr := keyring.NewInMemory(marshaler)

	wallet := &Wallet{keyring: kr, prefix: prefix}
	for i := uint32(0); i < n; i++ {
		name := MainAccount
		if i > 0 {
			name = fmt.Sprintf("account-%d", i)
		}

		hdPath := hd.CreateHDPath(sdktypes.CoinType, 0, i).String()
		record, err := kr.NewAccount(name, mnemonic, "", hdPath, hd.Secp256k1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
		}

		pubKey, err := record.GetPubKey()
		if err != nil {
			return nil, err
		}
		accAddress := sdktypes.AccAddress(pubKey.Address())
		address, err := bech32.ConvertAndEncode(prefix, accAddress)
		if err != nil {
			return nil, err
		}

		wallet.accounts = append(wallet.accounts, AccountData{
			Name:       name,
			Address:    address,
			PubKey:     pubKey,
			AccAddress: accAddress,
		})
	}
	return wallet, nil
}

func (w *Wallet) Accounts() []AccountData {
	return append([]AccountData(nil), w.accounts...)
}

// Address is the address of the first account.
func (w *Wallet) Address() string {
	return w.accounts[0].Address
}

func (w *Wallet) Prefix() string {
	return w.prefix
}

func (w *Wallet) Keyring() keyring.Keyring {
	return w.keyring
}

func (w *Wallet) account(address string) (AccountData, bool) {
	for _, account := range w.accounts {
		if account.Address == address {
			return account, true
		}
	}
	return AccountData{}, false
}
