// Package conf builds the explicit configuration of a run from the environment, a .env file
// and command line flags, in increasing order of precedence.
package conf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingEnv      = errors.New("missing required environment variable")
	ErrInvalidDecimals = errors.New("token decimals must be an integer from 0 to 18")
)

// MaxTokenDecimals is the largest precision a cw20 token accepts.
const MaxTokenDecimals = 18

const (
	KeyMnemonic            = "MNEMONIC_MAIN"
	KeyRPCEndpoint         = "RPC_ENDPOINT"
	KeyTokenArtifact       = "ERC20_CONTRACT"
	KeyProposalArtifact    = "DORIUM_PROPOSAL_CONTRACT"
	KeyExchangeArtifact    = "EXCHANGE_CONTRACT"
	KeyChainID             = "CHAIN_ID"
	KeyBech32Prefix        = "BECH32_PREFIX"
	KeyGasPrice            = "GAS_PRICE"
	KeyGasAdjustment       = "GAS_ADJUSTMENT"
	KeyGasLimit            = "GAS_LIMIT"
	KeyRateLimit           = "RATE_LIMIT"
	KeyConfirmationTimeout = "CONFIRMATION_TIMEOUT"
	KeyManifestPath        = "MANIFEST_PATH"
	KeyProposalFunds       = "PROPOSAL_FUNDS"
	KeyProposalID          = "PROPOSAL_ID"
	KeyProposalDescription = "PROPOSAL_DESCRIPTION"
	KeyProposalURL         = "PROPOSAL_URL"
	KeyTokenName           = "TOKEN_NAME"
	KeyTokenSymbol         = "TOKEN_SYMBOL"
	KeyTokenDecimals       = "TOKEN_DECIMALS"
	KeyTokenInitialSupply  = "TOKEN_INITIAL_SUPPLY"
	KeyTokenHolder         = "TOKEN_HOLDER"
	KeyTokenMinter         = "TOKEN_MINTER"
	KeySobzTokenAddress    = "SOBZ_TOKEN_ADDRESS"
	KeyStepsFile           = "STEPS_FILE"
	KeyLogLevel            = "LOG_LEVEL"
	KeyLogstashAddr        = "LOGSTASH_ADDR"
	KeyMetricsTextfile     = "METRICS_TEXTFILE"
)

type Config struct {
	Chain     ChainConfig
	Account   AccountConfig
	Artifacts ArtifactsConfig
	Token     TokenConfig
	Proposal  ProposalConfig
	Output    OutputConfig
}

type ChainConfig struct {
	ChainID             string
	RPCEndpoint         string
	Bech32Prefix        string
	GasPrice            string
	GasAdjustment       float64
	GasLimit            uint64
	RateLimit           float64
	ConfirmationTimeout time.Duration
}

type AccountConfig struct {
	Mnemonic string
}

// ArtifactsConfig holds paths of compiled .wasm files. Exchange is optional.
type ArtifactsConfig struct {
	Token    string
	Proposal string
	Exchange string
}

// TokenConfig is the cw20 init message. Empty Holder or Minter means the deployer.
type TokenConfig struct {
	Name          string
	Symbol        string
	Decimals      uint8
	InitialSupply string
	Holder        string
	Minter        string
	// SobzAddress is the second token of the exchange contract. Empty means the deployed cw20.
	SobzAddress string
}

type ProposalConfig struct {
	ID          string
	Description string
	URL         string
	Funds       string
}

type OutputConfig struct {
	ManifestPath    string
	StepsFile       string
	LogLevel        string
	LogstashAddr    string
	MetricsTextfile string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBech32Prefix, "wasm")
	v.SetDefault(KeyGasPrice, "0.025ucosm")
	v.SetDefault(KeyGasAdjustment, 1.3)
	v.SetDefault(KeyGasLimit, 5_000_000)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyConfirmationTimeout, "0s")
	v.SetDefault(KeyManifestPath, "contracts.json")
	v.SetDefault(KeyProposalFunds, "1ucosm")
	v.SetDefault(KeyProposalID, "dorcp-test1")
	v.SetDefault(KeyProposalDescription, "Test Description")
	v.SetDefault(KeyTokenName, "Dorium Value Token")
	v.SetDefault(KeyTokenSymbol, "TREE")
	v.SetDefault(KeyTokenDecimals, 2)
	v.SetDefault(KeyTokenInitialSupply, "3040000000000")
	v.SetDefault(KeyLogLevel, "info")
}

// ReadDotEnv merges a dotenv file into v. A missing file is not an error.
func ReadDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("dotenv")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Load reads every setting from v. Only the mnemonic and the rpc endpoint are required here;
// commands that upload call RequireArtifacts.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString(KeyConfirmationTimeout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyConfirmationTimeout, err)
	}
	decimals, err := strconv.ParseUint(strings.TrimSpace(v.GetString(KeyTokenDecimals)), 10, 8)
	if err != nil || decimals > MaxTokenDecimals {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidDecimals, KeyTokenDecimals, v.GetString(KeyTokenDecimals))
	}

	cfg := &Config{
		Chain: ChainConfig{
			ChainID:             v.GetString(KeyChainID),
			RPCEndpoint:         v.GetString(KeyRPCEndpoint),
			Bech32Prefix:        v.GetString(KeyBech32Prefix),
			GasPrice:            v.GetString(KeyGasPrice),
			GasAdjustment:       v.GetFloat64(KeyGasAdjustment),
			GasLimit:            v.GetUint64(KeyGasLimit),
			RateLimit:           v.GetFloat64(KeyRateLimit),
			ConfirmationTimeout: timeout,
		},
		Account: AccountConfig{
			Mnemonic: v.GetString(KeyMnemonic),
		},
		Artifacts: ArtifactsConfig{
			Token:    v.GetString(KeyTokenArtifact),
			Proposal: v.GetString(KeyProposalArtifact),
			Exchange: v.GetString(KeyExchangeArtifact),
		},
		Token: TokenConfig{
			Name:          v.GetString(KeyTokenName),
			Symbol:        v.GetString(KeyTokenSymbol),
			Decimals:      uint8(decimals),
			InitialSupply: v.GetString(KeyTokenInitialSupply),
			Holder:        v.GetString(KeyTokenHolder),
			Minter:        v.GetString(KeyTokenMinter),
			SobzAddress:   v.GetString(KeySobzTokenAddress),
		},
		Proposal: ProposalConfig{
			ID:          v.GetString(KeyProposalID),
			Description: v.GetString(KeyProposalDescription),
			URL:         v.GetString(KeyProposalURL),
			Funds:       v.GetString(KeyProposalFunds),
		},
		Output: OutputConfig{
			ManifestPath:    v.GetString(KeyManifestPath),
			StepsFile:       v.GetString(KeyStepsFile),
			LogLevel:        v.GetString(KeyLogLevel),
			LogstashAddr:    v.GetString(KeyLogstashAddr),
			MetricsTextfile: v.GetString(KeyMetricsTextfile),
		},
	}

	if err := require(KeyMnemonic, cfg.Account.Mnemonic, KeyRPCEndpoint, cfg.Chain.RPCEndpoint); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) RequireArtifacts() error {
	return require(KeyTokenArtifact, c.Artifacts.Token, KeyProposalArtifact, c.Artifacts.Proposal)
}

func require(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingEnv, pairs[i])
		}
	}
	return nil
}
