package deployer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dorium/dorium-contracts/conf"
	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-api/cosmwasmtest"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/cw20"
	"github.com/dorium/dorium-contracts/logger"
)

const deployerAddr = "wasm1deployer"

type DeployerTestSuite struct {
	suite.Suite
	dir      string
	cfg      *conf.Config
	client   *cosmwasmtest.Client
	logger   *logger.MockLogger
	deployer *Deployer
}

func (s *DeployerTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfg = &conf.Config{
		Artifacts: conf.ArtifactsConfig{
			Token:    s.writeWasm("cw20_base.wasm"),
			Proposal: s.writeWasm("dorcp.wasm"),
		},
		Token: conf.TokenConfig{
			Name:          "Dorium Value Token",
			Symbol:        "TREE",
			Decimals:      2,
			InitialSupply: "3040000000000",
		},
		Proposal: conf.ProposalConfig{
			ID:          "dorcp-test1",
			Description: "Test Description",
			Funds:       "1ucosm",
		},
		Output: conf.OutputConfig{
			ManifestPath: filepath.Join(s.dir, "contracts.json"),
		},
	}
	s.client = cosmwasmtest.NewClient()
	s.logger = logger.NewMockLogger()
	s.deployer = NewDeployer(s.client, deployerAddr, s.cfg, s.logger)
}

func TestDeployer(t *testing.T) {
	suite.Run(t, new(DeployerTestSuite))
}

func (s *DeployerTestSuite) writeWasm(name string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte("\x00asm\x01\x00\x00\x00"+name), 0o600))
	return path
}

func (s *DeployerTestSuite) Test_Deploy() {
	s.client.UploadResults = []*cosmwasmapi.UploadResult{
		{CodeID: 7, TransactionHash: "H1"},
		{CodeID: 8, TransactionHash: "H2"},
	}
	s.client.InstantiateResults = []*cosmwasmapi.InstantiateResult{
		{ContractAddress: "wasm1abc", TransactionHash: "H3"},
		{ContractAddress: "wasm1def", TransactionHash: "H4"},
	}

	manifest, err := s.deployer.Deploy(context.Background())
	s.Require().NoError(err)

	s.Equal(&CodeRecord{CodeID: 7, TransactionHash: "H1", ContractAddress: "wasm1abc"}, manifest.Contracts["token"])
	s.Equal(&CodeRecord{CodeID: 8, TransactionHash: "H2", ContractAddress: "wasm1def"}, manifest.Contracts["proposal"])

	loaded, err := LoadManifest(s.cfg.Output.ManifestPath)
	s.Require().NoError(err)
	s.Equal(manifest, loaded)
	s.Equal("wasm1abc", loaded.DeployedContracts["Dorium Value Token"])
	s.Equal("wasm1def", loaded.DeployedContracts[ProposalLabel])

	kinds := []cosmwasmtest.CallKind{}
	for _, call := range s.client.Calls {
		kinds = append(kinds, call.Kind)
	}
	s.Equal([]cosmwasmtest.CallKind{
		cosmwasmtest.KindUpload, cosmwasmtest.KindUpload,
		cosmwasmtest.KindInstantiate, cosmwasmtest.KindInstantiate,
		cosmwasmtest.KindExecute,
	}, kinds)
}

func (s *DeployerTestSuite) Test_InstantiateMessages() {
	_, err := s.deployer.Deploy(context.Background())
	s.Require().NoError(err)

	instantiates := s.client.CallsOf(cosmwasmtest.KindInstantiate)
	s.JSONEq(`{
		"name": "Dorium Value Token",
		"symbol": "TREE",
		"decimals": 2,
		"initial_balances": [{"address": "wasm1deployer", "amount": "3040000000000"}],
		"marketing": null,
		"mint": {"minter": "wasm1deployer", "cap": null}
	}`, string(instantiates[0].Msg))
	s.Equal(uint64(1), instantiates[0].CodeID)
	s.Equal(`{}`, string(instantiates[1].Msg))
	s.Equal(uint64(2), instantiates[1].CodeID)

	// two uploads come first, so the fake numbers the instances 3 and 4
	create := s.client.CallsOf(cosmwasmtest.KindExecute)[0]
	s.Equal("wasm1contract4", create.ContractAddr)
	s.Equal("1ucosm", create.Funds)
	s.JSONEq(`{"create": {
		"id": "dorcp-test1",
		"description": "Test Description",
		"proposer": "wasm1deployer",
		"source": "wasm1deployer",
		"validators": ["wasm1deployer"],
		"cw20_whitelist": ["wasm1contract3"]
	}}`, string(create.Msg))
}

func (s *DeployerTestSuite) Test_UploadWritesCodeRecordsOnly() {
	manifest, err := s.deployer.UploadAll(context.Background())
	s.Require().NoError(err)

	s.Equal(&CodeRecord{CodeID: 1, TransactionHash: "TX1"}, manifest.Contracts["token"])
	s.Equal(&CodeRecord{CodeID: 2, TransactionHash: "TX2"}, manifest.Contracts["proposal"])
	s.Empty(s.client.CallsOf(cosmwasmtest.KindInstantiate))
	s.Equal([]string{"Contract uploaded", "Contract uploaded"}, s.logger.Messages("info"))
}

func (s *DeployerTestSuite) Test_UploadDiscardsPreviousAddresses() {
	_, err := s.deployer.Deploy(context.Background())
	s.Require().NoError(err)

	manifest, err := s.deployer.UploadAll(context.Background())
	s.Require().NoError(err)
	s.Equal("", manifest.Address("token"))
	s.NotEmpty(manifest.DeployedContracts)
}

func (s *DeployerTestSuite) Test_UploadFailureWritesNothing() {
	s.client.FailOn(cosmwasmtest.KindUpload, &cosmwasmapi.RemoteError{Code: 2, Codespace: "wasm", Log: "create wasm contract failed"})

	_, err := s.deployer.UploadAll(context.Background())
	var remoteErr *cosmwasmapi.RemoteError
	s.True(errors.As(err, &remoteErr))
	s.Len(s.client.Calls, 1)

	_, statErr := os.Stat(s.cfg.Output.ManifestPath)
	s.True(os.IsNotExist(statErr))
}

func (s *DeployerTestSuite) Test_MissingArtifact() {
	s.cfg.Artifacts.Proposal = filepath.Join(s.dir, "missing.wasm")

	_, err := s.deployer.UploadAll(context.Background())
	s.ErrorIs(err, ErrArtifact)
	s.Len(s.client.CallsOf(cosmwasmtest.KindUpload), 1)
}

func (s *DeployerTestSuite) Test_InstantiateWithoutManifest() {
	_, err := s.deployer.InstantiateAll(context.Background())
	s.ErrorIs(err, ErrManifest)
	s.Empty(s.client.Calls)
}

func (s *DeployerTestSuite) Test_InstantiateWithoutCodeRecord() {
	manifest := NewManifest()
	manifest.Contracts["token"] = &CodeRecord{CodeID: 7, TransactionHash: "H1"}
	s.Require().NoError(WriteManifest(s.cfg.Output.ManifestPath, manifest))

	_, err := s.deployer.InstantiateAll(context.Background())
	s.ErrorIs(err, ErrCodeNotUploaded)
	s.ErrorContains(err, "proposal")
	s.Empty(s.client.Calls)
}

func (s *DeployerTestSuite) Test_InstantiateFailureKeepsManifest() {
	_, err := s.deployer.UploadAll(context.Background())
	s.Require().NoError(err)
	s.client.FailOn(cosmwasmtest.KindExecute, errors.New("insufficient funds"))

	_, err = s.deployer.InstantiateAll(context.Background())
	s.ErrorContains(err, "create proposal dorcp-test1")

	loaded, err := LoadManifest(s.cfg.Output.ManifestPath)
	s.Require().NoError(err)
	s.Equal("", loaded.Address("token"))
}

func (s *DeployerTestSuite) Test_DeployWithExchange() {
	s.cfg.Artifacts.Exchange = s.writeWasm("exchange.wasm")
	s.cfg.Token.SobzAddress = "wasm1sobz"

	manifest, err := s.deployer.Deploy(context.Background())
	s.Require().NoError(err)
	s.NotEmpty(manifest.Address("exchange"))
	s.Equal(manifest.Address("exchange"), manifest.DeployedContracts[ExchangeLabel])

	instantiates := s.client.CallsOf(cosmwasmtest.KindInstantiate)
	s.Require().Len(instantiates, 3)
	s.JSONEq(`{"value_token_address": "`+manifest.Address("token")+`", "sobz_token_address": "wasm1sobz"}`, string(instantiates[2].Msg))
}

func (s *DeployerTestSuite) Test_InvalidFunds() {
	s.cfg.Proposal.Funds = "one cosm"
	_, err := s.deployer.UploadAll(context.Background())
	s.Require().NoError(err)

	_, err = s.deployer.InstantiateAll(context.Background())
	s.ErrorContains(err, conf.KeyProposalFunds)
	s.Empty(s.client.CallsOf(cosmwasmtest.KindInstantiate))
}

func (s *DeployerTestSuite) Test_TokenSupplyInBaseUnits() {
	_, err := s.deployer.Deploy(context.Background())
	s.Require().NoError(err)

	var supply logger.Entry
	for _, entry := range s.logger.Entries() {
		if entry.Message == "Token supply" {
			supply = entry
		}
	}
	s.Contains(supply.Fields, logger.WithField("supply", "30400000000.00"))
}

func (s *DeployerTestSuite) Test_InvalidTokenSupply() {
	_, err := s.deployer.UploadAll(context.Background())
	s.Require().NoError(err)

	for _, supply := range []string{"30400000000.5", "-1", "lots"} {
		s.cfg.Token.InitialSupply = supply
		_, err = s.deployer.InstantiateAll(context.Background())
		s.ErrorIs(err, cw20.ErrAmount, supply)
		s.ErrorContains(err, conf.KeyTokenInitialSupply)
	}
	s.Empty(s.client.CallsOf(cosmwasmtest.KindInstantiate))
}
