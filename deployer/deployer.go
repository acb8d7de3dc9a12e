// Package deployer uploads and instantiates the Dorium contracts and records them in the
// deployment manifest.
package deployer

import (
	"context"
	"fmt"

	"github.com/dorium/dorium-contracts/chainio/api"
	"github.com/dorium/dorium-contracts/conf"
	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/cw20"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/dorcp"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/exchange"
	"github.com/dorium/dorium-contracts/logger"
)

const (
	ProposalLabel = "Dorium Community Proposal"
	ExchangeLabel = "Dorium Exchange"
)

type Deployer struct {
	client cosmwasmapi.SigningClient
	sender string
	cfg    *conf.Config
	logger logger.Logger
}

func NewDeployer(client cosmwasmapi.SigningClient, sender string, cfg *conf.Config, log logger.Logger) *Deployer {
	return &Deployer{client: client, sender: sender, cfg: cfg, logger: log}
}

// Artifacts lists the configured contracts in upload order. The exchange is only included when
// its artifact is configured.
func (d *Deployer) Artifacts() []Artifact {
	artifacts := []Artifact{
		{Name: ContractToken, Path: d.cfg.Artifacts.Token},
		{Name: ContractProposal, Path: d.cfg.Artifacts.Proposal},
	}
	if d.cfg.Artifacts.Exchange != "" {
		artifacts = append(artifacts, Artifact{Name: ContractExchange, Path: d.cfg.Artifacts.Exchange})
	}
	return artifacts
}

// Deploy runs the upload phase then the instantiate phase.
func (d *Deployer) Deploy(ctx context.Context) (*Manifest, error) {
	if _, err := d.UploadAll(ctx); err != nil {
		return nil, err
	}
	return d.InstantiateAll(ctx)
}

// UploadAll uploads every artifact in order and overwrites the manifest with the new code
// records. Addresses of a previous deployment are discarded. Nothing is written on failure.
func (d *Deployer) UploadAll(ctx context.Context) (*Manifest, error) {
	manifest := NewManifest()
	if previous, err := LoadManifest(d.cfg.Output.ManifestPath); err == nil {
		manifest.DeployedContracts = previous.DeployedContracts
	}

	code := api.NewCode(d.client, d.sender)
	for _, artifact := range d.Artifacts() {
		wasmByteCode, err := ReadArtifact(artifact.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", artifact.Name, err)
		}

		res, err := code.Upload(ctx, wasmByteCode)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", artifact.Name, err)
		}
		d.logger.Info("Contract uploaded",
			logger.WithField("contract", artifact.Name),
			logger.WithField("codeId", res.CodeID),
			logger.WithField("transactionHash", res.TransactionHash),
			logger.WithField("size", res.OriginalSize),
		)

		manifest.Contracts[artifact.Name] = &CodeRecord{
			CodeID:          res.CodeID,
			TransactionHash: res.TransactionHash,
		}
	}

	if err := WriteManifest(d.cfg.Output.ManifestPath, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// InstantiateAll instantiates every uploaded contract of the manifest with its fixed init
// message, opens the configured proposal and writes the addresses back once at the end.
func (d *Deployer) InstantiateAll(ctx context.Context) (*Manifest, error) {
	manifest, err := LoadManifest(d.cfg.Output.ManifestPath)
	if err != nil {
		return nil, err
	}

	names := []string{ContractToken, ContractProposal}
	if _, ok := manifest.Contracts[ContractExchange]; ok || d.cfg.Artifacts.Exchange != "" {
		names = append(names, ContractExchange)
	}
	for _, name := range names {
		if record, ok := manifest.Contracts[name]; !ok || record.CodeID == 0 {
			return nil, fmt.Errorf("%w: %s", ErrCodeNotUploaded, name)
		}
	}

	funds, err := cosmwasmapi.ParseFunds(d.cfg.Proposal.Funds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", conf.KeyProposalFunds, err)
	}
	tokenMsg, err := d.tokenInitMsg()
	if err != nil {
		return nil, err
	}

	deployed := map[string]string{}

	token, res, err := api.NewCW20(d.client, d.sender).Instantiate(ctx,
		manifest.Contracts[ContractToken].CodeID, tokenMsg, d.cfg.Token.Name, "")
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", ContractToken, err)
	}
	d.instantiated(ContractToken, res)
	manifest.Contracts[ContractToken].ContractAddress = token.Address
	deployed[d.cfg.Token.Name] = token.Address

	proposal, res, err := api.NewDORCP(d.client, d.sender).Instantiate(ctx,
		manifest.Contracts[ContractProposal].CodeID, ProposalLabel, "")
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", ContractProposal, err)
	}
	d.instantiated(ContractProposal, res)
	manifest.Contracts[ContractProposal].ContractAddress = proposal.Address
	deployed[ProposalLabel] = proposal.Address

	txHash, err := proposal.Create(ctx, d.sender, d.proposalCreateMsg(token.Address), funds)
	if err != nil {
		return nil, fmt.Errorf("create proposal %s: %w", d.cfg.Proposal.ID, err)
	}
	d.logger.Info("Proposal created",
		logger.WithField("id", d.cfg.Proposal.ID),
		logger.WithField("funds", funds.String()),
		logger.WithField("transactionHash", txHash),
	)

	if len(names) > 2 {
		sobz := d.cfg.Token.SobzAddress
		if sobz == "" {
			sobz = token.Address
		}
		ex, res, err := api.NewExchange(d.client, d.sender).Instantiate(ctx,
			manifest.Contracts[ContractExchange].CodeID,
			exchange.InstantiateMsg{ValueTokenAddress: token.Address, SobzTokenAddress: sobz},
			ExchangeLabel, "")
		if err != nil {
			return nil, fmt.Errorf("instantiate %s: %w", ContractExchange, err)
		}
		d.instantiated(ContractExchange, res)
		manifest.Contracts[ContractExchange].ContractAddress = ex.Address
		deployed[ExchangeLabel] = ex.Address
	}

	if manifest.DeployedContracts == nil {
		manifest.DeployedContracts = map[string]string{}
	}
	for label, addr := range deployed {
		manifest.DeployedContracts[label] = addr
	}

	if err := WriteManifest(d.cfg.Output.ManifestPath, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (d *Deployer) instantiated(name string, res *cosmwasmapi.InstantiateResult) {
	d.logger.Info("Contract instantiated",
		logger.WithField("contract", name),
		logger.WithField("contractAddress", res.ContractAddress),
		logger.WithField("transactionHash", res.TransactionHash),
	)
}

// tokenInitMsg mints the configured supply, given in base units, to the holder.
func (d *Deployer) tokenInitMsg() (cw20.InstantiateMsg, error) {
	holder := orDefault(d.cfg.Token.Holder, d.sender)
	minter := orDefault(d.cfg.Token.Minter, d.sender)

	if err := cw20.ValidateRaw(d.cfg.Token.InitialSupply); err != nil {
		return cw20.InstantiateMsg{}, fmt.Errorf("%s: %w", conf.KeyTokenInitialSupply, err)
	}
	supply, err := cw20.FormatAmount(d.cfg.Token.InitialSupply, d.cfg.Token.Decimals)
	if err != nil {
		return cw20.InstantiateMsg{}, fmt.Errorf("%s: %w", conf.KeyTokenInitialSupply, err)
	}
	d.logger.Info("Token supply",
		logger.WithField("symbol", d.cfg.Token.Symbol),
		logger.WithField("supply", supply),
		logger.WithField("holder", holder),
	)

	return cw20.InstantiateMsg{
		Name:     d.cfg.Token.Name,
		Symbol:   d.cfg.Token.Symbol,
		Decimals: d.cfg.Token.Decimals,
		InitialBalances: []cw20.Cw20Coin{
			{Address: holder, Amount: d.cfg.Token.InitialSupply},
		},
		Mint: &cw20.MinterResponse{Minter: minter},
	}, nil
}

func (d *Deployer) proposalCreateMsg(tokenAddr string) dorcp.Create {
	return dorcp.Create{
		ID:            d.cfg.Proposal.ID,
		Description:   d.cfg.Proposal.Description,
		URL:           d.cfg.Proposal.URL,
		Proposer:      d.sender,
		Source:        d.sender,
		Validators:    []string{d.sender},
		Cw20Whitelist: []string{tokenAddr},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
