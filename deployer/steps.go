package deployer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sdktypes "github.com/cosmos/cosmos-sdk/types"

	"github.com/dorium/dorium-contracts/chainio/api"
	"github.com/dorium/dorium-contracts/conf"
	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/cw20"
	"github.com/dorium/dorium-contracts/logger"
)

var (
	ErrUnknownAction       = errors.New("unknown step action")
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// Step is one follow-up action run against deployed contracts. String fields may reference
// ${sender} or ${contracts.<name>}. Contract is a manifest name or an address, and defaults to
// the action's contract. An amount with a decimal point is in whole tokens and is scaled by the
// token's decimals; otherwise it is in base units.
type Step struct {
	Action      string `toml:"action" yaml:"action"`
	Contract    string `toml:"contract" yaml:"contract"`
	Address     string `toml:"address" yaml:"address"`
	Recipient   string `toml:"recipient" yaml:"recipient"`
	Spender     string `toml:"spender" yaml:"spender"`
	Amount      string `toml:"amount" yaml:"amount"`
	ID          string `toml:"id" yaml:"id"`
	Description string `toml:"description" yaml:"description"`
	Funds       string `toml:"funds" yaml:"funds"`
}

type StepResult struct {
	Action          string
	Contract        string
	TransactionHash string
	Output          any
}

type stepFunc func(ctx context.Context, r *StepRunner, contractAddr string, step Step) (StepResult, error)

var actions = map[string]stepFunc{
	"cw20.balance": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		balance, err := r.cw20(addr).Balance(ctx, step.Address)
		return StepResult{Output: balance}, err
	},
	"cw20.token_info": func(ctx context.Context, r *StepRunner, addr string, _ Step) (StepResult, error) {
		info, err := r.cw20(addr).TokenInfo(ctx)
		return StepResult{Output: info}, err
	},
	"cw20.transfer": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		amount, err := r.amount(ctx, addr, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := r.cw20(addr).Transfer(ctx, r.sender, step.Recipient, amount)
		return StepResult{TransactionHash: hash}, err
	},
	"cw20.mint": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		amount, err := r.amount(ctx, addr, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := r.cw20(addr).Mint(ctx, r.sender, orDefault(step.Recipient, r.sender), amount)
		return StepResult{TransactionHash: hash}, err
	},
	"cw20.burn": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		amount, err := r.amount(ctx, addr, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := r.cw20(addr).Burn(ctx, r.sender, amount)
		return StepResult{TransactionHash: hash}, err
	},
	"cw20.send": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		amount, err := r.amount(ctx, addr, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := r.cw20(addr).Send(ctx, r.sender, step.Recipient, amount, []byte(`{}`))
		return StepResult{TransactionHash: hash}, err
	},
	"cw20.increase_allowance": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		amount, err := r.amount(ctx, addr, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := r.cw20(addr).IncreaseAllowance(ctx, r.sender, step.Spender, amount, nil)
		return StepResult{TransactionHash: hash}, err
	},
	"dorcp.create": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		funds, err := cosmwasmapi.ParseFunds(step.Funds)
		if err != nil {
			return StepResult{}, err
		}
		create := r.deployer.proposalCreateMsg(r.manifest.Address(ContractToken))
		create.ID = orDefault(step.ID, create.ID)
		create.Description = orDefault(step.Description, create.Description)
		hash, err := r.dorcp(addr).Create(ctx, r.sender, create, funds)
		return StepResult{TransactionHash: hash}, err
	},
	"dorcp.approve": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		hash, err := r.dorcp(addr).Approve(ctx, r.sender, step.ID)
		return StepResult{TransactionHash: hash}, err
	},
	"dorcp.refund": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		hash, err := r.dorcp(addr).Refund(ctx, r.sender, step.ID)
		return StepResult{TransactionHash: hash}, err
	},
	"dorcp.details": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		details, err := r.dorcp(addr).Details(ctx, step.ID)
		return StepResult{Output: details}, err
	},
	"dorcp.list": func(ctx context.Context, r *StepRunner, addr string, _ Step) (StepResult, error) {
		ids, err := r.dorcp(addr).List(ctx)
		return StepResult{Output: ids}, err
	},
	"exchange.exchange": func(ctx context.Context, r *StepRunner, addr string, step Step) (StepResult, error) {
		token := r.cw20(r.manifest.Address(ContractToken))
		amount, err := r.amount(ctx, token.Address, step.Amount)
		if err != nil {
			return StepResult{}, err
		}
		hash, err := api.NewExchange(r.client, r.sender).Use(addr).Exchange(ctx, r.sender, token, amount)
		return StepResult{TransactionHash: hash}, err
	},
	"exchange.exchanged": func(ctx context.Context, r *StepRunner, addr string, _ Step) (StepResult, error) {
		exchanged, err := api.NewExchange(r.client, r.sender).Use(addr).Exchanged(ctx)
		return StepResult{Output: exchanged}, err
	},
}

// DefaultSteps checks the sender's token balance and reads the configured proposal back.
func (d *Deployer) DefaultSteps() []Step {
	return []Step{
		{Action: "cw20.balance", Address: "${sender}"},
		{Action: "dorcp.details", ID: d.cfg.Proposal.ID},
	}
}

// StepRunner runs follow-up steps against the contracts of one manifest.
type StepRunner struct {
	deployer *Deployer
	client   cosmwasmapi.SigningClient
	sender   string
	manifest *Manifest
	logger   logger.Logger
	decimals map[string]uint8
}

// NewStepRunner loads the manifest the steps resolve their contracts from.
func (d *Deployer) NewStepRunner() (*StepRunner, error) {
	manifest, err := LoadManifest(d.cfg.Output.ManifestPath)
	if err != nil {
		return nil, err
	}
	return &StepRunner{
		deployer: d,
		client:   d.client,
		sender:   d.sender,
		manifest: manifest,
		logger:   d.logger,
		decimals: map[string]uint8{},
	}, nil
}

// Run resolves and checks every step before running any, then runs them in order and stops
// at the first failure.
func (r *StepRunner) Run(ctx context.Context, steps []Step) ([]StepResult, error) {
	resolved := make([]Step, len(steps))
	addrs := make([]string, len(steps))
	for i, step := range steps {
		if _, ok := actions[step.Action]; !ok {
			return nil, fmt.Errorf("%w: step %d: %q", ErrUnknownAction, i+1, step.Action)
		}
		s, err := r.resolve(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		if s.Amount != "" {
			if _, err := cw20.ParseAmount(s.Amount, conf.MaxTokenDecimals); err != nil {
				return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
			}
		}
		if s.Contract == "" {
			s.Contract = defaultContract(s.Action)
		}
		addr := r.contractAddr(s.Contract)
		if addr == "" {
			return nil, fmt.Errorf("step %d (%s): %w: contract %q has no address", i+1, step.Action, ErrUnresolvedReference, s.Contract)
		}
		resolved[i], addrs[i] = s, addr
	}

	results := make([]StepResult, 0, len(steps))
	for i, step := range resolved {
		res, err := actions[step.Action](ctx, r, addrs[i], step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		res.Action, res.Contract = step.Action, step.Contract
		results = append(results, res)

		fields := []logger.Field{
			logger.WithField("action", step.Action),
			logger.WithField("contract", addrs[i]),
		}
		if res.TransactionHash != "" {
			fields = append(fields, logger.WithField("transactionHash", res.TransactionHash))
		}
		if res.Output != nil {
			fields = append(fields, logger.WithField("output", res.Output))
		}
		r.logger.Info("Step done", fields...)
	}
	return results, nil
}

// contractAddr accepts a manifest name or an address, such as the value of ${contracts.<name>}.
func (r *StepRunner) contractAddr(contract string) string {
	if addr := r.manifest.Address(contract); addr != "" {
		return addr
	}
	for _, name := range r.manifest.Names() {
		if r.manifest.Address(name) == contract {
			return contract
		}
	}
	if _, err := sdktypes.AccAddressFromBech32(contract); err == nil {
		return contract
	}
	return ""
}

func (r *StepRunner) cw20(addr string) *api.CW20Instance {
	return api.NewCW20(r.client, r.sender).Use(addr)
}

// amount converts a step amount to base units, asking the token for its decimals once.
func (r *StepRunner) amount(ctx context.Context, tokenAddr, amount string) (string, error) {
	if !strings.Contains(amount, ".") {
		return amount, cw20.ValidateRaw(amount)
	}
	decimals, ok := r.decimals[tokenAddr]
	if !ok {
		info, err := r.cw20(tokenAddr).TokenInfo(ctx)
		if err != nil {
			return "", fmt.Errorf("token decimals: %w", err)
		}
		decimals = info.Decimals
		r.decimals[tokenAddr] = decimals
	}
	return cw20.ParseAmount(amount, decimals)
}

func (r *StepRunner) dorcp(addr string) *api.DORCPInstance {
	return api.NewDORCP(r.client, r.sender).Use(addr)
}

func (r *StepRunner) resolve(step Step) (Step, error) {
	var err error
	expand := func(value string) string {
		return os.Expand(value, func(ref string) string {
			if ref == "sender" {
				return r.sender
			}
			if name, ok := strings.CutPrefix(ref, "contracts."); ok {
				if addr := r.manifest.Address(name); addr != "" {
					return addr
				}
			}
			if err == nil {
				err = fmt.Errorf("%w: ${%s}", ErrUnresolvedReference, ref)
			}
			return ""
		})
	}

	step.Contract = expand(step.Contract)
	step.Address = expand(step.Address)
	step.Recipient = expand(step.Recipient)
	step.Spender = expand(step.Spender)
	step.Amount = expand(step.Amount)
	step.ID = expand(step.ID)
	step.Description = expand(step.Description)
	step.Funds = expand(step.Funds)
	return step, err
}

func defaultContract(action string) string {
	switch {
	case strings.HasPrefix(action, "cw20."):
		return ContractToken
	case strings.HasPrefix(action, "dorcp."):
		return ContractProposal
	case strings.HasPrefix(action, "exchange."):
		return ContractExchange
	}
	return ""
}
