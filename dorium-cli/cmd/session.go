package cmd

import (
	"context"
	"fmt"

	sdktypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/dorium/dorium-contracts/conf"
	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/deployer"
	"github.com/dorium/dorium-contracts/logger"
	"github.com/dorium/dorium-contracts/metrics"
)

// session is everything one command invocation needs: configuration, logger, metrics registry
// and a connected client.
type session struct {
	cfg      *conf.Config
	logger   logger.Logger
	registry *prometheus.Registry
	client   *cosmwasmapi.Client
	deployer *deployer.Deployer

	restoreZap func()
}

func newSession(ctx context.Context, v *viper.Viper, requireArtifacts bool) (*session, error) {
	cfg, err := conf.Load(v)
	if err != nil {
		return nil, err
	}
	if requireArtifacts {
		if err := cfg.RequireArtifacts(); err != nil {
			return nil, err
		}
	}

	log, err := logger.NewELKLogger(app, logger.Options{
		Level:        cfg.Output.LogLevel,
		LogstashAddr: cfg.Output.LogstashAddr,
	})
	if err != nil {
		return nil, err
	}
	restoreZap, err := logger.ReplaceZapGlobals(cfg.Output.LogLevel)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	s := &session{
		cfg:        cfg,
		logger:     log,
		registry:   prometheus.NewRegistry(),
		restoreZap: restoreZap,
	}

	gasPrice, err := sdktypes.ParseDecCoin(cfg.Chain.GasPrice)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("%s: %w", conf.KeyGasPrice, err)
	}
	broadcast := cosmwasmapi.DefaultBroadcastOptions().
		WithGasAdjustment(cfg.Chain.GasAdjustment).
		WithGas(cfg.Chain.GasLimit)
	broadcast.GasPrice = gasPrice

	wallet, err := cosmwasmapi.DeriveWallet(cfg.Account.Mnemonic, cfg.Chain.Bech32Prefix, 1)
	if err != nil {
		s.close()
		return nil, err
	}

	s.client, err = cosmwasmapi.Connect(ctx, cosmwasmapi.ClientConfig{
		ChainID:      cfg.Chain.ChainID,
		RPCEndpoint:  cfg.Chain.RPCEndpoint,
		Bech32Prefix: cfg.Chain.Bech32Prefix,
	}, wallet,
		cosmwasmapi.WithBroadcastOptions(broadcast),
		cosmwasmapi.WithConfirmationTimeout(cfg.Chain.ConfirmationTimeout),
		cosmwasmapi.WithRateLimit(cfg.Chain.RateLimit),
		cosmwasmapi.WithIndicators(metrics.NewPromIndicators(s.registry, "client")),
	)
	if err != nil {
		s.close()
		return nil, err
	}

	log.Info("Connected",
		logger.WithField("chainId", s.client.ChainID()),
		logger.WithField("rpcEndpoint", cfg.Chain.RPCEndpoint),
		logger.WithField("sender", wallet.Address()),
	)
	s.deployer = deployer.NewDeployer(s.client, wallet.Address(), cfg, log)
	return s, nil
}

// close writes the metrics textfile, if configured, restores the zap globals and closes the
// logger.
func (s *session) close() {
	if err := metrics.WriteTextfile(s.cfg.Output.MetricsTextfile, s.registry); err != nil {
		s.logger.Warn("Cannot write metrics", logger.WithField("path", s.cfg.Output.MetricsTextfile), logger.WithField("err", err))
	}
	s.restoreZap()
	_ = s.logger.Close()
}

// run opens a session, runs fn and closes the session. fn errors are logged before they are
// returned.
func run(ctx context.Context, v *viper.Viper, requireArtifacts bool, fn func(*session) error) error {
	s, err := newSession(ctx, v, requireArtifacts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := fn(s); err != nil {
		s.logger.Error("Command failed", logger.WithField("err", err))
		return err
	}
	return nil
}
