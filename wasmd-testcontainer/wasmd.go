// Package wasmd runs a single node wasmd chain in docker for end-to-end tests.
package wasmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
)

const (
	apiPort  = "1317"
	grpcPort = "9090"
	rpcPort  = "26657"

	Image        = "cosmwasm/wasmd:v0.53.0"
	ChainId      = "testing"
	Bech32Prefix = "wasm"
	Denom        = "ucosm"
)

type WasmdContainer struct {
	Ctx       context.Context
	Container testcontainers.Container
}

func (d *WasmdContainer) getHost(port nat.Port) string {
	host, err := d.Container.Host(d.Ctx)
	if err != nil {
		panic(err)
	}
	port, err = d.Container.MappedPort(d.Ctx, port)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func (d *WasmdContainer) GetApiEndpoint() string {
	return fmt.Sprintf("http://%s", d.getHost(apiPort))
}

func (d *WasmdContainer) GetRpcUrl() string {
	return fmt.Sprintf("http://%s", d.getHost(rpcPort))
}

func (d *WasmdContainer) GetGrpcEndpoint() string {
	return fmt.Sprintf("grpc://%s", d.getHost(grpcPort))
}

// ClientConfig points a cosmwasmapi.Client at the container.
func (d *WasmdContainer) ClientConfig() cosmwasmapi.ClientConfig {
	return cosmwasmapi.ClientConfig{
		ChainID:      ChainId,
		RPCEndpoint:  d.GetRpcUrl(),
		Bech32Prefix: Bech32Prefix,
	}
}

func (d *WasmdContainer) Terminate(ctx context.Context) error {
	return d.Container.Terminate(ctx)
}

// Run starts the chain and funds every address in genesis. It returns once the rpc endpoint
// answers /status.
func Run(ctx context.Context, fund ...string) (*WasmdContainer, error) {
	setupCmd := append([]string{"/opt/setup_wasmd.sh"}, fund...)
	startCmd := []string{"/opt/run_wasmd.sh"}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: Image,
			Entrypoint: []string{
				"sh",
				"-c",
			},
			Cmd: []string{
				strings.Join(setupCmd, " ") + " && " + strings.Join(startCmd, " "),
			},
			Env:          map[string]string{"CHAIN_ID": ChainId, "STAKE": "ustake", "FEE": Denom},
			ExposedPorts: []string{apiPort, grpcPort, rpcPort},
			WaitingFor:   wait.ForHTTP("/status").WithPort(rpcPort),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	return &WasmdContainer{
		Ctx:       ctx,
		Container: container,
	}, nil
}
