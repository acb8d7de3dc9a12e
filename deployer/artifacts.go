package deployer

import (
	"errors"
	"fmt"
	"os"

	"github.com/CosmWasm/wasmd/x/wasm/ioutils"
)

var ErrArtifact = errors.New("cannot read contract artifact")

const (
	ContractToken    = "token"
	ContractProposal = "proposal"
	ContractExchange = "exchange"
)

// Artifact is a compiled contract and the manifest name it is recorded under.
type Artifact struct {
	Name string
	Path string
}

// ReadArtifact reads a .wasm file, plain or gzipped.
func ReadArtifact(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrArtifact)
	}
	wasmByteCode, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}
	if !ioutils.IsWasm(wasmByteCode) && !ioutils.IsGzip(wasmByteCode) {
		return nil, fmt.Errorf("%w: %s is not a wasm module", ErrArtifact, path)
	}
	return wasmByteCode, nil
}
