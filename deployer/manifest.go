package deployer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	ErrManifest        = errors.New("cannot read deployment manifest")
	ErrCodeNotUploaded = errors.New("no uploaded code for contract")
)

const deployedContractsKey = "deployed_contracts"

// CodeRecord is one contract of the manifest. ContractAddress is only set once the code has been
// instantiated.
type CodeRecord struct {
	CodeID          uint64 `json:"codeId"`
	TransactionHash string `json:"transactionHash"`
	ContractAddress string `json:"contractAddress,omitempty"`
}

// Manifest is the contracts.json file: one CodeRecord per logical contract name plus an optional
// deployed_contracts map from label to address.
type Manifest struct {
	Contracts         map[string]*CodeRecord
	DeployedContracts map[string]string
}

func NewManifest() *Manifest {
	return &Manifest{Contracts: map[string]*CodeRecord{}}
}

func (m *Manifest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Contracts)+1)
	for name, record := range m.Contracts {
		out[name] = record
	}
	if len(m.DeployedContracts) > 0 {
		out[deployedContractsKey] = m.DeployedContracts
	}
	return json.Marshal(out)
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Contracts = make(map[string]*CodeRecord, len(raw))
	m.DeployedContracts = nil
	for name, value := range raw {
		if name == deployedContractsKey {
			if err := json.Unmarshal(value, &m.DeployedContracts); err != nil {
				return fmt.Errorf("%s: %w", deployedContractsKey, err)
			}
			continue
		}
		var record CodeRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		m.Contracts[name] = &record
	}
	return nil
}

// Names returns the contract names in lexical order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Contracts))
	for name := range m.Contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Address returns the instance address of a contract, or "" when it has none.
func (m *Manifest) Address(name string) string {
	if record, ok := m.Contracts[name]; ok {
		return record.ContractAddress
	}
	return ""
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	m := NewManifest()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, path, err)
	}
	return m, nil
}

// WriteManifest replaces the file at path with m, tab indented. The content is written to a
// temporary file in the same directory and renamed over path.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
