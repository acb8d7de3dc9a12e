package deployer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.json")
	m := NewManifest()
	m.Contracts["token"] = &CodeRecord{CodeID: 7, TransactionHash: "H1", ContractAddress: "wasm1abc"}
	m.Contracts["proposal"] = &CodeRecord{CodeID: 8, TransactionHash: "H2"}
	m.DeployedContracts = map[string]string{"Dorium Value Token": "wasm1abc"}

	require.NoError(t, WriteManifest(path, m))
	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestManifest_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.json")
	m := NewManifest()
	m.Contracts["proposal"] = &CodeRecord{CodeID: 8, TransactionHash: "H2"}

	require.NoError(t, WriteManifest(path, m))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"proposal\": {\n\t\t\"codeId\": 8,\n\t\t\"transactionHash\": \"H2\"\n\t}\n}", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestManifest_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.json")
	first := NewManifest()
	first.Contracts["token"] = &CodeRecord{CodeID: 1, TransactionHash: "A", ContractAddress: "wasm1old"}
	require.NoError(t, WriteManifest(path, first))

	second := NewManifest()
	second.Contracts["token"] = &CodeRecord{CodeID: 2, TransactionHash: "B"}
	require.NoError(t, WriteManifest(path, second))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Address("token"))
	assert.Equal(t, uint64(2), loaded.Contracts["token"].CodeID)
}

func TestManifest_ReadsDeployedContracts(t *testing.T) {
	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(`{
		"token": {"codeId": 7, "transactionHash": "H1", "contractAddress": "wasm1abc"},
		"deployed_contracts": {"Dorium Value Token": "wasm1abc"}
	}`), &m))

	assert.Equal(t, []string{"token"}, m.Names())
	assert.Equal(t, "wasm1abc", m.Address("token"))
	assert.Equal(t, "", m.Address("proposal"))
	assert.Equal(t, "wasm1abc", m.DeployedContracts["Dorium Value Token"])
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrManifest)

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"token": 7}`), 0o600))
	_, err = LoadManifest(malformed)
	assert.ErrorIs(t, err, ErrManifest)
}

func TestPrintManifest(t *testing.T) {
	m := NewManifest()
	m.Contracts["token"] = &CodeRecord{CodeID: 7, TransactionHash: "H1", ContractAddress: "wasm1abc"}
	m.Contracts["proposal"] = &CodeRecord{CodeID: 8, TransactionHash: "H2"}

	var buf bytes.Buffer
	PrintManifest(&buf, m)

	out := buf.String()
	assert.Contains(t, out, "wasm1abc")
	assert.Contains(t, out, "H2")
	assert.Less(t, strings.Index(out, "proposal"), strings.Index(out, "token"))
}

func TestReadArtifact(t *testing.T) {
	dir := t.TempDir()
	wasm := filepath.Join(dir, "cw20_base.wasm")
	require.NoError(t, os.WriteFile(wasm, []byte("\x00asm\x01\x00\x00\x00"), 0o600))

	data, err := ReadArtifact(wasm)
	require.NoError(t, err)
	assert.Len(t, data, 8)

	notWasm := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(notWasm, []byte("# cw20"), 0o600))
	_, err = ReadArtifact(notWasm)
	assert.ErrorIs(t, err, ErrArtifact)

	_, err = ReadArtifact(filepath.Join(dir, "missing.wasm"))
	assert.ErrorIs(t, err, ErrArtifact)

	_, err = ReadArtifact("")
	assert.ErrorIs(t, err, ErrArtifact)
}
