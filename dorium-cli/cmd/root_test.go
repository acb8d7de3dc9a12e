package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dorium/dorium-contracts/conf"
	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type CmdTestSuite struct {
	suite.Suite
	dir string
}

func (s *CmdTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	for _, key := range []string{
		conf.KeyMnemonic, conf.KeyRPCEndpoint, conf.KeyTokenArtifact, conf.KeyProposalArtifact,
		conf.KeyStepsFile, conf.KeyLogstashAddr, conf.KeyMetricsTextfile,
	} {
		s.T().Setenv(key, "")
	}
}

func TestCmd(t *testing.T) {
	suite.Run(t, new(CmdTestSuite))
}

func (s *CmdTestSuite) execute(args ...string) (string, error) {
	rootCmd := Cmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(s.dir, ".env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (s *CmdTestSuite) Test_MissingMnemonic() {
	_, err := s.execute("deploy")
	s.ErrorIs(err, conf.ErrMissingEnv)
	s.ErrorContains(err, conf.KeyMnemonic)
}

func (s *CmdTestSuite) Test_MissingArtifacts() {
	s.T().Setenv(conf.KeyMnemonic, testMnemonic)

	_, err := s.execute("upload", "--rpc-endpoint", "http://127.0.0.1:1")
	s.ErrorIs(err, conf.ErrMissingEnv)
	s.ErrorContains(err, conf.KeyTokenArtifact)
}

func (s *CmdTestSuite) Test_DotEnv() {
	envFile := filepath.Join(s.dir, ".env")
	s.Require().NoError(os.WriteFile(envFile, []byte(
		conf.KeyMnemonic+"=\"not a valid mnemonic\"\n"+conf.KeyRPCEndpoint+"=http://127.0.0.1:1\n",
	), 0o600))

	_, err := s.execute("custom")
	s.ErrorIs(err, cosmwasmapi.ErrInvalidMnemonic)
}

func (s *CmdTestSuite) Test_EnvironmentOverridesDotEnv() {
	envFile := filepath.Join(s.dir, ".env")
	s.Require().NoError(os.WriteFile(envFile, []byte(conf.KeyMnemonic+"=\"not a valid mnemonic\"\n"), 0o600))
	s.T().Setenv(conf.KeyMnemonic, testMnemonic)

	_, err := s.execute("instantiate", "--rpc-endpoint", "http://127.0.0.1:1")
	s.ErrorIs(err, cosmwasmapi.ErrConnection)
}

func (s *CmdTestSuite) Test_UnreachableNode() {
	s.T().Setenv(conf.KeyMnemonic, testMnemonic)
	s.T().Setenv(conf.KeyRPCEndpoint, "http://127.0.0.1:1")
	textfile := filepath.Join(s.dir, "dorium.prom")

	_, err := s.execute("query", "token", `{"token_info":{}}`, "--metrics-textfile", textfile)
	s.ErrorIs(err, cosmwasmapi.ErrConnection)
	s.FileExists(textfile)
}

func (s *CmdTestSuite) Test_QueryArgs() {
	_, err := s.execute("query", "token")
	s.Error(err)

	_, err = s.execute("query", "token", "{not json")
	s.ErrorContains(err, "not valid json")
}
