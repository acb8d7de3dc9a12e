// Package cmd holds the dorium-cli commands. Every command builds its configuration from the
// environment, an optional .env file and its flags, in that order of precedence.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dorium/dorium-contracts/conf"
)

const app = "dorium-contracts"

func Cmd() *cobra.Command {
	v := viper.New()
	conf.SetDefaults(v)

	var envFile string
	rootCmd := &cobra.Command{
		Use:           "dorium-cli",
		Short:         "Deploy and exercise the Dorium contracts on a CosmWasm chain.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return conf.ReadDotEnv(v, envFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	flags.String("rpc-endpoint", "", "CometBFT rpc endpoint ("+conf.KeyRPCEndpoint+")")
	flags.String("chain-id", "", "chain id, taken from the node when empty ("+conf.KeyChainID+")")
	flags.String("manifest", "", "deployment manifest path ("+conf.KeyManifestPath+")")
	flags.String("log-level", "", "debug, info, warn or error ("+conf.KeyLogLevel+")")
	flags.String("metrics-textfile", "", "write metrics here at exit ("+conf.KeyMetricsTextfile+")")
	bindFlags(v, rootCmd, map[string]string{
		"rpc-endpoint":     conf.KeyRPCEndpoint,
		"chain-id":         conf.KeyChainID,
		"manifest":         conf.KeyManifestPath,
		"log-level":        conf.KeyLogLevel,
		"metrics-textfile": conf.KeyMetricsTextfile,
	})

	rootCmd.AddCommand(deployCmd(v))
	rootCmd.AddCommand(uploadCmd(v))
	rootCmd.AddCommand(instantiateCmd(v))
	rootCmd.AddCommand(customCmd(v))
	rootCmd.AddCommand(queryCmd(v))

	return rootCmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		f := cmd.PersistentFlags().Lookup(flag)
		if f == nil {
			f = cmd.Flags().Lookup(flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}
