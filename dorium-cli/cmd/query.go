package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dorium/dorium-contracts/chainio/api"
	"github.com/dorium/dorium-contracts/deployer"
)

func queryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "query <contract> <json>",
		Short: "Smart query a contract by manifest name or address.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("query message is not valid json: %s", args[1])
			}

			return run(cmd.Context(), v, false, func(s *session) error {
				addr := args[0]
				if manifest, err := deployer.LoadManifest(s.cfg.Output.ManifestPath); err == nil {
					if named := manifest.Address(addr); named != "" {
						addr = named
					}
				}

				res, err := api.NewCode(s.client, s.client.Wallet().Address()).Use(addr).QueryRaw(cmd.Context(), []byte(args[1]))
				if err != nil {
					return err
				}

				var out bytes.Buffer
				if err := json.Indent(&out, res, "", "  "); err != nil {
					return err
				}
				out.WriteByte('\n')
				_, err = out.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
}
