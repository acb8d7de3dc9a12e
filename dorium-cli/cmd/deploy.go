package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dorium/dorium-contracts/deployer"
)

func deployCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Upload every contract, instantiate them and open the configured proposal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, true, func(s *session) error {
				manifest, err := s.deployer.Deploy(cmd.Context())
				if err != nil {
					return err
				}
				deployer.PrintManifest(cmd.OutOrStdout(), manifest)
				return nil
			})
		},
	}
}

func uploadCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Upload every contract and record the code ids in the manifest.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, true, func(s *session) error {
				manifest, err := s.deployer.UploadAll(cmd.Context())
				if err != nil {
					return err
				}
				deployer.PrintManifest(cmd.OutOrStdout(), manifest)
				return nil
			})
		},
	}
}

func instantiateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate the uploaded contracts of the manifest.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, false, func(s *session) error {
				manifest, err := s.deployer.InstantiateAll(cmd.Context())
				if err != nil {
					return err
				}
				deployer.PrintManifest(cmd.OutOrStdout(), manifest)
				return nil
			})
		},
	}
}
