package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dorium/dorium-contracts/conf"
	"github.com/dorium/dorium-contracts/deployer"
)

func customCmd(v *viper.Viper) *cobra.Command {
	customCmd := &cobra.Command{
		Use:   "custom",
		Short: "Run follow-up steps against the deployed contracts of the manifest.",
		Long: "Run follow-up steps against the deployed contracts of the manifest. Steps come from\n" +
			"--steps (a .toml or .yaml file); without one the sender's balance and the configured\n" +
			"proposal are read back.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, false, func(s *session) error {
				steps := s.deployer.DefaultSteps()
				if path := s.cfg.Output.StepsFile; path != "" {
					var err error
					if steps, err = deployer.LoadSteps(path); err != nil {
						return err
					}
				}

				runner, err := s.deployer.NewStepRunner()
				if err != nil {
					return err
				}
				results, err := runner.Run(cmd.Context(), steps)
				if err != nil {
					return err
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(results)
			})
		},
	}

	customCmd.Flags().String("steps", "", "steps file ("+conf.KeyStepsFile+")")
	bindFlags(v, customCmd, map[string]string{"steps": conf.KeyStepsFile})
	return customCmd
}
