package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/epinet/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show epinet configuration",
		Long: `Print configuration as YAML.

Examples:
  epinet config default > scenario.yaml        # start from the built-in scenario
  epinet config show -c scenario.yaml          # effective config after env overrides`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "default",
			Short: "Print the built-in configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfig(cmd, config.Default())
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				return showConfig(cmd, cfg)
			},
		},
	)

	return cmd
}

func showConfig(cmd *cobra.Command, cfg *config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
