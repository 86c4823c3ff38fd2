package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epinet/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration without running it",
		Long: `Load the configuration, build every disease model and check every
network definition. Exits non-zero on the first problem.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"valid":    true,
					"diseases": len(cfg.Diseases),
					"networks": len(cfg.Networks),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d disease(s), %d network(s)\n", len(cfg.Diseases), len(cfg.Networks))
			for i := range cfg.Diseases {
				describeDisease(cmd, &cfg.Diseases[i])
			}
			return nil
		},
	}
}

func describeDisease(cmd *cobra.Command, d *config.DiseaseConfig) {
	m, err := d.Model()
	if err != nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d states, %d age group(s)\n", m.Name(), m.States(), m.Groups())
}
