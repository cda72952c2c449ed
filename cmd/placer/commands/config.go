/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCmd returns the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and validate the placer configuration",
		Long: `Show and validate the placer configuration.

Configuration sources (in order of precedence):
1. Environment variables (PLACER_* prefix, e.g. PLACER_VIEW_GATE_PERIPHERY)
2. Configuration file (--config)
3. Default values

Examples:
  placer config show
  placer config show -c placer.yaml --format json
  placer config validate -c placer.yaml`,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		sf     sceneFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sf.loadConfig()
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), format, cfg)
		},
	}
	sf.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var sf sceneFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sf.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid (%d prototype(s))\n", len(cfg.Prototypes))
			return nil
		},
	}
	sf.bind(cmd)
	return cmd
}
