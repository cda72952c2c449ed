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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/placer/cmd/placer/commands"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/logger"
)

var rootCmd = &cobra.Command{
	Use:   "placer",
	Short: "placer - place objects on surfaces in front of a viewer",
	Long: `placer - place objects on surfaces in front of a viewer.

Given a surface point and its normal, placer decides whether the point is in
view, picks a prototype, orients the object toward the viewer with a random
yaw and keeps only the latest placement alive.

Available commands:
  place   - Place one object in an in-memory scene
  run     - Place objects from surface hits read on stdin
  config  - Show and validate the configuration
  version - Show version information

Examples:
  placer place --point 0,0,2 --prototype chair
  printf '0 0 2 0 1 0\n' | placer run -p chair -p lamp
  placer config show -c placer.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.InitializeLevel(jsonLogs, logger.VerbosityLevel(verbose)); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(commands.NewPlaceCmd())
	rootCmd.AddCommand(commands.NewRunCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
