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
	"github.com/spf13/cobra"

	"dirpx.dev/placer"
	"dirpx.dev/placer/errors"
)

// placeResult is the output of the place command.
type placeResult struct {
	Placed   bool          `json:"placed" yaml:"placed"`
	Instance *instanceView `json:"instance,omitempty" yaml:"instance,omitempty"`
}

// NewPlaceCmd returns the place command.
func NewPlaceCmd() *cobra.Command {
	var (
		sf     sceneFlags
		point  string
		normal string
		format string
	)
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place one object in an in-memory scene",
		Long: `Place one object at a surface point seen from a camera and print the result.

The scene is empty except for the camera. The configuration decides whether
the point is admitted, which prototype is used and how it is oriented.

Examples:
  placer place --point 0,0,2 --prototype chair
  placer place --point 1,0,4 --normal 0,1,0 --camera 0,1.6,-3 --seed 7
  placer place -c placer.yaml --point 0,0,2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pt, err := parseVec3(point)
			if err != nil {
				return errors.Wrap(err, "--point")
			}
			n, err := parseVec3(normal)
			if err != nil {
				return errors.Wrap(err, "--normal")
			}
			cfg, err := sf.loadConfig()
			if err != nil {
				return err
			}
			w, err := sf.newWorld()
			if err != nil {
				return err
			}
			p, err := placer.New(w.scene, cfg, sf.options(w)...)
			if err != nil {
				return err
			}

			ok, err := p.TryPlace(cmd.Context(), pt, n)
			if err != nil {
				return err
			}
			res := placeResult{Placed: ok}
			if inst, found := p.Current(); ok && found {
				res.Instance = newInstanceView(inst, w.camera.Position())
			}
			return write(cmd.OutOrStdout(), format, res)
		},
	}
	sf.bind(cmd)
	cmd.Flags().StringVar(&point, "point", "", "Surface point x,y,z")
	cmd.Flags().StringVar(&normal, "normal", "0,1,0", "Surface normal x,y,z")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	_ = cmd.MarkFlagRequired("point")
	return cmd
}
