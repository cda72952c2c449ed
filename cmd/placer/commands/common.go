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
	"encoding/json"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/placer"
	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/config"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/scene"
	"dirpx.dev/placer/utils/geom"
)

// sceneFlags describe the in-memory scene the CLI places into.
type sceneFlags struct {
	configPath string
	prototypes []string
	camera     string
	lookAt     string
	seed       uint64
}

func (f *sceneFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Configuration file (yaml, toml or json)")
	cmd.Flags().StringSliceVarP(&f.prototypes, "prototype", "p", nil, "Prototype ids, overriding the configuration")
	cmd.Flags().StringVar(&f.camera, "camera", "0,1.6,-3", "Camera position x,y,z")
	cmd.Flags().StringVar(&f.lookAt, "look-at", "", "Point x,y,z the camera looks at (default: along +Z)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed; 0 draws a fresh one")
}

// loadConfig loads the configuration and applies flag overrides.
func (f *sceneFlags) loadConfig() (apis.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return apis.Config{}, err
	}
	return f.override(cfg)
}

func (f *sceneFlags) override(cfg apis.Config) (apis.Config, error) {
	if len(f.prototypes) > 0 {
		cfg.Prototypes = nil
		for _, p := range f.prototypes {
			cfg.Prototypes = append(cfg.Prototypes, apis.Prototype(p))
		}
	}
	return cfg, config.Validate(cfg)
}

// world is an in-memory scene with a main camera and an owner node.
type world struct {
	scene  *scene.Scene
	camera *scene.Camera
	owner  *scene.Node
}

func (f *sceneFlags) newWorld() (*world, error) {
	pos, err := parseVec3(f.camera)
	if err != nil {
		return nil, errors.Wrap(err, "--camera")
	}
	cam := scene.NewCamera(pos)
	if f.lookAt != "" {
		target, err := parseVec3(f.lookAt)
		if err != nil {
			return nil, errors.Wrap(err, "--look-at")
		}
		cam.LookAt(target)
	}
	sc := scene.New()
	sc.SetMain(cam)
	return &world{scene: sc, camera: cam, owner: sc.NewRoot("owner")}, nil
}

// options returns the placer options for w.
func (f *sceneFlags) options(w *world) []placer.Option {
	opts := []placer.Option{
		placer.WithViewpointResolver(w.scene.Main),
		placer.WithOwner(w.owner),
	}
	if f.seed != 0 {
		opts = append(opts, placer.WithRand(rand.New(rand.NewPCG(f.seed, f.seed))))
	}
	return opts
}

// parseVec3 parses "x,y,z" or "x y z".
func parseVec3(s string) (mgl64.Vec3, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 3 {
		return mgl64.Vec3{}, errors.Newf("expected 3 components, got %q", s)
	}
	var v mgl64.Vec3
	for i, fld := range fields {
		x, err := strconv.ParseFloat(fld, 64)
		if err != nil {
			return mgl64.Vec3{}, errors.Wrapf(err, "component %d", i)
		}
		v[i] = x
	}
	return v, nil
}

// instanceView is the printed form of a placed instance.
type instanceView struct {
	ID            string     `json:"id" yaml:"id"`
	Prototype     string     `json:"prototype" yaml:"prototype"`
	Visualization string     `json:"visualization,omitempty" yaml:"visualization,omitempty"`
	Position      [3]float64 `json:"position" yaml:"position,flow"`
	Rotation      [4]float64 `json:"rotation" yaml:"rotation,flow"`
	Forward       [3]float64 `json:"forward" yaml:"forward,flow"`
	Yaw           float64    `json:"yaw" yaml:"yaw"`
}

// newInstanceView describes inst; Yaw is the heading relative to facing
// the viewer straight on.
func newInstanceView(inst apis.Instance, viewer mgl64.Vec3) *instanceView {
	pos := inst.Primary.Position()
	rot := inst.Primary.Rotation()
	fwd := rot.Rotate(geom.Forward)
	v := &instanceView{
		ID:        inst.ID,
		Prototype: string(inst.Prototype),
		Position:  pos,
		Rotation:  [4]float64{rot.W, rot.V[0], rot.V[1], rot.V[2]},
		Forward:   fwd,
		Yaw:       geom.SignedYaw(viewer.Sub(pos), fwd),
	}
	if inst.Visualization != nil {
		v.Visualization = inst.Visualization.ID()
	}
	return v
}

// write prints v in format (yaml or json).
func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return errors.Newf("unsupported format: %s (supported: yaml, json)", format)
	}
}
