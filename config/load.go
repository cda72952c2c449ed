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

package config

import (
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
)

// EnvPrefix prefixes environment overrides, e.g. PLACER_VIEW_GATE_PERIPHERY.
const EnvPrefix = "PLACER"

// SetDefaults registers DefaultConfig values with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("prototypes", []string{})
	v.SetDefault("selection_index", d.SelectionIndex)
	v.SetDefault("view_gate.enabled", d.ViewGate.Enabled)
	v.SetDefault("view_gate.periphery", d.ViewGate.Periphery)
	v.SetDefault("orientation.random_yaw", d.Orientation.RandomYaw)
	v.SetDefault("orientation.yaw_range", d.Orientation.YawRange)
	v.SetDefault("spawn_as_children", d.SpawnAsChildren)
	v.SetDefault("visualization", "")
}

// NewViper returns a viper instance with defaults and PLACER_* environment
// binding. When path is non-empty the file is read; its type follows the
// extension (yaml, toml, json).
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return v, nil
}

// LoadWithViper decodes and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (apis.Config, error) {
	var cfg apis.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return apis.Config{}, errors.Wrap(err, "decode config")
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// Load reads path (optional), applies environment overrides and defaults,
// and returns a validated configuration.
func Load(path string) (apis.Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return apis.Config{}, err
	}
	return LoadWithViper(v)
}
