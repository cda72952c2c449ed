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
	"math"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
)

const (
	// DefaultSelectionIndex selects a random prototype on every placement.
	DefaultSelectionIndex = apis.Randomized
	// DefaultViewGateEnabled only admits points inside the viewport.
	DefaultViewGateEnabled = true
	// DefaultPeriphery is the inset, in viewport units, not considered in view.
	DefaultPeriphery = 0.15
	// DefaultRandomYaw rotates placed objects by a random yaw.
	DefaultRandomYaw = true
	// DefaultYawRange is the yaw bound in degrees.
	DefaultYawRange = 45.0
	// DefaultSpawnAsChildren leaves placed objects unparented.
	DefaultSpawnAsChildren = false
	// MaxPeriphery is the exclusive upper bound of ViewGate.Periphery. At 0.5
	// the admissible region is empty.
	MaxPeriphery = 0.5
)

var (
	// ErrInvalidPeriphery is returned when the gate periphery is outside [0, 0.5).
	ErrInvalidPeriphery = errors.New("placer(config): periphery must be in [0, 0.5)")
	// ErrInvalidYawRange is returned when the yaw range is negative or not finite.
	ErrInvalidYawRange = errors.New("placer(config): yaw range must be a finite value >= 0")
	// ErrEmptyPrototype is returned when the prototype set contains an empty id.
	ErrEmptyPrototype = errors.New("placer(config): empty prototype id")
)

// NewConfig constructs an apis.Config from the given options.
// The result is not validated; see Validate.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		SelectionIndex: DefaultSelectionIndex,
		ViewGate: apis.ViewGate{
			Enabled:   DefaultViewGateEnabled,
			Periphery: DefaultPeriphery,
		},
		Orientation: apis.Orientation{
			RandomYaw: DefaultRandomYaw,
			YawRange:  DefaultYawRange,
		},
		SpawnAsChildren: DefaultSpawnAsChildren,
	}
}

// Validate reports configuration errors. An empty prototype set is valid
// here; placing with it is rejected at selection time.
func Validate(cfg apis.Config) error {
	p := cfg.ViewGate.Periphery
	if math.IsNaN(p) || p < 0 || p >= MaxPeriphery {
		return errors.WithHintf(ErrInvalidPeriphery, "got %v", p)
	}
	r := cfg.Orientation.YawRange
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return errors.WithHintf(ErrInvalidYawRange, "got %v", r)
	}
	for i, proto := range cfg.Prototypes {
		if proto == "" {
			return errors.Wrapf(ErrEmptyPrototype, "prototypes[%d]", i)
		}
	}
	return nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPrototypes sets the prototype set. The slice is copied.
func WithPrototypes(protos ...apis.Prototype) Option {
	return func(c *apis.Config) {
		c.Prototypes = append([]apis.Prototype(nil), protos...)
	}
}

// WithSelectionIndex sets a fixed selection index.
func WithSelectionIndex(index int) Option {
	return func(c *apis.Config) {
		c.SelectionIndex = index
	}
}

// WithRandomizedSelection resets the selection to the randomized sentinel.
func WithRandomizedSelection() Option {
	return WithSelectionIndex(apis.Randomized)
}

// WithViewGate sets the visibility gate.
func WithViewGate(enabled bool, periphery float64) Option {
	return func(c *apis.Config) {
		c.ViewGate = apis.ViewGate{Enabled: enabled, Periphery: periphery}
	}
}

// WithRandomYaw sets the random yaw policy.
func WithRandomYaw(enabled bool, rangeDeg float64) Option {
	return func(c *apis.Config) {
		c.Orientation = apis.Orientation{RandomYaw: enabled, YawRange: rangeDeg}
	}
}

// WithSpawnAsChildren sets whether placed objects are parented to the owner.
func WithSpawnAsChildren(children bool) Option {
	return func(c *apis.Config) {
		c.SpawnAsChildren = children
	}
}

// WithVisualization sets the visualization prototype; empty disables it.
func WithVisualization(p apis.Prototype) Option {
	return func(c *apis.Config) {
		c.Visualization = p
	}
}
