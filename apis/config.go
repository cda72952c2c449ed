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

package apis

// Randomized is the canonical selection sentinel: pick a prototype uniformly
// at random on every placement attempt.
const Randomized = -1

// Config carries the placement knobs. It is passed by value; Prototypes is
// the only reference field and must be treated as read-only once published
// (use Clone before mutating).
type Config struct {
	// Prototypes is the ordered set of instantiable templates. Order is
	// significant: SelectionIndex addresses into it.
	Prototypes []Prototype `mapstructure:"prototypes" yaml:"prototypes"`

	// SelectionIndex is a fixed index into Prototypes, or any value outside
	// [0, len(Prototypes)) meaning "randomized" (see IsRandomized).
	SelectionIndex int `mapstructure:"selection_index" yaml:"selection_index"`

	// ViewGate restricts placement to points inside the inset viewport.
	ViewGate ViewGate `mapstructure:"view_gate" yaml:"view_gate"`

	// Orientation controls the random yaw added on top of the facing rotation.
	Orientation Orientation `mapstructure:"orientation" yaml:"orientation"`

	// SpawnAsChildren attaches placed instances to the owner transform.
	SpawnAsChildren bool `mapstructure:"spawn_as_children" yaml:"spawn_as_children"`

	// Visualization is an optional prototype spawned with the same pose as
	// every placed instance. Empty means none.
	Visualization Prototype `mapstructure:"visualization" yaml:"visualization,omitempty"`
}

// ViewGate describes the part of the reference viewport that counts as "in view".
type ViewGate struct {
	// Enabled turns the gate on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Periphery is the inset, in viewport units, excluded on every edge.
	// Valid range is [0, 0.5).
	Periphery float64 `mapstructure:"periphery" yaml:"periphery"`
}

// Orientation describes the random yaw applied at placement time.
type Orientation struct {
	// RandomYaw enables the random rotation about world up.
	RandomYaw bool `mapstructure:"random_yaw" yaml:"random_yaw"`
	// YawRange bounds the rotation to [-YawRange, +YawRange] degrees.
	YawRange float64 `mapstructure:"yaw_range" yaml:"yaw_range"`
}

// IsRandomized reports whether index selects a random prototype out of a
// set of count prototypes.
func IsRandomized(index, count int) bool {
	return index < 0 || index >= count
}

// Clone returns a copy of c that does not share the Prototypes backing array.
func (c Config) Clone() Config {
	out := c
	if c.Prototypes != nil {
		out.Prototypes = append([]Prototype(nil), c.Prototypes...)
	}
	return out
}
