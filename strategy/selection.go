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

package strategy

import (
	"dirpx.dev/placer/apis"
)

// NewFixedStrategy creates an apis.SelectionStrategy that accepts a fixed
// index when it addresses an element of the set.
func NewFixedStrategy() apis.SelectionStrategy {
	return fixedStrategy{}
}

// fixedStrategy is the fast path: an in-range index is used as is.
type fixedStrategy struct{}

// Ensure fixedStrategy implements apis.SelectionStrategy.
var _ apis.SelectionStrategy = fixedStrategy{}

// TrySelect handles index when it lies in [0, count).
func (fixedStrategy) TrySelect(index, count int) (int, bool) {
	if apis.IsRandomized(index, count) {
		return 0, false
	}
	return index, true
}

// NewRandomStrategy creates an apis.SelectionStrategy that draws a uniform
// index in [0, count) for the randomized sentinel. A nil rng disables it.
func NewRandomStrategy(rng apis.Rand) apis.SelectionStrategy {
	return &randomStrategy{rng: rng}
}

// randomStrategy interprets any out-of-range index as "randomized".
type randomStrategy struct {
	rng apis.Rand
}

// Ensure randomStrategy implements apis.SelectionStrategy.
var _ apis.SelectionStrategy = (*randomStrategy)(nil)

// TrySelect draws a random index when index is the sentinel and the set is
// non-empty.
func (s *randomStrategy) TrySelect(index, count int) (int, bool) {
	if s.rng == nil || count <= 0 || !apis.IsRandomized(index, count) {
		return 0, false
	}
	return s.rng.IntN(count), true
}
