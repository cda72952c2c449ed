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

// SelectionStrategy is a pluggable prototype selection step. A Selector
// chains strategies in order (e.g., Fixed -> Random).
type SelectionStrategy interface {
	// TrySelect resolves index against a set of count prototypes.
	// It returns (selected, true) if handled; otherwise (0, false) to fall through.
	TrySelect(index, count int) (selected int, handled bool)
}

// ViewpointStrategy is one source of the reference viewpoint.
type ViewpointStrategy interface {
	// TryViewpoint returns (vp, true) when this source can supply a viewpoint.
	TryViewpoint() (vp Viewpoint, handled bool)
}

// Rand is the random source used for selection and yaw. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}
