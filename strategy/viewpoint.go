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

// NewFixedViewpoint creates an apis.ViewpointStrategy returning vp.
func NewFixedViewpoint(vp apis.Viewpoint) apis.ViewpointStrategy {
	return fixedViewpoint{vp: vp}
}

// fixedViewpoint is an explicitly assigned reference viewpoint.
type fixedViewpoint struct {
	vp apis.Viewpoint
}

// Ensure fixedViewpoint implements apis.ViewpointStrategy.
var _ apis.ViewpointStrategy = fixedViewpoint{}

// TryViewpoint returns the assigned viewpoint, if any.
func (s fixedViewpoint) TryViewpoint() (apis.Viewpoint, bool) {
	if s.vp == nil {
		return nil, false
	}
	return s.vp, true
}

// NewLazyViewpoint creates an apis.ViewpointStrategy that asks fn, e.g. a
// scene's main camera lookup, every time it is consulted.
func NewLazyViewpoint(fn func() (apis.Viewpoint, bool)) apis.ViewpointStrategy {
	return lazyViewpoint{fn: fn}
}

// lazyViewpoint defers to a resolver callback.
type lazyViewpoint struct {
	fn func() (apis.Viewpoint, bool)
}

// Ensure lazyViewpoint implements apis.ViewpointStrategy.
var _ apis.ViewpointStrategy = lazyViewpoint{}

// TryViewpoint calls the callback; a nil viewpoint counts as unresolved.
func (s lazyViewpoint) TryViewpoint() (apis.Viewpoint, bool) {
	if s.fn == nil {
		return nil, false
	}
	vp, ok := s.fn()
	if !ok || vp == nil {
		return nil, false
	}
	return vp, true
}
