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

package resolver

import (
	"sync"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
)

// ErrNoViewpoint is returned when no strategy can supply a reference viewpoint.
var ErrNoViewpoint = errors.New("placer(resolver): no reference viewpoint available")

// NewSelector constructs an apis.Selector that tries the given strategies in
// order. Nil strategies are ignored.
func NewSelector(strategies ...apis.SelectionStrategy) apis.Selector {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.SelectionStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return selectorChain{strats: out}
}

// selectorChain is an immutable, order-preserving selector.
type selectorChain struct {
	strats []apis.SelectionStrategy
}

// Select runs strategies in order until one handles the index. The result
// is always a valid index into a set of count elements when ok is true.
func (c selectorChain) Select(index, count int) (int, bool) {
	for _, s := range c.strats {
		if sel, ok := s.TrySelect(index, count); ok {
			if sel < 0 || sel >= count {
				return 0, false
			}
			return sel, true
		}
	}
	return 0, false
}

// NewViewpoint constructs an apis.ViewpointResolver that tries the given
// strategies in order and caches the first viewpoint found. Until one is
// found every Resolve consults the strategies again. Nil strategies are
// ignored.
func NewViewpoint(strategies ...apis.ViewpointStrategy) apis.ViewpointResolver {
	out := make([]apis.ViewpointStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &viewpointChain{strats: out}
}

// viewpointChain resolves once and caches.
type viewpointChain struct {
	strats []apis.ViewpointStrategy
	// mu guards cached.
	mu     sync.Mutex
	cached apis.Viewpoint
}

// Resolve returns the cached viewpoint or resolves it.
func (c *viewpointChain) Resolve() (apis.Viewpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return c.cached, nil
	}
	for _, s := range c.strats {
		if vp, ok := s.TryViewpoint(); ok {
			c.cached = vp
			return vp, nil
		}
	}
	return nil, errors.WithHint(ErrNoViewpoint, "assign a viewpoint or a main viewpoint resolver")
}
