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

package resolver_test

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/resolver"
	"dirpx.dev/placer/scene"
	"dirpx.dev/placer/strategy"
)

// constStrategy always handles with a fixed answer.
type constStrategy struct{ sel int }

func (c constStrategy) TrySelect(int, int) (int, bool) { return c.sel, true }

// countingViewpoint counts how often it was consulted.
type countingViewpoint struct {
	calls int
	vp    apis.Viewpoint
}

func (c *countingViewpoint) TryViewpoint() (apis.Viewpoint, bool) {
	c.calls++
	return c.vp, c.vp != nil
}

func TestSelector_ChainOrder(t *testing.T) {
	sel := resolver.NewSelector(
		nil,
		strategy.NewFixedStrategy(),
		strategy.NewRandomStrategy(rand.New(rand.NewPCG(3, 4))),
	)

	if got, ok := sel.Select(1, 2); !ok || got != 1 {
		t.Fatalf("Select(1,2) = (%d,%v), want (1,true)", got, ok)
	}
	for i := 0; i < 100; i++ {
		got, ok := sel.Select(apis.Randomized, 2)
		if !ok || got < 0 || got >= 2 {
			t.Fatalf("Select(-1,2) = (%d,%v), want index in [0,2)", got, ok)
		}
	}
	if _, ok := sel.Select(apis.Randomized, 0); ok {
		t.Fatal("Select on empty set: want ok=false")
	}
}

func TestSelector_RejectsOutOfRangeAnswer(t *testing.T) {
	sel := resolver.NewSelector(constStrategy{sel: 5})
	if _, ok := sel.Select(0, 3); ok {
		t.Fatal("Select: out-of-range answer must be rejected")
	}
	if _, ok := resolver.NewSelector().Select(0, 3); ok {
		t.Fatal("empty chain: want ok=false")
	}
}

func TestViewpoint_ResolvesOnceAndCaches(t *testing.T) {
	cam := scene.NewCamera(mgl64.Vec3{})
	lazy := &countingViewpoint{}
	res := resolver.NewViewpoint(strategy.NewFixedViewpoint(nil), lazy)

	if _, err := res.Resolve(); !errors.Is(err, resolver.ErrNoViewpoint) {
		t.Fatalf("Resolve() error = %v, want ErrNoViewpoint", err)
	}
	if len(errors.GetAllHints(errorsOf(res))) == 0 {
		t.Fatal("ErrNoViewpoint should carry a hint")
	}

	lazy.vp = cam
	for i := 0; i < 3; i++ {
		vp, err := res.Resolve()
		if err != nil || vp != cam {
			t.Fatalf("Resolve() = (%v,%v), want (cam,nil)", vp, err)
		}
	}
	// Two misses, one hit, then cached.
	if lazy.calls != 3 {
		t.Fatalf("lazy consulted %d times, want 3", lazy.calls)
	}

	// Later changes to the source do not replace the cached viewpoint.
	lazy.vp = scene.NewCamera(mgl64.Vec3{1, 1, 1})
	if vp, _ := res.Resolve(); vp != cam {
		t.Fatal("cached viewpoint was replaced")
	}
}

func TestViewpoint_ExplicitWins(t *testing.T) {
	explicit := scene.NewCamera(mgl64.Vec3{})
	lazy := &countingViewpoint{vp: scene.NewCamera(mgl64.Vec3{0, 9, 0})}
	res := resolver.NewViewpoint(strategy.NewFixedViewpoint(explicit), lazy)

	vp, err := res.Resolve()
	if err != nil || vp != explicit {
		t.Fatalf("Resolve() = (%v,%v), want explicit", vp, err)
	}
	if lazy.calls != 0 {
		t.Fatalf("lazy consulted %d times, want 0", lazy.calls)
	}
}

func errorsOf(res apis.ViewpointResolver) error {
	_, err := res.Resolve()
	return err
}
