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

package placer_test

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dirpx.dev/placer"
	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/builder"
	"dirpx.dev/placer/config"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/scene"
	"dirpx.dev/placer/utils/geom"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ---------------------- Test doubles ----------------------

// fakeView is a viewpoint projecting every point to vpt.
type fakeView struct {
	pos mgl64.Vec3
	vpt apis.ViewportPoint
}

func (v *fakeView) Position() mgl64.Vec3                           { return v.pos }
func (v *fakeView) WorldToViewport(mgl64.Vec3) apis.ViewportPoint { return v.vpt }

func centered() *fakeView {
	return &fakeView{pos: mgl64.Vec3{0, 1, -5}, vpt: apis.ViewportPoint{U: 0.5, V: 0.5, Depth: 5}}
}

// stubRand returns fixed draws.
type stubRand struct {
	i int
	f float64
}

func (r *stubRand) IntN(n int) int   { return r.i % n }
func (r *stubRand) Float64() float64 { return r.f }

// outcomes records placement attempts.
type outcomes struct {
	mu  sync.Mutex
	got []apis.Outcome
}

func (o *outcomes) Attempt(out apis.Outcome, _ time.Duration) {
	o.mu.Lock()
	o.got = append(o.got, out)
	o.mu.Unlock()
}
func (o *outcomes) Cleared(int) {}
func (o *outcomes) Live(int)    {}

// nilRegistryBuilder breaks BuildRegistry.
type nilRegistryBuilder struct{ apis.Builder }

func (nilRegistryBuilder) BuildRegistry(apis.Config, apis.Instantiator) apis.Registry { return nil }

// plain is a configuration without gate and yaw.
func plain(protos ...apis.Prototype) apis.Config {
	return config.NewConfig(
		config.WithPrototypes(protos...),
		config.WithViewGate(false, 0),
		config.WithRandomYaw(false, 0),
	)
}

func newPlacer(t *testing.T, sc *scene.Scene, cfg apis.Config, opts ...placer.Option) *placer.Placer {
	t.Helper()
	p, err := placer.New(sc, cfg, opts...)
	require.NoError(t, err)
	return p
}

var floor = mgl64.Vec3{0, 1, 0}

// vecNear compares component-wise against an absolute tolerance.
func vecNear(t *testing.T, want, got mgl64.Vec3) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], 1e-9)
}

// ---------------------- Construction ----------------------

func TestNew_Errors(t *testing.T) {
	_, err := placer.New(nil, plain("a"))
	assert.ErrorIs(t, err, placer.ErrNilInstantiator)

	bad := plain("a")
	bad.ViewGate.Periphery = 0.5
	_, err = placer.New(scene.New(), bad)
	assert.True(t, errors.Is(err, config.ErrInvalidPeriphery))

	_, err = placer.New(scene.New(), plain("a"),
		placer.WithBuilder(nilRegistryBuilder{builder.New(nil, nil)}))
	assert.ErrorIs(t, err, placer.ErrNilRegistry)
}

// ---------------------- Replace before place ----------------------

func TestTryPlace_ReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	sc := scene.New()
	view := centered()
	p := newPlacer(t, sc, plain("a"), placer.WithViewpoint(view))

	cleared := 0
	p.OnAllCleared(func() { cleared++ })

	ok, err := p.TryPlace(ctx, mgl64.Vec3{1, 0, 0}, floor)
	require.NoError(t, err)
	require.True(t, ok)
	first, _ := p.Current()

	ok, err = p.TryPlace(ctx, mgl64.Vec3{2, 0, 0}, floor)
	require.NoError(t, err)
	require.True(t, ok)
	second, _ := p.Current()

	assert.False(t, first.Primary.Alive())
	assert.True(t, second.Primary.Alive())
	assert.Len(t, p.All(), 1)
	assert.Equal(t, 1, sc.Count())
	assert.Equal(t, 2, cleared)

	// A rejected attempt still clears.
	cfg := p.Config()
	cfg.ViewGate = apis.ViewGate{Enabled: true}
	require.NoError(t, p.SetConfig(cfg))
	view.vpt.Depth = -1
	ok, err = p.TryPlace(ctx, mgl64.Vec3{3, 0, 0}, floor)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, second.Primary.Alive())
	assert.Zero(t, sc.Count())
	_, has := p.Current()
	assert.False(t, has)
	assert.Equal(t, 3, cleared)
}

// ---------------------- Selection ----------------------

func TestTryPlace_RandomizedSelectionCoversSet(t *testing.T) {
	ctx := context.Background()
	protos := []apis.Prototype{"a", "b", "c"}
	p := newPlacer(t, scene.New(), plain(protos...),
		placer.WithViewpoint(centered()),
		placer.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.True(t, p.IsSelectionRandomized())

	seen := map[apis.Prototype]int{}
	for i := 0; i < 300; i++ {
		ok, err := p.TryPlace(ctx, mgl64.Vec3{}, floor)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := p.Current()
		require.Contains(t, protos, cur.Prototype)
		seen[cur.Prototype]++
	}
	assert.Len(t, seen, len(protos))
}

func TestTryPlace_FixedSelection(t *testing.T) {
	ctx := context.Background()
	cfg := plain("a", "b", "c")
	cfg.SelectionIndex = 2
	p := newPlacer(t, scene.New(), cfg, placer.WithViewpoint(centered()), placer.WithRand(&stubRand{i: 0}))

	for i := 0; i < 3; i++ {
		ok, err := p.TryPlace(ctx, mgl64.Vec3{}, floor)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := p.Current()
		assert.Equal(t, apis.Prototype("c"), cur.Prototype)
	}
}

func TestTryPlace_OutOfRangeIndexRandomizes(t *testing.T) {
	cfg := plain("a", "b", "c")
	cfg.SelectionIndex = 7
	p := newPlacer(t, scene.New(), cfg, placer.WithViewpoint(centered()), placer.WithRand(&stubRand{i: 1}))
	assert.True(t, p.IsSelectionRandomized())

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	require.NoError(t, err)
	require.True(t, ok)
	cur, _ := p.Current()
	assert.Equal(t, apis.Prototype("b"), cur.Prototype)
}

func TestTryPlace_EmptyPrototypeSet(t *testing.T) {
	rec := &outcomes{}
	sc := scene.New()
	p := newPlacer(t, sc, plain(), placer.WithViewpoint(centered()), placer.WithRecorder(rec))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, sc.Count())
	assert.Equal(t, []apis.Outcome{apis.OutcomeNoPrototype}, rec.got)
}

func TestSelectionCycling(t *testing.T) {
	p := newPlacer(t, scene.New(), plain("a", "b", "c"))

	assert.Equal(t, 0, p.SelectNext())
	assert.Equal(t, 1, p.SelectNext())
	assert.Equal(t, 2, p.SelectNext())
	assert.Equal(t, 0, p.SelectNext())
	assert.Equal(t, 2, p.SelectPrevious())
	assert.False(t, p.IsSelectionRandomized())

	p.RandomizeSelection()
	assert.True(t, p.IsSelectionRandomized())
	assert.Equal(t, apis.Randomized, p.Config().SelectionIndex)
	assert.Equal(t, 2, p.SelectPrevious())

	p.SetSelectionIndex(1)
	assert.Equal(t, 1, p.Config().SelectionIndex)

	empty := newPlacer(t, scene.New(), plain())
	assert.Equal(t, apis.Randomized, empty.SelectNext())
	assert.Equal(t, apis.Randomized, empty.SelectPrevious())
}

// ---------------------- View gate ----------------------

func TestTryPlace_ViewGateBoundary(t *testing.T) {
	const periphery = 0.15
	tests := []struct {
		name string
		vpt  apis.ViewportPoint
		want bool
	}{
		{"center", apis.ViewportPoint{U: 0.5, V: 0.5, Depth: 3}, true},
		{"low edge inclusive", apis.ViewportPoint{U: periphery, V: periphery, Depth: 3}, true},
		{"high edge inclusive", apis.ViewportPoint{U: 1 - periphery, V: 1 - periphery, Depth: 3}, true},
		{"left of inset", apis.ViewportPoint{U: periphery - 1e-4, V: 0.5, Depth: 3}, false},
		{"right of inset", apis.ViewportPoint{U: 1 - periphery + 1e-4, V: 0.5, Depth: 3}, false},
		{"below inset", apis.ViewportPoint{U: 0.5, V: periphery - 1e-4, Depth: 3}, false},
		{"above inset", apis.ViewportPoint{U: 0.5, V: 1 - periphery + 1e-4, Depth: 3}, false},
		{"camera plane", apis.ViewportPoint{U: 0.5, V: 0.5, Depth: 0}, true},
		{"behind", apis.ViewportPoint{U: 0.5, V: 0.5, Depth: -0.01}, false},
		{"nan", apis.ViewportPoint{U: math.NaN(), V: 0.5, Depth: 3}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &outcomes{}
			view := centered()
			view.vpt = tc.vpt
			cfg := plain("a")
			cfg.ViewGate = apis.ViewGate{Enabled: true, Periphery: periphery}
			p := newPlacer(t, scene.New(), cfg, placer.WithViewpoint(view), placer.WithRecorder(rec))

			ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
			want := apis.OutcomeOutOfView
			if tc.want {
				want = apis.OutcomePlaced
			}
			assert.Equal(t, []apis.Outcome{want}, rec.got)
		})
	}
}

func TestTryPlace_ViewGateDisabled(t *testing.T) {
	view := centered()
	view.vpt = apis.ViewportPoint{U: -4, V: 9, Depth: -2}
	p := newPlacer(t, scene.New(), plain("a"), placer.WithViewpoint(view))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	require.NoError(t, err)
	assert.True(t, ok)
}

// ---------------------- Orientation ----------------------

func TestTryPlace_FacesViewer(t *testing.T) {
	view := &fakeView{pos: mgl64.Vec3{3, 2, 0}}
	p := newPlacer(t, scene.New(), plain("a"), placer.WithViewpoint(view))

	point := mgl64.Vec3{0, 0, 0}
	ok, err := p.TryPlace(context.Background(), point, floor)
	require.NoError(t, err)
	require.True(t, ok)

	cur, _ := p.Current()
	rot := cur.Primary.Rotation()
	vecNear(t, mgl64.Vec3{1, 0, 0}, rot.Rotate(geom.Forward))
	vecNear(t, floor, rot.Rotate(geom.Up))
	assert.Equal(t, point, cur.Primary.Position())
}

func TestTryPlace_ViewerOnNormalLine(t *testing.T) {
	view := &fakeView{pos: mgl64.Vec3{0, 5, 0}}
	p := newPlacer(t, scene.New(), plain("a"), placer.WithViewpoint(view))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	require.NoError(t, err)
	require.True(t, ok)

	cur, _ := p.Current()
	vecNear(t, geom.Forward, cur.Primary.Rotation().Rotate(geom.Forward))
}

func TestTryPlace_ZeroNormal(t *testing.T) {
	rec := &outcomes{}
	sc := scene.New()
	p := newPlacer(t, sc, plain("a"), placer.WithViewpoint(centered()), placer.WithRecorder(rec))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, mgl64.Vec3{})
	assert.False(t, ok)
	assert.True(t, errors.Is(err, placer.ErrDegenerateNormal))
	assert.True(t, errors.Is(err, geom.ErrZeroNormal))
	assert.Zero(t, sc.Count())
	assert.Equal(t, []apis.Outcome{apis.OutcomeFailed}, rec.got)
}

func TestTryPlace_YawBounds(t *testing.T) {
	const yawRange = 45.0
	tests := []struct {
		draw float64
		want float64
	}{
		{0, -yawRange},
		{0.5, 0},
		{0.75, yawRange / 2},
		{0.999999, yawRange},
	}
	view := &fakeView{pos: mgl64.Vec3{0, 1, -5}}
	base := mgl64.Vec3{0, 0, -1}
	for _, tc := range tests {
		cfg := plain("a")
		cfg.Orientation = apis.Orientation{RandomYaw: true, YawRange: yawRange}
		p := newPlacer(t, scene.New(), cfg, placer.WithViewpoint(view), placer.WithRand(&stubRand{f: tc.draw}))

		ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := p.Current()
		got := geom.SignedYaw(base, cur.Primary.Rotation().Rotate(geom.Forward))
		assert.InDelta(t, tc.want, got, 1e-3, "draw %v", tc.draw)
	}
}

func TestTryPlace_YawWithinRange(t *testing.T) {
	const yawRange = 30.0
	cfg := plain("a")
	cfg.Orientation = apis.Orientation{RandomYaw: true, YawRange: yawRange}
	view := &fakeView{pos: mgl64.Vec3{0, 1, -5}}
	p := newPlacer(t, scene.New(), cfg,
		placer.WithViewpoint(view),
		placer.WithRand(rand.New(rand.NewPCG(7, 7))))

	base := mgl64.Vec3{0, 0, -1}
	for i := 0; i < 200; i++ {
		ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := p.Current()
		rot := cur.Primary.Rotation()
		yaw := geom.SignedYaw(base, rot.Rotate(geom.Forward))
		require.LessOrEqual(t, math.Abs(yaw), yawRange+1e-6)
		if !vecNear(t, floor, rot.Rotate(geom.Up)) {
			t.FailNow()
		}
	}
}

// ---------------------- Failures ----------------------

func TestTryPlace_NoViewpoint(t *testing.T) {
	sc := scene.New()
	p := newPlacer(t, sc, plain("a"), placer.WithViewpointResolver(sc.Main))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, placer.ErrNoViewpoint))

	// Resolved once the scene gets a main camera.
	sc.SetMain(centered())
	ok, err = p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTryPlace_InstantiateFailure(t *testing.T) {
	boom := errors.New("out of memory")
	sc := scene.New()
	sc.InstantiateHook = func(apis.Prototype) error { return boom }
	p := newPlacer(t, sc, plain("a"), placer.WithViewpoint(centered()))

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, p.All())
}

func TestTryPlace_VisualizationFailureDestroysPrimary(t *testing.T) {
	boom := errors.New("missing asset")
	sc := scene.New()
	sc.InstantiateHook = func(proto apis.Prototype) error {
		if proto == "marker" {
			return boom
		}
		return nil
	}
	cfg := plain("a")
	cfg.Visualization = "marker"
	placed := 0
	p := newPlacer(t, sc, cfg, placer.WithViewpoint(centered()))
	p.OnPlaced(func(apis.Instance) { placed++ })

	ok, err := p.TryPlace(context.Background(), mgl64.Vec3{}, floor)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, boom))
	assert.Zero(t, sc.Count())
	assert.Empty(t, p.All())
	assert.Zero(t, placed)
}

func TestTryPlace_TeardownFailureIsReported(t *testing.T) {
	ctx := context.Background()
	sc := scene.New()
	p := newPlacer(t, sc, plain("a"), placer.WithViewpoint(centered()))

	ok, err := p.TryPlace(ctx, mgl64.Vec3{}, floor)
	require.NoError(t, err)
	require.True(t, ok)

	boom := errors.New("locked")
	sc.DestroyHook = func(apis.Handle) error { return boom }
	ok, err = p.TryPlace(ctx, mgl64.Vec3{}, floor)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "locked")
	assert.Empty(t, p.All())
}

// ---------------------- Configuration ----------------------

func TestSetConfig(t *testing.T) {
	p := newPlacer(t, scene.New(), plain("a"))

	bad := plain("b")
	bad.Orientation.YawRange = -1
	err := p.SetConfig(bad)
	assert.True(t, errors.Is(err, config.ErrInvalidYawRange))
	assert.Equal(t, []apis.Prototype{"a"}, p.Config().Prototypes)

	require.NoError(t, p.SetConfig(plain("b", "c")))
	assert.Equal(t, []apis.Prototype{"b", "c"}, p.Config().Prototypes)

	// Config returns a copy.
	cfg := p.Config()
	cfg.Prototypes[0] = "z"
	assert.Equal(t, apis.Prototype("b"), p.Config().Prototypes[0])
}

func TestClearAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	sc := scene.New()
	p := newPlacer(t, sc, plain("a"), placer.WithViewpoint(centered()))

	cleared := 0
	cancel := p.OnAllCleared(func() { cleared++ })
	defer cancel()

	_, err := p.TryPlace(ctx, mgl64.Vec3{}, floor)
	require.NoError(t, err)

	require.NoError(t, p.ClearAll(ctx))
	require.NoError(t, p.ClearAll(ctx))
	assert.Zero(t, sc.Count())
	assert.Empty(t, p.All())
	// One clear inside TryPlace plus two explicit ones.
	assert.Equal(t, 3, cleared)
}

// ---------------------- End to end ----------------------

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	sc := scene.New("chair", "lamp", "marker")
	cam := scene.NewCamera(mgl64.Vec3{0, 1.6, -3})
	sc.SetMain(cam)
	owner := sc.NewRoot("anchor")

	cfg := config.NewConfig(
		config.WithPrototypes("chair", "lamp"),
		config.WithSelectionIndex(1),
		config.WithRandomYaw(false, 0),
		config.WithSpawnAsChildren(true),
		config.WithVisualization("marker"),
	)
	rec := &outcomes{}
	p := newPlacer(t, sc, cfg,
		placer.WithViewpointResolver(sc.Main),
		placer.WithOwner(owner),
		placer.WithRecorder(rec))

	var placed []apis.Instance
	p.OnPlaced(func(inst apis.Instance) { placed = append(placed, inst) })

	// In front of the camera, on the floor.
	point := mgl64.Vec3{0, 0, 2}
	ok, err := p.TryPlace(ctx, point, floor)
	require.NoError(t, err)
	require.True(t, ok)

	cur, ok := p.Current()
	require.True(t, ok)
	require.Len(t, placed, 1)
	assert.Equal(t, cur.ID, placed[0].ID)
	assert.Equal(t, apis.Prototype("lamp"), cur.Prototype)
	require.NotNil(t, cur.Visualization)

	primary, ok := sc.Lookup(cur.Primary.ID())
	require.True(t, ok)
	vis, ok := sc.Lookup(cur.Visualization.ID())
	require.True(t, ok)
	assert.Same(t, owner, primary.Parent())
	assert.Same(t, owner, vis.Parent())
	assert.Equal(t, point, primary.Position())
	assert.Equal(t, primary.Position(), vis.Position())
	assert.Equal(t, primary.Rotation(), vis.Rotation())
	vecNear(t, mgl64.Vec3{0, 0, -1}, primary.Rotation().Rotate(geom.Forward))

	// Behind the camera: rejected, and the previous placement is gone.
	ok, err = p.TryPlace(ctx, mgl64.Vec3{0, 0, -10}, floor)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, primary.Alive())
	assert.False(t, vis.Alive())
	assert.True(t, owner.Alive())
	assert.Empty(t, owner.Children())
	assert.Equal(t, 1, sc.Count())

	assert.Equal(t, []apis.Outcome{apis.OutcomePlaced, apis.OutcomeOutOfView}, rec.got)
}

func TestTryPlace_ZeroYawRangeIsDeterministic(t *testing.T) {
	cfg := plain("a")
	cfg.Orientation = apis.Orientation{RandomYaw: true, YawRange: 0}
	view := &fakeView{pos: mgl64.Vec3{2, 1, -5}}
	p := newPlacer(t, scene.New(), cfg, placer.WithViewpoint(view))

	var rots []mgl64.Quat
	for i := 0; i < 3; i++ {
		ok, err := p.TryPlace(context.Background(), mgl64.Vec3{1, 0, 1}, floor)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := p.Current()
		rots = append(rots, cur.Primary.Rotation())
	}
	assert.Equal(t, rots[0], rots[1])
	assert.Equal(t, rots[0], rots[2])
}

func TestScenario_FixedFirstPrototype(t *testing.T) {
	ctx := context.Background()
	sc := scene.New()
	sc.SetMain(scene.NewCamera(mgl64.Vec3{0, 0, 0}))
	cfg := plain("A", "B")
	cfg.SelectionIndex = 0
	p := newPlacer(t, sc, cfg, placer.WithViewpointResolver(sc.Main))

	ok, err := p.TryPlace(ctx, mgl64.Vec3{0, 0, 5}, floor)
	require.NoError(t, err)
	require.True(t, ok)
	first, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, apis.Prototype("A"), first.Prototype)
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, first.Primary.Position())

	var aliveDuringClear bool
	cancel := p.OnAllCleared(func() { aliveDuringClear = first.Primary.Alive() })
	ok, err = p.TryPlace(ctx, mgl64.Vec3{1, 0, 6}, floor)
	cancel()
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, aliveDuringClear)
	assert.False(t, first.Primary.Alive())
	second, _ := p.Current()
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, p.All(), 1)
}

func TestTryPlace_ConcurrentSubscribersSeeLiveInstance(t *testing.T) {
	const (
		workers  = 8
		attempts = 50
	)
	sc := scene.New()
	p := newPlacer(t, sc, plain("a", "b"), placer.WithViewpoint(centered()))

	var mu sync.Mutex
	placed, dead := 0, 0
	p.OnPlaced(func(inst apis.Instance) {
		cur, ok := p.Current()
		mu.Lock()
		defer mu.Unlock()
		placed++
		if !inst.Primary.Alive() || !ok || cur.ID != inst.ID {
			dead++
		}
	})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < attempts; i++ {
				if _, err := p.TryPlace(context.Background(), mgl64.Vec3{float64(w), 0, float64(i)}, floor); err != nil {
					t.Errorf("place: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*attempts, placed)
	assert.Zero(t, dead)
	assert.Len(t, p.All(), 1)
	assert.Equal(t, 1, sc.Count())
}
