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

// Package placer places objects on surfaces in front of a viewer and keeps
// track of what it placed.
//
// Given a candidate world-space point and the surface normal at that point
// (typically the result of a ray hit), a Placer decides whether placement is
// allowed, picks which prototype to instantiate, orients the new object
// relative to the viewer and the surface, adds a bounded random yaw and
// registers the result. Before every attempt it tears down whatever it placed
// before, so at most one placement is alive at any time.
//
// # Design
//
// A Placer is composed of a few replaceable parts, assembled by an
// apis.Builder:
//
//   - Registry: owns the placed instances. ClearAll destroys every live
//     handle (visualization first, then primary), empties the registry and
//     always notifies subscribers, even when there was nothing to clear.
//
//   - Selector: answers "which prototype index?" by trying strategies in
//     priority order:
//     1. A fixed index that addresses an element of the set is used as is.
//     2. Any other index, apis.Randomized in particular, draws a uniform
//     index in [0, n) from the Placer's random source.
//
//   - ViewpointResolver: supplies the reference viewpoint, either given
//     explicitly (WithViewpoint) or looked up lazily (WithViewpointResolver),
//     and caches it once found.
//
// The configuration (apis.Config) is an immutable snapshot behind an atomic
// pointer. Writers (SetConfig, SetSelectionIndex, SelectNext, ...) take a
// short build mutex, derive a new snapshot and publish it. A placement
// attempt loads one snapshot at the start and uses it throughout.
//
// # Placement
//
// TryPlace(ctx, point, normal) runs these steps:
//
//  1. Clear all previous placements.
//
//  2. Resolve the reference viewpoint. Without one TryPlace fails with
//     ErrNoViewpoint.
//
//  3. If the view gate is enabled, project point into the viewport. The
//     point is admitted when it lies in front of the viewer and inside the
//     viewport inset by the configured periphery on every edge. Bounds are
//     inclusive.
//
//  4. Select the prototype. An empty set rejects the attempt.
//
//  5. Orient: the forward axis faces the viewer projected onto the surface
//     plane and the up axis follows the normal. When the viewer lies on the
//     normal line the heading falls back to world forward (or world right)
//     projected on the plane. A zero normal fails with ErrDegenerateNormal.
//     With random yaw enabled the result is rotated about world up by a
//     uniform angle in [-YawRange, +YawRange] degrees.
//
//  6. Instantiate the prototype, parent it to the owner when
//     SpawnAsChildren is set, and pose it. When a visualization prototype
//     is configured it is instantiated with the same pose; if that fails the
//     primary is destroyed again, so an instance is always complete.
//
//  7. Register the instance and notify OnPlaced subscribers.
//
// Rejections (out of view, nothing to place) return (false, nil). External
// faults return (false, err); errors wrap package sentinels and can be
// checked with errors.Is.
//
// # Usage
//
//	sc := scene.New()
//	cam := scene.NewCamera(mgl64.Vec3{0, 1.6, -3})
//	sc.SetMain(cam)
//
//	cfg := config.NewConfig(config.WithPrototypes("chair", "lamp"))
//	p, err := placer.New(sc, cfg, placer.WithViewpointResolver(sc.Main))
//	if err != nil {
//		return err
//	}
//	placed, err := p.TryPlace(ctx, hit.Point, hit.Normal)
//
// # Concurrency model
//
// A Placer is meant to be driven from one logical thread, e.g. a frame loop.
// Its state is nevertheless guarded so that calls from several goroutines
// are race-free: placement attempts are serialized, configuration reads are
// lock-free snapshot loads, and notifications run synchronously in
// subscription order outside of any registry lock. Placement notifications
// are delivered before the attempt releases its lock, so an OnPlaced
// subscriber always receives a live instance. A subscriber must not call
// TryPlace from its callback.
package placer
