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

// Package geom holds the placement geometry: plane projection, look
// rotations with a surface up axis, world-up yaw and viewport admission.
//
// Conventions: local +Z is forward, local +Y is up, local +X is right, and
// right = up x forward. Rotations are unit quaternions from mgl64.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
)

// Epsilon is the length below which a direction is considered degenerate.
const Epsilon = 1e-6

// tangentEpsilon decides when world forward is too close to the normal to
// serve as the fallback tangent.
const tangentEpsilon = 1e-3

// World axes.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// ErrZeroNormal is returned when a surface normal has no direction.
var ErrZeroNormal = errors.New("geom: surface normal is zero")

// ProjectOnPlane removes from v its component along normal. normal need not
// be unit length; a degenerate normal returns v unchanged.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	nn := normal.Dot(normal)
	if nn < Epsilon*Epsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / nn))
}

// LookRotation returns the rotation whose forward axis points along forward
// and whose up axis is as close to up as possible. ok is false, and the
// identity is returned, when forward or up is degenerate or they are parallel.
func LookRotation(forward, up mgl64.Vec3) (q mgl64.Quat, ok bool) {
	if forward.Len() < Epsilon || up.Len() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	f := forward.Normalize()
	r := up.Cross(f)
	if r.Len() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	r = r.Normalize()
	u := f.Cross(r)

	// Column-major basis: columns are right, up, forward.
	m := mgl64.Mat4{
		r[0], r[1], r[2], 0,
		u[0], u[1], u[2], 0,
		f[0], f[1], f[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize(), true
}

// Tangent returns a stable unit direction lying in the plane of normal:
// world forward projected on the plane, or world right when the normal is
// (anti)parallel to world forward. normal must be non-degenerate.
func Tangent(normal mgl64.Vec3) mgl64.Vec3 {
	t := ProjectOnPlane(Forward, normal)
	if t.Len() < tangentEpsilon {
		t = ProjectOnPlane(Right, normal)
	}
	return t.Normalize()
}

// SurfaceRotation orients an object standing on a surface with the given
// normal so that its forward axis faces toViewer projected onto the surface
// plane. When the projection is degenerate (the viewer lies on the normal
// line) the forward axis falls back to Tangent(normal) and fallback is true.
func SurfaceRotation(toViewer, normal mgl64.Vec3) (q mgl64.Quat, fallback bool, err error) {
	if normal.Len() < Epsilon {
		return mgl64.QuatIdent(), false, ErrZeroNormal
	}
	n := normal.Normalize()
	fwd := ProjectOnPlane(toViewer, n)
	if fwd.Len() < Epsilon {
		fwd = Tangent(n)
		fallback = true
	}
	q, _ = LookRotation(fwd, n)
	return q, fallback, nil
}

// Yaw applies a world-space rotation of deg degrees about world up after q.
func Yaw(q mgl64.Quat, deg float64) mgl64.Quat {
	if deg == 0 {
		return q
	}
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up).Mul(q).Normalize()
}

// SignedYaw returns the angle in degrees, in (-180, 180], that rotates the
// horizontal projection of from onto the horizontal projection of to about
// world up. Degenerate inputs yield 0.
func SignedYaw(from, to mgl64.Vec3) float64 {
	a := ProjectOnPlane(from, Up)
	b := ProjectOnPlane(to, Up)
	if a.Len() < Epsilon || b.Len() < Epsilon {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(Up.Dot(a.Cross(b)), a.Dot(b)))
}

// InView reports whether p lies in front of the viewpoint and inside the
// viewport inset by periphery on every edge. Bounds are inclusive; NaN
// coordinates are never in view.
func InView(p apis.ViewportPoint, periphery float64) bool {
	lo, hi := periphery, 1-periphery
	return p.Depth >= 0 &&
		p.U >= lo && p.U <= hi &&
		p.V >= lo && p.V <= hi
}
