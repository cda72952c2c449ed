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

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
)

// Prototype is an opaque identifier of an instantiable template. Its meaning
// belongs to the Instantiator.
type Prototype string

// Transform is the slice of a scene-graph node the placer drives.
// Positions and rotations are world space.
type Transform interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	SetPosition(p mgl64.Vec3)
	SetRotation(q mgl64.Quat)
	SetScale(s mgl64.Vec3)
	// SetParent attaches the transform under parent; nil detaches it.
	SetParent(parent Transform)
}

// Handle is a live reference to an instantiated object.
type Handle interface {
	Transform
	// ID is stable for the lifetime of the handle and only meant for comparison.
	ID() string
	// Alive reports false once the object was destroyed, by anyone.
	Alive() bool
}

// Instantiator creates and destroys scene objects.
type Instantiator interface {
	// Instantiate creates a new object from p.
	Instantiate(ctx context.Context, p Prototype) (Handle, error)
	// Destroy removes h. Destroying an already invalid handle is a no-op.
	Destroy(ctx context.Context, h Handle) error
}

// ViewportPoint is a point in normalized view space. U and V are nominally
// in [0,1]; Depth is the signed distance along the view axis, negative
// behind the viewpoint.
type ViewportPoint struct {
	U, V, Depth float64
}

// Viewpoint is the reference camera placed objects face.
type Viewpoint interface {
	// Position is the world-space position of the viewpoint.
	Position() mgl64.Vec3
	// WorldToViewport projects a world-space point into normalized view space.
	WorldToViewport(p mgl64.Vec3) ViewportPoint
}
