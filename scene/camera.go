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

package scene

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/utils/geom"
)

const (
	// DefaultFieldOfView is the vertical field of view in degrees.
	DefaultFieldOfView = 60.0
	// DefaultAspect is width over height.
	DefaultAspect = 16.0 / 9.0
)

// Camera is a perspective viewpoint looking along its local +Z.
type Camera struct {
	mu     sync.Mutex
	pos    mgl64.Vec3
	rot    mgl64.Quat
	fovY   float64
	aspect float64
}

// Ensure Camera implements apis.Viewpoint.
var _ apis.Viewpoint = (*Camera)(nil)

// NewCamera returns a camera at pos looking along world +Z with the default
// lens.
func NewCamera(pos mgl64.Vec3) *Camera {
	return &Camera{
		pos:    pos,
		rot:    mgl64.QuatIdent(),
		fovY:   DefaultFieldOfView,
		aspect: DefaultAspect,
	}
}

// SetLens sets the vertical field of view (degrees) and aspect ratio.
// Non-positive values keep the current setting.
func (c *Camera) SetLens(fovY, aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fovY > 0 && fovY < 180 {
		c.fovY = fovY
	}
	if aspect > 0 {
		c.aspect = aspect
	}
}

// LookAt turns the camera toward target keeping world up. It is a no-op
// when target is straight above or below.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := geom.LookRotation(target.Sub(c.pos), geom.Up); ok {
		c.rot = q
	}
}

func (c *Camera) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.mu.Lock()
	c.pos = p
	c.mu.Unlock()
}

func (c *Camera) Rotation() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rot
}

func (c *Camera) SetRotation(q mgl64.Quat) {
	c.mu.Lock()
	c.rot = q.Normalize()
	c.mu.Unlock()
}

// WorldToViewport projects p to normalized view space: (0,0) is the bottom
// left and (1,1) the top right of the view; Depth is the distance along the
// view axis. Points on the camera plane project to NaN coordinates.
func (c *Camera) WorldToViewport(p mgl64.Vec3) apis.ViewportPoint {
	c.mu.Lock()
	pos, rot, fovY, aspect := c.pos, c.rot, c.fovY, c.aspect
	c.mu.Unlock()

	local := rot.Conjugate().Rotate(p.Sub(pos))
	depth := local.Z()
	if depth == 0 {
		return apis.ViewportPoint{U: math.NaN(), V: math.NaN(), Depth: 0}
	}
	halfH := depth * math.Tan(mgl64.DegToRad(fovY)/2)
	halfW := halfH * aspect
	return apis.ViewportPoint{
		U:     0.5 + 0.5*local.X()/halfW,
		V:     0.5 + 0.5*local.Y()/halfH,
		Depth: depth,
	}
}
