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

package reveal

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"dirpx.dev/placer/apis"
)

// Animator moves a transform to a position over a duration. MoveTo must
// not block; the motion ends early, at its destination, when ctx is done.
type Animator interface {
	MoveTo(ctx context.Context, t apis.Transform, to mgl64.Vec3, d time.Duration, ease Ease)
}

// Snap is an Animator that arrives immediately.
type Snap struct{}

// Ensure Snap implements Animator.
var _ Animator = Snap{}

func (Snap) MoveTo(_ context.Context, t apis.Transform, to mgl64.Vec3, _ time.Duration, _ Ease) {
	t.SetPosition(to)
}

// DefaultFrame is the Tween update interval.
const DefaultFrame = time.Second / 60

// Tween is an Animator that interpolates on its own goroutine, one step
// per frame.
type Tween struct {
	frame time.Duration
}

// Ensure Tween implements Animator.
var _ Animator = (*Tween)(nil)

// NewTween returns a Tween stepping every frame; non-positive uses DefaultFrame.
func NewTween(frame time.Duration) *Tween {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Tween{frame: frame}
}

func (tw *Tween) MoveTo(ctx context.Context, t apis.Transform, to mgl64.Vec3, d time.Duration, ease Ease) {
	if d <= 0 {
		t.SetPosition(to)
		return
	}
	from := t.Position()
	go func() {
		tick := time.NewTicker(tw.frame)
		defer tick.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				t.SetPosition(to)
				return
			case now := <-tick.C:
				p := float64(now.Sub(start)) / float64(d)
				if p >= 1 {
					t.SetPosition(to)
					return
				}
				w := ease.At(p)
				t.SetPosition(from.Add(to.Sub(from).Mul(w)))
			}
		}
	}()
}
