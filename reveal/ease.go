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
	"strings"

	"dirpx.dev/placer/errors"
)

// Ease maps animation progress in [0, 1] to interpolation weight.
type Ease int

const (
	// EaseOutBounce settles with a few decaying bounces.
	EaseOutBounce Ease = iota
	// EaseLinear moves at constant speed.
	EaseLinear
	// EaseOutQuad decelerates toward the end.
	EaseOutQuad
)

// Eases lists all supported curves.
var Eases = []Ease{EaseOutBounce, EaseLinear, EaseOutQuad}

func (e Ease) String() string {
	switch e {
	case EaseOutBounce:
		return "out_bounce"
	case EaseLinear:
		return "linear"
	case EaseOutQuad:
		return "out_quad"
	default:
		return "unknown"
	}
}

// ParseEase converts a name, case-insensitively, to an Ease.
func ParseEase(s string) (Ease, error) {
	trimmed := strings.TrimSpace(s)
	for _, e := range Eases {
		if strings.EqualFold(trimmed, e.String()) {
			return e, nil
		}
	}
	return EaseOutBounce, errors.Newf("reveal: unknown ease %q", s)
}

// At evaluates the curve at t, clamped to [0, 1].
func (e Ease) At(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	switch e {
	case EaseLinear:
		return t
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	default:
		return outBounce(t)
	}
}

func outBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
