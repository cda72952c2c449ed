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
	"strings"
	"time"

	"dirpx.dev/placer/errors"
)

// Outcome classifies a placement attempt.
type Outcome int

const (
	// OutcomePlaced is a successful placement.
	OutcomePlaced Outcome = iota
	// OutcomeOutOfView is a rejection by the visibility gate.
	OutcomeOutOfView
	// OutcomeNoPrototype is a rejection because no prototype could be selected.
	OutcomeNoPrototype
	// OutcomeFailed is an attempt aborted by an external fault.
	OutcomeFailed
)

// Outcomes lists every defined outcome in declaration order.
var Outcomes = []Outcome{OutcomePlaced, OutcomeOutOfView, OutcomeNoPrototype, OutcomeFailed}

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeOutOfView:
		return "out_of_view"
	case OutcomeNoPrototype:
		return "no_prototype"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcome parses the String form of an Outcome, case-insensitively.
func ParseOutcome(s string) (Outcome, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return OutcomeFailed, errors.New("outcome: empty value")
	}
	for _, o := range Outcomes {
		if strings.EqualFold(trimmed, o.String()) {
			return o, nil
		}
	}
	return OutcomeFailed, errors.Newf("outcome: unknown value %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case OutcomePlaced, OutcomeOutOfView, OutcomeNoPrototype, OutcomeFailed:
		return []byte(o.String()), nil
	default:
		return nil, errors.Newf("outcome: cannot marshal unknown outcome %d", int(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Recorder observes placement activity, typically for metrics.
type Recorder interface {
	// Attempt records the outcome and wall time of one placement attempt.
	Attempt(o Outcome, d time.Duration)
	// Cleared records a teardown and how many handles it destroyed.
	Cleared(destroyed int)
	// Live records the number of registered instances.
	Live(n int)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) Attempt(Outcome, time.Duration) {}
func (NopRecorder) Cleared(int)                    {}
func (NopRecorder) Live(int)                       {}
