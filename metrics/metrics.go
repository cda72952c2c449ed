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

// Package metrics records placement activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/placer/apis"
)

// Namespace prefixes every metric name.
const Namespace = "placer"

// Recorder implements apis.Recorder using Prometheus metrics.
type Recorder struct {
	// Counter of placement attempts by outcome
	attempts *prometheus.CounterVec
	// Histogram of attempt latency
	duration prometheus.Histogram
	// Counter of handles destroyed by teardown
	destroyed prometheus.Counter
	// Gauge of registered instances
	live prometheus.Gauge
}

// Ensure Recorder implements apis.Recorder.
var _ apis.Recorder = (*Recorder)(nil)

// NewRecorder creates the placement metrics and registers them with
// registerer, when non-nil.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	r := &Recorder{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempts_total",
				Help:      "Total number of placement attempts by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "attempt_duration_seconds",
			Help:      "Time taken by a placement attempt, teardown included",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		destroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "destroyed_total",
			Help:      "Total number of object handles destroyed by teardown",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "live_instances",
			Help:      "Number of placed instances currently registered",
		}),
	}

	// Every outcome is exported from the start, at zero.
	for _, o := range apis.Outcomes {
		r.attempts.WithLabelValues(o.String())
	}

	if registerer != nil {
		registerer.MustRegister(r.attempts, r.duration, r.destroyed, r.live)
	}
	return r
}

// Attempt implements apis.Recorder.Attempt.
func (r *Recorder) Attempt(o apis.Outcome, d time.Duration) {
	r.attempts.WithLabelValues(o.String()).Inc()
	r.duration.Observe(d.Seconds())
}

// Cleared implements apis.Recorder.Cleared.
func (r *Recorder) Cleared(destroyed int) {
	r.destroyed.Add(float64(destroyed))
}

// Live implements apis.Recorder.Live.
func (r *Recorder) Live(n int) {
	r.live.Set(float64(n))
}
