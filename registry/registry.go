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

package registry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/logger"
	"dirpx.dev/placer/notify"
)

var (
	// ErrNilInstantiator is returned by New when no instantiator is given.
	ErrNilInstantiator = errors.New("placer(registry): nil instantiator")
	// ErrNilPrimary is returned when an instance without a primary handle is registered.
	ErrNilPrimary = errors.New("placer(registry): instance has no primary handle")
	// ErrDeadHandle is returned when an instance whose primary was already destroyed is registered.
	ErrDeadHandle = errors.New("placer(registry): primary handle is not alive")
	// ErrDuplicateInstance is returned when the same instance is registered twice.
	ErrDuplicateInstance = errors.New("placer(registry): instance already registered")
)

var tracer = otel.Tracer("dirpx.dev/placer/registry")

// Option configures a registry.
type Option func(*registry)

// WithLogger sets the logger; the default is a child of the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRecorder sets the activity recorder.
func WithRecorder(rec apis.Recorder) Option {
	return func(r *registry) {
		if rec != nil {
			r.rec = rec
		}
	}
}

// New constructs a Registry that destroys instances through inst.
func New(inst apis.Instantiator, opts ...Option) (apis.Registry, error) {
	if inst == nil {
		return nil, ErrNilInstantiator
	}
	r := &registry{
		inst: inst,
		log:  logger.Named(nil, "registry"),
		rec:  apis.NopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// registry is the mutex-guarded Registry implementation.
type registry struct {
	// inst destroys handles on teardown.
	inst apis.Instantiator
	log  *zap.SugaredLogger
	rec  apis.Recorder
	// mu guards all. It is never held while calling out.
	mu sync.Mutex
	// all holds registered instances in registration order; the current
	// instance is its last element.
	all []apis.Instance
	// cleared notifies teardown subscribers.
	cleared notify.Signal
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register appends inst and makes it current.
func (r *registry) Register(inst apis.Instance) error {
	if inst.Primary == nil {
		return ErrNilPrimary
	}
	if !inst.Primary.Alive() {
		return errors.Wrapf(ErrDeadHandle, "instance %s", inst.ID)
	}

	r.mu.Lock()
	for _, cur := range r.all {
		if cur.ID == inst.ID {
			r.mu.Unlock()
			return errors.Wrapf(ErrDuplicateInstance, "instance %s", inst.ID)
		}
	}
	r.all = append(r.all, inst)
	n := len(r.all)
	r.mu.Unlock()

	r.rec.Live(n)
	r.log.Debugw("instance registered",
		logger.FieldInstanceID, inst.ID,
		logger.FieldPrototype, string(inst.Prototype),
		logger.FieldCount, n)
	return nil
}

// ClearAll detaches every instance, destroys their live handles and
// notifies subscribers. The registry is empty when ClearAll returns, even
// if some destroy calls failed; those failures are returned together.
func (r *registry) ClearAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "registry.ClearAll")
	defer span.End()

	r.mu.Lock()
	all := r.all
	r.all = nil
	r.mu.Unlock()

	var errs error
	destroyed := 0
	for _, inst := range all {
		for _, h := range inst.Handles() {
			// Already gone: destroyed externally or self-destructed.
			if !h.Alive() {
				continue
			}
			if err := r.inst.Destroy(ctx, h); err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "destroy %s", h.ID()))
				continue
			}
			destroyed++
		}
	}

	span.SetAttributes(
		attribute.Int("placer.instances", len(all)),
		attribute.Int("placer.destroyed", destroyed),
	)
	r.rec.Cleared(destroyed)
	r.rec.Live(0)
	r.cleared.Emit()

	if errs != nil {
		span.RecordError(errs)
		span.SetStatus(codes.Error, "teardown failed")
		r.log.Warnw("teardown finished with errors",
			logger.FieldCount, len(multierr.Errors(errs)),
			logger.FieldError, errs)
		return errors.Wrapf(errs, "placer(registry): teardown of %d instance(s)", len(all))
	}
	r.log.Debugw("registry cleared", logger.FieldCount, destroyed)
	return nil
}

// Current returns the most recently registered instance.
func (r *registry) Current() (apis.Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return apis.Instance{}, false
	}
	return r.all[len(r.all)-1], true
}

// All returns a snapshot in registration order.
func (r *registry) All() []apis.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]apis.Instance(nil), r.all...)
}

// Count returns the number of registered instances.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.all)
}

// OnAllCleared subscribes fn to teardown notifications.
func (r *registry) OnAllCleared(fn func()) (cancel func()) {
	return r.cleared.Subscribe(fn)
}
