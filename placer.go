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

package placer

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/builder"
	"dirpx.dev/placer/config"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/logger"
	"dirpx.dev/placer/notify"
	"dirpx.dev/placer/resolver"
	"dirpx.dev/placer/utils/geom"
)

var (
	// ErrNilInstantiator is returned by New when no instantiator is given.
	ErrNilInstantiator = errors.New("placer: nil instantiator")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("placer: builder returned nil registry")
	// ErrNilSelector is returned when a builder returns a nil selector.
	ErrNilSelector = errors.New("placer: builder returned nil selector")
	// ErrNilViewpointResolver is returned when a builder returns a nil viewpoint resolver.
	ErrNilViewpointResolver = errors.New("placer: builder returned nil viewpoint resolver")
	// ErrNoViewpoint is returned by TryPlace when no reference viewpoint is available.
	ErrNoViewpoint = resolver.ErrNoViewpoint
	// ErrDegenerateNormal is returned by TryPlace for a zero surface normal.
	ErrDegenerateNormal = errors.New("placer: degenerate surface normal")
	// ErrNoSelection is returned when the selector could not pick a prototype
	// from a non-empty set.
	ErrNoSelection = errors.New("placer: no prototype selected")
)

var tracer = otel.Tracer("dirpx.dev/placer")

// Option configures a Placer.
type Option func(*options)

type options struct {
	bld   apis.Builder
	vp    apis.Viewpoint
	lazy  func() (apis.Viewpoint, bool)
	owner apis.Transform
	rng   apis.Rand
	log   *zap.SugaredLogger
	rec   apis.Recorder
}

// WithBuilder replaces the builder composing the registry and resolvers.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) { o.bld = b }
}

// WithViewpoint sets the reference viewpoint explicitly.
func WithViewpoint(vp apis.Viewpoint) Option {
	return func(o *options) { o.vp = vp }
}

// WithViewpointResolver sets the callback consulted for the reference
// viewpoint when none is given explicitly, e.g. a scene's main camera.
// Its first successful answer is cached.
func WithViewpointResolver(fn func() (apis.Viewpoint, bool)) Option {
	return func(o *options) { o.lazy = fn }
}

// WithOwner sets the transform placed objects are parented to when
// SpawnAsChildren is enabled.
func WithOwner(t apis.Transform) Option {
	return func(o *options) { o.owner = t }
}

// WithRand sets the random source for selection and yaw.
func WithRand(rng apis.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the parent logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) { o.log = l }
}

// WithRecorder sets the recorder receiving placement outcomes.
func WithRecorder(rec apis.Recorder) Option {
	return func(o *options) { o.rec = rec }
}

// globalRand draws from the goroutine-safe math/rand/v2 top-level source.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Placer decides whether a surface point may receive an object, picks the
// prototype, orients the instance toward the viewer and keeps exactly the
// last placement alive.
type Placer struct {
	inst  apis.Instantiator
	reg   apis.Registry
	sel   apis.Selector
	vps   apis.ViewpointResolver
	owner apis.Transform
	rng   apis.Rand
	log   *zap.SugaredLogger
	rec   apis.Recorder

	placed notify.Feed[apis.Instance]

	// placeMu serializes placement attempts.
	placeMu sync.Mutex
	// buildMu serializes writers so we never publish lost updates.
	buildMu sync.Mutex
	// st is the current configuration snapshot.
	st atomic.Pointer[state]
}

// state is an immutable configuration snapshot published via st.Store.
// Writers build a new state and swap it; a published state is never mutated.
type state struct {
	cfg apis.Config
}

// New validates cfg and returns a Placer creating objects through inst.
func New(inst apis.Instantiator, cfg apis.Config, opts ...Option) (*Placer, error) {
	if inst == nil {
		return nil, ErrNilInstantiator
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = globalRand{}
	}
	if o.rec == nil {
		o.rec = apis.NopRecorder{}
	}
	if o.bld == nil {
		o.bld = builder.New(o.log, o.rec)
	}

	p := &Placer{
		inst:  inst,
		owner: o.owner,
		rng:   o.rng,
		log:   logger.Named(o.log, "placer"),
		rec:   o.rec,
	}
	if p.reg = o.bld.BuildRegistry(cfg, inst); p.reg == nil {
		return nil, ErrNilRegistry
	}
	if p.sel = o.bld.BuildSelector(o.rng); p.sel == nil {
		return nil, ErrNilSelector
	}
	if p.vps = o.bld.BuildViewpointResolver(o.vp, o.lazy); p.vps == nil {
		return nil, ErrNilViewpointResolver
	}
	p.st.Store(&state{cfg: cfg.Clone()})
	return p, nil
}

// TryPlace attempts to place an object at point on a surface with the given
// normal. Everything placed before is torn down first, whatever the outcome.
//
// It returns (true, nil) when an object was placed and (false, nil) when the
// point was rejected: outside the viewport or nothing to place. Errors report
// external faults, a missing viewpoint or a degenerate normal.
func (p *Placer) TryPlace(ctx context.Context, point, normal mgl64.Vec3) (bool, error) {
	ctx, span := tracer.Start(ctx, "placer.TryPlace", trace.WithAttributes(
		attribute.Float64Slice("placer.point", point[:]),
		attribute.Float64Slice("placer.normal", normal[:]),
	))
	defer span.End()

	start := time.Now()
	// Held through OnPlaced so subscribers never see an instance a
	// concurrent attempt already tore down.
	p.placeMu.Lock()
	defer p.placeMu.Unlock()
	inst, outcome, err := p.place(ctx, p.st.Load().cfg, point, normal)

	p.rec.Attempt(outcome, time.Since(start))
	span.SetAttributes(attribute.String("placer.outcome", outcome.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome.String())
		p.log.Warnw("placement failed",
			logger.FieldOutcome, outcome.String(),
			logger.FieldPoint, point,
			logger.FieldError, err)
		return false, err
	}
	if outcome != apis.OutcomePlaced {
		p.log.Debugw("placement rejected",
			logger.FieldOutcome, outcome.String(),
			logger.FieldPoint, point)
		return false, nil
	}

	p.log.Infow("object placed",
		logger.FieldInstanceID, inst.ID,
		logger.FieldPrototype, string(inst.Prototype),
		logger.FieldPoint, point)
	p.placed.Emit(inst)
	return true, nil
}

// place runs one attempt against a single configuration snapshot.
func (p *Placer) place(ctx context.Context, cfg apis.Config, point, normal mgl64.Vec3) (apis.Instance, apis.Outcome, error) {
	if err := p.reg.ClearAll(ctx); err != nil {
		return apis.Instance{}, apis.OutcomeFailed, err
	}

	vp, err := p.vps.Resolve()
	if err != nil {
		return apis.Instance{}, apis.OutcomeFailed, err
	}

	if cfg.ViewGate.Enabled {
		vpt := vp.WorldToViewport(point)
		if !geom.InView(vpt, cfg.ViewGate.Periphery) {
			p.log.Debugw("point outside the view gate",
				logger.FieldViewport, []float64{vpt.U, vpt.V, vpt.Depth})
			return apis.Instance{}, apis.OutcomeOutOfView, nil
		}
	}

	proto, ok, err := p.selectPrototype(cfg)
	if err != nil || !ok {
		if err != nil {
			return apis.Instance{}, apis.OutcomeFailed, err
		}
		return apis.Instance{}, apis.OutcomeNoPrototype, nil
	}

	rot, fallback, err := geom.SurfaceRotation(vp.Position().Sub(point), normal)
	if err != nil {
		return apis.Instance{}, apis.OutcomeFailed,
			errors.Mark(errors.Wrapf(err, "normal %v", normal), ErrDegenerateNormal)
	}
	if fallback {
		p.log.Debugw("viewer on the surface normal; using fallback heading",
			logger.FieldNormal, normal)
	}
	if o := cfg.Orientation; o.RandomYaw && o.YawRange > 0 {
		yaw := p.rng.Float64()*2*o.YawRange - o.YawRange
		rot = geom.Yaw(rot, yaw)
		p.log.Debugw("random yaw applied", logger.FieldYaw, yaw)
	}

	var owner apis.Transform
	if cfg.SpawnAsChildren {
		owner = p.owner
	}

	primary, err := p.spawn(ctx, proto, owner, point, rot)
	if err != nil {
		return apis.Instance{}, apis.OutcomeFailed, err
	}
	inst := apis.Instance{ID: primary.ID(), Prototype: proto, Primary: primary}

	if cfg.Visualization != "" {
		vis, err := p.spawn(ctx, cfg.Visualization, owner, point, rot)
		if err != nil {
			return apis.Instance{}, apis.OutcomeFailed, p.discard(ctx, inst,
				errors.Wrapf(err, "visualization %q", cfg.Visualization))
		}
		inst.Visualization = vis
	}

	if err := p.reg.Register(inst); err != nil {
		return apis.Instance{}, apis.OutcomeFailed, p.discard(ctx, inst, err)
	}
	return inst, apis.OutcomePlaced, nil
}

// selectPrototype resolves the configured selection against the set. ok is
// false, with a nil error, when the set is empty.
func (p *Placer) selectPrototype(cfg apis.Config) (apis.Prototype, bool, error) {
	n := len(cfg.Prototypes)
	if n == 0 {
		p.log.Warnw("no prototypes configured; nothing to place")
		return "", false, nil
	}
	idx := cfg.SelectionIndex
	if idx >= n {
		p.log.Warnw("selection index outside the prototype set; selecting at random",
			logger.FieldSelection, idx,
			logger.FieldCount, n)
	}
	sel, ok := p.sel.Select(idx, n)
	if !ok {
		return "", false, errors.Wrapf(ErrNoSelection, "index %d of %d", idx, n)
	}
	return cfg.Prototypes[sel], true, nil
}

// spawn instantiates proto and poses it.
func (p *Placer) spawn(ctx context.Context, proto apis.Prototype, owner apis.Transform, pos mgl64.Vec3, rot mgl64.Quat) (apis.Handle, error) {
	h, err := p.inst.Instantiate(ctx, proto)
	if err != nil {
		return nil, errors.Wrapf(err, "placer: instantiate %q", proto)
	}
	if owner != nil {
		h.SetParent(owner)
	}
	h.SetPosition(pos)
	h.SetRotation(rot)
	return h, nil
}

// discard destroys the live handles of an instance that never made it into
// the registry and returns cause combined with any destroy failure.
func (p *Placer) discard(ctx context.Context, inst apis.Instance, cause error) error {
	errs := cause
	for _, h := range inst.Handles() {
		if h.Alive() {
			errs = multierr.Append(errs, p.inst.Destroy(ctx, h))
		}
	}
	return errs
}

// RandomizeSelection makes every following placement pick a prototype at random.
func (p *Placer) RandomizeSelection() {
	p.SetSelectionIndex(apis.Randomized)
}

// SetSelectionIndex fixes the prototype used by following placements. An
// index outside the set selects at random.
func (p *Placer) SetSelectionIndex(index int) {
	p.update(func(cfg *apis.Config) { cfg.SelectionIndex = index })
	p.log.Debugw("selection changed", logger.FieldSelection, index)
}

// SelectNext advances the selection to the next prototype, wrapping around,
// and returns the new index. From a randomized selection it selects the
// first prototype. With an empty set it returns apis.Randomized.
func (p *Placer) SelectNext() int {
	return p.cycle(1)
}

// SelectPrevious moves the selection to the previous prototype, wrapping
// around, and returns the new index. From a randomized selection it selects
// the last prototype. With an empty set it returns apis.Randomized.
func (p *Placer) SelectPrevious() int {
	return p.cycle(-1)
}

func (p *Placer) cycle(step int) int {
	next := apis.Randomized
	p.update(func(cfg *apis.Config) {
		n := len(cfg.Prototypes)
		if n == 0 {
			return
		}
		i := cfg.SelectionIndex
		switch {
		case !apis.IsRandomized(i, n):
			next = ((i+step)%n + n) % n
		case step > 0:
			next = 0
		default:
			next = n - 1
		}
		cfg.SelectionIndex = next
	})
	p.log.Debugw("selection changed", logger.FieldSelection, next)
	return next
}

// IsSelectionRandomized reports whether placements currently pick at random.
func (p *Placer) IsSelectionRandomized() bool {
	cfg := p.st.Load().cfg
	return apis.IsRandomized(cfg.SelectionIndex, len(cfg.Prototypes))
}

// Config returns a copy of the current configuration.
func (p *Placer) Config() apis.Config {
	return p.st.Load().cfg.Clone()
}

// SetConfig validates cfg and makes it current for following placements.
// An attempt in progress keeps the snapshot it started with.
func (p *Placer) SetConfig(cfg apis.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	p.buildMu.Lock()
	p.st.Store(&state{cfg: cfg.Clone()})
	p.buildMu.Unlock()
	return nil
}

// update applies fn to a copy of the current configuration and publishes it.
func (p *Placer) update(fn func(cfg *apis.Config)) {
	p.buildMu.Lock()
	defer p.buildMu.Unlock()
	cfg := p.st.Load().cfg.Clone()
	fn(&cfg)
	p.st.Store(&state{cfg: cfg})
}

// Current returns the instance placed last, if it is still alive in the registry.
func (p *Placer) Current() (apis.Instance, bool) {
	return p.reg.Current()
}

// All returns the placed instances in placement order.
func (p *Placer) All() []apis.Instance {
	return p.reg.All()
}

// ClearAll tears down everything placed so far.
func (p *Placer) ClearAll(ctx context.Context) error {
	return p.reg.ClearAll(ctx)
}

// OnPlaced subscribes fn to successful placements. fn runs inside the
// attempt, while the instance is the live current one; it must not call
// TryPlace.
func (p *Placer) OnPlaced(fn func(apis.Instance)) (cancel func()) {
	return p.placed.Subscribe(fn)
}

// OnAllCleared subscribes fn to teardowns.
func (p *Placer) OnAllCleared(fn func()) (cancel func()) {
	return p.reg.OnAllCleared(fn)
}
