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

// Package reveal shows a fixed list of pre-authored objects one at a time.
//
// Every object starts hidden. Each Advance takes the next object, lifts it
// above its rest position, shows it and lets an Animator drop it back into
// place. Reset hides everything again and starts over.
package reveal

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/logger"
	"dirpx.dev/placer/utils/geom"
)

const (
	// DefaultHeight is how far above its rest position an item appears.
	DefaultHeight = 2.0
	// DefaultDuration is how long an item takes to settle.
	DefaultDuration = time.Second
)

var (
	// ErrNilTarget is returned by New for an item without a target.
	ErrNilTarget = errors.New("placer(reveal): item has no target")
	// ErrNegativeDuration is returned by New for an item with a negative duration.
	ErrNegativeDuration = errors.New("placer(reveal): negative duration")
)

// Target is a transform that can be shown and hidden.
type Target interface {
	apis.Transform
	SetActive(active bool)
}

// Item is one object of the sequence. A zero Duration uses DefaultDuration.
type Item struct {
	Target   Target
	Duration time.Duration
	Ease     Ease
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithAnimator sets the animator; the default is Snap.
func WithAnimator(a Animator) Option {
	return func(s *Sequencer) {
		if a != nil {
			s.anim = a
		}
	}
}

// WithHeight sets how far above rest items appear.
func WithHeight(h float64) Option {
	return func(s *Sequencer) { s.height = h }
}

// WithLogger sets the parent logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Sequencer) { s.log = logger.Named(l, "reveal") }
}

// Sequencer reveals its items in order. It is safe for concurrent use.
type Sequencer struct {
	items  []Item
	anim   Animator
	height float64
	log    *zap.SugaredLogger

	mu sync.Mutex
	// rest holds each item's position captured by Start.
	rest []mgl64.Vec3
	// next is the index of the item Advance reveals.
	next int
	// cancels stops the motions started by Advance.
	cancels []context.CancelFunc
}

// New returns a Sequencer over items. Call Start before the first Advance.
func New(items []Item, opts ...Option) (*Sequencer, error) {
	for i, it := range items {
		if it.Target == nil {
			return nil, errors.Wrapf(ErrNilTarget, "items[%d]", i)
		}
		if it.Duration < 0 {
			return nil, errors.Wrapf(ErrNegativeDuration, "items[%d]", i)
		}
	}
	s := &Sequencer{
		items:  append([]Item(nil), items...),
		anim:   Snap{},
		height: DefaultHeight,
		log:    logger.Named(nil, "reveal"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start records the rest position of every item, hides them all and
// rewinds to the first.
func (s *Sequencer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked()
}

func (s *Sequencer) startLocked() {
	s.stopLocked()
	s.rest = make([]mgl64.Vec3, len(s.items))
	for i, it := range s.items {
		s.rest[i] = it.Target.Position()
		it.Target.SetActive(false)
	}
	s.next = 0
	s.log.Debugw("sequence started", logger.FieldCount, len(s.items))
}

// Advance reveals the next item and reports whether there was one. The
// item's motion runs under ctx and is not awaited. Without a prior Start
// the sequence is started first.
func (s *Sequencer) Advance(ctx context.Context) bool {
	s.mu.Lock()
	if s.rest == nil {
		s.startLocked()
	}
	if s.next >= len(s.items) {
		s.mu.Unlock()
		return false
	}
	i := s.next
	s.next++
	it, rest, left := s.items[i], s.rest[i], len(s.items)-s.next
	mctx, cancel := context.WithCancel(ctx)
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()

	d := it.Duration
	if d == 0 {
		d = DefaultDuration
	}
	it.Target.SetPosition(rest.Add(geom.Up.Mul(s.height)))
	it.Target.SetActive(true)
	s.anim.MoveTo(mctx, it.Target, rest, d, it.Ease)

	s.log.Debugw("item revealed",
		logger.FieldCount, left,
		logger.FieldDurationMS, d.Milliseconds())
	return true
}

// Remaining returns the number of items not yet revealed.
func (s *Sequencer) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) - s.next
}

// Reset stops running motions, returns every item to its rest position,
// hides them and rewinds to the first.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	for i, it := range s.items {
		if s.rest != nil {
			it.Target.SetPosition(s.rest[i])
		}
		it.Target.SetActive(false)
	}
	s.next = 0
	s.log.Debugw("sequence reset")
}

func (s *Sequencer) stopLocked() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}
