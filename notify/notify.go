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

// Package notify provides multi-subscriber, fire-and-forget notification feeds.
//
// A Feed keeps its subscriber list as an immutable snapshot behind an atomic
// pointer. Emit loads the snapshot and calls every subscriber in
// subscription order without holding a lock, so a subscriber may subscribe,
// cancel or emit again from inside its callback. Subscribe and cancel build a
// new snapshot under a short mutex and swap it in.
package notify

import (
	"sync"
	"sync/atomic"
)

// Feed delivers values of type T to subscribers. The zero value is ready to use.
type Feed[T any] struct {
	// mu serializes writers so snapshots are never lost.
	mu sync.Mutex
	// subs is the published subscriber snapshot; never mutated in place.
	subs atomic.Pointer[[]*subscriber[T]]
}

// subscriber wraps a callback so cancel can find it by identity.
type subscriber[T any] struct {
	fn func(T)
}

// Subscribe registers fn and returns a function that cancels the
// subscription. Cancelling more than once is a no-op. A nil fn is ignored.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s := &subscriber[T]{fn: fn}

	f.mu.Lock()
	old := f.load()
	next := make([]*subscriber[T], 0, len(old)+1)
	next = append(next, old...)
	next = append(next, s)
	f.subs.Store(&next)
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(s) })
	}
}

// Emit calls every current subscriber with v.
func (f *Feed[T]) Emit(v T) {
	for _, s := range f.load() {
		s.fn(v)
	}
}

// Len returns the number of active subscribers.
func (f *Feed[T]) Len() int {
	return len(f.load())
}

func (f *Feed[T]) load() []*subscriber[T] {
	if p := f.subs.Load(); p != nil {
		return *p
	}
	return nil
}

func (f *Feed[T]) remove(s *subscriber[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old := f.load()
	next := make([]*subscriber[T], 0, len(old))
	for _, cur := range old {
		if cur != s {
			next = append(next, cur)
		}
	}
	f.subs.Store(&next)
}

// Signal is a Feed without payload.
type Signal struct {
	feed Feed[struct{}]
}

// Subscribe registers fn; see Feed.Subscribe.
func (s *Signal) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return s.feed.Subscribe(func(struct{}) { fn() })
}

// Emit calls every current subscriber.
func (s *Signal) Emit() {
	s.feed.Emit(struct{}{})
}

// Len returns the number of active subscribers.
func (s *Signal) Len() int {
	return s.feed.Len()
}
