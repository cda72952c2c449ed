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

// Package scene is an in-memory scene graph implementing the placer's
// external collaborators: an Instantiator producing transform nodes and a
// perspective Camera usable as the reference viewpoint.
//
// It backs the CLI and the tests; an embedding engine provides its own.
package scene

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/errors"
)

// ErrUnknownPrototype is returned when instantiating a prototype missing
// from a non-empty catalog.
var ErrUnknownPrototype = errors.New("scene: unknown prototype")

// Scene owns the live nodes. It is safe for concurrent use.
type Scene struct {
	mu      sync.Mutex
	catalog map[apis.Prototype]struct{}
	nodes   map[string]*Node
	order   []string
	main    apis.Viewpoint

	// InstantiateHook, when set, runs before every instantiation; a non-nil
	// error aborts it.
	InstantiateHook func(p apis.Prototype) error
	// DestroyHook, when set, runs before every destroy of a live node; a
	// non-nil error aborts it.
	DestroyHook func(h apis.Handle) error
}

// Ensure Scene implements apis.Instantiator.
var _ apis.Instantiator = (*Scene)(nil)

// New returns an empty scene. When catalog is non-empty only those
// prototypes can be instantiated.
func New(catalog ...apis.Prototype) *Scene {
	s := &Scene{
		catalog: make(map[apis.Prototype]struct{}, len(catalog)),
		nodes:   make(map[string]*Node),
	}
	for _, p := range catalog {
		s.catalog[p] = struct{}{}
	}
	return s
}

// Instantiate creates a node for p at the origin.
func (s *Scene) Instantiate(ctx context.Context, p apis.Prototype) (apis.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if hook := s.InstantiateHook; hook != nil {
		if err := hook(p); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.catalog) > 0 {
		if _, ok := s.catalog[p]; !ok {
			return nil, errors.Wrapf(ErrUnknownPrototype, "%q", p)
		}
	}
	n := newNode(s, uuid.NewString(), p)
	s.nodes[n.id] = n
	s.order = append(s.order, n.id)
	return n, nil
}

// Destroy removes h and its descendants. Handles from another scene, or
// already destroyed, are ignored.
func (s *Scene) Destroy(ctx context.Context, h apis.Handle) error {
	n, ok := h.(*Node)
	if !ok || n == nil || n.scene != s || !n.Alive() {
		return nil
	}
	if hook := s.DestroyHook; hook != nil {
		if err := hook(h); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyLocked(n)
	return nil
}

func (s *Scene) destroyLocked(n *Node) {
	for _, c := range n.detachAll() {
		s.destroyLocked(c)
	}
	n.kill()
	delete(s.nodes, n.id)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == n.id })
}

// Nodes returns the live nodes in creation order.
func (s *Scene) Nodes() []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Count returns the number of live nodes.
func (s *Scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// Lookup returns the live node with the given id.
func (s *Scene) Lookup(id string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	return n, ok
}

// SetMain sets the scene-wide main viewpoint.
func (s *Scene) SetMain(vp apis.Viewpoint) {
	s.mu.Lock()
	s.main = vp
	s.mu.Unlock()
}

// Main returns the scene-wide main viewpoint. Its signature matches the
// placer's lazy viewpoint resolver.
func (s *Scene) Main() (apis.Viewpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.main, s.main != nil
}

// NewRoot creates a free-standing live node not produced by a prototype,
// e.g. the owner transform placed objects are parented to.
func (s *Scene) NewRoot(name string) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := newNode(s, uuid.NewString(), apis.Prototype(name))
	s.nodes[n.id] = n
	s.order = append(s.order, n.id)
	return n
}
