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
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"dirpx.dev/placer/apis"
)

// Node is a transform in the scene. Poses are world space.
type Node struct {
	scene     *Scene
	id        string
	prototype apis.Prototype

	mu       sync.Mutex
	alive    bool
	active   bool
	pos      mgl64.Vec3
	rot      mgl64.Quat
	scale    mgl64.Vec3
	parent   *Node
	children []*Node
}

// Ensure Node implements apis.Handle.
var _ apis.Handle = (*Node)(nil)

func newNode(s *Scene, id string, p apis.Prototype) *Node {
	return &Node{
		scene:     s,
		id:        id,
		prototype: p,
		alive:     true,
		active:    true,
		rot:       mgl64.QuatIdent(),
		scale:     mgl64.Vec3{1, 1, 1},
	}
}

func (n *Node) ID() string                { return n.id }
func (n *Node) Prototype() apis.Prototype { return n.prototype }

func (n *Node) Alive() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.alive
}

func (n *Node) Position() mgl64.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pos
}

func (n *Node) Rotation() mgl64.Quat {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rot
}

func (n *Node) Scale() mgl64.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scale
}

func (n *Node) SetPosition(p mgl64.Vec3) {
	n.mu.Lock()
	n.pos = p
	n.mu.Unlock()
}

func (n *Node) SetRotation(q mgl64.Quat) {
	n.mu.Lock()
	n.rot = q
	n.mu.Unlock()
}

func (n *Node) SetScale(s mgl64.Vec3) {
	n.mu.Lock()
	n.scale = s
	n.mu.Unlock()
}

// SetParent attaches n under parent. Parents from another implementation
// or scene detach n instead.
func (n *Node) SetParent(parent apis.Transform) {
	p, _ := parent.(*Node)
	if p != nil && p.scene != n.scene {
		p = nil
	}

	n.mu.Lock()
	old := n.parent
	n.parent = p
	n.mu.Unlock()

	if old != nil {
		old.removeChild(n)
	}
	if p != nil {
		p.mu.Lock()
		p.children = append(p.children, n)
		p.mu.Unlock()
	}
}

// Parent returns the parent node, if any.
func (n *Node) Parent() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

// Children returns a snapshot of the child nodes.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*Node(nil), n.children...)
}

// SetActive shows or hides the node.
func (n *Node) SetActive(active bool) {
	n.mu.Lock()
	n.active = active
	n.mu.Unlock()
}

// Active reports whether the node is shown.
func (n *Node) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

func (n *Node) removeChild(c *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, cur := range n.children {
		if cur == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) detachAll() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.children
	n.children = nil
	return out
}

func (n *Node) kill() {
	n.mu.Lock()
	parent := n.parent
	n.alive = false
	n.parent = nil
	n.mu.Unlock()
	if parent != nil {
		parent.removeChild(n)
	}
}
