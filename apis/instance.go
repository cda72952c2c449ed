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

// Instance is one placement: the primary object and, when a visualization
// prototype is configured, its visualization. Both share one lifetime and
// are owned by the Registry until teardown.
type Instance struct {
	// ID identifies the placement; it is the primary handle's ID.
	ID string
	// Prototype is the template the primary object was created from.
	Prototype Prototype
	// Primary is the placed object.
	Primary Handle
	// Visualization is nil when none was spawned.
	Visualization Handle
}

// Handles returns the instance's handles, visualization first.
func (i Instance) Handles() []Handle {
	out := make([]Handle, 0, 2)
	if i.Visualization != nil {
		out = append(out, i.Visualization)
	}
	if i.Primary != nil {
		out = append(out, i.Primary)
	}
	return out
}
