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

import "context"

// Registry exclusively owns placed instances and tears them down in bulk.
// There is no individual removal.
type Registry interface {
	// Register appends inst and makes it the current instance.
	Register(inst Instance) error
	// ClearAll destroys every live handle, empties the registry and notifies
	// all-cleared subscribers, even when nothing was registered.
	ClearAll(ctx context.Context) error
	// Current returns the most recently registered instance, if any.
	Current() (Instance, bool)
	// All returns a snapshot of every registered instance in registration order.
	All() []Instance
	// Count returns the number of registered instances.
	Count() int
	// OnAllCleared subscribes fn to teardown notifications. The returned
	// function cancels the subscription.
	OnAllCleared(fn func()) (cancel func())
}
