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

// Builder composes the placer's collaborators.
type Builder interface {
	// BuildRegistry constructs an empty Registry destroying through inst.
	BuildRegistry(cfg Config, inst Instantiator) Registry
	// BuildSelector constructs a Selector drawing random indices from rng.
	BuildSelector(rng Rand) Selector
	// BuildViewpointResolver constructs a resolver that prefers vp and falls
	// back to lazy. Either may be nil.
	BuildViewpointResolver(vp Viewpoint, lazy func() (Viewpoint, bool)) ViewpointResolver
}
