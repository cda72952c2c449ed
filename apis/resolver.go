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

// Selector coordinates selection strategies.
type Selector interface {
	// Select resolves index against count prototypes. ok is false when no
	// strategy could produce an index (e.g. an empty set).
	Select(index, count int) (selected int, ok bool)
}

// ViewpointResolver coordinates viewpoint strategies and caches the first
// viewpoint found.
type ViewpointResolver interface {
	// Resolve returns the reference viewpoint or an error when no source
	// can supply one.
	Resolve() (Viewpoint, error)
}
