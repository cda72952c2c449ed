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

package logger

// Standard field names for structured logging across placer packages.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldOutcome    = "outcome"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	FieldInstanceID    = "instance_id"
	FieldPrototype     = "prototype"
	FieldSelection     = "selection_index"
	FieldPoint         = "point"
	FieldNormal        = "normal"
	FieldViewport      = "viewport"
	FieldYaw           = "yaw_deg"
	FieldVisualization = "visualization"
	FieldFile          = "file"
)
