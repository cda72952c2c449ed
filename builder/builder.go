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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/logger"
	"dirpx.dev/placer/registry"
	"dirpx.dev/placer/resolver"
	"dirpx.dev/placer/strategy"
)

// New creates and returns a new instance of an apis.Builder. Registries it
// builds log through l (the global logger when nil) and report to rec.
func New(l *zap.SugaredLogger, rec apis.Recorder) apis.Builder {
	if rec == nil {
		rec = apis.NopRecorder{}
	}
	return &builder{log: l, rec: rec}
}

// builder wires the default registry, selection chain and viewpoint chain.
type builder struct {
	log *zap.SugaredLogger
	rec apis.Recorder
}

// BuildRegistry builds a registry destroying through inst. It returns nil
// when inst is nil.
func (b *builder) BuildRegistry(_ apis.Config, inst apis.Instantiator) apis.Registry {
	reg, err := registry.New(inst,
		registry.WithLogger(logger.Named(b.log, "registry")),
		registry.WithRecorder(b.rec),
	)
	if err != nil {
		return nil
	}
	return reg
}

// BuildSelector builds the Fixed -> Random selection chain.
func (b *builder) BuildSelector(rng apis.Rand) apis.Selector {
	return resolver.NewSelector(
		strategy.NewFixedStrategy(),
		strategy.NewRandomStrategy(rng),
	)
}

// BuildViewpointResolver builds the Fixed -> Lazy viewpoint chain.
func (b *builder) BuildViewpointResolver(vp apis.Viewpoint, lazy func() (apis.Viewpoint, bool)) apis.ViewpointResolver {
	var strats []apis.ViewpointStrategy
	if vp != nil {
		strats = append(strats, strategy.NewFixedViewpoint(vp))
	}
	if lazy != nil {
		strats = append(strats, strategy.NewLazyViewpoint(lazy))
	}
	return resolver.NewViewpoint(strats...)
}
