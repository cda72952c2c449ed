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

package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/placer/logger"
)

func TestDefaultLoggerIsUsableBeforeInitialize(t *testing.T) {
	require.NotNil(t, logger.Logger)
	logger.Logger.Infow("no-op", logger.FieldCount, 1)
}

func TestInitialize(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev; logger.JSONOutput = false })

	require.NoError(t, logger.Initialize(true))
	assert.True(t, logger.JSONOutput)
	require.NoError(t, logger.Initialize(false))
	assert.False(t, logger.JSONOutput)
}

func TestNamedUsesGivenParent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	parent := zap.New(core).Sugar()

	logger.Named(parent, "registry").Infow("cleared", logger.FieldCount, 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "registry", entries[0].LoggerName)
	assert.EqualValues(t, 2, entries[0].ContextMap()[logger.FieldCount])
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, logger.VerbosityLevel(0))
	assert.Equal(t, zapcore.InfoLevel, logger.VerbosityLevel(1))
	assert.Equal(t, zapcore.DebugLevel, logger.VerbosityLevel(3))
}
