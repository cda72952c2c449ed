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

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/placer/errors"
)

var errBase = errors.New("base")

func TestWrapKeepsSentinel(t *testing.T) {
	err := errors.Wrapf(errBase, "step %d", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBase))
	assert.Equal(t, "step 3: base", err.Error())
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := errors.WithHint(errBase, "set a viewpoint")
	err = errors.Wrap(err, "place")
	assert.Equal(t, "set a viewpoint", errors.FlattenHints(err))
	assert.True(t, errors.Is(err, errBase))
}

func TestMarkMatchesReference(t *testing.T) {
	ref := errors.New("reference")
	err := errors.Mark(errors.Wrap(errBase, "ctx"), ref)
	assert.True(t, errors.Is(err, ref))
	assert.True(t, errors.Is(err, errBase))
	assert.Equal(t, "ctx: base", err.Error())
}
