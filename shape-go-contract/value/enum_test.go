// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

func TestEnumDistinctness(t *testing.T) {
	assert.False(t, value.Known("ACTIVE").Equal(value.Unrecognized("ACTIVE")))
	assert.True(t, value.Unrecognized("FUTURE").Equal(value.Unrecognized("FUTURE")))
	assert.True(t, value.Known("ACTIVE").Equal(value.Known("ACTIVE")))
	assert.False(t, value.Known("ACTIVE").Equal(value.Known("INACTIVE")))
}

func TestEnumOfClassifies(t *testing.T) {
	status, err := shape.NewEnum("Status", "ACTIVE", "INACTIVE")
	require.NoError(t, err)

	known, ok := value.EnumOf(status, "ACTIVE").AsEnum()
	require.True(t, ok)
	assert.True(t, known.IsKnown())
	assert.Equal(t, "ACTIVE", known.String())

	unrecognized, ok := value.EnumOf(status, "FUTURE").AsEnum()
	require.True(t, ok)
	assert.False(t, unrecognized.IsKnown())
	assert.Equal(t, "FUTURE", unrecognized.String())
}
